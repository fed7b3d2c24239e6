package auth

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/cardapioltdelima/cardapio-painel/internal/domain"
)

var ErrUnknownUser = errors.New("unknown user")

const currentUserKey = "session:current"

// DefaultRoster is the fixed set of panel operators. There is no real
// authentication; switching users is a local selection.
func DefaultRoster() []domain.User {
	return []domain.User{
		{ID: 1, Name: "Admin Geral", Role: domain.RoleAdmin, Avatar: "https://i.pravatar.cc/150?u=admin"},
		{ID: 2, Name: "Atendente 1", Role: domain.RoleAtendente, Avatar: "https://i.pravatar.cc/150?u=atendente1"},
		{ID: 3, Name: "Atendente 2", Role: domain.RoleAtendente, Avatar: "https://i.pravatar.cc/150?u=atendente2"},
	}
}

// Session tracks which roster user is operating the panel, persisted in
// Redis so the selection survives restarts.
type Session struct {
	Client *redis.Client
	Roster []domain.User
}

func NewSession(client *redis.Client) *Session {
	return &Session{Client: client, Roster: DefaultRoster()}
}

func (s *Session) Users() []domain.User {
	out := make([]domain.User, len(s.Roster))
	copy(out, s.Roster)
	return out
}

// Current returns the selected user, falling back to the first roster entry
// when nothing was selected yet.
func (s *Session) Current(ctx context.Context) (domain.User, error) {
	raw, err := s.Client.Get(ctx, currentUserKey).Result()
	if err == redis.Nil {
		return s.Roster[0], nil
	}
	if err != nil {
		return domain.User{}, err
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return s.Roster[0], nil
	}
	if user, ok := s.find(id); ok {
		return user, nil
	}
	return s.Roster[0], nil
}

// Switch selects another roster user as the current actor.
func (s *Session) Switch(ctx context.Context, userID int) (domain.User, error) {
	user, ok := s.find(userID)
	if !ok {
		return domain.User{}, ErrUnknownUser
	}
	if err := s.Client.Set(ctx, currentUserKey, strconv.Itoa(userID), 0).Err(); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Logout clears the selection; the next Current call falls back to the
// roster default.
func (s *Session) Logout(ctx context.Context) error {
	return s.Client.Del(ctx, currentUserKey).Err()
}

func (s *Session) IsAdmin(ctx context.Context) (bool, error) {
	user, err := s.Current(ctx)
	if err != nil {
		return false, err
	}
	return user.Role == domain.RoleAdmin, nil
}

func (s *Session) find(id int) (domain.User, bool) {
	for _, u := range s.Roster {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}
