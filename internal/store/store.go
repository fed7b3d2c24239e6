package store

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/cardapioltdelima/cardapio-painel/internal/domain"
)

// Repository is the remote side of the mirror. Implemented by
// storage.PostgresRepository.
type Repository interface {
	ListCategories() ([]domain.Category, error)
	ListProducts() ([]domain.Product, error)
	ListOrders() ([]domain.Order, error)
	UpdateOrderStatus(orderID string, status domain.OrderStatus) error
	UpdatePaymentStatus(orderID string, status domain.PaymentStatus) error
	InsertProduct(p *domain.Product) error
	UpdateProduct(p *domain.Product) error
	DeleteProduct(productID string) error
}

// Store keeps the in-memory mirrors of the remote collections. It is the
// only writer; everything else reads snapshots and funnels mutations through
// its methods. A failed remote call leaves the mirror untouched and records
// a single human-readable error (last write wins).
type Store struct {
	repo Repository

	mu         sync.RWMutex
	categories []domain.Category
	products   []domain.Product
	orders     []domain.Order
	lastErr    string

	// One mutex per collection so overlapping reloads of the same
	// collection are serialized instead of racing.
	categoriesReload sync.Mutex
	productsReload   sync.Mutex
	ordersReload     sync.Mutex

	subMu sync.Mutex
	subs  []chan struct{}
}

func New(repo Repository) *Store {
	return &Store{repo: repo}
}

func (s *Store) LoadCategories() error {
	s.categoriesReload.Lock()
	defer s.categoriesReload.Unlock()

	categories, err := s.repo.ListCategories()
	if err != nil {
		return s.fail("Erro ao carregar categorias", err)
	}

	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *Store) LoadProducts() error {
	s.productsReload.Lock()
	defer s.productsReload.Unlock()

	products, err := s.repo.ListProducts()
	if err != nil {
		return s.fail("Erro ao carregar produtos", err)
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *Store) LoadOrders() error {
	s.ordersReload.Lock()
	defer s.ordersReload.Unlock()

	orders, err := s.repo.ListOrders()
	if err != nil {
		return s.fail("Erro ao carregar pedidos", err)
	}

	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	s.notify()
	return nil
}

// LoadAll performs the initial fetch of the three collections. Each failure
// is recorded independently; one collection failing does not touch the
// others.
func (s *Store) LoadAll() {
	if err := s.LoadCategories(); err != nil {
		log.Printf("[painel] initial categories load: %v", err)
	}
	if err := s.LoadProducts(); err != nil {
		log.Printf("[painel] initial products load: %v", err)
	}
	if err := s.LoadOrders(); err != nil {
		log.Printf("[painel] initial orders load: %v", err)
	}
}

func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *Store) Order(id string) (domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Order{}, false
}

func (s *Store) Product(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// CategoryName resolves a product's weak category reference. A dangling or
// empty reference is a valid state, rendered as "N/A".
func (s *Store) CategoryName(categoryID string) string {
	if categoryID == "" {
		return "N/A"
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.ID == categoryID {
			return c.Name
		}
	}
	return "N/A"
}

// UpdateOrderStatus issues the remote point update and, on success, patches
// only the matching local order. No optimistic update is applied.
func (s *Store) UpdateOrderStatus(orderID string, status domain.OrderStatus) error {
	if err := s.repo.UpdateOrderStatus(orderID, status); err != nil {
		return s.fail("Erro ao atualizar status do pedido", err)
	}

	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Status = status
			break
		}
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *Store) UpdatePaymentStatus(orderID string, status domain.PaymentStatus) error {
	if err := s.repo.UpdatePaymentStatus(orderID, status); err != nil {
		return s.fail("Erro ao atualizar status do pagamento", err)
	}

	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].PaymentStatus = status
			break
		}
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

// SaveProduct branches on the id: a placeholder ("new-...") or empty id
// means insert, anything else is an update of the existing remote row.
func (s *Store) SaveProduct(p domain.Product) (domain.Product, error) {
	if p.ID == "" || strings.HasPrefix(p.ID, "new") {
		return s.insertProduct(p)
	}
	return s.updateProduct(p)
}

func (s *Store) insertProduct(p domain.Product) (domain.Product, error) {
	p.ID = ""
	if err := s.repo.InsertProduct(&p); err != nil {
		return domain.Product{}, s.fail("Erro ao salvar produto", err)
	}

	s.mu.Lock()
	s.products = append(s.products, p)
	sort.Slice(s.products, func(i, j int) bool {
		return s.products[i].Name < s.products[j].Name
	})
	s.mu.Unlock()
	s.notify()
	return p, nil
}

func (s *Store) updateProduct(p domain.Product) (domain.Product, error) {
	if err := s.repo.UpdateProduct(&p); err != nil {
		return domain.Product{}, s.fail("Erro ao salvar produto", err)
	}

	s.mu.Lock()
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p
			break
		}
	}
	s.mu.Unlock()
	s.notify()
	return p, nil
}

func (s *Store) DeleteProduct(productID string) error {
	if err := s.repo.DeleteProduct(productID); err != nil {
		return s.fail("Erro ao deletar produto", err)
	}

	s.mu.Lock()
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != productID {
			kept = append(kept, p)
		}
	}
	s.products = kept
	s.mu.Unlock()
	s.notify()
	return nil
}

// Err returns the current error message, empty when the last operation
// succeeded or the error was cleared.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) ClearErr() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

// Subscribe returns a channel that receives a tick after every successful
// reload or mutation. The channel is never closed and drops ticks when the
// subscriber lags.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.subMu.Lock()
	s.subs = append(s.subs, ch)
	s.subMu.Unlock()
	return ch
}

func (s *Store) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *Store) fail(operation string, err error) error {
	wrapped := fmt.Errorf("%s: %w", operation, err)
	log.Printf("[painel] %v", wrapped)
	s.mu.Lock()
	s.lastErr = wrapped.Error()
	s.mu.Unlock()
	return wrapped
}
