package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "bolo.png", "bolo.png"},
		{"uppercase", "Bolo.PNG", "bolo.png"},
		{"diacritics", "bolo-de-coração.jpg", "bolo-de-coracao.jpg"},
		{"whitespace", "bolo de cenoura.png", "bolo-de-cenoura.png"},
		{"mixed", "Pão de Açúcar (novo).jpeg", "pao-de-acucar-novo.jpeg"},
		{"symbols", "foto@#$%.png", "foto.png"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeFilename(tc.in))
		})
	}
}

func TestUploadStore_Save(t *testing.T) {
	dir := t.TempDir()
	store := NewUploadStore(dir, "/uploads/")
	store.now = func() time.Time { return time.UnixMilli(1700000000000) }

	url, err := store.Save("Bolo de Coração.png", strings.NewReader("png-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "/uploads/1700000000000_bolo-de-coracao.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "1700000000000_bolo-de-coracao.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestUploadStore_SaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	store := NewUploadStore(dir, "/uploads")
	store.now = func() time.Time { return time.UnixMilli(42) }

	_, err := store.Save("a.png", strings.NewReader("x"))

	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "42_a.png"))
	assert.NoError(t, err)
}
