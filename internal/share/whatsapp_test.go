package share

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardapioltdelima/cardapio-painel/internal/domain"
)

func sampleOrder() domain.Order {
	return domain.Order{
		ID: "1000123",
		Customer: domain.Customer{
			Name:     "Maria",
			WhatsApp: "+55 (11) 99999-0000",
		},
		Items: []domain.OrderItem{
			{ProductName: "Bolo de Cenoura", Quantity: 1, Price: 35},
			{ProductName: "Brigadeiro", Quantity: 4, Price: 2.5},
		},
		Total: 45,
	}
}

func TestLink(t *testing.T) {
	link := Link(sampleOrder())

	assert.True(t, strings.HasPrefix(link, "https://wa.me/5511999990000?text="), link)
	assert.Contains(t, link, "Maria")
	// Short id appears in the escaped message body.
	assert.Contains(t, link, "000123")
	assert.NotContains(t, link, " ", "query text must be url escaped")
}

func TestSummaryText(t *testing.T) {
	text := SummaryText(sampleOrder())

	assert.Contains(t, text, "Olá, Maria! Resumo do pedido #000123:")
	assert.Contains(t, text, "1x Bolo de Cenoura - R$ 35,00")
	assert.Contains(t, text, "4x Brigadeiro - R$ 10,00")
	assert.Contains(t, text, "Total: R$ 45,00")
	assert.True(t, strings.HasSuffix(text, "Obrigado pela sua preferência!"))
}

func TestSummaryLink(t *testing.T) {
	link := SummaryLink(sampleOrder())

	assert.True(t, strings.HasPrefix(link, "https://wa.me/5511999990000?text="), link)
	assert.NotContains(t, link, "\n", "newlines must be escaped")
}

func TestQRCode(t *testing.T) {
	png, err := QRCode(sampleOrder())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
