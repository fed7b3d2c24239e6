package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardapioltdelima/cardapio-painel/internal/domain"
)

func sampleOrder() domain.Order {
	return domain.Order{
		ID: "1000123",
		Customer: domain.Customer{
			Name:    "Maria Silva",
			Address: "Rua das Flores, 12",
		},
		Items: []domain.OrderItem{
			{ProductID: "1", ProductName: "Bolo de Cenoura", Quantity: 1, Price: 35},
			{ProductID: "2", ProductName: "Brigadeiro", Quantity: 4, Price: 2.5},
		},
		Total: 45,
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatA4, false},
		{"a4", FormatA4, false},
		{"thermal80", FormatThermal80, false},
		{"letter", "", true},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestRender_A4(t *testing.T) {
	out, err := Render(sampleOrder(), FormatA4)

	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "Pedido #000123")
	assert.Contains(t, html, "Maria Silva")
	assert.Contains(t, html, "Rua das Flores, 12")
	assert.Contains(t, html, "Bolo de Cenoura")
	assert.Contains(t, html, "R$ 35,00")
	assert.Contains(t, html, "R$ 10,00") // 4x Brigadeiro line total
	assert.Contains(t, html, "R$ 45,00")
	assert.Contains(t, html, "size: A4")
	assert.Contains(t, html, "Obrigado pela sua preferência!")
}

func TestRender_Thermal(t *testing.T) {
	out, err := Render(sampleOrder(), FormatThermal80)

	require.NoError(t, err)
	assert.Contains(t, string(out), "size: 80mm auto")
	assert.NotContains(t, string(out), "size: A4")
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := Render(sampleOrder(), Format("letter"))

	assert.Error(t, err)
}

func TestRender_EscapesCustomerInput(t *testing.T) {
	order := sampleOrder()
	order.Customer.Name = "<script>alert(1)</script>"

	out, err := Render(order, FormatA4)

	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
}
