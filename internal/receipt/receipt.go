// Package receipt renders the printable order receipt. One renderer serves
// both output channels (in-page print and print-to-PDF in a new window),
// parameterized by the physical page format.
package receipt

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/cardapioltdelima/cardapio-painel/internal/domain"
)

type Format string

const (
	FormatA4        Format = "a4"
	FormatThermal80 Format = "thermal80"
)

func ParseFormat(s string) (Format, error) {
	switch s {
	case "", string(FormatA4):
		return FormatA4, nil
	case string(FormatThermal80):
		return FormatThermal80, nil
	}
	return "", fmt.Errorf("unsupported receipt format %q", s)
}

// pageRules carries the @page stylesheet per physical format.
var pageRules = map[Format]template.CSS{
	FormatA4:        "@page { size: A4; margin: 20mm; } body { width: 170mm; }",
	FormatThermal80: "@page { size: 80mm auto; margin: 4mm; } body { width: 72mm; font-size: 12px; }",
}

type itemRow struct {
	Quantity  int
	Name      string
	UnitPrice string
	LineTotal string
}

type receiptData struct {
	PageRules template.CSS
	ShortID   string
	Customer  domain.Customer
	Items     []itemRow
	Total     string
}

var tmpl = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Recibo - Pedido #{{.ShortID}}</title>
<style>
{{.PageRules}}
body { font-family: sans-serif; margin: 0 auto; color: #000; }
h2 { text-align: center; margin-bottom: 0; }
.order-id { text-align: center; margin-top: 4px; }
table { width: 100%; border-collapse: collapse; margin: 12px 0; }
th, td { text-align: left; padding: 4px 2px; border-bottom: 1px solid #ccc; }
.total { display: flex; justify-content: space-between; font-weight: bold; }
.footer { text-align: center; margin-top: 16px; }
</style>
</head>
<body>
<h2>Recibo</h2>
<p class="order-id">Pedido #{{.ShortID}}</p>
<div>
<p><strong>Cliente:</strong> {{.Customer.Name}}</p>
<p><strong>Endereço:</strong> {{.Customer.Address}}</p>
</div>
<table>
<thead>
<tr><th>Qtd</th><th>Produto</th><th>Preço Unit.</th><th>Total</th></tr>
</thead>
<tbody>
{{range .Items}}<tr><td>{{.Quantity}}</td><td>{{.Name}}</td><td>{{.UnitPrice}}</td><td>{{.LineTotal}}</td></tr>
{{end}}</tbody>
</table>
<div class="total">
<span>Total a Pagar:</span>
<span>{{.Total}}</span>
</div>
<p class="footer">Obrigado pela sua preferência!</p>
</body>
</html>
`))

// Render produces the self-contained printable document for an order.
func Render(order domain.Order, format Format) ([]byte, error) {
	rules, ok := pageRules[format]
	if !ok {
		return nil, fmt.Errorf("unsupported receipt format %q", format)
	}

	data := receiptData{
		PageRules: rules,
		ShortID:   domain.ShortID(order.ID),
		Customer:  order.Customer,
		Total:     domain.FormatBRL(order.Total),
	}
	for _, item := range order.Items {
		data.Items = append(data.Items, itemRow{
			Quantity:  item.Quantity,
			Name:      item.ProductName,
			UnitPrice: domain.FormatBRL(item.Price),
			LineTotal: domain.FormatBRL(float64(item.Quantity) * item.Price),
		})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
