// Package share builds the outbound customer-messaging integrations: the
// WhatsApp deep link carrying an order summary, and its QR rendition.
package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/cardapioltdelima/cardapio-painel/internal/domain"
)

const summaryFooter = "Obrigado pela sua preferência!"

// digitsOnly strips everything but digits from a stored contact identifier,
// the form wa.me expects.
func digitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Link is the short confirmation deep link used from the order list.
func Link(order domain.Order) string {
	text := fmt.Sprintf("Olá, %s! Sobre seu pedido %s...", order.Customer.Name, domain.ShortID(order.ID))
	return "https://wa.me/" + digitsOnly(order.Customer.WhatsApp) + "?text=" + url.QueryEscape(text)
}

// SummaryLink carries the full pre-formatted order summary: greeting,
// itemized lines, total and the fixed footer.
func SummaryLink(order domain.Order) string {
	return "https://wa.me/" + digitsOnly(order.Customer.WhatsApp) + "?text=" + url.QueryEscape(SummaryText(order))
}

func SummaryText(order domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Olá, %s! Resumo do pedido #%s:\n", order.Customer.Name, domain.ShortID(order.ID))
	for _, item := range order.Items {
		fmt.Fprintf(&b, "%dx %s - %s\n", item.Quantity, item.ProductName, domain.FormatBRL(float64(item.Quantity)*item.Price))
	}
	fmt.Fprintf(&b, "Total: %s\n", domain.FormatBRL(order.Total))
	b.WriteString(summaryFooter)
	return b.String()
}

// QRCode encodes the confirmation link as a PNG.
func QRCode(order domain.Order) ([]byte, error) {
	return qrcode.Encode(Link(order), qrcode.Medium, 256)
}
