// Package whatsapp builds wa.me deep links with prefilled order messages.
// Nothing here touches the network; the handoff happens when the
// visitor's browser opens the returned URL in the WhatsApp client.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/oViqa/Raihan/internal/models"
)

const baseURL = "https://wa.me/"

// descriptionLimit keeps order messages readable; longer descriptions
// are truncated with an ellipsis.
const descriptionLimit = 120

// FormatPrice renders a price the way messages and admin views show it.
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// Link assembles a wa.me URL for an arbitrary message. The phone number
// is reduced to digits; newlines survive as %0A so WhatsApp renders
// multi-line messages.
func Link(phone, message string) string {
	return baseURL + digitsOnly(phone) + "?text=" + url.QueryEscape(message)
}

// ContactLink is the floating "contact us" button target.
func ContactLink(phone string) string {
	return Link(phone, "Hello! I am interested in your products.")
}

// InquiryLink asks about a single product with no quantity.
func InquiryLink(phone string, p *models.Product) string {
	message := fmt.Sprintf("Hello! I'm interested in purchasing %q for %s. Is it available?", p.Name, FormatPrice(p.Price))
	return Link(phone, message)
}

// OrderLink builds the multi-line order message for a product and
// quantity. Quantity bounds are enforced by the UI (1..stock); a
// misused non-positive quantity is clamped to 1 rather than producing
// a nonsense message.
func OrderLink(phone string, p *models.Product, quantity int) string {
	if quantity < 1 {
		quantity = 1
	}

	var b strings.Builder
	b.WriteString("Hello! I would like to place an order:\n")
	fmt.Fprintf(&b, "Product: %s (#%d)\n", p.Name, p.ID)
	fmt.Fprintf(&b, "Price: %s\n", FormatPrice(p.Price))
	fmt.Fprintf(&b, "Quantity: %d\n", quantity)
	fmt.Fprintf(&b, "Total: %s\n", FormatPrice(p.Price*float64(quantity)))
	if desc := truncate(p.Description, descriptionLimit); desc != "" {
		b.WriteString("\n")
		b.WriteString(desc)
		b.WriteString("\n")
	}
	b.WriteString("\nPlease confirm availability and share delivery details (name, address, phone).")

	return Link(phone, b.String())
}

func digitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// truncate cuts on rune boundaries; product descriptions are French or
// Arabic and must not be split mid-character.
func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit])) + "..."
}
