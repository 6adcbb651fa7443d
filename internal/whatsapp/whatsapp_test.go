package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/oViqa/Raihan/internal/models"
)

func decodeText(t *testing.T, link string) string {
	t.Helper()
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("failed to parse link %q: %v", link, err)
	}
	return u.Query().Get("text")
}

func TestOrderLinkContainsProductAndQuantity(t *testing.T) {
	p := &models.Product{ID: 2, Name: "Huile d'Argan", Description: "Huile d'argan pure, pressée à froid", Price: 25.99}

	link := OrderLink("+1 (234) 567-890", p, 2)

	if !strings.HasPrefix(link, "https://wa.me/1234567890?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}

	text := decodeText(t, link)
	if !strings.Contains(text, "Huile d'Argan") {
		t.Errorf("message missing product name: %q", text)
	}
	if !strings.Contains(text, "Quantity: 2") {
		t.Errorf("message missing quantity: %q", text)
	}
	if !strings.Contains(text, "Total: $51.98") {
		t.Errorf("message missing total: %q", text)
	}
}

func TestOrderLinkPreservesNewlines(t *testing.T) {
	p := &models.Product{ID: 1, Name: "Eau de Rose", Price: 12.99}

	link := OrderLink("1234567890", p, 1)
	if !strings.Contains(link, "%0A") {
		t.Errorf("encoded link should carry %%0A newlines: %s", link)
	}
	if lines := strings.Count(decodeText(t, link), "\n"); lines < 3 {
		t.Errorf("decoded message should be multi-line, got %d newlines", lines)
	}
}

func TestOrderLinkClampsNonPositiveQuantity(t *testing.T) {
	p := &models.Product{ID: 3, Name: "Thé à la Menthe", Price: 8.99}

	for _, qty := range []int{0, -4} {
		text := decodeText(t, OrderLink("1234567890", p, qty))
		if strings.Contains(text, "Quantity: 0") || strings.Contains(text, "Quantity: -") {
			t.Errorf("quantity %d leaked into message: %q", qty, text)
		}
		if !strings.Contains(text, "Quantity: 1") {
			t.Errorf("quantity %d should clamp to 1: %q", qty, text)
		}
	}
}

func TestInquiryLinkIncludesPrice(t *testing.T) {
	p := &models.Product{ID: 5, Name: "Sel de Bain aux Fleurs", Price: 18.99}

	text := decodeText(t, InquiryLink("1234567890", p))
	if !strings.Contains(text, `"Sel de Bain aux Fleurs"`) {
		t.Errorf("message missing quoted product name: %q", text)
	}
	if !strings.Contains(text, "$18.99") {
		t.Errorf("message missing formatted price: %q", text)
	}
}

func TestLinkStripsNonDigitsFromPhone(t *testing.T) {
	link := Link("+212 6-12-34-56-78", "hi")
	if !strings.HasPrefix(link, "https://wa.me/212612345678?") {
		t.Errorf("phone not normalized: %s", link)
	}
}

func TestOrderLinkTruncatesLongDescriptions(t *testing.T) {
	p := &models.Product{ID: 9, Name: "Lavande", Price: 15.99, Description: strings.Repeat("é", 200)}

	text := decodeText(t, OrderLink("1234567890", p, 1))
	if !strings.Contains(text, "...") {
		t.Errorf("long description should be truncated with ellipsis: %q", text)
	}
	if strings.Contains(text, strings.Repeat("é", 130)) {
		t.Errorf("description not truncated: %q", text)
	}
}
