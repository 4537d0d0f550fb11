package internal

import (
	"fmt"
	"strings"
	"time"
)

// FormatClock formats a timestamp the way message bubbles show it
func FormatClock(t time.Time) string {
	return t.Format("03:04 PM")
}

// ItemLines describes an item as plain text lines. Detailed records also
// carry stock and SKU lines.
func ItemLines(rec ItemRecord, detailed bool) []string {
	name := rec.Name
	if name == "" {
		name = "(unnamed item)"
	}

	price := rec.PriceLabel()
	if d := rec.DiscountLabel(); d != "" {
		if detailed {
			price += " · " + d + " available"
		} else {
			price += " · " + d
		}
	}

	lines := []string{name, price}
	if rec.Description != "" {
		lines = append(lines, rec.Description)
	}
	if rec.Quantity != nil {
		if detailed {
			lines = append(lines, fmt.Sprintf("Stock: %d available (%s)", *rec.Quantity, rec.StockLevel()))
		} else {
			lines = append(lines, fmt.Sprintf("%d in stock (%s)", *rec.Quantity, rec.StockLevel()))
		}
	}
	if detailed && rec.ID != "" {
		lines = append(lines, "SKU: "+rec.ID)
	}
	return lines
}

// PlainMessage renders a timeline entry as plain text, including any items
func PlainMessage(n *Normalizer, msg Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s\n", FormatClock(msg.CreatedAt), msg.Origin, msg.Text())

	if msg.Origin != OriginAssistant {
		return b.String()
	}
	sel := n.SelectItems(msg.Result)
	if sel.Kind == ItemNone {
		return b.String()
	}
	fmt.Fprintf(&b, "  %s\n", sel.Kind.Heading())
	for _, rec := range sel.Items {
		for i, line := range ItemLines(rec, sel.Kind == ItemDetail) {
			prefix := "    "
			if i == 0 {
				prefix = "  - "
			}
			b.WriteString(prefix + line + "\n")
		}
	}
	return b.String()
}
