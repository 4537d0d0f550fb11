package internal

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ItemRecord is the display-ready form of an item, whatever field naming
// the backend used.
type ItemRecord struct {
	ID              string   `json:"id,omitempty" yaml:"id,omitempty"`
	Name            string   `json:"name" yaml:"name"`
	Price           float64  `json:"price" yaml:"price"`
	Description     string   `json:"description,omitempty" yaml:"description,omitempty"`
	Quantity        *int     `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	MaximumDiscount *float64 `json:"maximum_discount,omitempty" yaml:"maximum_discount,omitempty"`
}

// lowStockThreshold is the quantity at or below which stock is shown as low
const lowStockThreshold = 10

// PriceLabel formats the price as dollars
func (r ItemRecord) PriceLabel() string {
	return fmt.Sprintf("$%.2f", r.Price)
}

// DiscountLabel returns e.g. "15% discount", or "" when there is none
func (r ItemRecord) DiscountLabel() string {
	if r.MaximumDiscount == nil {
		return ""
	}
	return fmt.Sprintf("%.0f%% discount", *r.MaximumDiscount*100)
}

// StockLevel returns "in-stock", "low-stock", or "" when quantity is unknown
func (r ItemRecord) StockLevel() string {
	if r.Quantity == nil {
		return ""
	}
	if *r.Quantity > lowStockThreshold {
		return "in-stock"
	}
	return "low-stock"
}

// ItemKind says which field of an exchange result supplied the items
type ItemKind int

const (
	ItemNone ItemKind = iota
	ItemDetail
	ItemSelectionList
	ItemRecommended
)

// Heading returns the section title used when rendering items of this kind
func (k ItemKind) Heading() string {
	switch k {
	case ItemDetail:
		return "🔍 Product Details:"
	case ItemSelectionList:
		return "💡 Product Selection:"
	case ItemRecommended:
		return "💡 Recommended Items:"
	default:
		return ""
	}
}

// ItemSelection is the set of items to render for one assistant message
type ItemSelection struct {
	Kind  ItemKind
	Items []ItemRecord
}

// Normalizer resolves raw item payloads into ItemRecords
type Normalizer struct{}

// NewNormalizer creates a new Normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize resolves a raw record into the canonical shape. It never fails:
// missing or malformed fields fall back to defaults.
func (n *Normalizer) Normalize(raw RawItem) ItemRecord {
	rec := ItemRecord{
		ID:          n.firstString(raw, "item_id", "id"),
		Name:        n.firstString(raw, "name", "item_name"),
		Description: n.firstString(raw, "description", "item_description"),
	}

	// zero falls through to the next candidate, as with the legacy fields
	for _, key := range []string{"price", "item_price"} {
		if v, ok := toFloat(raw[key]); ok && v > 0 {
			rec.Price = v
			break
		}
	}

	if v, ok := toFloat(raw["item_quantity"]); ok && v >= 0 && v == math.Trunc(v) && v <= math.MaxInt32 {
		q := int(v)
		rec.Quantity = &q
	}

	if v, ok := toFloat(raw["maximum_discount"]); ok && v > 0 && v <= 1 {
		d := v
		rec.MaximumDiscount = &d
	}

	return rec
}

// NormalizeAll normalizes every record in order
func (n *Normalizer) NormalizeAll(raws []RawItem) []ItemRecord {
	records := make([]ItemRecord, 0, len(raws))
	for _, raw := range raws {
		records = append(records, n.Normalize(raw))
	}
	return records
}

// SelectItems picks the single item field to render for a result:
// item_data, then items, then recommended_items. A present but empty list
// still claims its slot and renders nothing.
func (n *Normalizer) SelectItems(result *ExchangeResult) ItemSelection {
	switch {
	case result == nil:
		return ItemSelection{Kind: ItemNone}
	case result.ItemData != nil:
		return ItemSelection{Kind: ItemDetail, Items: []ItemRecord{n.Normalize(result.ItemData)}}
	case result.Items != nil:
		return n.selectList(ItemSelectionList, result.Items)
	case result.RecommendedItems != nil:
		return n.selectList(ItemRecommended, result.RecommendedItems)
	default:
		return ItemSelection{Kind: ItemNone}
	}
}

func (n *Normalizer) selectList(kind ItemKind, raws []RawItem) ItemSelection {
	if len(raws) == 0 {
		return ItemSelection{Kind: ItemNone}
	}
	return ItemSelection{Kind: kind, Items: n.NormalizeAll(raws)}
}

// firstString returns the first non-empty value among keys
func (n *Normalizer) firstString(raw RawItem, keys ...string) string {
	for _, key := range keys {
		if s := toString(raw[key]); s != "" {
			return s
		}
	}
	return ""
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func toFloat(v interface{}) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
