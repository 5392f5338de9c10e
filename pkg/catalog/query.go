package catalog

import (
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"parley/pkg/domain"
)

// Filters is the recognized query configuration. All provided filters are
// ANDed; zero values mean "not filtered".
type Filters struct {
	// Q is a free-text filter matched as a substring of name and
	// description; when it names a category (directly or via synonym) it
	// matches that category too.
	Q string
	// Category is an exact-or-synonym category filter.
	Category string
	// MinPrice and MaxPrice are inclusive bounds.
	MinPrice *int64
	MaxPrice *int64
	// Color is an exact, case-insensitive membership test.
	Color string
	// Size is a membership test against the product's size set.
	Size string
}

// ParseFilters decodes a loosely-typed filter map (tool arguments, query
// params) into Filters. Numeric values that fail to parse are ignored, not
// rejected; spoken input earns a permissive parser.
func ParseFilters(raw map[string]any) Filters {
	var aux struct {
		Q        string `mapstructure:"q"`
		Category string `mapstructure:"category"`
		MinPrice any    `mapstructure:"min_price"`
		MaxPrice any    `mapstructure:"max_price"`
		Color    string `mapstructure:"color"`
		Size     string `mapstructure:"size"`
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &aux,
		WeaklyTypedInput: true,
	})
	if err == nil {
		// A failed decode leaves the zero filter set, which simply matches
		// everything.
		_ = decoder.Decode(raw)
	}

	return Filters{
		Q:        aux.Q,
		Category: aux.Category,
		MinPrice: parsePrice(aux.MinPrice),
		MaxPrice: parsePrice(aux.MaxPrice),
		Color:    aux.Color,
		Size:     aux.Size,
	}
}

// parsePrice accepts the numeric shapes JSON and YAML produce, plus
// numeric strings. Anything else is treated as absent.
func parsePrice(v any) *int64 {
	switch n := v.(type) {
	case nil:
		return nil
	case int:
		val := int64(n)
		return &val
	case int64:
		return &n
	case float64:
		val := int64(n)
		return &val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil
		}
		val := int64(f)
		return &val
	default:
		return nil
	}
}

// Query returns the products matching every provided filter, in catalog
// order. An unmatched query is an empty sequence, never an error.
func (c *Catalog) Query(f Filters) []domain.Product {
	category := ""
	if f.Category != "" {
		category = CanonicalCategory(f.Category)
	}

	var out []domain.Product
	for _, p := range c.products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if f.Q != "" && !matchesText(p, f.Q) {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if f.Color != "" && !hasColor(p, f.Color) {
			continue
		}
		if f.Size != "" && !p.HasSize(f.Size) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesText(p domain.Product, q string) bool {
	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Desc), needle) {
		return true
	}
	return strings.EqualFold(p.Category, CanonicalCategory(needle))
}

func hasColor(p domain.Product, color string) bool {
	for _, c := range p.Colors {
		if strings.EqualFold(c, color) {
			return true
		}
	}
	return false
}
