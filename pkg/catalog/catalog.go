// Package catalog holds the purchasable reference data: an immutable,
// ordered product list addressed by stable IDs, a category synonym table,
// and the filtered query used by the storefront.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"parley/pkg/domain"
)

//go:embed data/products.yaml
var defaultProducts []byte

// synonyms folds spoken category words onto canonical category names
// before any filtering or matching happens.
var synonyms = map[string]string{
	"phone":      "mobile",
	"phones":     "mobile",
	"mobiles":    "mobile",
	"cell":       "mobile",
	"cellphone":  "mobile",
	"smartphone": "mobile",
	"cup":        "mug",
	"cups":       "mug",
	"mugs":       "mug",
	"tee":        "t-shirt",
	"tees":       "t-shirt",
	"tshirt":     "t-shirt",
	"tshirts":    "t-shirt",
	"shirt":      "t-shirt",
	"shirts":     "t-shirt",
	"bags":       "bag",
	"tote":       "bag",
	"backpack":   "bag",
}

// Catalog is the loaded product set. Order follows the source document and
// never changes at runtime; resolver determinism depends on it.
type Catalog struct {
	products []domain.Product
	byID     map[string]domain.Product
	currency string
}

type fileFormat struct {
	Currency string           `yaml:"currency"`
	Products []domain.Product `yaml:"products"`
}

// Default returns the embedded demo storefront catalog.
func Default() *Catalog {
	c, err := Load(bytes.NewReader(defaultProducts))
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded data invalid: %v", err))
	}
	return c
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a catalog definition.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog data: %w", err)
	}

	var file fileFormat
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog data: %w", err)
	}
	if len(file.Products) == 0 {
		return nil, fmt.Errorf("catalog data contains no products")
	}
	if file.Currency == "" {
		file.Currency = "INR"
	}

	byID := make(map[string]domain.Product, len(file.Products))
	for i := range file.Products {
		p := &file.Products[i]
		if p.ID == "" {
			return nil, fmt.Errorf("catalog product %d missing id", i)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		if p.Currency == "" {
			p.Currency = file.Currency
		}
		byID[p.ID] = *p
	}

	return &Catalog{products: file.Products, byID: byID, currency: file.Currency}, nil
}

// Products returns the full product sequence in catalog order. The caller
// gets a copy; the catalog itself is immutable.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Product looks up a product by ID.
// Returns domain.ErrUnknownProduct when the ID is not in the catalog.
func (c *Catalog) Product(id string) (domain.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return domain.Product{}, domain.ErrUnknownProduct
	}
	return p, nil
}

// Currency returns the catalog currency code.
func (c *Catalog) Currency() string {
	return c.currency
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Synonyms exposes the category synonym table for the reference resolver.
func Synonyms() map[string]string {
	return synonyms
}

// CanonicalCategory folds a spoken category word onto its canonical name.
// Unknown words pass through lowered.
func CanonicalCategory(s string) string {
	lowered := strings.ToLower(strings.TrimSpace(s))
	if canon, ok := synonyms[lowered]; ok {
		return canon
	}
	return lowered
}
