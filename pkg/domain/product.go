package domain

import "strings"

// Product is one addressable catalog entry. Immutable after load.
// Price is a whole-unit amount in the catalog currency (e.g. 299 = ₹299).
type Product struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Desc     string   `json:"desc,omitempty" yaml:"desc,omitempty"`
	Category string   `json:"category" yaml:"category"`
	Price    int64    `json:"price" yaml:"price"`
	Currency string   `json:"currency,omitempty" yaml:"currency,omitempty"`
	Colors   []string `json:"colors,omitempty" yaml:"colors,omitempty"`
	Sizes    []string `json:"sizes,omitempty" yaml:"sizes,omitempty"`
}

// HasSize reports whether the product offers the given size
// (case-insensitive). Products without a size set offer none.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if strings.EqualFold(s, size) {
			return true
		}
	}
	return false
}
