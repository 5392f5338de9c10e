package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/pkg/domain"
)

func TestDefault_Loads(t *testing.T) {
	c := Default()
	assert.Equal(t, "INR", c.Currency())
	assert.Equal(t, 9, c.Len())

	mug, err := c.Product("mug-001")
	require.NoError(t, err)
	assert.Equal(t, int64(299), mug.Price)
	assert.Equal(t, "INR", mug.Currency)
}

func TestProduct_Unknown(t *testing.T) {
	_, err := Default().Product("nope-000")
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)
}

func TestProducts_ReturnsCopy(t *testing.T) {
	c := Default()
	got := c.Products()
	got[0].Name = "clobbered"

	again := c.Products()
	assert.NotEqual(t, "clobbered", again[0].Name)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"empty", "products: []\n", "no products"},
		{"missing id", "products:\n  - name: x\n", "missing id"},
		{"duplicate id", "products:\n  - id: a\n    name: x\n  - id: a\n    name: y\n", "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCanonicalCategory(t *testing.T) {
	assert.Equal(t, "mobile", CanonicalCategory("Phones"))
	assert.Equal(t, "mobile", CanonicalCategory("smartphone"))
	assert.Equal(t, "t-shirt", CanonicalCategory("tees"))
	assert.Equal(t, "widget", CanonicalCategory("Widget"))
}

func TestQuery_Filters(t *testing.T) {
	c := Default()

	t.Run("category synonym plus max price", func(t *testing.T) {
		max := int64(20000)
		got := c.Query(Filters{Category: "phones", MaxPrice: &max})
		require.Len(t, got, 2)
		for _, p := range got {
			assert.Equal(t, "mobile", p.Category)
			assert.LessOrEqual(t, p.Price, int64(20000))
		}
	})

	t.Run("inclusive price bounds", func(t *testing.T) {
		min, max := int64(299), int64(299)
		got := c.Query(Filters{MinPrice: &min, MaxPrice: &max})
		require.Len(t, got, 1)
		assert.Equal(t, "mug-001", got[0].ID)
	})

	t.Run("color and size are ANDed", func(t *testing.T) {
		got := c.Query(Filters{Color: "red", Size: "XL"})
		require.Len(t, got, 1)
		assert.Equal(t, "tsh-001", got[0].ID)

		assert.Empty(t, c.Query(Filters{Color: "olive", Size: "XL"}))
	})

	t.Run("q matches name desc and category", func(t *testing.T) {
		got := c.Query(Filters{Q: "nimbus"})
		assert.Len(t, got, 3)

		got = c.Query(Filters{Q: "tees"})
		assert.Len(t, got, 2)
	})

	t.Run("unmatched query is empty not error", func(t *testing.T) {
		assert.Empty(t, c.Query(Filters{Q: "zeppelin"}))
	})

	t.Run("catalog order is preserved", func(t *testing.T) {
		got := c.Query(Filters{Category: "mobile"})
		require.Len(t, got, 3)
		assert.Equal(t, "mob-001", got[0].ID)
		assert.Equal(t, "mob-002", got[1].ID)
		assert.Equal(t, "mob-003", got[2].ID)
	})
}

func TestParseFilters_Permissive(t *testing.T) {
	f := ParseFilters(map[string]any{
		"q":         "mug",
		"category":  "cups",
		"min_price": "100",
		"max_price": 20000.0,
		"color":     "white",
	})
	assert.Equal(t, "mug", f.Q)
	require.NotNil(t, f.MinPrice)
	assert.Equal(t, int64(100), *f.MinPrice)
	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, int64(20000), *f.MaxPrice)

	// Unparseable numbers are dropped, not rejected.
	f = ParseFilters(map[string]any{"min_price": "cheap", "max_price": true})
	assert.Nil(t, f.MinPrice)
	assert.Nil(t, f.MaxPrice)
}
