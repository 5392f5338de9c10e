package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/pkg/domain"
)

var testSynonyms = map[string]string{
	"phone":   "mobile",
	"phones":  "mobile",
	"mobiles": "mobile",
	"cup":     "mug",
	"cups":    "mug",
	"tee":     "t-shirt",
	"tees":    "t-shirt",
	"tshirt":  "t-shirt",
	"tshirts": "t-shirt",
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "mug-001", Name: "Classic Coffee Mug", Category: "mug", Price: 299, Colors: []string{"white", "black"}},
		{ID: "mob-001", Name: "Nimbus A1 Smartphone", Category: "mobile", Price: 12999, Colors: []string{"black", "blue"}},
		{ID: "mob-002", Name: "Nimbus Pro Max", Category: "mobile", Price: 42999, Colors: []string{"silver"}},
		{ID: "tsh-001", Name: "Crew Neck T-Shirt", Category: "t-shirt", Price: 499, Colors: []string{"red", "navy"}, Sizes: []string{"S", "M", "L"}},
	}
}

func TestReference_Cascade(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"exact id", "mug-001", "mug-001"},
		{"exact id mixed case", "MUG-001", "mug-001"},
		{"ordinal selects position", "the second one", "mob-001"},
		{"ordinal after category narrowing", "the first phone", "mob-001"},
		{"color plus category", "the red tshirt please", "tsh-001"},
		{"strong name match", "nimbus pro", "mob-002"},
		{"weak name match", "something with coffee", "mug-001"},
		{"numeric index", "number 3", "mob-002"},
		// "phone" is a substring of "Smartphone", so the strong-name stage
		// wins before the numeric index is ever consulted.
		{"name stage outranks numeric index", "phone 2", "mob-001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reference(tt.input, testProducts(), testSynonyms)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestReference_OrdinalOutOfRange(t *testing.T) {
	// Two candidates, ordinal "fourth": the ordinal stage misses without
	// erroring, and with no other stage hitting the cascade reports no match.
	two := testProducts()[:2]
	_, err := Reference("the fourth", two, testSynonyms)
	assert.ErrorIs(t, err, domain.ErrNoMatch)

	// The same miss falls through rather than aborting: a later stage may
	// still resolve the text.
	got, err := Reference("fourth coffee", two, testSynonyms)
	require.NoError(t, err)
	assert.Equal(t, "mug-001", got.ID)
}

func TestReference_NarrowingRevertsWhenEmpty(t *testing.T) {
	// No product carries the "mug" category in this set, so the hint must
	// not leave us with zero candidates.
	candidates := []domain.Product{
		{ID: "mob-001", Name: "Nimbus A1 Smartphone", Category: "mobile", Price: 12999},
	}
	got, err := Reference("first cup", candidates, testSynonyms)
	require.NoError(t, err)
	assert.Equal(t, "mob-001", got.ID)
}

func TestReference_NoMatch(t *testing.T) {
	_, err := Reference("xyzzy plugh", testProducts(), testSynonyms)
	assert.ErrorIs(t, err, domain.ErrNoMatch)

	_, err = Reference("", testProducts(), testSynonyms)
	assert.ErrorIs(t, err, domain.ErrNoMatch)
}

func TestReference_Deterministic(t *testing.T) {
	first, err := Reference("nimbus", testProducts(), testSynonyms)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		again, err := Reference("nimbus", testProducts(), testSynonyms)
		require.NoError(t, err)
		require.Equal(t, first.ID, again.ID)
	}
}
