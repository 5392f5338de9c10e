package world

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/pkg/domain"
)

func TestDefault_Loads(t *testing.T) {
	w := Default()
	assert.Equal(t, "intro", w.Start())
	assert.Equal(t, 13, w.Len())

	intro, err := w.Scene("intro")
	require.NoError(t, err)
	assert.Equal(t, "A Shadow over Brinmere", intro.Title)
	require.Len(t, intro.Choices, 3)

	// Choice order follows the document, not map iteration.
	assert.Equal(t, []string{"inspect_box", "approach_tower", "walk_to_cottages"}, intro.OrderedChoices())
}

func TestDefault_Effects(t *testing.T) {
	w := Default()

	box, err := w.Scene("box")
	require.NoError(t, err)
	takeMap := box.Choices["take_map"]
	require.NotNil(t, takeMap.Effects)
	assert.Contains(t, takeMap.Effects.AddJournal, "map fragment")
	assert.Equal(t, "tower_approach", takeMap.ResultScene)

	cellar, err := w.Scene("cellar")
	require.NoError(t, err)
	takeKey := cellar.Choices["take_key"]
	require.NotNil(t, takeKey.Effects)
	assert.Equal(t, "brass_key", takeKey.Effects.AddInventory)
	assert.Equal(t, "Found brass key on plinth.", takeKey.Effects.AddJournal)
}

func TestDefault_DanglingTargets(t *testing.T) {
	// "cottages" is deliberately unwritten; the engine soft-resets when a
	// session walks into it. No other target may dangle.
	assert.Equal(t, []string{"cottages"}, Default().DanglingTargets())
}

func TestScene_NotFound(t *testing.T) {
	_, err := Default().Scene("featureless_void")
	assert.ErrorIs(t, err, domain.ErrSceneNotFound)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"missing start", "scenes:\n  a:\n    desc: x\n", "missing start"},
		{"undefined start", "start: nope\nscenes:\n  a:\n    desc: x\n", "not defined"},
		{"bad yaml", "start: [", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
