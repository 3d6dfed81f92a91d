package distancing

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTraits(t *testing.T) {
	tests := []struct {
		name string
		box  BoundingBox
		want Traits
	}{
		{"unit square at origin", Box(0, 0, 10, 10), Traits{Height: 10, Width: 10, CenterX: 5, CenterY: 5}},
		{"tall box", Box(20, 40, 120, 80), Traits{Height: 100, Width: 40, CenterX: 60, CenterY: 70}},
		{"top below bottom", Box(10, 0, 0, 10), Traits{Height: 10, Width: 10, CenterX: 5, CenterY: 5}},
		{"left right of right", Box(0, 30, 10, 10), Traits{Height: 10, Width: 20, CenterX: 20, CenterY: 5}},
		{"fully reversed", Box(50, 50, 0, 0), Traits{Height: 50, Width: 50, CenterX: 25, CenterY: 25}},
		{"point box", Box(7, 3, 7, 3), Traits{Height: 0, Width: 0, CenterX: 3, CenterY: 7}},
		{"fractional", Box(0.5, 1.5, 2.5, 4.5), Traits{Height: 2, Width: 3, CenterX: 3, CenterY: 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTraits(tt.box)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got.Height, 0.0)
			assert.GreaterOrEqual(t, got.Width, 0.0)
		})
	}
}

func TestTraits_Area(t *testing.T) {
	assert.Equal(t, 200.0, ExtractTraits(Box(0, 0, 20, 10)).Area())
	assert.Equal(t, 0.0, ExtractTraits(Box(0, 0, 0, 10)).Area())
}

func TestExtractAll(t *testing.T) {
	t.Run("aligned by index", func(t *testing.T) {
		boxes := []BoundingBox{Box(0, 0, 10, 10), Box(0, 0, 20, 4)}
		traits, err := ExtractAll(boxes)
		require.NoError(t, err)
		require.Len(t, traits, 2)
		assert.Equal(t, 10.0, traits[0].Height)
		assert.Equal(t, 20.0, traits[1].Height)
		assert.Equal(t, 4.0, traits[1].Width)
	})

	t.Run("rejects non-finite coordinates", func(t *testing.T) {
		boxes := []BoundingBox{Box(0, 0, 10, 10), Box(0, math.NaN(), 10, 10)}
		_, err := ExtractAll(boxes)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidBox)
		assert.Contains(t, err.Error(), "box 1")
	})

	t.Run("rejects infinity", func(t *testing.T) {
		_, err := ExtractAll([]BoundingBox{Box(0, 0, math.Inf(1), 10)})
		assert.ErrorIs(t, err, ErrInvalidBox)
	})

	t.Run("rejects sizes that overflow", func(t *testing.T) {
		_, err := ExtractAll([]BoundingBox{Box(0, 0, 10, 10), Box(-1e308, 0, 1e308, 10)})
		assert.ErrorIs(t, err, ErrInvalidBox)
		assert.Contains(t, err.Error(), "box 1")

		// each side is finite but the area is not
		_, err = ExtractAll([]BoundingBox{Box(0, 0, 1e200, 1e200)})
		assert.ErrorIs(t, err, ErrInvalidBox)
	})
}

func TestBoundingBox_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want BoundingBox
	}{
		{"tuple", `[1, 2, 3, 4]`, Box(1, 2, 3, 4)},
		{"object", `{"top":1,"left":2,"bottom":3,"right":4}`, Box(1, 2, 3, 4)},
		{"object partial", `{"bottom":8}`, Box(0, 0, 8, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b BoundingBox
			require.NoError(t, json.Unmarshal([]byte(tt.json), &b))
			assert.Equal(t, tt.want, b)
		})
	}

	t.Run("tuple of wrong length", func(t *testing.T) {
		var b BoundingBox
		err := json.Unmarshal([]byte(`[1, 2, 3]`), &b)
		assert.ErrorIs(t, err, ErrInvalidBox)
	})

	t.Run("marshals as object", func(t *testing.T) {
		data, err := json.Marshal(Box(1, 2, 3, 4))
		require.NoError(t, err)
		assert.JSONEq(t, `{"top":1,"left":2,"bottom":3,"right":4}`, string(data))
	})
}
