package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaletteCoversEveryCategory(t *testing.T) {
	require.Len(t, TypeCategories, 18)
	seen := map[TypeCategory]bool{}
	for _, c := range TypeCategories {
		assert.False(t, seen[c], "duplicate category %s", c)
		seen[c] = true
		assert.Regexp(t, `^#[0-9A-F]{6}$`, c.Color(), "color for %s", c)
	}
}

func TestTypeOf(t *testing.T) {
	c, ok := TypeOf("Fire")
	assert.True(t, ok)
	assert.Equal(t, TypeFire, c)
	assert.Equal(t, "#EE8130", c.Color())

	c, ok = TypeOf("  PSYCHIC ")
	assert.True(t, ok)
	assert.Equal(t, TypePsychic, c)

	_, ok = TypeOf("Shadow")
	assert.False(t, ok)
}

func TestTags(t *testing.T) {
	tags := Tags([]string{"Grass", "Shadow", "Poison"})
	require.Len(t, tags, 3)

	assert.Equal(t, "Grass", tags[0].Label)
	assert.Equal(t, "#7AC74C", tags[0].Color())

	assert.Equal(t, "Shadow", tags[1].Label)
	assert.False(t, tags[1].Known)
	assert.Empty(t, tags[1].Color())
	assert.Empty(t, string(tags[1].Category))

	assert.Equal(t, TypePoison, tags[2].Category)
}

func TestDetailSummary(t *testing.T) {
	d := PokemonDetail{ID: "1", Name: "Bulbasaur", Number: "001", Image: "b.png", Types: []string{"Grass"}, MaxHP: 1071}
	assert.Equal(t, PokemonSummary{ID: "1", Name: "Bulbasaur", Number: "001", Image: "b.png", Types: []string{"Grass"}}, d.Summary())
}
