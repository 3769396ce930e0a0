package models

import "strings"

// TypeCategory is one of the canonical elemental types
type TypeCategory string

const (
	TypeNormal   TypeCategory = "normal"
	TypeFire     TypeCategory = "fire"
	TypeWater    TypeCategory = "water"
	TypeElectric TypeCategory = "electric"
	TypeGrass    TypeCategory = "grass"
	TypeIce      TypeCategory = "ice"
	TypeFighting TypeCategory = "fighting"
	TypePoison   TypeCategory = "poison"
	TypeGround   TypeCategory = "ground"
	TypeFlying   TypeCategory = "flying"
	TypePsychic  TypeCategory = "psychic"
	TypeBug      TypeCategory = "bug"
	TypeRock     TypeCategory = "rock"
	TypeGhost    TypeCategory = "ghost"
	TypeDragon   TypeCategory = "dragon"
	TypeDark     TypeCategory = "dark"
	TypeSteel    TypeCategory = "steel"
	TypeFairy    TypeCategory = "fairy"
)

// TypeCategories lists every known category in palette order
var TypeCategories = []TypeCategory{
	TypeNormal, TypeFire, TypeWater, TypeElectric, TypeGrass, TypeIce,
	TypeFighting, TypePoison, TypeGround, TypeFlying, TypePsychic, TypeBug,
	TypeRock, TypeGhost, TypeDragon, TypeDark, TypeSteel, TypeFairy,
}

var typeColors = map[TypeCategory]string{
	TypeNormal:   "#A8A77A",
	TypeFire:     "#EE8130",
	TypeWater:    "#6390F0",
	TypeElectric: "#F7D02C",
	TypeGrass:    "#7AC74C",
	TypeIce:      "#96D9D6",
	TypeFighting: "#C22E28",
	TypePoison:   "#A33EA1",
	TypeGround:   "#E2BF65",
	TypeFlying:   "#A98FF3",
	TypePsychic:  "#F95587",
	TypeBug:      "#A6B91A",
	TypeRock:     "#B6A136",
	TypeGhost:    "#735797",
	TypeDragon:   "#6F35FC",
	TypeDark:     "#705746",
	TypeSteel:    "#B7B7CE",
	TypeFairy:    "#D685AD",
}

// Color returns the accent color for the category
func (c TypeCategory) Color() string {
	return typeColors[c]
}

// TypeOf resolves a type label case-insensitively
func TypeOf(label string) (TypeCategory, bool) {
	c := TypeCategory(strings.ToLower(strings.TrimSpace(label)))
	_, ok := typeColors[c]
	return c, ok
}

// Tag is a type label prepared for rendering.
// Unknown labels keep Known false and carry no category.
type Tag struct {
	Label    string
	Category TypeCategory
	Known    bool
}

// Color returns the accent color, or "" for unknown labels
func (t Tag) Color() string {
	if !t.Known {
		return ""
	}
	return t.Category.Color()
}

// Tags converts labels to tags, keeping their order
func Tags(labels []string) []Tag {
	tags := make([]Tag, 0, len(labels))
	for _, label := range labels {
		c, ok := TypeOf(label)
		if !ok {
			c = ""
		}
		tags = append(tags, Tag{Label: label, Category: c, Known: ok})
	}
	return tags
}
