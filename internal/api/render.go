package api

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/meur/pokedex/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

func parsePages() *template.Template {
	return template.Must(template.New("").
		Funcs(template.FuncMap{"typeStyles": typeStyles}).
		ParseFS(templatesFS, "templates/*.html"))
}

// typeStyles is the stylesheet for the type palette, one class per category
func typeStyles() template.CSS {
	var b strings.Builder
	for _, c := range models.TypeCategories {
		fmt.Fprintf(&b, ".type-%s { color: %s; }\n", c, c.Color())
	}
	return template.CSS(b.String())
}
