package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/models"
	"github.com/meur/pokedex/internal/pokeapi"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7D02C"))
	locationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C89A3"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F95587"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	overlayStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7C89A3")).
			Padding(0, 1)
)

// View renders the model
func (m *Model) View() string {
	if m.list.Overlay().Visible() {
		return m.header() + "\n\n" + m.overlayView() + "\n" + helpStyle.Render("esc close • q quit")
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.list.Loading() {
		b.WriteString(m.spinner.View() + " Loading...\n")
	}
	if err := m.list.Err(); err != nil {
		b.WriteString(errorStyle.Render("Could not load the Pokédex: "+pokeapi.Class(err)) + "\n")
	}

	visible := m.list.Visible()
	from, to := m.window(len(visible))
	for i := from; i < to; i++ {
		b.WriteString(renderCard(visible[i], i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("/ search • ↑/↓ move • enter open • q quit"))
	return b.String()
}

func (m *Model) header() string {
	return titleStyle.Render("Pokédex") + "  " + locationStyle.Render(m.list.Location())
}

// window returns the slice of rows that fits under the header and search box
func (m *Model) window(n int) (int, int) {
	rows := m.height - 6
	if rows < 1 {
		rows = 1
	}
	from := 0
	if m.cursor >= rows {
		from = m.cursor - rows + 1
	}
	to := from + rows
	if to > n {
		to = n
	}
	return from, to
}

func renderCard(p models.PokemonSummary, selected bool) string {
	row := fmt.Sprintf("#%-4s %-14s", p.Number, p.Name)
	if selected {
		row = selectedStyle.Render(row)
	}
	return row + " " + renderTags(models.Tags(p.Types))
}

func renderTags(tags []models.Tag) string {
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		style := lipgloss.NewStyle()
		if t.Known {
			style = style.Foreground(lipgloss.Color(t.Color()))
		}
		parts = append(parts, style.Render(t.Label))
	}
	return strings.Join(parts, " ")
}

func (m *Model) overlayView() string {
	o := m.list.Overlay()
	var body string
	switch o.State() {
	case catalog.OverlayLoading:
		body = m.spinner.View()
	case catalog.OverlayFailed:
		body = errorStyle.Render(failureText(o.Err(), o.ID()))
	case catalog.OverlayDisplaying:
		d := o.Detail()
		lines := []string{
			titleStyle.Render(d.Name),
			"Pokémon # " + d.Number,
			d.Classification,
			fmt.Sprintf("Weight: %s - %s", d.Weight.Minimum, d.Weight.Maximum),
			fmt.Sprintf("Height: %s - %s", d.Height.Minimum, d.Height.Maximum),
			"",
			"Type        " + renderTags(models.Tags(d.Types)),
			"Resistant   " + renderTags(models.Tags(d.Resistant)),
			"Weaknesses  " + renderTags(models.Tags(d.Weaknesses)),
			"",
			fmt.Sprintf("Flee Rate: %v", d.FleeRate),
			fmt.Sprintf("Max CP: %d", d.MaxCP),
			fmt.Sprintf("Max HP: %d", d.MaxHP),
		}
		body = strings.Join(lines, "\n")
	}
	return overlayStyle.Render(body)
}

func failureText(err error, id string) string {
	if errors.Is(err, catalog.ErrRecordMismatch) {
		return "The Pokédex sent a response that could not be read"
	}
	switch pokeapi.Class(err) {
	case "not-found":
		return fmt.Sprintf("No Pokémon found with id %q", id)
	case "malformed-response":
		return "The Pokédex sent a response that could not be read"
	}
	return "The Pokédex could not be reached"
}
