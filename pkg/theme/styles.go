package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles terminal views draw with.
type Styles struct {
	Variant string

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Info     lipgloss.Style
	Valid    lipgloss.Style

	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	TableAlt    lipgloss.Style
	TableBorder lipgloss.Style
	Box         lipgloss.Style
}

// NewStyles builds styles from resolved tokens.
func NewStyles(variant string, tokens map[string]string) Styles {
	color := func(key string) lipgloss.Color {
		return lipgloss.Color(tokens[key])
	}
	cell := lipgloss.NewStyle().Padding(0, 1).Foreground(color(TokenText))

	return Styles{
		Variant:     variant,
		Title:       lipgloss.NewStyle().Bold(true).Foreground(color(TokenAccent)),
		Subtitle:    lipgloss.NewStyle().Italic(true).Foreground(color(TokenMuted)),
		Label:       lipgloss.NewStyle().Bold(true).Foreground(color(TokenText)),
		Text:        lipgloss.NewStyle().Foreground(color(TokenText)),
		Muted:       lipgloss.NewStyle().Foreground(color(TokenMuted)),
		Error:       lipgloss.NewStyle().Foreground(color(TokenError)),
		Success:     lipgloss.NewStyle().Bold(true).Foreground(color(TokenSuccess)),
		Info:        lipgloss.NewStyle().Foreground(color(TokenInfo)),
		Valid:       lipgloss.NewStyle().Foreground(color(TokenValid)),
		TableHeader: cell.Bold(true).Foreground(color(TokenHeaderFG)).Background(color(TokenHeaderBG)),
		TableCell:   cell,
		TableAlt:    cell.Background(color(TokenRowAltBG)),
		TableBorder: lipgloss.NewStyle().Foreground(color(TokenBorder)),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(TokenBorder)).
			Padding(0, 1),
	}
}

// Load selects variant of the built-in theme and builds its styles.
func Load(variant string) (Styles, error) {
	selector, err := NewSelector(variant)
	if err != nil {
		return Styles{}, err
	}
	selection, err := selector.Select("", "")
	if err != nil {
		return Styles{}, err
	}
	return NewStyles(selection.Variant, selection.Tokens()), nil
}

// Plain returns unstyled styles, used when output is not a terminal and in
// tests.
func Plain() Styles {
	s := lipgloss.NewStyle()
	return Styles{
		Variant: Light, Title: s, Subtitle: s, Label: s, Text: s, Muted: s,
		Error: s, Success: s, Info: s, Valid: s,
		TableHeader: s.Padding(0, 1), TableCell: s.Padding(0, 1), TableAlt: s.Padding(0, 1),
		TableBorder: s, Box: s,
	}
}
