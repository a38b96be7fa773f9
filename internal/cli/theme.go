package cli

import "github.com/charmbracelet/lipgloss"

// Theme holds the color scheme for chat output.
type Theme struct {
	Title lipgloss.Color
	User  lipgloss.Color
	Bot   lipgloss.Color
	Price lipgloss.Color
	Error lipgloss.Color
	Hint  lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Title: lipgloss.Color("#5FAFD7"), // light blue
	User:  lipgloss.Color("#00AFFF"), // blue
	Bot:   lipgloss.Color("#D7D7D7"), // light gray
	Price: lipgloss.Color("#00D787"), // green
	Error: lipgloss.Color("#FF005F"), // red
	Hint:  lipgloss.Color("#6C6C6C"), // dim gray
}

// Style functions for dynamic theming
func (t Theme) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Title).Bold(true)
}

func (t Theme) userStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.User).Bold(true)
}

func (t Theme) botStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Bot)
}

func (t Theme) priceStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Price).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}
