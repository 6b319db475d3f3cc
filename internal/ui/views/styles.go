package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	Prompt        lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Name          lipgloss.Style
	Meta          lipgloss.Style
	Ingredients   lipgloss.Style
	Favorite      lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	SelectionBg   lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1),
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Dim:    lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Name:          lipgloss.NewStyle().Bold(true),
		Meta:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Ingredients:   lipgloss.NewStyle().Foreground(lipgloss.Color("109")),
		Favorite:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
	}
}

// AlcoholColor returns the color used for the alcoholic marker of a drink
func AlcoholColor(alcoholic string) string {
	switch alcoholic {
	case "Alcoholic":
		return "203" // red
	case "Non alcoholic":
		return "78" // green
	case "Optional alcohol":
		return "214" // yellow
	default:
		return "241" // gray, unknown
	}
}
