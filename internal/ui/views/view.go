package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cocktailgrip/internal/domain"
)

// ReadyMarker is printed in every frame when running under the e2e harness
const ReadyMarker = "__READY__"

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Screen         string // "Search" or "Favorites"
	FavoritesCount int
	InputView      string // rendered query input
	InputFocused   bool
	Items          []domain.Cocktail
	IsFavorite     func(id string) bool
	SelectedIndex  int
	ViewportOffset int
	VisibleItems   int
	Loading        bool
	SpinnerView    string
	Query          string
	Error          string
	SearchAttempts int
	StatusMessage  string
	HelpView       string
	ShowReady      bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles         *Styles
	cocktailRender *CocktailRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showIngredients bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:         styles,
		cocktailRender: NewCocktailRenderer(styles, showIngredients),
	}
}

// RowsPerItem returns the number of lines used by one list item
func (r *Renderer) RowsPerItem() int {
	return r.cocktailRender.RowsPerItem()
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	if state.ShowReady {
		content.WriteString(ReadyMarker + "\n")
	}

	content.WriteString(r.renderTitle(state) + "\n\n")

	if state.Screen == "Search" {
		prompt := r.styles.Prompt.Render("Search: ")
		if !state.InputFocused {
			prompt = r.styles.Dim.Render("Search: ")
		}
		content.WriteString(prompt + state.InputView + "\n\n")
	}

	content.WriteString(r.renderList(state))
	content.WriteString(r.renderStatus(state))

	if state.HelpView != "" {
		content.WriteString("\n" + r.styles.Help.Render(state.HelpView))
	}

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("🍸 cocktailgrip")

	searchTab := r.styles.TabInactive.Render("Search")
	favTab := r.styles.TabInactive.Render(fmt.Sprintf("Favorites (%d)", state.FavoritesCount))
	if state.Screen == "Favorites" {
		favTab = r.styles.TabActive.Render(fmt.Sprintf("Favorites (%d)", state.FavoritesCount))
	} else {
		searchTab = r.styles.TabActive.Render("Search")
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, searchTab, " ", favTab)

	if state.Width <= 0 {
		return logo + "  " + tabs
	}
	// right-align the tabs inside the padded main area
	gap := state.Width - 4 - lipgloss.Width(logo) - lipgloss.Width(tabs)
	if gap < 2 {
		gap = 2
	}
	return logo + strings.Repeat(" ", gap) + tabs
}

func (r *Renderer) renderList(state ViewState) string {
	if len(state.Items) == 0 {
		return r.styles.Dim.Render(r.emptyText(state)) + "\n"
	}

	b := &strings.Builder{}
	end := state.ViewportOffset + state.VisibleItems
	if end > len(state.Items) {
		end = len(state.Items)
	}
	width := state.Width - 4
	for i := state.ViewportOffset; i < end; i++ {
		c := state.Items[i]
		fav := state.IsFavorite != nil && state.IsFavorite(c.ID)
		b.WriteString(r.cocktailRender.RenderCocktail(c, i == state.SelectedIndex, fav, width))
		b.WriteString("\n")
	}

	if state.ViewportOffset > 0 || end < len(state.Items) {
		b.WriteString(r.styles.Scroll.Render(
			fmt.Sprintf("  %d-%d of %d", state.ViewportOffset+1, end, len(state.Items))) + "\n")
	}
	return b.String()
}

func (r *Renderer) emptyText(state ViewState) string {
	if state.Screen == "Favorites" {
		return "No favorites yet. Press f on a search result to add one."
	}
	switch {
	case state.Loading:
		return ""
	case state.Error != "":
		return ""
	case state.SearchAttempts > 0 && strings.TrimSpace(state.Query) != "":
		return fmt.Sprintf("No cocktails found for %q.", state.Query)
	default:
		return "Type a cocktail name and press enter."
	}
}

func (r *Renderer) renderStatus(state ViewState) string {
	var line string
	switch {
	case state.Screen == "Search" && state.Loading:
		line = r.styles.StatusLoading.Render(fmt.Sprintf("%s Searching for %q...", state.SpinnerView, state.Query))
	case state.Screen == "Search" && state.Error != "":
		line = r.styles.StatusError.Render(state.Error)
	case state.StatusMessage != "":
		line = r.styles.StatusSuccess.Render(state.StatusMessage)
	case state.Screen == "Search" && len(state.Items) > 0:
		line = r.styles.Status.UnsetMarginTop().Render(fmt.Sprintf("%d results", len(state.Items)))
	}
	if line == "" {
		return ""
	}
	return "\n" + line + "\n"
}
