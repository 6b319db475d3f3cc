package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cocktailgrip/internal/domain"
)

const favoriteMark = "★"

// CocktailRenderer handles rendering of cocktail list items
type CocktailRenderer struct {
	styles          *Styles
	showIngredients bool
}

// NewCocktailRenderer creates a new cocktail renderer
func NewCocktailRenderer(styles *Styles, showIngredients bool) *CocktailRenderer {
	return &CocktailRenderer{
		styles:          styles,
		showIngredients: showIngredients,
	}
}

// RowsPerItem returns how many lines RenderCocktail produces per item
func (r *CocktailRenderer) RowsPerItem() int {
	if r.showIngredients {
		return 2
	}
	return 1
}

// RenderCocktail renders one list item. width 0 disables truncation.
func (r *CocktailRenderer) RenderCocktail(c domain.Cocktail, isSelected, isFavorite bool, width int) string {
	cursor := "  "
	if isSelected {
		cursor = "> "
	}

	mark := " "
	if isFavorite {
		mark = r.styles.Favorite.Render(favoriteMark)
	}

	alcoholic := domain.Deref(c.Alcoholic)
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(AlcoholColor(alcoholic))).Render("●")

	nameStyle := r.styles.Name
	metaStyle := r.styles.Meta
	if isSelected {
		nameStyle = nameStyle.Inherit(r.styles.SelectionBg)
		metaStyle = metaStyle.Inherit(r.styles.SelectionBg)
	}

	line := cursor + mark + " " + dot + " " + nameStyle.Render(c.Name)
	if meta := Meta(c); meta != "" {
		line += metaStyle.Render("  " + meta)
	}
	line = truncate(line, width)

	if !r.showIngredients {
		return line
	}

	var names []string
	for _, ing := range c.Ingredients() {
		names = append(names, ing.Name)
	}
	second := "      " + r.styles.Ingredients.Render(strings.Join(names, ", "))
	return line + "\n" + truncate(second, width)
}

// Meta returns the "category · glass" summary of a cocktail
func Meta(c domain.Cocktail) string {
	var parts []string
	for _, p := range []*string{c.Category, c.Glass} {
		if v := strings.TrimSpace(domain.Deref(p)); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " · ")
}

// RecipeText renders the full recipe as plain text for the pager
func RecipeText(c domain.Cocktail) string {
	var b strings.Builder

	b.WriteString(c.Name + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(c.Name))) + "\n\n")

	field := func(label string, v *string) {
		if s := strings.TrimSpace(domain.Deref(v)); s != "" {
			fmt.Fprintf(&b, "%-10s %s\n", label+":", s)
		}
	}
	fmt.Fprintf(&b, "%-10s %s\n", "ID:", c.ID)
	field("Category", c.Category)
	field("Type", c.Alcoholic)
	field("Glass", c.Glass)
	field("IBA", c.IBA)
	if tags := c.TagList(); len(tags) > 0 {
		fmt.Fprintf(&b, "%-10s %s\n", "Tags:", strings.Join(tags, ", "))
	}

	if ings := c.Ingredients(); len(ings) > 0 {
		b.WriteString("\nIngredients\n-----------\n")
		for _, ing := range ings {
			if ing.Measure != "" {
				fmt.Fprintf(&b, "  - %s %s\n", ing.Measure, ing.Name)
			} else {
				fmt.Fprintf(&b, "  - %s\n", ing.Name)
			}
		}
	}

	b.WriteString("\nInstructions\n------------\n")
	if ins := strings.TrimSpace(domain.Deref(c.Instructions)); ins != "" {
		b.WriteString(ins + "\n")
	} else {
		b.WriteString("No instructions available.\n")
	}

	translations := []struct {
		lang string
		text *string
	}{
		{"ES", c.InstructionsES}, {"DE", c.InstructionsDE}, {"FR", c.InstructionsFR},
		{"IT", c.InstructionsIT}, {"ZH-HANS", c.InstructionsZHHans}, {"ZH-HANT", c.InstructionsZHHant},
	}
	for _, tr := range translations {
		if s := strings.TrimSpace(domain.Deref(tr.text)); s != "" {
			fmt.Fprintf(&b, "\n[%s] %s\n", tr.lang, s)
		}
	}

	if thumb := strings.TrimSpace(c.Thumb); thumb != "" {
		fmt.Fprintf(&b, "\nImage: %s\n", thumb)
	}
	if attr := strings.TrimSpace(domain.Deref(c.ImageAttribution)); attr != "" {
		fmt.Fprintf(&b, "Image attribution: %s\n", attr)
	}

	return b.String()
}

// truncate cuts a styled line to width visible cells
func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
