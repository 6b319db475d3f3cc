package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"cocktailgrip/internal/domain"
)

func margarita() domain.Cocktail {
	return domain.Cocktail{
		ID:             "11007",
		Name:           "Margarita",
		Category:       domain.StringPtr("Ordinary Drink"),
		Alcoholic:      domain.StringPtr("Alcoholic"),
		Glass:          domain.StringPtr("Cocktail glass"),
		Tags:           domain.StringPtr("IBA,ContemporaryClassic"),
		Instructions:   domain.StringPtr("Rub the rim of the glass with the lime slice."),
		InstructionsDE: domain.StringPtr("Reiben Sie den Rand des Glases."),
		Ingredient1:    domain.StringPtr("Tequila"),
		Measure1:       domain.StringPtr("1 1/2 oz"),
		Ingredient2:    domain.StringPtr("Triple sec"),
		Ingredient3:    domain.StringPtr(""),
		Thumb:          "https://www.thecocktaildb.com/images/media/drink/5noda61589575158.jpg",
	}
}

func TestMeta(t *testing.T) {
	assert.Equal(t, "Ordinary Drink · Cocktail glass", Meta(margarita()))
	assert.Equal(t, "", Meta(domain.Cocktail{ID: "1"}))
}

func TestRecipeText(t *testing.T) {
	text := RecipeText(margarita())

	assert.True(t, strings.HasPrefix(text, "Margarita\n=========\n"))
	assert.Contains(t, text, "Glass:     Cocktail glass")
	assert.Contains(t, text, "Tags:      IBA, ContemporaryClassic")
	assert.Contains(t, text, "  - 1 1/2 oz Tequila\n")
	assert.Contains(t, text, "  - Triple sec\n")
	assert.Contains(t, text, "Rub the rim of the glass")
	assert.Contains(t, text, "[DE] Reiben Sie")
	assert.Contains(t, text, "Image: https://")
	assert.NotContains(t, text, "IBA:")
}

func TestRecipeTextWithoutInstructions(t *testing.T) {
	text := RecipeText(domain.Cocktail{ID: "1", Name: "Mystery"})
	assert.Contains(t, text, "No instructions available.")
	assert.NotContains(t, text, "Ingredients")
}

func TestRenderCocktailMarksFavoriteAndSelection(t *testing.T) {
	r := NewCocktailRenderer(NewStyles(), true)
	assert.Equal(t, 2, r.RowsPerItem())

	out := r.RenderCocktail(margarita(), true, true, 0)
	assert.Contains(t, out, "> ")
	assert.Contains(t, out, favoriteMark)
	assert.Contains(t, out, "Margarita")
	assert.Contains(t, out, "Tequila, Triple sec")

	plain := NewCocktailRenderer(NewStyles(), false)
	assert.Equal(t, 1, plain.RowsPerItem())
	out = plain.RenderCocktail(margarita(), false, false, 0)
	assert.NotContains(t, out, favoriteMark)
	assert.NotContains(t, out, "\n")
}

func TestRenderEmptyStates(t *testing.T) {
	r := NewRenderer(false)

	out := r.Render(ViewState{Screen: "Search"})
	assert.Contains(t, out, "Type a cocktail name")

	out = r.Render(ViewState{Screen: "Search", Query: "zzzznomatch", SearchAttempts: 1})
	assert.Contains(t, out, `No cocktails found for "zzzznomatch"`)

	out = r.Render(ViewState{Screen: "Favorites"})
	assert.Contains(t, out, "No favorites yet")
}

func TestRenderStatusLine(t *testing.T) {
	r := NewRenderer(false)

	out := r.Render(ViewState{Screen: "Search", Loading: true, Query: "margarita", SpinnerView: "*"})
	assert.Contains(t, out, `Searching for "margarita"`)

	out = r.Render(ViewState{Screen: "Search", Error: "Failed to fetch cocktails: offline"})
	assert.Contains(t, out, "Failed to fetch cocktails: offline")

	out = r.Render(ViewState{
		Screen:       "Search",
		Items:        []domain.Cocktail{margarita(), {ID: "2", Name: "Blue Margarita"}},
		VisibleItems: 10,
	})
	assert.Contains(t, out, "2 results")
	assert.Contains(t, out, "Blue Margarita")
}

func TestRenderViewportWindow(t *testing.T) {
	r := NewRenderer(false)
	items := make([]domain.Cocktail, 0, 5)
	for _, n := range []string{"A1", "B2", "C3", "D4", "E5"} {
		items = append(items, domain.Cocktail{ID: n, Name: "Drink" + n})
	}

	out := r.Render(ViewState{
		Screen:         "Favorites",
		Items:          items,
		SelectedIndex:  2,
		ViewportOffset: 1,
		VisibleItems:   2,
	})
	assert.NotContains(t, out, "DrinkA1")
	assert.Contains(t, out, "DrinkB2")
	assert.Contains(t, out, "DrinkC3")
	assert.NotContains(t, out, "DrinkD4")
	assert.Contains(t, out, "2-3 of 5")
}

func TestRenderReadyMarker(t *testing.T) {
	r := NewRenderer(false)
	assert.Contains(t, r.Render(ViewState{Screen: "Search", ShowReady: true}), ReadyMarker)
	assert.NotContains(t, r.Render(ViewState{Screen: "Search"}), ReadyMarker)
}
