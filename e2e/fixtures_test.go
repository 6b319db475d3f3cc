//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Drink is the subset of an API drink record the fixtures fill in
type Drink struct {
	ID           string  `json:"idDrink"`
	Name         string  `json:"strDrink"`
	Category     string  `json:"strCategory"`
	Alcoholic    string  `json:"strAlcoholic"`
	Glass        string  `json:"strGlass"`
	Instructions string  `json:"strInstructions"`
	Ingredient1  *string `json:"strIngredient1"`
	Measure1     *string `json:"strMeasure1"`
}

// APIOption is a function that configures the fake API server
type APIOption func(*apiOptions)

type apiOptions struct {
	drinks map[string][]Drink // lowercase query -> results
	status int
}

// WithDrinks makes the fake API answer query with drinks
func WithDrinks(query string, drinks ...Drink) APIOption {
	return func(opts *apiOptions) {
		opts.drinks[strings.ToLower(query)] = drinks
	}
}

// WithStatus makes every request fail with the given HTTP status
func WithStatus(code int) APIOption {
	return func(opts *apiOptions) {
		opts.status = code
	}
}

// FakeAPI is an httptest server standing in for TheCocktailDB
type FakeAPI struct {
	*httptest.Server

	mu      sync.Mutex
	queries []string
}

// Queries returns the search terms received so far
func (a *FakeAPI) Queries() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.queries...)
}

// NewDrink creates a drink fixture with one ingredient
func NewDrink(id, name, ingredient string) Drink {
	measure := "1 oz"
	return Drink{
		ID:           id,
		Name:         name,
		Category:     "Ordinary Drink",
		Alcoholic:    "Alcoholic",
		Glass:        "Cocktail glass",
		Instructions: fmt.Sprintf("Stir the %s with ice and strain.", ingredient),
		Ingredient1:  &ingredient,
		Measure1:     &measure,
	}
}

// CreateTestWorkspace creates a temporary directory for config and storage
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// StartAPI starts a fake API server that lives until the test ends
func (tf *TUITestFramework) StartAPI(options ...APIOption) *FakeAPI {
	opts := &apiOptions{drinks: map[string][]Drink{}}
	for _, opt := range options {
		opt(opts)
	}

	api := &FakeAPI{}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("s")
		api.mu.Lock()
		api.queries = append(api.queries, query)
		api.mu.Unlock()

		if r.URL.Path != "/search.php" {
			http.NotFound(w, r)
			return
		}
		if opts.status != 0 {
			w.WriteHeader(opts.status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		drinks, ok := opts.drinks[strings.ToLower(query)]
		if !ok {
			_, _ = w.Write([]byte(`{"drinks":null}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string][]Drink{"drinks": drinks})
	}))
	tf.t.Cleanup(api.Close)
	return api
}

// WriteConfig writes a config pointing at apiURL and returns its path
func (tf *TUITestFramework) WriteConfig(apiURL string, confirmQuit bool) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	configPath := filepath.Join(tf.workspace, "config.toml")
	content := fmt.Sprintf(`version = 1
api_base_url = %q
storage_path = %q
http_timeout = "5s"
log_file = %q
log_level = "debug"

[ui]
show_ingredients = true
confirm_quit = %t
`, apiURL, tf.StoragePath(), filepath.Join(tf.workspace, "cocktailgrip.log"), confirmQuit)

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return "", err
	}
	return configPath, nil
}

// StoragePath is where the app under test keeps its favorites
func (tf *TUITestFramework) StoragePath() string {
	return filepath.Join(tf.workspace, "storage.json")
}
