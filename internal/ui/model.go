package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"cocktailgrip/internal/config"
	"cocktailgrip/internal/domain"
	"cocktailgrip/internal/eventbus"
	"cocktailgrip/internal/ui/state"
	"cocktailgrip/internal/ui/views"
)

// statusTTL is how long a transient status message stays visible
const statusTTL = 3 * time.Second

// chromeHeight is the number of lines around the result list
const chromeHeight = 12

// SearchState is the search container as seen by the UI
type SearchState interface {
	SetQuery(text string)
	Query() string
	Cocktails() []domain.Cocktail
	IsLoading() bool
	Error() string
	HasResults() bool
	Search(ctx context.Context)
}

// FavoritesState is the favorites container as seen by the UI
type FavoritesState interface {
	Favorites() []domain.Cocktail
	IsFavorite(id string) bool
	ToggleFavorite(c domain.Cocktail) bool
	Count() int
}

// Options tweak the model at construction
type Options struct {
	InitialQuery string // searched for on start when not blank
	ShowReady    bool   // print the e2e ready marker
}

// Model represents the UI state
type Model struct {
	ctx       context.Context
	config    *config.Config
	state     *state.AppState
	search    SearchState
	favorites FavoritesState
	pager     Pager
	log       zerolog.Logger

	width    int
	height   int
	input    textinput.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap
	renderer *views.Renderer

	statusSeq    int
	showReady    bool
	initialQuery string
}

// NewModel creates a new UI model. ctx bounds every search the UI starts.
func NewModel(ctx context.Context, cfg *config.Config, search SearchState, favorites FavoritesState, pager Pager, log zerolog.Logger, opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "margarita, negroni, mojito..."
	ti.Prompt = "" // Prompt is handled in the view
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:          ctx,
		config:       cfg,
		state:        state.NewAppState(),
		search:       search,
		favorites:    favorites,
		pager:        pager,
		log:          log.With().Str("component", "ui").Logger(),
		input:        ti,
		spinner:      sp,
		help:         help.New(),
		keys:         newKeyMap(),
		renderer:     views.NewRenderer(cfg.UISettings.ShowIngredients),
		showReady:    opts.ShowReady,
		initialQuery: opts.InitialQuery,
	}
	m.state.RowsPerItem = m.renderer.RowsPerItem()

	// Start with the query input focused unless we search right away
	if strings.TrimSpace(opts.InitialQuery) == "" {
		m.input.Focus()
	}
	return m
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if strings.TrimSpace(m.initialQuery) != "" {
		m.input.SetValue(m.initialQuery)
		m.search.SetQuery(m.initialQuery)
		cmds = append(cmds, m.startSearch())
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 16
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		if m.input.Focused() {
			return m.updateInput(msg)
		}
		return m.handleKey(msg)

	case searchDoneMsg:
		m.state.Searching = false
		m.state.SearchAttempts++
		m.clampScreen(state.ScreenSearch)
		return m, nil

	case spinner.TickMsg:
		if !m.isLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerDoneMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Str("cocktail", msg.name).Msg("failed to open recipe")
			return m, m.setStatus(fmt.Sprintf("Could not open recipe: %v", msg.err))
		}
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.state.StatusMessage = ""
		}
		return m, nil

	case EventMsg:
		return m, m.handleEvent(msg.Event)
	}

	// cursor blink and other input internals
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateInput handles keys while the query input has focus
func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Blur):
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.search.SetQuery(m.input.Value())
		m.input.Blur()
		m.state.SelectFirst()
		return m, m.startSearch()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.search.SetQuery(m.input.Value())
	return m, cmd
}

// handleKey handles keys in list navigation mode
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.Quit) {
		if m.config.UISettings.ConfirmQuit && !m.state.PendingQuit {
			m.state.PendingQuit = true
			m.state.StatusMessage = "Press q again to quit"
			return m, nil
		}
		return m, tea.Quit
	}
	if m.state.PendingQuit {
		m.state.PendingQuit = false
		m.state.StatusMessage = ""
	}

	count := len(m.items())
	switch {
	case key.Matches(msg, m.keys.Focus):
		m.state.Screen = state.ScreenSearch
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Tab):
		m.state.NextScreen()
		m.state.Clamp(len(m.items()))

	case key.Matches(msg, m.keys.Up):
		m.state.MoveSelection(-1, count)

	case key.Matches(msg, m.keys.Down):
		m.state.MoveSelection(1, count)

	case key.Matches(msg, m.keys.Top):
		m.state.SelectFirst()

	case key.Matches(msg, m.keys.Bottom):
		m.state.SelectLast(count)

	case key.Matches(msg, m.keys.Favorite):
		c, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		added := m.favorites.ToggleFavorite(c)
		m.clampScreen(state.ScreenFavorites)
		if added {
			return m, m.setStatus(fmt.Sprintf("Added %s to favorites", c.Name))
		}
		return m, m.setStatus(fmt.Sprintf("Removed %s from favorites", c.Name))

	case key.Matches(msg, m.keys.Open):
		c, ok := m.selectedItem()
		if !ok || m.pager == nil {
			return m, nil
		}
		return m, openRecipeCmd(m.pager, c)

	case key.Matches(msg, m.keys.Refresh):
		if m.state.Screen == state.ScreenSearch {
			return m, m.startSearch()
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.state.ShowHelp = m.help.ShowAll
		m.updateViewportHeight()
	}

	return m, nil
}

// handleEvent reacts to bus events forwarded by main
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ErrorEvent:
		return m.setStatus(e.Message)
	case eventbus.FavoritesChangedEvent:
		m.clampScreen(state.ScreenFavorites)
	case eventbus.FavoritesLoadedEvent:
		if e.Malformed {
			return m.setStatus("Stored favorites could not be read and were reset")
		}
	}
	// other events only need a re-render
	return nil
}

// startSearch runs the current query in the background.
// A blank query clears the results without leaving the update loop.
func (m *Model) startSearch() tea.Cmd {
	query := m.search.Query()
	if strings.TrimSpace(query) == "" {
		m.search.Search(m.ctx)
		m.clampScreen(state.ScreenSearch)
		return nil
	}

	m.state.Searching = true
	m.state.StatusMessage = ""
	search, ctx := m.search, m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		search.Search(ctx)
		return searchDoneMsg{query: query}
	})
}

func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusSeq++
	seq := m.statusSeq
	m.state.StatusMessage = msg
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m *Model) isLoading() bool {
	return m.state.Searching || m.search.IsLoading()
}

// items returns the list shown on the current screen
func (m *Model) items() []domain.Cocktail {
	if m.state.Screen == state.ScreenFavorites {
		return m.favorites.Favorites()
	}
	return m.search.Cocktails()
}

func (m *Model) selectedItem() (domain.Cocktail, bool) {
	items := m.items()
	i := m.state.Selected()
	if i < 0 || i >= len(items) {
		return domain.Cocktail{}, false
	}
	return items[i], true
}

// clampScreen re-validates the cursor of screen after its list changed
func (m *Model) clampScreen(screen state.Screen) {
	current := m.state.Screen
	m.state.Screen = screen
	m.state.Clamp(len(m.items()))
	m.state.Screen = current
}

func (m *Model) updateViewportHeight() {
	h := m.height - chromeHeight
	if m.help.ShowAll {
		h -= 4
	}
	if h < 1 {
		h = 1
	}
	m.state.ViewportHeight = h
	m.state.Clamp(len(m.items()))
}

// View renders the UI
func (m *Model) View() string {
	helpView := m.help.View(m.keys)
	if m.input.Focused() {
		helpView = m.help.View(inputKeyMap{keys: m.keys})
	}

	return m.renderer.Render(views.ViewState{
		Width:          m.width,
		Screen:         m.state.Screen.String(),
		FavoritesCount: m.favorites.Count(),
		InputView:      m.input.View(),
		InputFocused:   m.input.Focused(),
		Items:          m.items(),
		IsFavorite:     m.favorites.IsFavorite,
		SelectedIndex:  m.state.Selected(),
		ViewportOffset: m.state.Offset(),
		VisibleItems:   m.state.VisibleItems(),
		Loading:        m.isLoading(),
		SpinnerView:    m.spinner.View(),
		Query:          m.search.Query(),
		Error:          m.search.Error(),
		SearchAttempts: m.state.SearchAttempts,
		StatusMessage:  m.state.StatusMessage,
		HelpView:       helpView,
		ShowReady:      m.showReady,
	})
}

// E2EMode reports whether the process runs under the e2e harness
func E2EMode() bool {
	return os.Getenv("COCKTAILGRIP_E2E_TEST") == "1"
}
