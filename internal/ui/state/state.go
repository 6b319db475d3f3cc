package state

// Screen identifies which list the UI is showing
type Screen int

const (
	ScreenSearch Screen = iota
	ScreenFavorites
)

// String returns the tab label of the screen
func (s Screen) String() string {
	switch s {
	case ScreenFavorites:
		return "Favorites"
	default:
		return "Search"
	}
}

// AppState contains the UI-only state. Domain data lives in the search and
// favorites stores and is read from them on every render.
type AppState struct {
	Screen Screen

	// Selection state, one cursor per screen
	SelectedIndex map[Screen]int

	// UI state
	ViewportOffset map[Screen]int // first visible item per screen
	ViewportHeight int            // rows available for the list
	RowsPerItem    int            // rendered lines per list item
	ShowHelp       bool
	StatusMessage  string // transient status bar message
	PendingQuit    bool   // first quit key pressed with confirm_quit on

	// Search state as seen by the UI
	Searching      bool // a search command is in flight
	SearchAttempts int  // completed searches, used for the "no results" hint
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Screen:         ScreenSearch,
		SelectedIndex:  map[Screen]int{ScreenSearch: 0, ScreenFavorites: 0},
		ViewportOffset: map[Screen]int{ScreenSearch: 0, ScreenFavorites: 0},
		ViewportHeight: 20, // Default
		RowsPerItem:    1,
	}
}

// NextScreen cycles between the search and favorites screens
func (s *AppState) NextScreen() {
	if s.Screen == ScreenSearch {
		s.Screen = ScreenFavorites
	} else {
		s.Screen = ScreenSearch
	}
}

// Selected returns the cursor of the current screen
func (s *AppState) Selected() int {
	return s.SelectedIndex[s.Screen]
}

// Offset returns the viewport offset of the current screen
func (s *AppState) Offset() int {
	return s.ViewportOffset[s.Screen]
}

// MoveSelection moves the cursor by delta and clamps it to [0, count)
func (s *AppState) MoveSelection(delta, count int) {
	s.SelectedIndex[s.Screen] = s.Selected() + delta
	s.Clamp(count)
}

// SelectFirst puts the cursor of the current screen on the first item
func (s *AppState) SelectFirst() {
	s.SelectedIndex[s.Screen] = 0
	s.ViewportOffset[s.Screen] = 0
}

// SelectLast puts the cursor on the last of count items
func (s *AppState) SelectLast(count int) {
	s.SelectedIndex[s.Screen] = count - 1
	s.Clamp(count)
}

// Clamp keeps the cursor and viewport valid for a list of count items.
// Lists shrink when results are replaced or a favorite is removed.
func (s *AppState) Clamp(count int) {
	sel := s.Selected()
	if sel >= count {
		sel = count - 1
	}
	if sel < 0 {
		sel = 0
	}
	s.SelectedIndex[s.Screen] = sel

	visible := s.VisibleItems()
	offset := s.Offset()
	if sel < offset {
		offset = sel
	}
	if sel >= offset+visible {
		offset = sel - visible + 1
	}
	if maxOffset := count - visible; offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	s.ViewportOffset[s.Screen] = offset
}

// VisibleItems returns how many list items fit in the viewport
func (s *AppState) VisibleItems() int {
	rows := s.RowsPerItem
	if rows < 1 {
		rows = 1
	}
	n := s.ViewportHeight / rows
	if n < 1 {
		n = 1
	}
	return n
}
