package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchStarted    EventType = "SearchStarted"
	EventSearchCompleted  EventType = "SearchCompleted"
	EventSearchFailed     EventType = "SearchFailed"
	EventSearchCleared    EventType = "SearchCleared"
	EventFavoritesLoaded  EventType = "FavoritesLoaded"
	EventFavoritesChanged EventType = "FavoritesChanged"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchStartedEvent is emitted when a search request is about to be issued
type SearchStartedEvent struct {
	Query     string
	RequestID string
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchCompletedEvent is emitted when a search finished successfully.
// Count is zero when the API reported no matches.
type SearchCompletedEvent struct {
	Query     string
	RequestID string
	Count     int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when a search failed for any reason
type SearchFailedEvent struct {
	Query     string
	RequestID string
	Message   string // user facing message
	Err       error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// SearchClearedEvent is emitted when a blank query cleared the results
type SearchClearedEvent struct{}

func (e SearchClearedEvent) Type() EventType { return EventSearchCleared }

// FavoritesLoadedEvent is emitted once the favorites were read from storage
type FavoritesLoadedEvent struct {
	Count     int
	Malformed bool // stored value could not be parsed and was ignored
}

func (e FavoritesLoadedEvent) Type() EventType { return EventFavoritesLoaded }

// FavoritesChangedEvent is emitted after every favorites mutation
type FavoritesChangedEvent struct {
	ID    string // id of the toggled cocktail
	Added bool
	Count int
}

func (e FavoritesChangedEvent) Type() EventType { return EventFavoritesChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
