// Package search holds the search session state: the current query, its
// results, the in-flight flag and the last error.
package search

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cocktailgrip/internal/domain"
	"cocktailgrip/internal/eventbus"
)

// ErrorPrefix starts every user facing search error message
const ErrorPrefix = "Failed to fetch cocktails: "

// Fetcher performs the network lookup for a query.
// cocktaildb.Client satisfies it.
type Fetcher interface {
	Search(ctx context.Context, query string) ([]domain.Cocktail, error)
}

// Store is the search state container. All accessors are safe to call while
// Search runs on another goroutine.
//
// Overlapping Search calls are not sequenced: whichever response arrives
// last overwrites the results.
type Store struct {
	mu        sync.RWMutex
	query     string
	cocktails []domain.Cocktail
	loading   bool
	errMsg    string

	fetcher Fetcher
	bus     eventbus.EventBus // optional
	log     zerolog.Logger
}

// NewStore creates an idle store. bus may be nil.
func NewStore(fetcher Fetcher, bus eventbus.EventBus, log zerolog.Logger) *Store {
	return &Store{
		fetcher:   fetcher,
		bus:       bus,
		cocktails: []domain.Cocktail{},
		log:       log.With().Str("component", "search").Logger(),
	}
}

// SetQuery stores the query text verbatim
func (s *Store) SetQuery(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = text
}

// Query returns the current query text
func (s *Store) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Cocktails returns a copy of the current results
func (s *Store) Cocktails() []domain.Cocktail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneAll(s.cocktails)
}

// IsLoading reports whether a search request is in flight
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Error returns the last error message, or "" when there is none
func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// HasResults reports whether the result list is non-empty
func (s *Store) HasResults() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cocktails) > 0
}

// Search runs the current query against the fetcher.
//
// A blank query only clears the results. Otherwise the error and results
// are reset, loading is set for the duration of the single request, and the
// outcome replaces the results or sets the error message.
func (s *Store) Search(ctx context.Context) {
	s.mu.Lock()
	query := s.query
	if strings.TrimSpace(query) == "" {
		s.cocktails = []domain.Cocktail{}
		s.mu.Unlock()
		s.publish(eventbus.SearchClearedEvent{})
		return
	}
	s.errMsg = ""
	s.cocktails = []domain.Cocktail{}
	s.loading = true
	s.mu.Unlock()

	requestID := uuid.NewString()
	log := s.log.With().Str("request_id", requestID).Str("query", query).Logger()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	log.Info().Msg("search started")
	s.publish(eventbus.SearchStartedEvent{Query: query, RequestID: requestID})

	drinks, err := s.fetcher.Search(ctx, query)
	if err != nil {
		msg := ErrorPrefix + err.Error()
		log.Error().Err(err).Msg("search failed")

		s.mu.Lock()
		s.cocktails = []domain.Cocktail{}
		s.errMsg = msg
		s.loading = false
		s.mu.Unlock()

		s.publish(eventbus.SearchFailedEvent{Query: query, RequestID: requestID, Message: msg, Err: err})
		return
	}

	if drinks == nil {
		drinks = []domain.Cocktail{}
	}

	s.mu.Lock()
	s.cocktails = drinks
	s.loading = false
	s.mu.Unlock()

	log.Info().Int("count", len(drinks)).Msg("search completed")
	s.publish(eventbus.SearchCompletedEvent{Query: query, RequestID: requestID, Count: len(drinks)})
}

func (s *Store) publish(event eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(event)
	}
}
