// Package favorites holds the user's favorited cocktails and keeps them in
// durable storage.
package favorites

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"cocktailgrip/internal/domain"
	"cocktailgrip/internal/eventbus"
	"cocktailgrip/internal/storage"
)

// StorageKey is the storage slot holding the serialized favorites list
const StorageKey = "favoriteCocktails"

// Observer is called with a snapshot of the collection after every mutation
type Observer func(favorites []domain.Cocktail)

type observerEntry struct {
	id uint64
	fn Observer
}

// Store is the favorites state container: an ordered list of cocktails,
// unique by ID.
type Store struct {
	mu        sync.RWMutex
	favorites []domain.Cocktail

	obsMu     sync.Mutex
	observers []observerEntry
	nextObsID uint64

	kv  storage.KeyValueStore
	bus eventbus.EventBus // optional
	log zerolog.Logger
}

// New loads the favorites from kv and registers the persistence observer.
// A missing slot starts an empty list. A slot that does not parse as a list
// of cocktails is ignored with a warning and also starts an empty list; it
// is overwritten by the next mutation.
func New(kv storage.KeyValueStore, bus eventbus.EventBus, log zerolog.Logger) *Store {
	s := &Store{
		kv:        kv,
		bus:       bus,
		favorites: []domain.Cocktail{},
		log:       log.With().Str("component", "favorites").Logger(),
	}

	loaded, err := load(kv)
	malformed := false
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.log.Debug().Msg("no stored favorites")
	case err != nil:
		malformed = errors.Is(err, domain.ErrMalformedStore)
		s.log.Warn().Err(err).Msg("ignoring stored favorites")
	default:
		s.favorites = loaded
		s.log.Info().Int("count", len(loaded)).Msg("favorites loaded")
	}

	if r, ok := kv.(storage.Recoverer); ok && r.Recovered() {
		malformed = true
		s.log.Warn().Msg("storage was reset, favorites start empty")
	}

	s.Subscribe(s.persist)
	s.publish(eventbus.FavoritesLoadedEvent{Count: len(s.favorites), Malformed: malformed})
	return s
}

func load(kv storage.KeyValueStore) ([]domain.Cocktail, error) {
	raw, err := kv.GetItem(StorageKey)
	if err != nil {
		return nil, err
	}

	var list []domain.Cocktail
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedStore, err)
	}
	if list == nil {
		// "null" is stored by nobody but parses fine
		list = []domain.Cocktail{}
	}
	return dedupe(list), nil
}

// dedupe keeps the first occurrence of every ID
func dedupe(list []domain.Cocktail) []domain.Cocktail {
	seen := make(map[string]struct{}, len(list))
	out := make([]domain.Cocktail, 0, len(list))
	for _, c := range list {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Favorites returns a copy of the collection in insertion order
func (s *Store) Favorites() []domain.Cocktail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Count returns the number of favorites
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.favorites)
}

// IsFavorite reports whether a cocktail with id is in the collection
func (s *Store) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

// ToggleFavorite appends c when no favorite has its ID, otherwise removes
// the favorite with that ID. It reports whether c was added. Observers have
// run by the time it returns.
func (s *Store) ToggleFavorite(c domain.Cocktail) bool {
	s.mu.Lock()
	added := false
	if i := s.indexOf(c.ID); i < 0 {
		s.favorites = append(s.favorites, c.Clone())
		added = true
	} else {
		s.favorites = append(s.favorites[:i:i], s.favorites[i+1:]...)
	}
	snap := s.snapshot()
	s.mu.Unlock()

	s.log.Debug().Str("id", c.ID).Bool("added", added).Int("count", len(snap)).Msg("favorite toggled")

	s.notify(snap)
	s.publish(eventbus.FavoritesChangedEvent{ID: c.ID, Added: added, Count: len(snap)})
	return added
}

// Subscribe registers fn to run synchronously after every mutation, in
// registration order. The returned function removes it.
func (s *Store) Subscribe(fn Observer) func() {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	s.nextObsID++
	id := s.nextObsID
	s.observers = append(s.observers, observerEntry{id: id, fn: fn})

	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(snap []domain.Cocktail) {
	s.obsMu.Lock()
	observers := make([]observerEntry, len(s.observers))
	copy(observers, s.observers)
	s.obsMu.Unlock()

	for _, o := range observers {
		o.fn(snap)
	}
}

// persist writes the whole collection to the storage slot. Failures are
// logged and otherwise ignored.
func (s *Store) persist(favorites []domain.Cocktail) {
	data, err := json.Marshal(favorites)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to encode favorites")
		return
	}
	if err := s.kv.SetItem(StorageKey, string(data)); err != nil {
		s.log.Error().Err(err).Msg("failed to persist favorites")
		s.publish(eventbus.ErrorEvent{Message: "Failed to save favorites", Err: err})
		return
	}
	s.log.Debug().Int("count", len(favorites)).Msg("favorites persisted")
}

// indexOf returns the position of id, or -1. Caller holds mu.
func (s *Store) indexOf(id string) int {
	for i := range s.favorites {
		if s.favorites[i].ID == id {
			return i
		}
	}
	return -1
}

// snapshot deep-copies the list. Caller holds mu.
func (s *Store) snapshot() []domain.Cocktail {
	return domain.CloneAll(s.favorites)
}

func (s *Store) publish(event eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(event)
	}
}
