package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"cocktailgrip/internal/domain"
)

// FileStore keeps all slots in one JSON object on disk. The file is read
// once when the store is opened and rewritten in full on every SetItem or
// RemoveItem, through a temp file and rename.
type FileStore struct {
	mu        sync.RWMutex
	path      string
	items     map[string]string
	recovered bool
	log       zerolog.Logger
}

// OpenFileStore opens (or lazily creates) the store at path. A missing file
// is an empty store. A file that does not parse is moved aside to
// <path>.corrupt and the store starts empty. An unreadable file is an error.
func OpenFileStore(path string, log zerolog.Logger) (*FileStore, error) {
	s := &FileStore{
		path:  path,
		items: make(map[string]string),
		log:   log.With().Str("component", "storage").Str("path", path).Logger(),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.log.Debug().Msg("storage file does not exist yet")
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read storage file: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.items); err != nil {
		s.log.Warn().Err(err).Msg("storage file is corrupt, starting empty")
		if err := os.Rename(path, path+CorruptSuffix); err != nil {
			s.log.Error().Err(err).Msg("failed to move corrupt storage file aside")
		}
		s.items = make(map[string]string)
		s.recovered = true
		return s, nil
	}
	if s.items == nil {
		s.items = make(map[string]string)
	}

	s.log.Debug().Int("keys", len(s.items)).Msg("storage loaded")
	return s, nil
}

// Recovered reports whether a corrupt file was discarded when opening
func (s *FileStore) Recovered() bool {
	return s.recovered
}

// Path returns the backing file
func (s *FileStore) Path() string {
	return s.path
}

// GetItem returns the value stored under key
func (s *FileStore) GetItem(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

// SetItem stores value under key and flushes the whole store to disk
func (s *FileStore) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.items[key]
	s.items[key] = value
	if err := s.flush(); err != nil {
		// keep memory and disk consistent
		if had {
			s.items[key] = prev
		} else {
			delete(s.items, key)
		}
		return err
	}
	return nil
}

// RemoveItem deletes key. Removing a missing key is not an error.
func (s *FileStore) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.items[key]
	if !had {
		return nil
	}
	delete(s.items, key)
	if err := s.flush(); err != nil {
		s.items[key] = prev
		return err
	}
	return nil
}

// flush writes all items. Caller must hold the write lock.
func (s *FileStore) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	data, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp storage file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace storage file: %w", err)
	}

	s.log.Debug().Int("bytes", len(data)).Msg("storage flushed")
	return nil
}
