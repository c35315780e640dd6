// Package session keeps the per-user model selection in memory.
package session

import (
	"strconv"

	"github.com/patrickmn/go-cache"
)

// Store maps a user to the model name they last selected.
type Store interface {
	// Get returns the selected model for userID, or the default model when
	// the user never switched.
	Get(userID int64) string
	// Set records model as the selection for userID, replacing any previous one.
	Set(userID int64, model string)
}

type memoryStore struct {
	entries      *cache.Cache
	defaultModel string
}

// NewMemoryStore returns a Store that lives for the process lifetime.
// Entries never expire.
func NewMemoryStore(defaultModel string) Store {
	return &memoryStore{
		entries:      cache.New(cache.NoExpiration, 0),
		defaultModel: defaultModel,
	}
}

func (s *memoryStore) Get(userID int64) string {
	if v, ok := s.entries.Get(key(userID)); ok {
		if model, ok := v.(string); ok {
			return model
		}
	}
	return s.defaultModel
}

func (s *memoryStore) Set(userID int64, model string) {
	s.entries.Set(key(userID), model, cache.NoExpiration)
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
