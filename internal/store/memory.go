package store

import (
	"sync"

	"github.com/panbanda/augur/pkg/models"
)

// Memory is an in-process Store for single-run and test use.
type Memory struct {
	mu      sync.RWMutex
	results map[string]*models.AnalysisResult
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{results: make(map[string]*models.AnalysisResult)}
}

// Save stores the result under id, replacing any previous entry.
func (m *Memory) Save(result *models.AnalysisResult, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[id] = result
	return nil
}

// Get returns the result saved under id.
func (m *Memory) Get(id string) (*models.AnalysisResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result, ok := m.results[id]
	if !ok {
		return nil, ErrNotFound
	}
	return result, nil
}

// List returns all saved ids.
func (m *Memory) List() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.results))
	for id := range m.results {
		ids = append(ids, id)
	}
	return ids, nil
}

// Len returns the number of saved results.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.results)
}
