package session

import (
	"sync"

	"popgen/app"
	"popgen/domain/population"
)

// Store retains derived state across a sequence of user actions: the two
// loaded tables, their intersected keyspace, and the last generated batch.
// The core stays pure; this is the only mutable state in the application.
// The mutex exists because HTTP handlers run concurrently, not because the
// generation pipeline is parallel.
type Store struct {
	mu sync.RWMutex

	male      *population.Table
	female    *population.Table
	countries []string
	years     []int

	batch *app.Batch
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{}
}

// SetTables publishes a freshly loaded table pair as an immutable snapshot,
// recomputes the intersected keyspace, and discards any previous batch.
func (s *Store) SetTables(male, female *population.Table) {
	countries := population.CommonCountries(male, female)
	years := population.CommonYears(male, female)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.male = male
	s.female = female
	s.countries = countries
	s.years = years
	s.batch = nil
}

// Tables returns the current table pair, or ok=false before any upload.
func (s *Store) Tables() (male, female *population.Table, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.male == nil || s.female == nil {
		return nil, nil, false
	}
	return s.male, s.female, true
}

// Keyspace returns the intersected countries and years, or ok=false before
// any upload.
func (s *Store) Keyspace() (countries []string, years []int, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.male == nil || s.female == nil {
		return nil, nil, false
	}
	return s.countries, s.years, true
}

// SetBatch replaces the retained generation output. Results are transient:
// the previous batch is dropped wholesale.
func (s *Store) SetBatch(batch *app.Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = batch
}

// Batch returns the last generated batch, or nil.
func (s *Store) Batch() *app.Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batch
}

// Result looks up a generated pyramid by ID in the current batch.
func (s *Store) Result(id string) (*app.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.batch == nil {
		return nil, false
	}
	return s.batch.Result(id)
}
