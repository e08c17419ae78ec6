// Package session keeps the rows produced during one working session.
package session

import (
	"sync"

	"fjacquet/fattura-csv/internal/models"
)

// ResultSet is the ordered, in-memory list of rows of the current session.
// It is safe for concurrent use.
type ResultSet struct {
	mu   sync.RWMutex
	rows []models.Row
}

// NewResultSet creates an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{}
}

// Add appends rows, keeping their order.
func (s *ResultSet) Add(rows ...models.Row) {
	if len(rows) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, rows...)
}

// RemoveGroup drops every row of the group and returns how many were removed.
// Removing an installment therefore removes its siblings too.
func (s *ResultSet) RemoveGroup(groupID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.rows[:0]
	for _, r := range s.rows {
		if r.GroupID != groupID {
			kept = append(kept, r)
		}
	}
	removed := len(s.rows) - len(kept)
	clear(s.rows[len(kept):])
	s.rows = kept
	return removed
}

// Reset empties the set.
func (s *ResultSet) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = nil
}

// Rows returns a copy of the rows in insertion order.
func (s *ResultSet) Rows() []models.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// Len returns the number of rows.
func (s *ResultSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Groups returns the number of distinct documents in the set.
func (s *ResultSet) Groups() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{}, len(s.rows))
	for _, r := range s.rows {
		seen[r.GroupID] = struct{}{}
	}
	return len(seen)
}
