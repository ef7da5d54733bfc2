package fol

import (
	"context"
	"sync"

	"github.com/hashicorp/go-set/v3"
)

// ClauseStore stores CNF clauses for retrieval by the inference engines.
// Implementations are safe for concurrent reads; structural modification is
// coordinated by a single-writer lock. Readers observe consistent snapshots:
// a concurrently added clause is either fully visible or not visible at all.
type ClauseStore interface {
	// Add inserts a clause. It returns false when a structurally equal
	// clause is already stored (or, for filtering stores, when the clause
	// is redundant).
	Add(c *CNFClause) bool

	// Remove deletes a structurally equal clause, reporting whether one was
	// present.
	Remove(c *CNFClause) bool

	// Contains reports whether a structurally equal clause is stored.
	Contains(c *CNFClause) bool

	// Clauses returns a snapshot of the stored clauses in a stable order.
	Clauses() []*CNFClause

	// Size returns the number of stored clauses.
	Size() int
}

// SimpleClauseStore is an unindexed clause set guarded by a read-write
// mutex. Iteration order is insertion order.
type SimpleClauseStore struct {
	mu      sync.RWMutex
	clauses *set.HashSet[*CNFClause, uint64]
	ordered []*CNFClause
}

// NewSimpleClauseStore creates an empty store.
func NewSimpleClauseStore() *SimpleClauseStore {
	return &SimpleClauseStore{
		clauses: set.NewHashSet[*CNFClause, uint64](0),
	}
}

// Add inserts a clause, rejecting structural duplicates.
func (s *SimpleClauseStore) Add(c *CNFClause) bool {
	if c == nil {
		panic("fol: nil clause")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.clauses.Insert(c) {
		return false
	}
	s.ordered = append(s.ordered, c)
	return true
}

// Remove deletes a structurally equal clause.
func (s *SimpleClauseStore) Remove(c *CNFClause) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.clauses.Remove(c) {
		return false
	}
	for i, stored := range s.ordered {
		if stored.Equal(c) {
			s.ordered = append(s.ordered[:i:i], s.ordered[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether a structurally equal clause is stored.
func (s *SimpleClauseStore) Contains(c *CNFClause) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clauses.Contains(c)
}

// Clauses returns a snapshot of the stored clauses in insertion order.
func (s *SimpleClauseStore) Clauses() []*CNFClause {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*CNFClause, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Size returns the number of stored clauses.
func (s *SimpleClauseStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clauses.Size()
}

// FindResolvents yields every valid binary resolvent between the given
// clause and any stored clause. The store is snapshotted before resolving,
// and the context is checked between successive stored clauses so unbounded
// stores can be scanned cooperatively.
func (s *SimpleClauseStore) FindResolvents(ctx context.Context, c *CNFClause) ([]*ClauseResolution, error) {
	var out []*ClauseResolution
	for _, stored := range s.Clauses() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, ResolveClauses(c, stored)...)
	}
	return out, nil
}
