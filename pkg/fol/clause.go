package fol

import (
	"sort"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// CNFClause is an unordered set of literals interpreted as their disjunction.
// Duplicate literals collapse; equality is set equality. The empty clause
// exists and by convention evaluates to false.
//
// Clauses are immutable after construction and safe for concurrent use.
type CNFClause struct {
	literals *set.HashSet[*Literal, uint64]
	ordered  []*Literal
	hash     uint64
}

// NewCNFClause creates a clause from the given literals, collapsing
// duplicates. Passing no literals creates the empty clause.
func NewCNFClause(literals ...*Literal) *CNFClause {
	ls := set.NewHashSet[*Literal, uint64](len(literals))
	for _, l := range literals {
		if l == nil {
			panic("fol: nil clause literal")
		}
		ls.Insert(l)
	}
	ordered := ls.Slice()
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Hash() != ordered[j].Hash() {
			return ordered[i].Hash() < ordered[j].Hash()
		}
		return ordered[i].String() < ordered[j].String()
	})
	hashes := make([]uint64, len(ordered))
	for i, l := range ordered {
		hashes[i] = l.Hash()
	}
	return &CNFClause{
		literals: ls,
		ordered:  ordered,
		hash:     hashXOR(seedClause, hashes...),
	}
}

// EmptyClause is the clause with no literals, representing falsity.
var EmptyClause = NewCNFClause()

// Literals returns the clause's literals in a stable order. The returned
// slice is shared with the clause and must not be modified.
func (c *CNFClause) Literals() []*Literal { return c.ordered }

// Contains reports whether the clause holds a literal equal to l.
func (c *CNFClause) Contains(l *Literal) bool {
	return c.literals.Contains(l)
}

// Size returns the number of distinct literals.
func (c *CNFClause) Size() int { return len(c.ordered) }

// IsEmpty reports whether the clause has no literals.
func (c *CNFClause) IsEmpty() bool { return len(c.ordered) == 0 }

// IsUnit reports whether the clause has exactly one literal.
func (c *CNFClause) IsUnit() bool { return len(c.ordered) == 1 }

// IsHorn reports whether the clause has at most one positive literal.
func (c *CNFClause) IsHorn() bool {
	return c.positiveCount() <= 1
}

// IsDefinite reports whether the clause has exactly one positive literal.
func (c *CNFClause) IsDefinite() bool {
	return c.positiveCount() == 1
}

// IsGoal reports whether the clause has no positive literal.
func (c *CNFClause) IsGoal() bool {
	return c.positiveCount() == 0
}

// IsTautology reports whether the clause contains both a literal and its
// complement, making it vacuously true.
func (c *CNFClause) IsTautology() bool {
	for _, l := range c.ordered {
		if c.literals.Contains(l.Negate()) {
			return true
		}
	}
	return false
}

func (c *CNFClause) positiveCount() int {
	n := 0
	for _, l := range c.ordered {
		if l.IsPositive() {
			n++
		}
	}
	return n
}

// PositiveLiterals returns the clause's unnegated literals in stable order.
func (c *CNFClause) PositiveLiterals() []*Literal {
	var out []*Literal
	for _, l := range c.ordered {
		if l.IsPositive() {
			out = append(out, l)
		}
	}
	return out
}

// NegativeLiterals returns the clause's negated literals in stable order.
func (c *CNFClause) NegativeLiterals() []*Literal {
	var out []*Literal
	for _, l := range c.ordered {
		if l.IsNegated() {
			out = append(out, l)
		}
	}
	return out
}

// Equal reports set equality of literals.
func (c *CNFClause) Equal(other *CNFClause) bool {
	if other == nil || len(c.ordered) != len(other.ordered) {
		return false
	}
	for _, l := range c.ordered {
		if !other.literals.Contains(l) {
			return false
		}
	}
	return true
}

// Hash returns an order-independent hash of the literal set. It also
// satisfies the Hasher contract of clause-set containers.
func (c *CNFClause) Hash() uint64 { return c.hash }

// String returns the clause in "P(x) ∨ ¬Q(x)" form, or "□" for the empty
// clause.
func (c *CNFClause) String() string {
	if len(c.ordered) == 0 {
		return "□"
	}
	parts := make([]string, len(c.ordered))
	for i, l := range c.ordered {
		parts[i] = l.String()
	}
	return strings.Join(parts, " ∨ ")
}

// CNFSentence is an unordered set of CNF clauses interpreted as their
// conjunction. Duplicate clauses collapse; equality is set equality.
type CNFSentence struct {
	clauses *set.HashSet[*CNFClause, uint64]
	ordered []*CNFClause
	hash    uint64
}

// NewCNFSentence creates a CNF sentence from the given clauses, collapsing
// duplicates.
func NewCNFSentence(clauses ...*CNFClause) *CNFSentence {
	cs := set.NewHashSet[*CNFClause, uint64](len(clauses))
	for _, c := range clauses {
		if c == nil {
			panic("fol: nil CNF clause")
		}
		cs.Insert(c)
	}
	ordered := cs.Slice()
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Hash() != ordered[j].Hash() {
			return ordered[i].Hash() < ordered[j].Hash()
		}
		return ordered[i].String() < ordered[j].String()
	})
	hashes := make([]uint64, len(ordered))
	for i, c := range ordered {
		hashes[i] = c.Hash()
	}
	return &CNFSentence{
		clauses: cs,
		ordered: ordered,
		hash:    hashXOR(seedClause, hashes...),
	}
}

// Clauses returns the sentence's clauses in a stable order. The returned
// slice is shared with the sentence and must not be modified.
func (s *CNFSentence) Clauses() []*CNFClause { return s.ordered }

// Contains reports whether the sentence holds a clause equal to c.
func (s *CNFSentence) Contains(c *CNFClause) bool {
	return s.clauses.Contains(c)
}

// Size returns the number of distinct clauses.
func (s *CNFSentence) Size() int { return len(s.ordered) }

// Equal reports set equality of clauses.
func (s *CNFSentence) Equal(other *CNFSentence) bool {
	if other == nil || len(s.ordered) != len(other.ordered) {
		return false
	}
	for _, c := range s.ordered {
		if !other.clauses.Contains(c) {
			return false
		}
	}
	return true
}

// Hash returns an order-independent hash of the clause set.
func (s *CNFSentence) Hash() uint64 { return s.hash }

// String returns the sentence as a conjunction of parenthesized clauses.
func (s *CNFSentence) String() string {
	if len(s.ordered) == 0 {
		return "⊤"
	}
	parts := make([]string, len(s.ordered))
	for i, c := range s.ordered {
		parts[i] = "(" + c.String() + ")"
	}
	return strings.Join(parts, " ∧ ")
}
