package fol

// Literal is a predicate application or its negation: the atoms clauses are
// made of. Literals are immutable.
type Literal struct {
	predicate *Predicate
	negated   bool
	hash      uint64
}

// NewLiteral creates a literal over the given predicate with the given
// polarity.
func NewLiteral(predicate *Predicate, negated bool) *Literal {
	if predicate == nil {
		panic("fol: nil literal predicate")
	}
	polarity := uint64(0)
	if negated {
		polarity = 1
	}
	return &Literal{
		predicate: predicate,
		negated:   negated,
		hash:      hashCombine(seedLiteral, predicate.Hash(), polarity),
	}
}

// NewPositiveLiteral creates an unnegated literal over the given predicate.
func NewPositiveLiteral(predicate *Predicate) *Literal {
	return NewLiteral(predicate, false)
}

// NewNegativeLiteral creates a negated literal over the given predicate.
func NewNegativeLiteral(predicate *Predicate) *Literal {
	return NewLiteral(predicate, true)
}

// Predicate returns the literal's underlying predicate application.
func (l *Literal) Predicate() *Predicate { return l.predicate }

// IsNegated reports whether the literal is a negation.
func (l *Literal) IsNegated() bool { return l.negated }

// IsPositive reports whether the literal is an unnegated predicate.
func (l *Literal) IsPositive() bool { return !l.negated }

// Negate returns the literal of opposite polarity over the same predicate.
func (l *Literal) Negate() *Literal {
	return NewLiteral(l.predicate, !l.negated)
}

// Equal reports whether other has the same polarity and an equal predicate.
func (l *Literal) Equal(other *Literal) bool {
	return other != nil && l.negated == other.negated && l.predicate.Equal(other.predicate)
}

// Hash returns the literal's precomputed hash. It also satisfies the Hasher
// contract of the clause's internal literal set.
func (l *Literal) Hash() uint64 { return l.hash }

// String returns the literal in "P(x)" or "¬P(x)" form.
func (l *Literal) String() string {
	if l.negated {
		return "¬" + l.predicate.String()
	}
	return l.predicate.String()
}
