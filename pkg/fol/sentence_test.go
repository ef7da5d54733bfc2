package fol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentenceEquality(t *testing.T) {
	p := tPred("P", tCon("a"))
	q := tPred("Q", tCon("b"))
	r := tPred("R", tCon("c"))

	t.Run("predicate argument order matters", func(t *testing.T) {
		assert.True(t, tPred("P", tCon("a"), tCon("b")).Equal(tPred("P", tCon("a"), tCon("b"))))
		assert.False(t, tPred("P", tCon("a"), tCon("b")).Equal(tPred("P", tCon("b"), tCon("a"))))
	})

	t.Run("conjunction is commutative", func(t *testing.T) {
		assert.True(t, NewConjunction(p, q).Equal(NewConjunction(q, p)))
		assert.Equal(t, NewConjunction(p, q).Hash(), NewConjunction(q, p).Hash())
	})

	t.Run("disjunction is commutative", func(t *testing.T) {
		assert.True(t, NewDisjunction(p, q).Equal(NewDisjunction(q, p)))
		assert.Equal(t, NewDisjunction(p, q).Hash(), NewDisjunction(q, p).Hash())
	})

	t.Run("equivalence is commutative", func(t *testing.T) {
		assert.True(t, NewEquivalence(p, q).Equal(NewEquivalence(q, p)))
		assert.Equal(t, NewEquivalence(p, q).Hash(), NewEquivalence(q, p).Hash())
	})

	t.Run("implication is not commutative", func(t *testing.T) {
		assert.False(t, NewImplication(p, q).Equal(NewImplication(q, p)))
		assert.True(t, NewImplication(p, q).Equal(NewImplication(p, q)))
	})

	t.Run("commutativity is node-level only", func(t *testing.T) {
		// (P ∧ Q) ∧ R vs P ∧ (Q ∧ R): associativity is not assumed.
		left := NewConjunction(NewConjunction(p, q), r)
		right := NewConjunction(p, NewConjunction(q, r))
		assert.False(t, left.Equal(right))
	})

	t.Run("different connectives never compare equal", func(t *testing.T) {
		assert.False(t, NewConjunction(p, q).Equal(NewDisjunction(p, q)))
		assert.False(t, NewNegation(p).Equal(p))
	})

	t.Run("quantifications compare declaration and body", func(t *testing.T) {
		forAll := func() Sentence {
			return tForAll("x", func(x *VariableReference) Sentence {
				return tPred("P", x)
			})
		}
		assert.True(t, forAll().Equal(forAll()))

		exists := tExists("x", func(x *VariableReference) Sentence {
			return tPred("P", x)
		})
		assert.False(t, forAll().Equal(exists))
	})

	t.Run("equal sentences hash equally", func(t *testing.T) {
		build := func() Sentence {
			return NewImplication(
				NewConjunction(tPred("King", tVar("x")), tPred("Greedy", tVar("x"))),
				tPred("Evil", tVar("x")),
			)
		}
		assert.Equal(t, build().Hash(), build().Hash())
	})
}

func TestEqualityPredicate(t *testing.T) {
	t.Run("uses the reserved identifier", func(t *testing.T) {
		eq := NewEquality(tCon("a"), tCon("b"))
		assert.True(t, eq.Identifier().Equal(Equality))
		assert.False(t, eq.Equal(NewPredicate(Symbol("="), tCon("a"), tCon("b"))),
			"user '=' must stay distinct from the reserved equality predicate")
	})
}

func TestSentenceStrings(t *testing.T) {
	p := tPred("P", tVar("x"))
	q := tPred("Q", tVar("x"))

	assert.Equal(t, "P(x) ∧ Q(x)", NewConjunction(p, q).String())
	assert.Equal(t, "¬P(x)", NewNegation(p).String())
	assert.Equal(t, "P(x) ⇒ Q(x)", NewImplication(p, q).String())
	assert.Equal(t, "∀x. P(x)", tForAll("x", func(x *VariableReference) Sentence {
		return tPred("P", x)
	}).String())
}
