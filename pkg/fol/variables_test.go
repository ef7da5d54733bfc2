package fol

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ordRef(n int) *VariableReference {
	return NewVariableReference(NewVariableDeclaration(OrdinalVariable(n)))
}

func TestOrdinalize(t *testing.T) {
	t.Run("first-encounter numbering", func(t *testing.T) {
		// F(G(X, Y), G(X, Z)) ⇒ F(G(v0, v1), G(v0, v2))
		term := tFunc("F",
			tFunc("G", tVar("X"), tVar("Y")),
			tFunc("G", tVar("X"), tVar("Z")),
		)
		want := tFunc("F",
			tFunc("G", ordRef(0), ordRef(1)),
			tFunc("G", ordRef(0), ordRef(2)),
		)

		got := OrdinalizeTerm(term)
		if diff := cmp.Diff(want.String(), got.String()); diff != "" {
			t.Errorf("ordinalized form mismatch (-want +got):\n%s", diff)
		}
		assert.True(t, got.Equal(want))
	})

	t.Run("idempotence", func(t *testing.T) {
		term := tFunc("F", tVar("B"), tVar("A"), tVar("B"))
		once := OrdinalizeTerm(term)
		assert.True(t, OrdinalizeTerm(once).Equal(once))
	})

	t.Run("alpha-equivalence via structural equality", func(t *testing.T) {
		a := tFunc("F", tVar("X"), tVar("Y"), tVar("X"))
		b := tFunc("F", tVar("P"), tVar("Q"), tVar("P"))
		c := tFunc("F", tVar("P"), tVar("Q"), tVar("Q"))

		assert.True(t, OrdinalizeTerm(a).Equal(OrdinalizeTerm(b)))
		assert.False(t, OrdinalizeTerm(a).Equal(OrdinalizeTerm(c)))
	})

	t.Run("quantified sentences ordinalize binder-first", func(t *testing.T) {
		s := tForAll("p", func(p *VariableReference) Sentence {
			return tPred("Loves", p, tVar("q"))
		})
		got := Ordinalize(s).(*UniversalQuantification)
		assert.True(t, got.Declaration().Identifier().Equal(OrdinalVariable(0)))
		assert.True(t, got.Body().(*Predicate).Argument(1).(*VariableReference).Identifier().Equal(OrdinalVariable(1)))
	})
}

func TestInstanceRelations(t *testing.T) {
	t.Run("ground terms are instances of patterns", func(t *testing.T) {
		assert.True(t, IsInstanceOfTerm(tFunc("f", tCon("a"), tCon("a")), tFunc("f", tVar("x"), tVar("x"))))
		assert.False(t, IsInstanceOfTerm(tFunc("f", tCon("a"), tCon("b")), tFunc("f", tVar("x"), tVar("x"))))
		assert.True(t, IsGeneralisationOfTerm(tFunc("f", tVar("x")), tFunc("f", tCon("a"))))
	})

	t.Run("matching is one-sided", func(t *testing.T) {
		// f(x) is NOT an instance of f(a): instantiation cannot run backwards.
		assert.False(t, IsInstanceOfTerm(tFunc("f", tVar("x")), tFunc("f", tCon("a"))))
	})

	t.Run("every term is an instance of itself", func(t *testing.T) {
		term := tFunc("f", tVar("x"), tCon("a"))
		assert.True(t, IsInstanceOfTerm(term, term))
	})

	t.Run("literal polarity must agree", func(t *testing.T) {
		assert.True(t, IsInstanceOfLiteral(tPos("P", tCon("a")), tPos("P", tVar("x"))))
		assert.False(t, IsInstanceOfLiteral(tNeg("P", tCon("a")), tPos("P", tVar("x"))))
	})
}

func TestSubsumes(t *testing.T) {
	t.Run("uniform instantiation subsumes", func(t *testing.T) {
		general := NewCNFClause(tPos("P", tVar("x")), tPos("Q", tVar("x")))
		assert.True(t, Subsumes(general, NewCNFClause(tPos("P", tCon("c")), tPos("Q", tCon("c")))))
	})

	t.Run("divergent instantiation does not", func(t *testing.T) {
		general := NewCNFClause(tPos("P", tVar("x")), tPos("Q", tVar("x")))
		assert.False(t, Subsumes(general, NewCNFClause(tPos("P", tCon("c")), tPos("Q", tCon("d")))))
	})

	t.Run("a subset clause subsumes its supersets", func(t *testing.T) {
		assert.True(t, Subsumes(
			NewCNFClause(tPos("P", tVar("x"))),
			NewCNFClause(tPos("P", tCon("c")), tPos("Q", tCon("d"))),
		))
	})

	t.Run("every nonempty clause subsumes itself", func(t *testing.T) {
		c := NewCNFClause(tPos("P", tVar("x")), tNeg("Q", tVar("y")))
		assert.True(t, Subsumes(c, c))
	})

	t.Run("the empty clause subsumes nothing", func(t *testing.T) {
		assert.False(t, Subsumes(EmptyClause, NewCNFClause(tPos("P", tCon("a")))))
		assert.False(t, Subsumes(EmptyClause, EmptyClause))
	})

	t.Run("backtracking finds non-greedy mappings", func(t *testing.T) {
		// P(x) ∨ P(f(a)) subsumes P(f(a)) ∨ P(b): x must map to b after
		// the greedy x↦f(a) choice dead-ends.
		c := NewCNFClause(tPos("P", tVar("x")), tPos("P", tFunc("f", tCon("a"))))
		d := NewCNFClause(tPos("P", tFunc("f", tCon("a"))), tPos("P", tCon("b")))
		assert.True(t, Subsumes(c, d))
	})
}

func TestUnifiesWithAnyOf(t *testing.T) {
	pq := NewCNFClause(tPos("P", tVar("x")), tNeg("Q", tVar("x")))

	t.Run("detects a renamed twin", func(t *testing.T) {
		renamed := RestandardizeClause(pq)
		assert.True(t, UnifiesWithAnyOf(pq, []*CNFClause{renamed}))
	})

	t.Run("requires bijective pairing", func(t *testing.T) {
		assert.False(t, UnifiesWithAnyOf(pq, []*CNFClause{
			NewCNFClause(tPos("P", tVar("y"))),
		}), "different sizes cannot pair")
		assert.False(t, UnifiesWithAnyOf(pq, []*CNFClause{
			NewCNFClause(tPos("P", tCon("a")), tNeg("Q", tCon("b"))),
		}), "shared variable forces both literals to the same constant")
	})

	t.Run("empty collection", func(t *testing.T) {
		assert.False(t, UnifiesWithAnyOf(pq, nil))
	})
}

func TestRestandardizeClause(t *testing.T) {
	clause := NewCNFClause(tNeg("King", tVar("x")), tNeg("Greedy", tVar("x")), tPos("Evil", tVar("x")))

	fresh := RestandardizeClause(clause)
	again := RestandardizeClause(clause)

	t.Run("renamed apart from the original and from other renamings", func(t *testing.T) {
		require.Equal(t, clause.Size(), fresh.Size())
		assert.False(t, fresh.Equal(clause))
		assert.False(t, fresh.Equal(again))
	})

	t.Run("shared variables stay shared", func(t *testing.T) {
		ids := map[uint64]bool{}
		for _, l := range fresh.Literals() {
			ids[l.Predicate().Argument(0).(*VariableReference).Identifier().Hash()] = true
		}
		assert.Len(t, ids, 1, "all three literals used the same variable")
	})

	t.Run("alpha-equivalent to the original", func(t *testing.T) {
		// Ordinalized forms are insensitive to literal iteration order only
		// if the clause orders literals stably; compare literal by literal.
		assert.True(t, UnifiesWithAnyOf(fresh, []*CNFClause{clause}))
	})

	t.Run("ground clauses pass through unchanged", func(t *testing.T) {
		ground := NewCNFClause(tPos("P", tCon("a")))
		assert.Same(t, ground, RestandardizeClause(ground))
	})
}
