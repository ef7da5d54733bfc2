package fol

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// crimeKB builds the weapons-sale domain: it is a crime for an American to
// sell weapons to hostile nations, and West sold Nono a missile.
func crimeKB(t *testing.T) *HornKnowledgeBase {
	t.Helper()
	kb := NewHornKnowledgeBase(WithLogger(zaptest.NewLogger(t)))

	rule := tForAll("x", func(x *VariableReference) Sentence {
		return tForAll("y", func(y *VariableReference) Sentence {
			return tForAll("z", func(z *VariableReference) Sentence {
				return NewImplication(
					tConj(
						tPred("American", x),
						tPred("Weapon", y),
						tPred("Sells", x, y, z),
						tPred("Hostile", z),
					),
					tPred("Criminal", x),
				)
			})
		})
	})

	require.NoError(t, kb.TellAll(
		tPred("American", tCon("West")),
		tPred("Weapon", tCon("M1")),
		tPred("Sells", tCon("West"), tCon("M1"), tCon("Nono")),
		tPred("Hostile", tCon("Nono")),
		rule,
	))
	return kb
}

func TestHornKnowledgeBaseTell(t *testing.T) {
	t.Run("accepts facts and definite rules", func(t *testing.T) {
		kb := NewHornKnowledgeBase()
		require.NoError(t, kb.Tell(tPred("King", tCon("John"))))
		require.NoError(t, kb.Tell(tForAll("x", func(x *VariableReference) Sentence {
			return NewImplication(tPred("King", x), tPred("Royal", x))
		})))
		assert.Len(t, kb.Clauses(), 2)
	})

	t.Run("rejects non-definite sentences and stays unchanged", func(t *testing.T) {
		kb := NewHornKnowledgeBase()
		err := kb.Tell(NewDisjunction(tPred("P", tCon("a")), tPred("Q", tCon("a"))))
		require.Error(t, err)
		assert.Empty(t, kb.Clauses())

		// A goal clause (no positive literal) is Horn but not definite.
		err = kb.Tell(NewNegation(tPred("P", tCon("a"))))
		require.Error(t, err)
		assert.Empty(t, kb.Clauses())
	})

	t.Run("TellAll is atomic", func(t *testing.T) {
		kb := NewHornKnowledgeBase()
		err := kb.TellAll(
			tPred("King", tCon("John")),
			NewDisjunction(tPred("P", tCon("a")), tPred("Q", tCon("a"))),
		)
		require.Error(t, err)
		assert.Empty(t, kb.Clauses(), "no clause of a failed batch may land")
	})

	t.Run("Ask rejects non-atomic goals", func(t *testing.T) {
		kb := NewHornKnowledgeBase()
		_, err := kb.Ask(NewConjunction(tPred("P", tCon("a")), tPred("Q", tCon("a"))))
		assert.Error(t, err)
	})
}

func TestBackwardChaining(t *testing.T) {
	t.Run("crime domain proves Criminal(West)", func(t *testing.T) {
		kb := crimeKB(t)
		query := kb.AskPredicate(tPred("Criminal", tCon("West")))

		proved, err := query.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, proved)
		assert.Equal(t, TruthTrue, query.Result())

		proofs := query.Proofs()
		require.NotEmpty(t, proofs)
		root := proofs[0]
		assert.True(t, root.Goal().Equal(tPred("Criminal", tCon("West"))))
		assert.Len(t, root.SubProofs(), 4, "one sub-proof per body conjunct")
		for _, sp := range root.SubProofs() {
			assert.Empty(t, sp.SubProofs(), "facts close immediately")
		}
	})

	t.Run("greedy kings binds the query variable", func(t *testing.T) {
		kb := NewHornKnowledgeBase()
		require.NoError(t, kb.TellAll(
			tPred("King", tCon("John")),
			tPred("Greedy", tCon("John")),
			tForAll("x", func(x *VariableReference) Sentence {
				return NewImplication(
					NewConjunction(tPred("King", x), tPred("Greedy", x)),
					tPred("Evil", x),
				)
			}),
		))

		query := kb.AskPredicate(tPred("Evil", tVar("X")))
		proved, err := query.Execute(context.Background())
		require.NoError(t, err)
		require.True(t, proved)

		subs := query.Substitutions()
		require.Len(t, subs, 1)
		binding, ok := subs[0].Binding(tVar("X"))
		require.True(t, ok)
		assert.True(t, binding.Equal(tCon("John")))
	})

	t.Run("inconsistent bindings are not proved", func(t *testing.T) {
		kb := NewHornKnowledgeBase()
		require.NoError(t, kb.TellAll(
			tPred("King", tCon("John")),
			tPred("Greedy", tCon("Richard")),
			tForAll("x", func(x *VariableReference) Sentence {
				return NewImplication(
					NewConjunction(tPred("King", x), tPred("Greedy", x)),
					tPred("Evil", x),
				)
			}),
		))

		query := kb.AskPredicate(tPred("Evil", tVar("X")))
		proved, err := query.Execute(context.Background())
		require.NoError(t, err)
		assert.False(t, proved)
		assert.Equal(t, TruthUnknown, query.Result())
		assert.Empty(t, query.Substitutions())
	})

	t.Run("multiple answers enumerate", func(t *testing.T) {
		kb := NewHornKnowledgeBase()
		require.NoError(t, kb.TellAll(
			tPred("King", tCon("John")),
			tPred("King", tCon("Richard")),
			tForAll("x", func(x *VariableReference) Sentence {
				return NewImplication(tPred("King", x), tPred("Royal", x))
			}),
		))

		query := kb.AskPredicate(tPred("Royal", tVar("Who")))
		_, err := query.Execute(context.Background())
		require.NoError(t, err)

		var names []string
		for _, sub := range query.Substitutions() {
			binding, ok := sub.Binding(tVar("Who"))
			require.True(t, ok)
			names = append(names, binding.String())
		}
		assert.ElementsMatch(t, []string{"John", "Richard"}, names)
	})

	t.Run("chained rules build deep proofs", func(t *testing.T) {
		kb := NewHornKnowledgeBase()
		require.NoError(t, kb.TellAll(
			tPred("Parent", tCon("Alice"), tCon("Bob")),
			tPred("Parent", tCon("Bob"), tCon("Carol")),
			tForAll("x", func(x *VariableReference) Sentence {
				return tForAll("y", func(y *VariableReference) Sentence {
					return tForAll("z", func(z *VariableReference) Sentence {
						return NewImplication(
							NewConjunction(tPred("Parent", x, y), tPred("Parent", y, z)),
							tPred("Grandparent", x, z),
						)
					})
				})
			}),
		))

		query := kb.AskPredicate(tPred("Grandparent", tCon("Alice"), tVar("G")))
		proved, err := query.Execute(context.Background())
		require.NoError(t, err)
		require.True(t, proved)

		subs := query.Substitutions()
		require.Len(t, subs, 1)
		binding, _ := subs[0].Binding(tVar("G"))
		assert.True(t, binding.Equal(tCon("Carol")))
	})

	t.Run("cancellation surfaces the context error", func(t *testing.T) {
		kb := crimeKB(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		query := kb.AskPredicate(tPred("Criminal", tCon("West")))
		_, err := query.Execute(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, TruthUnknown, query.Result(), "cancellation is not a false negative")
	})

	t.Run("executing twice reuses the result", func(t *testing.T) {
		kb := crimeKB(t)
		query := kb.AskPredicate(tPred("Criminal", tCon("West")))

		first, err := query.Execute(context.Background())
		require.NoError(t, err)
		second, err := query.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Len(t, query.Proofs(), 1)
	})
}
