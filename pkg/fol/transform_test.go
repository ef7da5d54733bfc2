package fol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriterIdentity(t *testing.T) {
	sentence := tForAll("x", func(x *VariableReference) Sentence {
		return NewImplication(
			NewConjunction(tPred("King", x), tPred("Greedy", x)),
			tPred("Evil", tFunc("heir", x)),
		)
	})

	t.Run("zero-value rewriter returns its input", func(t *testing.T) {
		r := &Rewriter{}
		assert.Same(t, sentence, r.RewriteSentence(sentence))
	})

	t.Run("no-op overrides still return the input", func(t *testing.T) {
		r := &Rewriter{
			Variable: func(v *VariableReference) Term { return v },
			Constant: func(c *Constant) Term { return c },
		}
		assert.Same(t, sentence, r.RewriteSentence(sentence))
	})

	t.Run("terms short-circuit too", func(t *testing.T) {
		term := tFunc("f", tFunc("g", tVar("x"), tCon("a")), tVar("y"))
		r := &Rewriter{}
		assert.Same(t, term, r.RewriteTerm(term))
	})
}

func TestRewriterRewrites(t *testing.T) {
	t.Run("changed subtrees rebuild only affected ancestors", func(t *testing.T) {
		shared := tFunc("g", tCon("a"))
		term := tFunc("f", shared, tVar("x"))

		r := &Rewriter{
			Variable: func(v *VariableReference) Term { return tCon("john") },
		}
		rewritten := r.RewriteTerm(term).(*Function)

		require.True(t, rewritten.Equal(tFunc("f", tFunc("g", tCon("a")), tCon("john"))))
		assert.Same(t, shared, rewritten.Argument(0), "unchanged child must stay shared")
	})

	t.Run("sentence hooks replace whole variants", func(t *testing.T) {
		s := NewImplication(tPred("P", tVar("x")), tPred("Q", tVar("x")))
		var r *Rewriter
		r = &Rewriter{
			Implication: func(n *Implication) Sentence {
				return NewDisjunction(NewNegation(r.RewriteSentence(n.Antecedent())), r.RewriteSentence(n.Consequent()))
			},
		}
		rewritten := r.RewriteSentence(s)
		assert.True(t, rewritten.Equal(NewDisjunction(NewNegation(tPred("P", tVar("x"))), tPred("Q", tVar("x")))))
	})

	t.Run("quantifier declarations rewrite before bodies", func(t *testing.T) {
		var order []string
		r := &Rewriter{
			Declaration: func(d *VariableDeclaration) *VariableDeclaration {
				order = append(order, "decl:"+d.Identifier().String())
				return d
			},
			Variable: func(v *VariableReference) Term {
				order = append(order, "ref:"+v.Identifier().String())
				return v
			},
		}
		r.RewriteSentence(tForAll("x", func(x *VariableReference) Sentence {
			return tPred("P", x)
		}))
		assert.Equal(t, []string{"decl:x", "ref:x"}, order)
	})
}
