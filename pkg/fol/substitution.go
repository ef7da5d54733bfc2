package fol

import (
	"sort"
	"strings"
)

// VariableSubstitution is a mapping from variables (by identifier) to terms.
// Substitutions compose on application: applying one replaces every variable
// it covers with the bound term, itself resolved recursively until a fixed
// point or an uncovered variable is reached. The occurs-check performed
// during unification keeps the mapping acyclic, so resolution terminates.
//
// Substitutions are value-like: Bind returns a new substitution and never
// modifies the receiver. The zero-binding substitution is the identity.
type VariableSubstitution struct {
	bindings map[Identifier]Term
}

// NewVariableSubstitution creates the identity substitution.
func NewVariableSubstitution() *VariableSubstitution {
	return &VariableSubstitution{bindings: map[Identifier]Term{}}
}

// Bind returns a new substitution extending the receiver with v ↦ term.
// The receiver is unchanged.
func (s *VariableSubstitution) Bind(v *VariableReference, term Term) *VariableSubstitution {
	if v == nil || term == nil {
		panic("fol: nil binding")
	}
	next := make(map[Identifier]Term, len(s.bindings)+1)
	for id, t := range s.bindings {
		next[id] = t
	}
	next[v.Identifier()] = term
	return &VariableSubstitution{bindings: next}
}

// Binding returns the term bound to the given variable, if any.
func (s *VariableSubstitution) Binding(v *VariableReference) (Term, bool) {
	t, ok := s.bindings[v.Identifier()]
	return t, ok
}

// Size returns the number of bindings.
func (s *VariableSubstitution) Size() int { return len(s.bindings) }

// IsEmpty reports whether the substitution is the identity.
func (s *VariableSubstitution) IsEmpty() bool { return len(s.bindings) == 0 }

// Bindings returns a copy of the binding map.
func (s *VariableSubstitution) Bindings() map[Identifier]Term {
	out := make(map[Identifier]Term, len(s.bindings))
	for id, t := range s.bindings {
		out[id] = t
	}
	return out
}

// ApplyToTerm substitutes through a term. Bound variables are resolved
// recursively, so the result contains no variable the substitution covers.
// Applying the identity substitution returns the input unchanged.
func (s *VariableSubstitution) ApplyToTerm(t Term) Term {
	if len(s.bindings) == 0 {
		return t
	}
	return s.rewriter().RewriteTerm(t)
}

// ApplyToSentence substitutes through a sentence.
func (s *VariableSubstitution) ApplyToSentence(sentence Sentence) Sentence {
	if len(s.bindings) == 0 {
		return sentence
	}
	return s.rewriter().RewriteSentence(sentence)
}

// ApplyToPredicate substitutes through a predicate application.
func (s *VariableSubstitution) ApplyToPredicate(p *Predicate) *Predicate {
	return s.ApplyToSentence(p).(*Predicate)
}

// ApplyToLiteral substitutes through a literal, preserving polarity.
func (s *VariableSubstitution) ApplyToLiteral(l *Literal) *Literal {
	p := s.ApplyToPredicate(l.Predicate())
	if p == l.Predicate() {
		return l
	}
	return NewLiteral(p, l.IsNegated())
}

// ApplyToClause substitutes through every literal of a clause. Literals that
// become equal under the substitution collapse.
func (s *VariableSubstitution) ApplyToClause(c *CNFClause) *CNFClause {
	if len(s.bindings) == 0 {
		return c
	}
	changed := false
	literals := make([]*Literal, len(c.Literals()))
	for i, l := range c.Literals() {
		literals[i] = s.ApplyToLiteral(l)
		if literals[i] != l {
			changed = true
		}
	}
	if !changed {
		return c
	}
	return NewCNFClause(literals...)
}

func (s *VariableSubstitution) rewriter() *Rewriter {
	var r *Rewriter
	r = &Rewriter{
		Variable: func(v *VariableReference) Term {
			if bound, ok := s.bindings[v.Identifier()]; ok {
				// The image may itself mention substituted variables.
				return r.RewriteTerm(bound)
			}
			return v
		},
	}
	return r
}

// Equal reports whether two substitutions bind the same variables to equal
// terms.
func (s *VariableSubstitution) Equal(other *VariableSubstitution) bool {
	if other == nil || len(s.bindings) != len(other.bindings) {
		return false
	}
	for id, t := range s.bindings {
		ot, ok := other.bindings[id]
		if !ok || !t.Equal(ot) {
			return false
		}
	}
	return true
}

// Hash returns an order-independent hash consistent with Equal.
func (s *VariableSubstitution) Hash() uint64 {
	var h uint64
	for id, t := range s.bindings {
		h ^= hashCombine(seedVariable, id.Hash(), t.Hash())
	}
	return h
}

// String returns the substitution in "{X↦John, Y↦M1}" form with entries
// sorted for stable output.
func (s *VariableSubstitution) String() string {
	if len(s.bindings) == 0 {
		return "{}"
	}
	entries := make([]string, 0, len(s.bindings))
	for id, t := range s.bindings {
		entries = append(entries, id.String()+"↦"+t.String())
	}
	sort.Strings(entries)
	return "{" + strings.Join(entries, ", ") + "}"
}
