package fol

import "fmt"

// ToCNF converts any sentence to conjunctive normal form. The pipeline runs,
// in order: implication and equivalence elimination, negation normalization,
// standardization apart of bound variables, Skolemization of existentials,
// removal of the now-redundant universal quantifiers, distribution of
// disjunction over conjunction, and flattening into a clause set.
//
// The result is equi-satisfiable with the input (logically equivalent up to
// the Skolemization of existentials). Remaining variables are implicitly
// universally quantified. Conversion of a sentence with an unknown variant is
// a programming error and panics.
func ToCNF(s Sentence) *CNFSentence {
	if s == nil {
		panic("fol: nil sentence")
	}
	rewritten := eliminateImplications(s)
	rewritten = toNegationNormalForm(rewritten)
	rewritten = standardizeApart(rewritten)
	rewritten = skolemize(rewritten, nil)
	rewritten = dropUniversals(rewritten)
	rewritten = distributeOrOverAnd(rewritten)
	return flattenToCNF(rewritten)
}

// eliminateImplications rewrites A ⇒ B to ¬A ∨ B and A ⇔ B to
// (¬A ∨ B) ∧ (A ∨ ¬B), recursively.
func eliminateImplications(s Sentence) Sentence {
	var r *Rewriter
	r = &Rewriter{
		Implication: func(n *Implication) Sentence {
			antecedent := r.RewriteSentence(n.Antecedent())
			consequent := r.RewriteSentence(n.Consequent())
			return NewDisjunction(NewNegation(antecedent), consequent)
		},
		Equivalence: func(n *Equivalence) Sentence {
			left := r.RewriteSentence(n.Left())
			right := r.RewriteSentence(n.Right())
			return NewConjunction(
				NewDisjunction(NewNegation(left), right),
				NewDisjunction(left, NewNegation(right)),
			)
		},
	}
	return r.RewriteSentence(s)
}

// toNegationNormalForm pushes negations inward via De Morgan's laws and
// quantifier duality, eliminating double negations. The input must be free
// of implications and equivalences.
func toNegationNormalForm(s Sentence) Sentence {
	switch n := s.(type) {
	case *Predicate:
		return n
	case *Negation:
		return negate(n.Operand())
	case *Conjunction:
		left := toNegationNormalForm(n.Left())
		right := toNegationNormalForm(n.Right())
		if left == n.Left() && right == n.Right() {
			return n
		}
		return NewConjunction(left, right)
	case *Disjunction:
		left := toNegationNormalForm(n.Left())
		right := toNegationNormalForm(n.Right())
		if left == n.Left() && right == n.Right() {
			return n
		}
		return NewDisjunction(left, right)
	case *UniversalQuantification:
		body := toNegationNormalForm(n.Body())
		if body == n.Body() {
			return n
		}
		return NewUniversalQuantification(n.Declaration(), body)
	case *ExistentialQuantification:
		body := toNegationNormalForm(n.Body())
		if body == n.Body() {
			return n
		}
		return NewExistentialQuantification(n.Declaration(), body)
	default:
		panic(fmt.Sprintf("fol: unexpected sentence variant %T in negation normalization", s))
	}
}

// negate normalizes ¬s, pushing the negation as deep as possible.
func negate(s Sentence) Sentence {
	switch n := s.(type) {
	case *Predicate:
		return NewNegation(n)
	case *Negation:
		// Double negation elimination.
		return toNegationNormalForm(n.Operand())
	case *Conjunction:
		return NewDisjunction(negate(n.Left()), negate(n.Right()))
	case *Disjunction:
		return NewConjunction(negate(n.Left()), negate(n.Right()))
	case *UniversalQuantification:
		return NewExistentialQuantification(n.Declaration(), negate(n.Body()))
	case *ExistentialQuantification:
		return NewUniversalQuantification(n.Declaration(), negate(n.Body()))
	default:
		panic(fmt.Sprintf("fol: unexpected sentence variant %T under negation", s))
	}
}

// standardizeApart renames every bound variable to a fresh
// StandardisedVariable identifier so that no two quantifiers in the result
// share a variable. Free variables are left untouched. Each fresh identifier
// keeps a back-pointer to the declaration it renamed and to the sentence the
// rename was applied to.
func standardizeApart(s Sentence) Sentence {
	return standardizeApartScoped(s, s, map[Identifier]*VariableDeclaration{})
}

func standardizeApartScoped(s, origin Sentence, scope map[Identifier]*VariableDeclaration) Sentence {
	rename := func(decl *VariableDeclaration, body Sentence) (*VariableDeclaration, Sentence) {
		fresh := NewVariableDeclaration(NewStandardisedVariable(decl, origin))
		// Inner scopes shadow outer bindings of the same identifier.
		outer, shadowed := scope[decl.Identifier()]
		scope[decl.Identifier()] = fresh
		rewritten := standardizeApartScoped(body, origin, scope)
		if shadowed {
			scope[decl.Identifier()] = outer
		} else {
			delete(scope, decl.Identifier())
		}
		return fresh, rewritten
	}

	switch n := s.(type) {
	case *UniversalQuantification:
		fresh, body := rename(n.Declaration(), n.Body())
		return NewUniversalQuantification(fresh, body)
	case *ExistentialQuantification:
		fresh, body := rename(n.Declaration(), n.Body())
		return NewExistentialQuantification(fresh, body)
	default:
		r := &Rewriter{
			Variable: func(v *VariableReference) Term {
				if fresh, ok := scope[v.Identifier()]; ok {
					return NewVariableReference(fresh)
				}
				return v
			},
			Universal: func(u *UniversalQuantification) Sentence {
				return standardizeApartScoped(u, origin, scope)
			},
			Existential: func(e *ExistentialQuantification) Sentence {
				return standardizeApartScoped(e, origin, scope)
			},
		}
		return r.RewriteSentence(s)
	}
}

// skolemize eliminates existential quantifiers. Each existential ∃y.φ under
// universals binding x₁…xₖ is removed, and free occurrences of y in φ are
// replaced with sk(x₁, …, xₖ) for a fresh Skolem identifier sk. With no
// enclosing universals, the application collapses to a Skolem constant.
// The input must be standardized apart and in negation normal form.
func skolemize(s Sentence, universalScope []*VariableDeclaration) Sentence {
	switch n := s.(type) {
	case *UniversalQuantification:
		body := skolemize(n.Body(), append(universalScope, n.Declaration()))
		if body == n.Body() {
			return n
		}
		return NewUniversalQuantification(n.Declaration(), body)

	case *ExistentialQuantification:
		sk := NewSkolemFunction(n)
		var skolemTerm Term
		if len(universalScope) == 0 {
			skolemTerm = NewConstant(sk)
		} else {
			args := make([]Term, len(universalScope))
			for i, decl := range universalScope {
				args[i] = NewVariableReference(decl)
			}
			skolemTerm = NewFunction(sk, args...)
		}
		body := replaceVariable(n.Body(), n.Declaration(), skolemTerm)
		return skolemize(body, universalScope)

	case *Conjunction:
		left := skolemize(n.Left(), universalScope)
		right := skolemize(n.Right(), universalScope)
		if left == n.Left() && right == n.Right() {
			return n
		}
		return NewConjunction(left, right)

	case *Disjunction:
		left := skolemize(n.Left(), universalScope)
		right := skolemize(n.Right(), universalScope)
		if left == n.Left() && right == n.Right() {
			return n
		}
		return NewDisjunction(left, right)

	case *Predicate, *Negation:
		return s

	default:
		panic(fmt.Sprintf("fol: unexpected sentence variant %T in Skolemization", s))
	}
}

// replaceVariable substitutes every reference to decl with the given term.
func replaceVariable(s Sentence, decl *VariableDeclaration, term Term) Sentence {
	r := &Rewriter{
		Variable: func(v *VariableReference) Term {
			if v.Identifier().Equal(decl.Identifier()) {
				return term
			}
			return v
		},
	}
	return r.RewriteSentence(s)
}

// dropUniversals removes universal quantifiers; all remaining variables are
// implicitly universally quantified.
func dropUniversals(s Sentence) Sentence {
	switch n := s.(type) {
	case *UniversalQuantification:
		return dropUniversals(n.Body())
	case *Conjunction:
		left := dropUniversals(n.Left())
		right := dropUniversals(n.Right())
		if left == n.Left() && right == n.Right() {
			return n
		}
		return NewConjunction(left, right)
	case *Disjunction:
		left := dropUniversals(n.Left())
		right := dropUniversals(n.Right())
		if left == n.Left() && right == n.Right() {
			return n
		}
		return NewDisjunction(left, right)
	case *Predicate, *Negation:
		return s
	default:
		panic(fmt.Sprintf("fol: unexpected sentence variant %T after Skolemization", s))
	}
}

// distributeOrOverAnd pushes disjunction beneath conjunction until the
// sentence is a conjunction of disjunctions of literals.
func distributeOrOverAnd(s Sentence) Sentence {
	switch n := s.(type) {
	case *Conjunction:
		left := distributeOrOverAnd(n.Left())
		right := distributeOrOverAnd(n.Right())
		if left == n.Left() && right == n.Right() {
			return n
		}
		return NewConjunction(left, right)

	case *Disjunction:
		left := distributeOrOverAnd(n.Left())
		right := distributeOrOverAnd(n.Right())
		if conj, ok := left.(*Conjunction); ok {
			return distributeOrOverAnd(NewConjunction(
				NewDisjunction(conj.Left(), right),
				NewDisjunction(conj.Right(), right),
			))
		}
		if conj, ok := right.(*Conjunction); ok {
			return distributeOrOverAnd(NewConjunction(
				NewDisjunction(left, conj.Left()),
				NewDisjunction(left, conj.Right()),
			))
		}
		if left == n.Left() && right == n.Right() {
			return n
		}
		return NewDisjunction(left, right)

	case *Predicate, *Negation:
		return s

	default:
		panic(fmt.Sprintf("fol: unexpected sentence variant %T in distribution", s))
	}
}

// flattenToCNF collects the top-level conjuncts of a distributed sentence
// into a clause set.
func flattenToCNF(s Sentence) *CNFSentence {
	var clauses []*CNFClause
	var collectConjuncts func(Sentence)
	collectConjuncts = func(s Sentence) {
		if conj, ok := s.(*Conjunction); ok {
			collectConjuncts(conj.Left())
			collectConjuncts(conj.Right())
			return
		}
		clauses = append(clauses, flattenClause(s))
	}
	collectConjuncts(s)
	return NewCNFSentence(clauses...)
}

// flattenClause collects the literals of a disjunction tree into a clause.
func flattenClause(s Sentence) *CNFClause {
	var literals []*Literal
	var collect func(Sentence)
	collect = func(s Sentence) {
		switch n := s.(type) {
		case *Disjunction:
			collect(n.Left())
			collect(n.Right())
		default:
			l, err := LiteralOf(s)
			if err != nil {
				panic(fmt.Sprintf("fol: non-literal %T survived CNF conversion", s))
			}
			literals = append(literals, l)
		}
	}
	collect(s)
	return NewCNFClause(literals...)
}

// LiteralOf interprets a sentence as a literal: a predicate application or
// the negation of one. Any other shape is a malformed-input error.
func LiteralOf(s Sentence) (*Literal, error) {
	switch n := s.(type) {
	case *Predicate:
		return NewPositiveLiteral(n), nil
	case *Negation:
		p, ok := n.Operand().(*Predicate)
		if !ok {
			return nil, fmt.Errorf("fol: expected a negated predicate, got ¬(%s)", n.Operand())
		}
		return NewNegativeLiteral(p), nil
	default:
		return nil, fmt.Errorf("fol: expected a literal, got %T (%s)", s, s)
	}
}

// ClauseOf interprets a sentence as a clause: a disjunction of literals.
// Any other shape is a malformed-input error.
func ClauseOf(s Sentence) (*CNFClause, error) {
	var literals []*Literal
	var collect func(Sentence) error
	collect = func(s Sentence) error {
		if d, ok := s.(*Disjunction); ok {
			if err := collect(d.Left()); err != nil {
				return err
			}
			return collect(d.Right())
		}
		l, err := LiteralOf(s)
		if err != nil {
			return err
		}
		literals = append(literals, l)
		return nil
	}
	if err := collect(s); err != nil {
		return nil, err
	}
	return NewCNFClause(literals...), nil
}

// AsSentence reconstructs the clause as a disjunction tree for callers that
// need to feed a clause back through sentence-level operations. The empty
// clause represents falsity and has no sentence form; converting it panics.
func (c *CNFClause) AsSentence() Sentence {
	if c.IsEmpty() {
		panic("fol: the empty clause has no sentence form")
	}
	var out Sentence
	for _, l := range c.ordered {
		var lit Sentence = l.Predicate()
		if l.IsNegated() {
			lit = NewNegation(l.Predicate())
		}
		if out == nil {
			out = lit
		} else {
			out = NewDisjunction(out, lit)
		}
	}
	return out
}

// AsSentence reconstructs the CNF sentence as a conjunction tree. A CNF
// sentence with no clauses, or containing the empty clause, has no sentence
// form; converting it panics.
func (s *CNFSentence) AsSentence() Sentence {
	if len(s.ordered) == 0 {
		panic("fol: an empty CNF sentence has no sentence form")
	}
	var out Sentence
	for _, c := range s.ordered {
		cs := c.AsSentence()
		if out == nil {
			out = cs
		} else {
			out = NewConjunction(out, cs)
		}
	}
	return out
}
