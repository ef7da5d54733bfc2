package fol

import "fmt"

// Rewriter is a recursive sentence and term transformer with default-identity
// behavior. Each field, when set, replaces the default handling of the
// corresponding variant; unset fields recurse into the node's children and
// reconstruct the parent only when a child actually changed.
//
// When no override fires and no child changes, the rewriter returns its input
// pointer unchanged. Callers rely on this: repeated normalization and
// substitution cost is proportional to the subtree that actually changes,
// and unchanged subtrees stay shared.
//
// Overrides receive the original node and are responsible for any recursion
// into its children, typically by calling back into RewriteSentence or
// RewriteTerm. Coordinated renames (a quantifier declaration together with
// the references in its body) are expressed by overriding the quantification
// variants.
//
// The zero value is the identity transform.
type Rewriter struct {
	Predicate   func(*Predicate) Sentence
	Negation    func(*Negation) Sentence
	Conjunction func(*Conjunction) Sentence
	Disjunction func(*Disjunction) Sentence
	Implication func(*Implication) Sentence
	Equivalence func(*Equivalence) Sentence
	Universal   func(*UniversalQuantification) Sentence
	Existential func(*ExistentialQuantification) Sentence

	Constant    func(*Constant) Term
	Variable    func(*VariableReference) Term
	Function    func(*Function) Term
	Declaration func(*VariableDeclaration) *VariableDeclaration
}

// RewriteSentence applies the rewriter to a sentence. An unknown sentence
// variant is a programming error and panics.
func (r *Rewriter) RewriteSentence(s Sentence) Sentence {
	switch n := s.(type) {
	case *Predicate:
		if r.Predicate != nil {
			return r.Predicate(n)
		}
		args, changed := r.rewriteTerms(n.args)
		if !changed {
			return n
		}
		return NewPredicate(n.id, args...)

	case *Negation:
		if r.Negation != nil {
			return r.Negation(n)
		}
		operand := r.RewriteSentence(n.operand)
		if operand == n.operand {
			return n
		}
		return NewNegation(operand)

	case *Conjunction:
		if r.Conjunction != nil {
			return r.Conjunction(n)
		}
		left := r.RewriteSentence(n.left)
		right := r.RewriteSentence(n.right)
		if left == n.left && right == n.right {
			return n
		}
		return NewConjunction(left, right)

	case *Disjunction:
		if r.Disjunction != nil {
			return r.Disjunction(n)
		}
		left := r.RewriteSentence(n.left)
		right := r.RewriteSentence(n.right)
		if left == n.left && right == n.right {
			return n
		}
		return NewDisjunction(left, right)

	case *Implication:
		if r.Implication != nil {
			return r.Implication(n)
		}
		antecedent := r.RewriteSentence(n.antecedent)
		consequent := r.RewriteSentence(n.consequent)
		if antecedent == n.antecedent && consequent == n.consequent {
			return n
		}
		return NewImplication(antecedent, consequent)

	case *Equivalence:
		if r.Equivalence != nil {
			return r.Equivalence(n)
		}
		left := r.RewriteSentence(n.left)
		right := r.RewriteSentence(n.right)
		if left == n.left && right == n.right {
			return n
		}
		return NewEquivalence(left, right)

	case *UniversalQuantification:
		if r.Universal != nil {
			return r.Universal(n)
		}
		// The declaration is rewritten before the body so stateful rewriters
		// observe binders in first-encounter order.
		decl := r.rewriteDeclaration(n.decl)
		body := r.RewriteSentence(n.body)
		if decl == n.decl && body == n.body {
			return n
		}
		return NewUniversalQuantification(decl, body)

	case *ExistentialQuantification:
		if r.Existential != nil {
			return r.Existential(n)
		}
		decl := r.rewriteDeclaration(n.decl)
		body := r.RewriteSentence(n.body)
		if decl == n.decl && body == n.body {
			return n
		}
		return NewExistentialQuantification(decl, body)

	default:
		panic(fmt.Sprintf("fol: unknown sentence variant %T", s))
	}
}

// RewriteTerm applies the rewriter to a term. An unknown term variant is a
// programming error and panics.
func (r *Rewriter) RewriteTerm(t Term) Term {
	switch n := t.(type) {
	case *Constant:
		if r.Constant != nil {
			return r.Constant(n)
		}
		return n

	case *VariableReference:
		if r.Variable != nil {
			return r.Variable(n)
		}
		decl := r.rewriteDeclaration(n.decl)
		if decl == n.decl {
			return n
		}
		return NewVariableReference(decl)

	case *Function:
		if r.Function != nil {
			return r.Function(n)
		}
		args, changed := r.rewriteTerms(n.args)
		if !changed {
			return n
		}
		return NewFunction(n.id, args...)

	default:
		panic(fmt.Sprintf("fol: unknown term variant %T", t))
	}
}

// rewriteTerms rewrites a term slice, reporting whether any element changed.
// The input slice is returned untouched when nothing changed.
func (r *Rewriter) rewriteTerms(terms []Term) ([]Term, bool) {
	var out []Term
	for i, t := range terms {
		rewritten := r.RewriteTerm(t)
		if out == nil {
			if rewritten == t {
				continue
			}
			out = make([]Term, len(terms))
			copy(out, terms[:i])
		}
		out[i] = rewritten
	}
	if out == nil {
		return terms, false
	}
	return out, true
}

func (r *Rewriter) rewriteDeclaration(decl *VariableDeclaration) *VariableDeclaration {
	if r.Declaration != nil {
		return r.Declaration(decl)
	}
	return decl
}
