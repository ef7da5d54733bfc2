package fol_test

import (
	"context"
	"fmt"

	"github.com/gitrdm/gofol/pkg/fol"
)

// ExampleToCNF converts an implication to clause form.
func ExampleToCNF() {
	a := fol.NewConstant(fol.Symbol("a"))
	cnf := fol.ToCNF(fol.NewImplication(
		fol.NewPredicate(fol.Symbol("P"), a),
		fol.NewPredicate(fol.Symbol("Q"), a),
	))
	for _, clause := range cnf.Clauses() {
		fmt.Println(clause.Size(), "literals, definite:", clause.IsDefinite())
	}
	// Output: 2 literals, definite: true
}

// ExampleTryUnifyLiterals unifies a goal with a fact.
func ExampleTryUnifyLiterals() {
	x := fol.NewVariableReference(fol.NewVariableDeclaration(fol.Symbol("x")))
	john := fol.NewConstant(fol.Symbol("John"))

	goal := fol.NewPositiveLiteral(fol.NewPredicate(fol.Symbol("Evil"), x))
	fact := fol.NewPositiveLiteral(fol.NewPredicate(fol.Symbol("Evil"), john))

	unifier, ok := fol.TryUnifyLiterals(goal, fact)
	fmt.Println(ok, unifier)
	// Output: true {x↦John}
}

// ExampleOrdinalizeTerm computes the canonical renaming of a term.
func ExampleOrdinalizeTerm() {
	v := func(name string) fol.Term {
		return fol.NewVariableReference(fol.NewVariableDeclaration(fol.Symbol(name)))
	}
	f := func(name string, args ...fol.Term) fol.Term {
		return fol.NewFunction(fol.Symbol(name), args...)
	}

	term := f("F", f("G", v("X"), v("Y")), f("G", v("X"), v("Z")))
	fmt.Println(fol.OrdinalizeTerm(term))
	// Output: F(G(v0, v1), G(v0, v2))
}

// ExampleSubsumes checks the classic subsumption pair.
func ExampleSubsumes() {
	x := fol.NewVariableReference(fol.NewVariableDeclaration(fol.Symbol("x")))
	c := fol.NewConstant(fol.Symbol("c"))
	d := fol.NewConstant(fol.Symbol("d"))

	lit := func(name string, arg fol.Term) *fol.Literal {
		return fol.NewPositiveLiteral(fol.NewPredicate(fol.Symbol(name), arg))
	}
	general := fol.NewCNFClause(lit("P", x), lit("Q", x))

	fmt.Println(fol.Subsumes(general, fol.NewCNFClause(lit("P", c), lit("Q", c))))
	fmt.Println(fol.Subsumes(general, fol.NewCNFClause(lit("P", c), lit("Q", d))))
	// Output:
	// true
	// false
}

// ExampleHornKnowledgeBase proves a goal by backward chaining.
func ExampleHornKnowledgeBase() {
	kb := fol.NewHornKnowledgeBase()

	john := fol.NewConstant(fol.Symbol("John"))
	xDecl := fol.NewVariableDeclaration(fol.Symbol("x"))
	x := fol.NewVariableReference(xDecl)

	_ = kb.TellAll(
		fol.NewPredicate(fol.Symbol("King"), john),
		fol.NewPredicate(fol.Symbol("Greedy"), john),
		fol.NewUniversalQuantification(xDecl, fol.NewImplication(
			fol.NewConjunction(
				fol.NewPredicate(fol.Symbol("King"), x),
				fol.NewPredicate(fol.Symbol("Greedy"), x),
			),
			fol.NewPredicate(fol.Symbol("Evil"), x),
		)),
	)

	who := fol.NewVariableReference(fol.NewVariableDeclaration(fol.Symbol("Who")))
	query := kb.AskPredicate(fol.NewPredicate(fol.Symbol("Evil"), who))
	proved, _ := query.Execute(context.Background())

	fmt.Println(proved, query.Substitutions()[0])
	// Output: true {Who↦John}
}

// ExampleResolutionKnowledgeBase proves a goal by refutation.
func ExampleResolutionKnowledgeBase() {
	kb := fol.NewResolutionKnowledgeBase()

	a := fol.NewConstant(fol.Symbol("a"))
	xDecl := fol.NewVariableDeclaration(fol.Symbol("x"))
	x := fol.NewVariableReference(xDecl)

	_ = kb.TellAll(
		fol.NewUniversalQuantification(xDecl, fol.NewImplication(
			fol.NewPredicate(fol.Symbol("P"), x),
			fol.NewPredicate(fol.Symbol("Q"), x),
		)),
		fol.NewPredicate(fol.Symbol("P"), a),
	)

	query := kb.AskSentence(fol.NewPredicate(fol.Symbol("Q"), a))
	proved, _ := query.Execute(context.Background())

	fmt.Println(proved, query.Result())
	// Output: true true
}
