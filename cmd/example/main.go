// Package main walks through the core GoFOL surfaces: sentence
// construction, CNF conversion, unification, and both inference engines.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gitrdm/gofol/pkg/fol"
)

func main() {
	fmt.Println("=== GoFOL Examples ===")
	fmt.Println()

	cnfConversion()
	basicUnification()
	backwardChaining()
	resolutionRefutation()
}

// cnfConversion shows the normalizer on a quantified implication.
func cnfConversion() {
	fmt.Println("1. CNF Conversion:")

	xd := fol.NewVariableDeclaration(fol.Symbol("x"))
	x := fol.NewVariableReference(xd)
	s := fol.NewUniversalQuantification(xd, fol.NewImplication(
		fol.NewConjunction(
			fol.NewPredicate(fol.Symbol("King"), x),
			fol.NewPredicate(fol.Symbol("Greedy"), x),
		),
		fol.NewPredicate(fol.Symbol("Evil"), x),
	))

	fmt.Printf("   sentence: %s\n", s)
	fmt.Printf("   cnf:      %s\n", fol.ToCNF(s))
	fmt.Println()
}

// basicUnification computes a most-general unifier.
func basicUnification() {
	fmt.Println("2. Unification:")

	x := fol.NewVariableReference(fol.NewVariableDeclaration(fol.Symbol("x")))
	y := fol.NewVariableReference(fol.NewVariableDeclaration(fol.Symbol("y")))
	john := fol.NewConstant(fol.Symbol("John"))

	left := fol.NewFunction(fol.Symbol("Knows"), john, x)
	right := fol.NewFunction(fol.Symbol("Knows"), y, fol.NewFunction(fol.Symbol("Mother"), y))

	if sub, ok := fol.TryUnifyTerms(left, right, nil); ok {
		fmt.Printf("   mgu(%s, %s) = %s\n", left, right, sub)
		fmt.Printf("   applied: %s\n", sub.ApplyToTerm(left))
	}
	fmt.Println()
}

// backwardChaining proves Evil(John) from the greedy-kings theory.
func backwardChaining() {
	fmt.Println("3. Backward Chaining:")

	kb := fol.NewHornKnowledgeBase()
	john := fol.NewConstant(fol.Symbol("John"))
	xd := fol.NewVariableDeclaration(fol.Symbol("x"))
	x := fol.NewVariableReference(xd)

	_ = kb.TellAll(
		fol.NewPredicate(fol.Symbol("King"), john),
		fol.NewPredicate(fol.Symbol("Greedy"), john),
		fol.NewUniversalQuantification(xd, fol.NewImplication(
			fol.NewConjunction(
				fol.NewPredicate(fol.Symbol("King"), x),
				fol.NewPredicate(fol.Symbol("Greedy"), x),
			),
			fol.NewPredicate(fol.Symbol("Evil"), x),
		)),
	)

	who := fol.NewVariableReference(fol.NewVariableDeclaration(fol.Symbol("Who")))
	query := kb.AskPredicate(fol.NewPredicate(fol.Symbol("Evil"), who))
	if proved, _ := query.Execute(context.Background()); proved {
		fmt.Printf("   Evil(Who) proved with %s\n", query.Substitutions()[0])
	}
	fmt.Println()
}

// resolutionRefutation proves Q(a) by deriving the empty clause, under a
// deadline in case the theory were harder than it is.
func resolutionRefutation() {
	fmt.Println("4. Resolution:")

	kb := fol.NewResolutionKnowledgeBase()
	a := fol.NewConstant(fol.Symbol("a"))
	xd := fol.NewVariableDeclaration(fol.Symbol("x"))
	x := fol.NewVariableReference(xd)

	_ = kb.TellAll(
		fol.NewUniversalQuantification(xd, fol.NewImplication(
			fol.NewPredicate(fol.Symbol("P"), x),
			fol.NewPredicate(fol.Symbol("Q"), x),
		)),
		fol.NewPredicate(fol.Symbol("P"), a),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	query := kb.AskSentence(fol.NewPredicate(fol.Symbol("Q"), a))
	proved, err := query.Execute(ctx)
	fmt.Printf("   Q(a): proved=%v err=%v\n", proved, err)
	for _, step := range query.Trace().Refutation() {
		fmt.Printf("   %s\n", step)
	}
}
