package fol

// Shared constructors keeping test fixtures terse.

func tCon(name string) *Constant {
	return NewConstant(Symbol(name))
}

func tVar(name string) *VariableReference {
	return NewVariableReference(NewVariableDeclaration(Symbol(name)))
}

func tFunc(name string, args ...Term) *Function {
	return NewFunction(Symbol(name), args...)
}

func tPred(name string, args ...Term) *Predicate {
	return NewPredicate(Symbol(name), args...)
}

func tPos(name string, args ...Term) *Literal {
	return NewPositiveLiteral(tPred(name, args...))
}

func tNeg(name string, args ...Term) *Literal {
	return NewNegativeLiteral(tPred(name, args...))
}

// tForAll builds ∀name. body(ref), sharing one declaration between the
// quantifier and the references the body builder creates.
func tForAll(name string, body func(*VariableReference) Sentence) Sentence {
	decl := NewVariableDeclaration(Symbol(name))
	return NewUniversalQuantification(decl, body(NewVariableReference(decl)))
}

// tExists builds ∃name. body(ref).
func tExists(name string, body func(*VariableReference) Sentence) Sentence {
	decl := NewVariableDeclaration(Symbol(name))
	return NewExistentialQuantification(decl, body(NewVariableReference(decl)))
}

// tConj folds sentences into a left-nested conjunction.
func tConj(sentences ...Sentence) Sentence {
	out := sentences[0]
	for _, s := range sentences[1:] {
		out = NewConjunction(out, s)
	}
	return out
}
