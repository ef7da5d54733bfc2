package fol

// TryUnifyLiterals computes a most-general unifier of two literals. It
// succeeds only when the polarities match, the predicate identifiers are
// equal, the arities match, and the argument lists unify pairwise under a
// single accumulating substitution.
//
// An occurs-check failure is not an error; it is the defined "not unifiable"
// outcome.
func TryUnifyLiterals(x, y *Literal) (*VariableSubstitution, bool) {
	if x == nil || y == nil || x.IsNegated() != y.IsNegated() {
		return nil, false
	}
	return TryUnifyPredicates(x.Predicate(), y.Predicate(), nil)
}

// TryUnifyPredicates extends a substitution to unify two predicate
// applications. A nil substitution is treated as the identity.
func TryUnifyPredicates(x, y *Predicate, sub *VariableSubstitution) (*VariableSubstitution, bool) {
	if sub == nil {
		sub = NewVariableSubstitution()
	}
	if !x.Identifier().Equal(y.Identifier()) || x.Arity() != y.Arity() {
		return nil, false
	}
	for i := 0; i < x.Arity(); i++ {
		next, ok := TryUnifyTerms(x.Argument(i), y.Argument(i), sub)
		if !ok {
			return nil, false
		}
		sub = next
	}
	return sub, true
}

// TryUnifyTerms extends a substitution to unify two terms, using Robinson's
// algorithm with occurs-check. A nil substitution is treated as the identity.
// The returned substitution is most general: any other unifier of the two
// terms is an instance of it.
func TryUnifyTerms(x, y Term, sub *VariableSubstitution) (*VariableSubstitution, bool) {
	if sub == nil {
		sub = NewVariableSubstitution()
	}
	if xv, ok := x.(*VariableReference); ok {
		return tryUnifyVariable(xv, y, sub)
	}
	if yv, ok := y.(*VariableReference); ok {
		return tryUnifyVariable(yv, x, sub)
	}
	xf, xok := x.(*Function)
	yf, yok := y.(*Function)
	if xok && yok {
		if !xf.Identifier().Equal(yf.Identifier()) || xf.Arity() != yf.Arity() {
			return nil, false
		}
		for i := 0; i < xf.Arity(); i++ {
			next, ok := TryUnifyTerms(xf.Argument(i), yf.Argument(i), sub)
			if !ok {
				return nil, false
			}
			sub = next
		}
		return sub, true
	}
	// Constants, or mismatched kinds: unifiable only when structurally equal.
	if x.Equal(y) {
		return sub, true
	}
	return nil, false
}

// tryUnifyVariable unifies a variable with an arbitrary term under sub.
func tryUnifyVariable(v *VariableReference, t Term, sub *VariableSubstitution) (*VariableSubstitution, bool) {
	if bound, ok := sub.Binding(v); ok {
		return TryUnifyTerms(bound, t, sub)
	}
	if tv, ok := t.(*VariableReference); ok {
		if bound, ok := sub.Binding(tv); ok {
			return TryUnifyTerms(v, bound, sub)
		}
		if v.Equal(tv) {
			// A variable trivially unifies with itself; no binding needed.
			return sub, true
		}
	}
	if occursIn(v, t, sub) {
		return nil, false
	}
	return sub.Bind(v, t), true
}

// occursIn reports whether v occurs anywhere in the substitution image of t.
// Binding a variable to a term containing it would make the substitution
// cyclic, so unification treats this as failure.
func occursIn(v *VariableReference, t Term, sub *VariableSubstitution) bool {
	switch n := t.(type) {
	case *VariableReference:
		if v.Equal(n) {
			return true
		}
		if bound, ok := sub.Binding(n); ok {
			return occursIn(v, bound, sub)
		}
		return false
	case *Function:
		for _, arg := range n.Arguments() {
			if occursIn(v, arg, sub) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
