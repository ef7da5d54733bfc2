package fol

// Ordinalize returns a canonical renaming of a sentence in which variables
// are replaced with ordinal identifiers v0, v1, v2, … assigned in
// first-encounter order under an in-order traversal. Two expressions are
// alpha-equivalent exactly when their ordinalized forms are structurally
// equal. Ordinalization is idempotent.
func Ordinalize(s Sentence) Sentence {
	return newOrdinalizer().RewriteSentence(s)
}

// OrdinalizeTerm is Ordinalize for terms.
func OrdinalizeTerm(t Term) Term {
	return newOrdinalizer().RewriteTerm(t)
}

// OrdinalizeLiteral is Ordinalize for literals.
func OrdinalizeLiteral(l *Literal) *Literal {
	p := newOrdinalizer().RewriteSentence(l.Predicate()).(*Predicate)
	if p == l.Predicate() {
		return l
	}
	return NewLiteral(p, l.IsNegated())
}

// newOrdinalizer builds a rewriter that renames variables to ordinals in
// first-encounter order. Quantifier declarations are visited before their
// bodies, so binders receive their ordinal ahead of their references.
func newOrdinalizer() *Rewriter {
	decls := map[Identifier]*VariableDeclaration{}
	next := 0
	ordinal := func(id Identifier) *VariableDeclaration {
		if decl, ok := decls[id]; ok {
			return decl
		}
		decl := NewVariableDeclaration(OrdinalVariable(next))
		next++
		decls[id] = decl
		return decl
	}
	return &Rewriter{
		Variable: func(v *VariableReference) Term {
			decl := ordinal(v.Identifier())
			if v.Declaration() == decl {
				return v
			}
			return NewVariableReference(decl)
		},
		Declaration: func(d *VariableDeclaration) *VariableDeclaration {
			return ordinal(d.Identifier())
		},
	}
}

// IsInstanceOfTerm reports whether x is an instance of y: whether some
// substitution defined only on the variables of y maps y to x.
func IsInstanceOfTerm(x, y Term) bool {
	_, ok := matchTerm(y, x, NewVariableSubstitution())
	return ok
}

// IsGeneralisationOfTerm reports whether x generalises y, i.e. y is an
// instance of x.
func IsGeneralisationOfTerm(x, y Term) bool {
	return IsInstanceOfTerm(y, x)
}

// IsInstanceOfLiteral reports whether literal x is an instance of literal y.
func IsInstanceOfLiteral(x, y *Literal) bool {
	if x.IsNegated() != y.IsNegated() {
		return false
	}
	_, ok := matchPredicate(y.Predicate(), x.Predicate(), NewVariableSubstitution())
	return ok
}

// IsGeneralisationOfLiteral reports whether literal x generalises literal y.
func IsGeneralisationOfLiteral(x, y *Literal) bool {
	return IsInstanceOfLiteral(y, x)
}

// matchPredicate extends a one-sided matching substitution so that the
// pattern predicate, under it, equals the target. Only pattern variables
// bind; target variables are treated as opaque.
func matchPredicate(pattern, target *Predicate, sub *VariableSubstitution) (*VariableSubstitution, bool) {
	if !pattern.Identifier().Equal(target.Identifier()) || pattern.Arity() != target.Arity() {
		return nil, false
	}
	for i := 0; i < pattern.Arity(); i++ {
		next, ok := matchTerm(pattern.Argument(i), target.Argument(i), sub)
		if !ok {
			return nil, false
		}
		sub = next
	}
	return sub, true
}

// matchTerm extends a one-sided matching substitution so that the pattern
// term, under it, equals the target.
func matchTerm(pattern, target Term, sub *VariableSubstitution) (*VariableSubstitution, bool) {
	switch p := pattern.(type) {
	case *VariableReference:
		if bound, ok := sub.Binding(p); ok {
			if bound.Equal(target) {
				return sub, true
			}
			return nil, false
		}
		return sub.Bind(p, target), true
	case *Function:
		t, ok := target.(*Function)
		if !ok || !p.Identifier().Equal(t.Identifier()) || p.Arity() != t.Arity() {
			return nil, false
		}
		for i := 0; i < p.Arity(); i++ {
			next, ok := matchTerm(p.Argument(i), t.Argument(i), sub)
			if !ok {
				return nil, false
			}
			sub = next
		}
		return sub, true
	default:
		if pattern.Equal(target) {
			return sub, true
		}
		return nil, false
	}
}

// Subsumes reports whether clause c subsumes clause d: whether some
// substitution maps every literal of c onto a literal present in d.
//
// The empty clause subsumes nothing, not even itself. It represents falsity
// and is handled specially by the inference engines, which treat its
// derivation as a completed refutation rather than a redundancy signal.
func Subsumes(c, d *CNFClause) bool {
	if c.IsEmpty() {
		return false
	}
	return subsumeLiterals(c.Literals(), d, NewVariableSubstitution())
}

// subsumeLiterals tries to extend sub so that each remaining literal of the
// subsumer maps into d, backtracking over target choices.
func subsumeLiterals(remaining []*Literal, d *CNFClause, sub *VariableSubstitution) bool {
	if len(remaining) == 0 {
		return true
	}
	head := remaining[0]
	for _, candidate := range d.Literals() {
		if candidate.IsNegated() != head.IsNegated() {
			continue
		}
		next, ok := matchPredicate(head.Predicate(), candidate.Predicate(), sub)
		if !ok {
			continue
		}
		if subsumeLiterals(remaining[1:], d, next) {
			return true
		}
	}
	return false
}

// UnifiesWithAnyOf reports whether the given clause unifies, as a whole, with
// any clause in the collection. Whole-clause unification pairs the literals
// of the two clauses bijectively under a single substitution. The resolution
// engine uses this to prune work that merely rediscovers a known clause up
// to renaming.
func UnifiesWithAnyOf(c *CNFClause, others []*CNFClause) bool {
	for _, other := range others {
		if other != nil && clausesUnify(c, other) {
			return true
		}
	}
	return false
}

func clausesUnify(a, b *CNFClause) bool {
	if a.Size() != b.Size() {
		return false
	}
	used := make([]bool, b.Size())
	return pairLiterals(a.Literals(), b.Literals(), used, NewVariableSubstitution())
}

// pairLiterals backtracks over bijective pairings of the two literal lists,
// threading one accumulating substitution through every pair.
func pairLiterals(as, bs []*Literal, used []bool, sub *VariableSubstitution) bool {
	if len(as) == 0 {
		return true
	}
	head := as[0]
	for i, candidate := range bs {
		if used[i] || candidate.IsNegated() != head.IsNegated() {
			continue
		}
		next, ok := TryUnifyPredicates(head.Predicate(), candidate.Predicate(), sub)
		if !ok {
			continue
		}
		used[i] = true
		if pairLiterals(as[1:], bs, used, next) {
			return true
		}
		used[i] = false
	}
	return false
}

// RestandardizeClause renames every variable of the clause to a fresh
// StandardisedVariable identifier. Inference engines restandardize a clause
// at each use so that successive uses of the same clause, or the two sides
// of a resolution step, can never capture one another's variables.
func RestandardizeClause(c *CNFClause) *CNFClause {
	decls := map[Identifier]*VariableDeclaration{}
	r := &Rewriter{
		Variable: func(v *VariableReference) Term {
			decl, ok := decls[v.Identifier()]
			if !ok {
				decl = NewVariableDeclaration(NewStandardisedVariable(v.Declaration(), nil))
				decls[v.Identifier()] = decl
			}
			return NewVariableReference(decl)
		},
	}
	changed := false
	literals := make([]*Literal, len(c.Literals()))
	for i, l := range c.Literals() {
		p := r.RewriteSentence(l.Predicate()).(*Predicate)
		if p == l.Predicate() {
			literals[i] = l
			continue
		}
		literals[i] = NewLiteral(p, l.IsNegated())
		changed = true
	}
	if !changed {
		return c
	}
	return NewCNFClause(literals...)
}

// variableReferencesOf collects the distinct variable references of a
// sentence in first-encounter order.
func variableReferencesOf(s Sentence) []*VariableReference {
	var out []*VariableReference
	seen := map[Identifier]bool{}
	r := &Rewriter{}
	r.Variable = func(v *VariableReference) Term {
		if !seen[v.Identifier()] {
			seen[v.Identifier()] = true
			out = append(out, v)
		}
		return v
	}
	r.RewriteSentence(s)
	return out
}
