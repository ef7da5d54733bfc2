package fol

// ClauseResolution records a single binary resolution step: the two parent
// clauses, the unifier of the complementary literal pair, and the resolvent.
type ClauseResolution struct {
	resolvent    *CNFClause
	substitution *VariableSubstitution
	clause1      *CNFClause
	clause2      *CNFClause
}

// Resolvent returns the derived clause.
func (r *ClauseResolution) Resolvent() *CNFClause { return r.resolvent }

// Substitution returns the unifier applied to produce the resolvent.
func (r *ClauseResolution) Substitution() *VariableSubstitution { return r.substitution }

// Clause1 returns the first parent clause as supplied to ResolveClauses.
func (r *ClauseResolution) Clause1() *CNFClause { return r.clause1 }

// Clause2 returns the second parent clause as supplied to ResolveClauses.
func (r *ClauseResolution) Clause2() *CNFClause { return r.clause2 }

// String returns the step in "(parents) ⊢ resolvent" form.
func (r *ClauseResolution) String() string {
	return "(" + r.clause1.String() + ") × (" + r.clause2.String() + ") ⊢ " + r.resolvent.String()
}

// ResolveClauses enumerates every valid binary resolvent of two clauses.
// For each complementary literal pair — a literal of one clause whose
// negation unifies with a literal of the other — the resolvent is the
// unifier applied to the union of the remaining literals.
//
// The clauses are standardized apart before resolving, so the two sides can
// share variable names safely. The returned steps reference the original
// (unrenamed) parents.
func ResolveClauses(c1, c2 *CNFClause) []*ClauseResolution {
	r1 := RestandardizeClause(c1)
	r2 := RestandardizeClause(c2)

	var out []*ClauseResolution
	for _, l1 := range r1.Literals() {
		for _, l2 := range r2.Literals() {
			if l1.IsNegated() == l2.IsNegated() {
				continue
			}
			unifier, ok := TryUnifyPredicates(l1.Predicate(), l2.Predicate(), nil)
			if !ok {
				continue
			}
			var rest []*Literal
			for _, l := range r1.Literals() {
				if l != l1 {
					rest = append(rest, unifier.ApplyToLiteral(l))
				}
			}
			for _, l := range r2.Literals() {
				if l != l2 {
					rest = append(rest, unifier.ApplyToLiteral(l))
				}
			}
			out = append(out, &ClauseResolution{
				resolvent:    NewCNFClause(rest...),
				substitution: unifier,
				clause1:      c1,
				clause2:      c2,
			})
		}
	}
	return out
}
