package fol

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// definiteClause is a stored clause split into its single positive literal
// (the head) and the predicates of its negated literals (the body). A fact
// is a definite clause with an empty body.
type definiteClause struct {
	head   *Predicate
	body   []*Predicate
	source *CNFClause
}

// splitDefinite splits a definite clause into head and body. It returns
// false for clauses outside the definite fragment.
func splitDefinite(c *CNFClause) (*definiteClause, bool) {
	if !c.IsDefinite() {
		return nil, false
	}
	dc := &definiteClause{source: c}
	for _, l := range c.Literals() {
		if l.IsPositive() {
			dc.head = l.Predicate()
		} else {
			dc.body = append(dc.body, l.Predicate())
		}
	}
	return dc, true
}

// restandardized returns a copy of the clause with fresh variables,
// re-split. Each use of a stored clause gets its own variables so successive
// uses cannot capture one another's bindings.
func (dc *definiteClause) restandardized() *definiteClause {
	fresh, ok := splitDefinite(RestandardizeClause(dc.source))
	if !ok {
		panic("fol: restandardization changed clause shape")
	}
	return fresh
}

// HornKnowledgeBase answers queries over definite-clause knowledge by
// backward chaining. Tell accepts only sentences whose CNF consists of
// definite clauses; anything else is rejected synchronously, leaving the
// knowledge base unchanged. The search is a plain depth-first enumeration
// that returns only once every branch is exhausted. On theories without
// recursive rules it finds every proof of an entailed atom. On recursive
// theories a branch can descend without end; the search then reports no
// answer, not even for an entailed goal, and ends only when the context is
// cancelled.
type HornKnowledgeBase struct {
	mu      sync.RWMutex
	clauses []*definiteClause
	// byHead indexes clauses by head predicate identifier hash, so goal
	// expansion touches only plausibly matching clauses.
	byHead map[uint64][]*definiteClause
	logger *zap.Logger
}

// NewHornKnowledgeBase creates an empty definite-clause knowledge base.
func NewHornKnowledgeBase(opts ...Option) *HornKnowledgeBase {
	cfg := buildConfig(opts)
	return &HornKnowledgeBase{
		byHead: map[uint64][]*definiteClause{},
		logger: cfg.logger,
	}
}

// Tell asserts a sentence. The sentence's CNF must consist entirely of
// definite clauses; otherwise the whole assertion is rejected and the
// returned error identifies every offending clause.
func (kb *HornKnowledgeBase) Tell(s Sentence) error {
	staged, err := kb.stage(s)
	if err != nil {
		return err
	}
	kb.commit(staged)
	return nil
}

// TellAll asserts several sentences atomically: if any clause of any
// sentence falls outside the definite fragment, nothing is added.
func (kb *HornKnowledgeBase) TellAll(sentences ...Sentence) error {
	var staged []*definiteClause
	var errs *multierror.Error
	for _, s := range sentences {
		clauses, err := kb.stage(s)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		staged = append(staged, clauses...)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return err
	}
	kb.commit(staged)
	return nil
}

func (kb *HornKnowledgeBase) stage(s Sentence) ([]*definiteClause, error) {
	if s == nil {
		return nil, fmt.Errorf("fol: nil sentence")
	}
	var staged []*definiteClause
	var errs *multierror.Error
	for _, c := range ToCNF(s).Clauses() {
		dc, ok := splitDefinite(c)
		if !ok {
			errs = multierror.Append(errs, fmt.Errorf("fol: clause %s of %s is not definite", c, s))
			continue
		}
		staged = append(staged, dc)
	}
	return staged, errs.ErrorOrNil()
}

func (kb *HornKnowledgeBase) commit(staged []*definiteClause) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	for _, dc := range staged {
		kb.clauses = append(kb.clauses, dc)
		key := dc.head.Identifier().Hash()
		kb.byHead[key] = append(kb.byHead[key], dc)
		kb.logger.Debug("definite clause asserted", zap.Stringer("clause", dc.source))
	}
}

// Clauses returns a snapshot of the stored clauses.
func (kb *HornKnowledgeBase) Clauses() []*CNFClause {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	out := make([]*CNFClause, len(kb.clauses))
	for i, dc := range kb.clauses {
		out[i] = dc.source
	}
	return out
}

func (kb *HornKnowledgeBase) clausesForHead(id Identifier) []*definiteClause {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	bucket := kb.byHead[id.Hash()]
	out := make([]*definiteClause, 0, len(bucket))
	for _, dc := range bucket {
		if dc.head.Identifier().Equal(id) {
			out = append(out, dc)
		}
	}
	return out
}

// Ask poses a query. Backward chaining proves single goal atoms; any other
// sentence shape is rejected.
func (kb *HornKnowledgeBase) Ask(s Sentence) (Query, error) {
	p, ok := s.(*Predicate)
	if !ok {
		return nil, fmt.Errorf("fol: backward chaining expects a predicate goal, got %T (%s)", s, s)
	}
	return kb.AskPredicate(p), nil
}

// AskPredicate poses a goal atom, which may contain free variables; the
// query's satisfying substitutions bind them.
func (kb *HornKnowledgeBase) AskPredicate(goal *Predicate) *HornQuery {
	return &HornQuery{kb: kb, goal: goal}
}

// HornQuery is a backward-chaining proof search for a single goal atom.
type HornQuery struct {
	kb   *HornKnowledgeBase
	goal *Predicate

	mu       sync.Mutex
	executed bool
	result   TruthValue
	proofs   []*Proof
	subs     []*VariableSubstitution
}

// Execute runs the proof search, depth first, enumerating every way the goal
// follows from the knowledge base. Cancellation surfaces as the context's
// error and leaves the result TruthUnknown.
func (q *HornQuery) Execute(ctx context.Context) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.executed {
		return q.result == TruthTrue, nil
	}

	solutions, err := q.kb.solveGoal(ctx, q.goal, NewVariableSubstitution())
	if err != nil {
		q.kb.logger.Debug("backward chaining cancelled", zap.Stringer("goal", q.goal))
		return false, err
	}

	q.executed = true
	freeVars := variableReferencesOf(q.goal)
	for _, sol := range solutions {
		q.proofs = append(q.proofs, sol.proof)
		projected := NewVariableSubstitution()
		for _, v := range freeVars {
			image := sol.sub.ApplyToTerm(v)
			// A variable the proof never constrained stays unbound.
			if ref, ok := image.(*VariableReference); ok && ref.Equal(v) {
				continue
			}
			projected = projected.Bind(v, image)
		}
		q.subs = append(q.subs, projected)
	}
	if len(q.proofs) > 0 {
		q.result = TruthTrue
	} else {
		q.result = TruthUnknown
	}
	return q.result == TruthTrue, nil
}

// Result returns the query's tri-state outcome.
func (q *HornQuery) Result() TruthValue {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.result
}

// Substitutions returns one satisfying substitution per proof, each defined
// on the free variables of the goal.
func (q *HornQuery) Substitutions() []*VariableSubstitution {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]*VariableSubstitution(nil), q.subs...)
}

// Proofs returns the proof trees found by execution.
func (q *HornQuery) Proofs() []*Proof {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]*Proof(nil), q.proofs...)
}

// goalSolution is one way of proving a goal: the accumulated substitution
// and the proof tree node for the goal.
type goalSolution struct {
	sub   *VariableSubstitution
	proof *Proof
}

// conjunctSolution is one way of proving a conjunction of goals.
type conjunctSolution struct {
	sub    *VariableSubstitution
	proofs []*Proof
}

// solveGoal enumerates the ways a single goal follows from the knowledge
// base under the accumulated substitution.
func (kb *HornKnowledgeBase) solveGoal(ctx context.Context, goal *Predicate, sub *VariableSubstitution) ([]*goalSolution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	applied := sub.ApplyToPredicate(goal)

	var out []*goalSolution
	for _, dc := range kb.clausesForHead(applied.Identifier()) {
		fresh := dc.restandardized()
		unified, ok := TryUnifyPredicates(applied, fresh.head, sub)
		if !ok {
			continue
		}
		rest, err := kb.solveConjuncts(ctx, fresh.body, unified)
		if err != nil {
			return nil, err
		}
		for _, cs := range rest {
			out = append(out, &goalSolution{
				sub: cs.sub,
				proof: &Proof{
					goal:      cs.sub.ApplyToPredicate(applied),
					clause:    dc.source,
					unifier:   cs.sub,
					subProofs: cs.proofs,
				},
			})
		}
	}
	return out, nil
}

// solveConjuncts proves a list of goals left to right, threading the
// substitution through every conjunct.
func (kb *HornKnowledgeBase) solveConjuncts(ctx context.Context, goals []*Predicate, sub *VariableSubstitution) ([]*conjunctSolution, error) {
	if len(goals) == 0 {
		return []*conjunctSolution{{sub: sub}}, nil
	}
	first, err := kb.solveGoal(ctx, goals[0], sub)
	if err != nil {
		return nil, err
	}
	var out []*conjunctSolution
	for _, sol := range first {
		rest, err := kb.solveConjuncts(ctx, goals[1:], sol.sub)
		if err != nil {
			return nil, err
		}
		for _, cs := range rest {
			out = append(out, &conjunctSolution{
				sub:    cs.sub,
				proofs: append([]*Proof{sol.proof}, cs.proofs...),
			})
		}
	}
	return out, nil
}

// Proof is one node of a backward-chaining proof tree: the goal proved, the
// clause used to prove it, the substitution in force when the goal closed,
// and the sub-proofs of the clause's body conjuncts.
type Proof struct {
	goal      *Predicate
	clause    *CNFClause
	unifier   *VariableSubstitution
	subProofs []*Proof
}

// Goal returns the proved goal, instantiated by the final substitution.
func (p *Proof) Goal() *Predicate { return p.goal }

// Clause returns the stored clause used at this node.
func (p *Proof) Clause() *CNFClause { return p.clause }

// Unifier returns the substitution in force when this goal closed.
func (p *Proof) Unifier() *VariableSubstitution { return p.unifier }

// SubProofs returns the proofs of the clause's body conjuncts, in order.
func (p *Proof) SubProofs() []*Proof { return p.subProofs }

// String renders the proof tree with indentation.
func (p *Proof) String() string {
	var b strings.Builder
	p.render(&b, 0)
	return strings.TrimRight(b.String(), "\n")
}

func (p *Proof) render(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(p.goal.String())
	b.WriteString("  [")
	b.WriteString(p.clause.String())
	b.WriteString("]\n")
	for _, sp := range p.subProofs {
		sp.render(b, depth+1)
	}
}
