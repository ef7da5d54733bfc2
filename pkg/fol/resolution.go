package fol

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/gitrdm/gofol/internal/parallel"
)

// ResolutionKnowledgeBase answers queries over arbitrary sentences by
// refutation: the query's negation is converted to CNF and resolved against
// the knowledge until the empty clause appears. The search is set-of-support
// with breadth-first expansion and subsumption-based redundancy control.
//
// First-order entailment is semidecidable, so an unprovable query may search
// forever; callers bound execution with a cancellable context.
type ResolutionKnowledgeBase struct {
	mu     sync.RWMutex
	store  *SubsumptionFilteredClauseStore[PredicateFeature]
	cfg    config
	logger *zap.Logger
	pool   *parallel.Pool
}

// NewResolutionKnowledgeBase creates an empty resolution knowledge base
// backed by a subsumption-filtered feature-vector store.
func NewResolutionKnowledgeBase(opts ...Option) *ResolutionKnowledgeBase {
	cfg := buildConfig(opts)
	return &ResolutionKnowledgeBase{
		store:  NewSubsumptionFilteredClauseStore(NewPredicateFeatureIndex(), opts...),
		cfg:    cfg,
		logger: cfg.logger,
		pool:   parallel.New(cfg.workers),
	}
}

// Tell asserts a sentence, adding its CNF clauses to the base store.
// Tautologies and subsumed clauses are dropped silently; resolution accepts
// any well-formed sentence, so Tell only fails on a nil input.
func (kb *ResolutionKnowledgeBase) Tell(s Sentence) error {
	cnf, err := kb.stage(s)
	if err != nil {
		return err
	}
	kb.commit([]*CNFSentence{cnf})
	return nil
}

// TellAll asserts several sentences atomically: every sentence is converted
// before any clause lands, so a rejected sentence leaves the base store
// unchanged.
func (kb *ResolutionKnowledgeBase) TellAll(sentences ...Sentence) error {
	staged := make([]*CNFSentence, 0, len(sentences))
	var errs *multierror.Error
	for _, s := range sentences {
		cnf, err := kb.stage(s)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		staged = append(staged, cnf)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return err
	}
	kb.commit(staged)
	return nil
}

func (kb *ResolutionKnowledgeBase) stage(s Sentence) (*CNFSentence, error) {
	if s == nil {
		return nil, fmt.Errorf("fol: nil sentence")
	}
	return ToCNF(s), nil
}

func (kb *ResolutionKnowledgeBase) commit(staged []*CNFSentence) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	for _, cnf := range staged {
		for _, c := range cnf.Clauses() {
			if c.IsTautology() {
				kb.logger.Debug("tautology dropped", zap.Stringer("clause", c))
				continue
			}
			if kb.store.Add(c) {
				kb.logger.Debug("clause asserted", zap.Stringer("clause", c))
			}
		}
	}
}

// Clauses returns a snapshot of the base store.
func (kb *ResolutionKnowledgeBase) Clauses() []*CNFClause {
	return kb.store.Clauses()
}

// Ask poses a query sentence.
func (kb *ResolutionKnowledgeBase) Ask(s Sentence) (Query, error) {
	if s == nil {
		return nil, fmt.Errorf("fol: nil sentence")
	}
	return kb.AskSentence(s), nil
}

// AskSentence poses a query sentence, returning the concrete query handle.
func (kb *ResolutionKnowledgeBase) AskSentence(s Sentence) *ResolutionQuery {
	return &ResolutionQuery{
		kb:      kb,
		query:   s,
		negated: ToCNF(NewNegation(s)),
		overlay: NewSubsumptionFilteredClauseStore(NewPredicateFeatureIndex(),
			WithLogger(kb.logger), WithBackwardSubsumption(kb.cfg.removeSubsumed)),
	}
}

// ResolutionQuery is a refutation search for a single query sentence. The
// query owns an overlay store seeded, at execution, with a snapshot of the
// base store plus the CNF of the negated query; derived clauses accumulate
// in the overlay without touching the base. The overlay is observable
// mid-run through Clauses.
type ResolutionQuery struct {
	kb      *ResolutionKnowledgeBase
	query   Sentence
	negated *CNFSentence
	overlay *SubsumptionFilteredClauseStore[PredicateFeature]

	mu       sync.Mutex
	executed bool
	result   TruthValue
	steps    []*ResolutionStep
	empty    *ResolutionStep
}

// Execute runs the refutation search. It returns true when the empty clause
// is derived (the query is proved), false when no new non-redundant clause
// can be produced (not proved), and the context's error on cancellation.
func (q *ResolutionQuery) Execute(ctx context.Context) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.executed {
		return q.result == TruthTrue, nil
	}

	for _, c := range q.kb.store.Clauses() {
		q.overlay.Add(c)
	}

	// The negated query seeds the set of support. Expansion only ever
	// dequeues support-descended clauses, so every resolution step involves
	// at least one of them.
	var queue []*CNFClause
	for _, c := range q.negated.Clauses() {
		if c.IsEmpty() {
			q.executed = true
			q.result = TruthTrue
			return true, nil
		}
		if q.overlay.Add(c) {
			queue = append(queue, c)
		}
	}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			q.kb.logger.Debug("resolution cancelled",
				zap.Stringer("query", q.query), zap.Int("derived", len(q.steps)))
			return false, err
		}

		c := queue[0]
		queue = queue[1:]
		partners := q.overlay.Clauses()

		resolutions, err := parallel.Map(ctx, q.kb.pool, partners,
			func(_ context.Context, partner *CNFClause) ([]*ClauseResolution, error) {
				return ResolveClauses(c, partner), nil
			})
		if err != nil {
			q.kb.logger.Debug("resolution cancelled",
				zap.Stringer("query", q.query), zap.Int("derived", len(q.steps)))
			return false, err
		}

		for _, group := range resolutions {
			for _, res := range group {
				step := &ResolutionStep{
					clause1:   res.Clause1(),
					clause2:   res.Clause2(),
					unifier:   res.Substitution(),
					resolvent: res.Resolvent(),
				}
				if step.resolvent.IsEmpty() {
					q.steps = append(q.steps, step)
					q.empty = step
					q.executed = true
					q.result = TruthTrue
					q.kb.logger.Debug("empty clause derived", zap.Stringer("query", q.query))
					return true, nil
				}
				if step.resolvent.IsTautology() {
					continue
				}
				if UnifiesWithAnyOf(step.resolvent, q.overlay.Clauses()) {
					continue
				}
				if q.overlay.Add(step.resolvent) {
					q.steps = append(q.steps, step)
					queue = append(queue, step.resolvent)
				}
			}
		}
	}

	q.executed = true
	q.result = TruthUnknown
	q.kb.logger.Debug("resolution exhausted without refutation",
		zap.Stringer("query", q.query), zap.Int("derived", len(q.steps)))
	return false, nil
}

// Result returns the query's tri-state outcome. A refutation search never
// establishes falsity on its own; callers interested in disproof ask the
// negated sentence.
func (q *ResolutionQuery) Result() TruthValue {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.result
}

// Clauses returns a snapshot of the query's overlay store. During execution
// it reflects the clauses derived so far.
func (q *ResolutionQuery) Clauses() []*CNFClause {
	return q.overlay.Clauses()
}

// Trace returns the resolution trace: every recorded derivation step in
// order, ending with the empty-clause step when the query was proved.
func (q *ResolutionQuery) Trace() *ResolutionTrace {
	q.mu.Lock()
	defer q.mu.Unlock()
	t := &ResolutionTrace{steps: append([]*ResolutionStep(nil), q.steps...)}
	if q.empty != nil {
		t.refutation = refutationOf(q.empty, t.steps)
	}
	return t
}

// ResolutionStep records one binary resolution: the two parents, the
// unifier of the complementary pair, and the resolvent.
type ResolutionStep struct {
	clause1   *CNFClause
	clause2   *CNFClause
	unifier   *VariableSubstitution
	resolvent *CNFClause
}

// Clause1 returns the first parent.
func (s *ResolutionStep) Clause1() *CNFClause { return s.clause1 }

// Clause2 returns the second parent.
func (s *ResolutionStep) Clause2() *CNFClause { return s.clause2 }

// Unifier returns the unifier of the complementary literal pair.
func (s *ResolutionStep) Unifier() *VariableSubstitution { return s.unifier }

// Resolvent returns the derived clause.
func (s *ResolutionStep) Resolvent() *CNFClause { return s.resolvent }

// String returns the step in "(parents) ⊢ resolvent" form.
func (s *ResolutionStep) String() string {
	return "(" + s.clause1.String() + ") × (" + s.clause2.String() + ") ⊢ " + s.resolvent.String()
}

// ResolutionTrace is the record of a refutation search, suitable for
// reconstructing the refutation graph.
type ResolutionTrace struct {
	steps      []*ResolutionStep
	refutation []*ResolutionStep
}

// Steps returns every derivation step in the order recorded.
func (t *ResolutionTrace) Steps() []*ResolutionStep { return t.steps }

// Refutation returns the subset of steps on the derivation path of the
// empty clause, leaves first. It is empty when the query was not proved.
func (t *ResolutionTrace) Refutation() []*ResolutionStep { return t.refutation }

// refutationOf walks parent links back from the empty-clause step,
// collecting the steps that produced each derived ancestor.
func refutationOf(last *ResolutionStep, steps []*ResolutionStep) []*ResolutionStep {
	producers := map[uint64]*ResolutionStep{}
	for _, s := range steps {
		if _, ok := producers[s.resolvent.Hash()]; !ok {
			producers[s.resolvent.Hash()] = s
		}
	}
	var out []*ResolutionStep
	seen := map[*ResolutionStep]bool{}
	var visit func(*ResolutionStep)
	visit = func(s *ResolutionStep) {
		if seen[s] {
			return
		}
		seen[s] = true
		for _, parent := range []*CNFClause{s.clause1, s.clause2} {
			if producer, ok := producers[parent.Hash()]; ok && producer.resolvent.Equal(parent) {
				visit(producer)
			}
		}
		out = append(out, s)
	}
	visit(last)
	return out
}
