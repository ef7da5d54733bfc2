package fol

import (
	"sort"
	"sync"

	"github.com/hashicorp/go-set/v3"
	"go.uber.org/zap"
)

// FeatureCount pairs a clause feature with its multiplicity.
type FeatureCount[F any] struct {
	Feature F
	Count   int
}

// FeatureComparer is a total order on features. It must be consistent with
// feature equality: compare(a, b) == 0 exactly when a and b are the same
// feature.
type FeatureComparer[F any] func(a, b F) int

// FeatureExtractor summarizes a clause's literals as feature multiplicities.
// The returned pairs need not be sorted or deduplicated; the index
// normalizes them with its comparer.
type FeatureExtractor[F any] func(c *CNFClause) []FeatureCount[F]

// FeatureVectorIndex stores clauses in a trie keyed by their sorted
// (feature, count) vectors. Clauses with related vectors share paths, which
// makes candidate subsumers (feature sets ⊆ the query's) and candidate
// subsumees (feature sets ⊇ the query's) reachable without scanning the
// whole store.
//
// Only feature membership prunes the walks. A substitution leaves each
// literal's feature unchanged but can collapse several literals onto one,
// so a subsumer may carry a higher multiplicity of a feature than the
// clause it subsumes; counts discriminate trie paths, never candidates.
//
// The index is safe for concurrent reads; writes take a single-writer lock.
type FeatureVectorIndex[F any] struct {
	mu      sync.RWMutex
	compare FeatureComparer[F]
	extract FeatureExtractor[F]
	root    *featureNode[F]
	size    int
}

// NewFeatureVectorIndex creates an empty index over the caller's feature
// order and extractor.
func NewFeatureVectorIndex[F any](compare FeatureComparer[F], extract FeatureExtractor[F]) *FeatureVectorIndex[F] {
	if compare == nil || extract == nil {
		panic("fol: nil feature comparer or extractor")
	}
	return &FeatureVectorIndex[F]{
		compare: compare,
		extract: extract,
		root:    newFeatureNode[F](),
	}
}

// vector computes the normalized feature vector of a clause: sorted by the
// comparer, with equal features merged by summing counts and zero counts
// dropped.
func (ix *FeatureVectorIndex[F]) vector(c *CNFClause) []FeatureCount[F] {
	raw := ix.extract(c)
	sort.SliceStable(raw, func(i, j int) bool {
		return ix.compare(raw[i].Feature, raw[j].Feature) < 0
	})
	var out []FeatureCount[F]
	for _, fc := range raw {
		if fc.Count == 0 {
			continue
		}
		if len(out) > 0 && ix.compare(out[len(out)-1].Feature, fc.Feature) == 0 {
			out[len(out)-1].Count += fc.Count
			continue
		}
		out = append(out, fc)
	}
	return out
}

// Add inserts a clause, rejecting structural duplicates.
func (ix *FeatureVectorIndex[F]) Add(c *CNFClause) bool {
	if c == nil {
		panic("fol: nil clause")
	}
	vec := ix.vector(c)
	ix.mu.Lock()
	defer ix.mu.Unlock()
	node := ix.root
	for _, key := range vec {
		node = node.getOrAddChild(key, ix.compare)
	}
	if !node.addValue(c) {
		return false
	}
	ix.size++
	return true
}

// Remove deletes a structurally equal clause, pruning emptied trie paths.
func (ix *FeatureVectorIndex[F]) Remove(c *CNFClause) bool {
	vec := ix.vector(c)
	ix.mu.Lock()
	defer ix.mu.Unlock()

	path := make([]*featureNode[F], 0, len(vec)+1)
	node := ix.root
	path = append(path, node)
	for _, key := range vec {
		child := node.getChild(key, ix.compare)
		if child == nil {
			return false
		}
		node = child
		path = append(path, node)
	}
	if !node.removeValue(c) {
		return false
	}
	ix.size--
	for i := len(path) - 1; i > 0; i-- {
		if !path[i].empty() {
			break
		}
		path[i-1].deleteChild(vec[i-1], ix.compare)
	}
	return true
}

// Contains reports whether a structurally equal clause is stored.
func (ix *FeatureVectorIndex[F]) Contains(c *CNFClause) bool {
	vec := ix.vector(c)
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	node := ix.root
	for _, key := range vec {
		if node = node.getChild(key, ix.compare); node == nil {
			return false
		}
	}
	return node.hasValue(c)
}

// Size returns the number of stored clauses.
func (ix *FeatureVectorIndex[F]) Size() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.size
}

// Clauses returns a snapshot of every stored clause in depth-first trie
// order.
func (ix *FeatureVectorIndex[F]) Clauses() []*CNFClause {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	var out []*CNFClause
	ix.root.collect(&out)
	return out
}

// Subsuming returns the stored clauses that subsume c. The trie walk visits
// only nodes whose feature sets are subsets of c's; each candidate is then
// verified with Subsumes.
func (ix *FeatureVectorIndex[F]) Subsuming(c *CNFClause) []*CNFClause {
	vec := ix.vector(c)
	ix.mu.RLock()
	candidates := ix.root.subsumingCandidates(vec, ix.compare)
	ix.mu.RUnlock()

	var out []*CNFClause
	for _, candidate := range candidates {
		if Subsumes(candidate, c) {
			out = append(out, candidate)
		}
	}
	return out
}

// Subsumed returns the stored clauses that c subsumes. The trie walk visits
// only nodes whose feature sets are supersets of c's; each candidate is
// then verified with Subsumes.
func (ix *FeatureVectorIndex[F]) Subsumed(c *CNFClause) []*CNFClause {
	vec := ix.vector(c)
	ix.mu.RLock()
	candidates := ix.root.subsumedCandidates(vec, ix.compare)
	ix.mu.RUnlock()

	var out []*CNFClause
	for _, candidate := range candidates {
		if Subsumes(c, candidate) {
			out = append(out, candidate)
		}
	}
	return out
}

// featureNode is one trie node. Children are kept sorted by key so walks can
// stop early; values are the clauses whose full vector ends here.
type featureNode[F any] struct {
	children []featureChild[F]
	values   *set.HashSet[*CNFClause, uint64]
}

type featureChild[F any] struct {
	key  FeatureCount[F]
	node *featureNode[F]
}

func newFeatureNode[F any]() *featureNode[F] {
	return &featureNode[F]{}
}

// compareKeys orders vector elements by feature, then count.
func compareKeys[F any](a, b FeatureCount[F], compare FeatureComparer[F]) int {
	if c := compare(a.Feature, b.Feature); c != 0 {
		return c
	}
	switch {
	case a.Count < b.Count:
		return -1
	case a.Count > b.Count:
		return 1
	default:
		return 0
	}
}

// getOrAddChild returns the child node for a vector-element key, creating it
// if absent.
func (n *featureNode[F]) getOrAddChild(key FeatureCount[F], compare FeatureComparer[F]) *featureNode[F] {
	i := sort.Search(len(n.children), func(i int) bool {
		return compareKeys(n.children[i].key, key, compare) >= 0
	})
	if i < len(n.children) && compareKeys(n.children[i].key, key, compare) == 0 {
		return n.children[i].node
	}
	child := featureChild[F]{key: key, node: newFeatureNode[F]()}
	n.children = append(n.children, featureChild[F]{})
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
	return child.node
}

// getChild returns the child node for a key, or nil.
func (n *featureNode[F]) getChild(key FeatureCount[F], compare FeatureComparer[F]) *featureNode[F] {
	i := sort.Search(len(n.children), func(i int) bool {
		return compareKeys(n.children[i].key, key, compare) >= 0
	})
	if i < len(n.children) && compareKeys(n.children[i].key, key, compare) == 0 {
		return n.children[i].node
	}
	return nil
}

// deleteChild removes the child node for a key, if present.
func (n *featureNode[F]) deleteChild(key FeatureCount[F], compare FeatureComparer[F]) {
	i := sort.Search(len(n.children), func(i int) bool {
		return compareKeys(n.children[i].key, key, compare) >= 0
	})
	if i < len(n.children) && compareKeys(n.children[i].key, key, compare) == 0 {
		n.children = append(n.children[:i:i], n.children[i+1:]...)
	}
}

// addValue attaches a clause at this node, failing on a duplicate.
func (n *featureNode[F]) addValue(c *CNFClause) bool {
	if n.values == nil {
		n.values = set.NewHashSet[*CNFClause, uint64](1)
	}
	return n.values.Insert(c)
}

// removeValue detaches a clause from this node.
func (n *featureNode[F]) removeValue(c *CNFClause) bool {
	return n.values != nil && n.values.Remove(c)
}

func (n *featureNode[F]) hasValue(c *CNFClause) bool {
	return n.values != nil && n.values.Contains(c)
}

func (n *featureNode[F]) empty() bool {
	return len(n.children) == 0 && (n.values == nil || n.values.Size() == 0)
}

func (n *featureNode[F]) collect(out *[]*CNFClause) {
	if n.values != nil {
		values := n.values.Slice()
		sort.Slice(values, func(i, j int) bool {
			if values[i].Hash() != values[j].Hash() {
				return values[i].Hash() < values[j].Hash()
			}
			return values[i].String() < values[j].String()
		})
		*out = append(*out, values...)
	}
	for _, child := range n.children {
		child.node.collect(out)
	}
}

// subsumingCandidates gathers values along paths whose features form a
// subsequence of the remaining vector's features. Every visited node's
// values are candidates: their feature sets are covered by what the walk
// has consumed so far. Multiplicities never prune — a subsumer's literals
// may collapse under the substitution, so its counts can exceed the
// query's.
func (n *featureNode[F]) subsumingCandidates(remaining []FeatureCount[F], compare FeatureComparer[F]) []*CNFClause {
	var out []*CNFClause
	if n.values != nil {
		out = append(out, n.values.Slice()...)
	}
	for _, child := range n.children {
		// Locate the child's feature in the remaining vector, if present.
		for j, fc := range remaining {
			c := compare(child.key.Feature, fc.Feature)
			if c > 0 {
				continue
			}
			if c == 0 {
				out = append(out, child.node.subsumingCandidates(remaining[j+1:], compare)...)
			}
			break
		}
	}
	return out
}

// subsumedCandidates gathers values along paths whose features form a
// supersequence of the remaining vector's features. Values count only once
// every required feature has been consumed; counts are ignored for the same
// collapse reason as in subsumingCandidates, mirrored.
func (n *featureNode[F]) subsumedCandidates(remaining []FeatureCount[F], compare FeatureComparer[F]) []*CNFClause {
	var out []*CNFClause
	if len(remaining) == 0 {
		if n.values != nil {
			out = append(out, n.values.Slice()...)
		}
		for _, child := range n.children {
			out = append(out, child.node.subsumedCandidates(nil, compare)...)
		}
		return out
	}
	need := remaining[0]
	for _, child := range n.children {
		c := compare(child.key.Feature, need.Feature)
		switch {
		case c < 0:
			// Extra feature ahead of the required one; descend.
			out = append(out, child.node.subsumedCandidates(remaining, compare)...)
		case c == 0:
			out = append(out, child.node.subsumedCandidates(remaining[1:], compare)...)
		default:
			// Children are sorted; the required feature cannot appear later.
		}
	}
	return out
}

// SubsumptionFilteredClauseStore layers redundancy control over a
// feature-vector index. Add rejects any clause an existing clause subsumes
// (forward subsumption) and, unless disabled with WithBackwardSubsumption,
// removes stored clauses the newcomer subsumes.
type SubsumptionFilteredClauseStore[F any] struct {
	mu     sync.Mutex
	index  *FeatureVectorIndex[F]
	cfg    config
	logger *zap.Logger
}

// NewSubsumptionFilteredClauseStore wraps the given index.
func NewSubsumptionFilteredClauseStore[F any](index *FeatureVectorIndex[F], opts ...Option) *SubsumptionFilteredClauseStore[F] {
	if index == nil {
		panic("fol: nil feature-vector index")
	}
	cfg := buildConfig(opts)
	return &SubsumptionFilteredClauseStore[F]{
		index:  index,
		cfg:    cfg,
		logger: cfg.logger,
	}
}

// Add inserts a clause unless it is redundant.
func (s *SubsumptionFilteredClauseStore[F]) Add(c *CNFClause) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if subsumers := s.index.Subsuming(c); len(subsumers) > 0 {
		s.logger.Debug("clause rejected by forward subsumption",
			zap.Stringer("clause", c),
			zap.Stringer("subsumer", subsumers[0]))
		return false
	}
	if s.cfg.removeSubsumed {
		for _, d := range s.index.Subsumed(c) {
			if s.index.Remove(d) {
				s.logger.Debug("clause removed by backward subsumption",
					zap.Stringer("removed", d),
					zap.Stringer("subsumer", c))
			}
		}
	}
	return s.index.Add(c)
}

// Remove deletes a structurally equal clause.
func (s *SubsumptionFilteredClauseStore[F]) Remove(c *CNFClause) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Remove(c)
}

// Contains reports whether a structurally equal clause is stored.
func (s *SubsumptionFilteredClauseStore[F]) Contains(c *CNFClause) bool {
	return s.index.Contains(c)
}

// Clauses returns a snapshot of the stored clauses.
func (s *SubsumptionFilteredClauseStore[F]) Clauses() []*CNFClause {
	return s.index.Clauses()
}

// Size returns the number of stored clauses.
func (s *SubsumptionFilteredClauseStore[F]) Size() int {
	return s.index.Size()
}

// PredicateFeature is the convenience clause feature: a predicate symbol
// paired with a polarity. It is one reasonable extractor, not a privileged
// one; callers with sharper notions of similarity supply their own.
type PredicateFeature struct {
	Symbol  string
	Negated bool
}

// ComparePredicateFeatures orders predicate features by symbol, then
// polarity. The order is consistent with equality of the struct.
func ComparePredicateFeatures(a, b PredicateFeature) int {
	switch {
	case a.Symbol < b.Symbol:
		return -1
	case a.Symbol > b.Symbol:
		return 1
	case !a.Negated && b.Negated:
		return -1
	case a.Negated && !b.Negated:
		return 1
	default:
		return 0
	}
}

// PredicateFeatures summarizes a clause by the multiplicity of each
// (predicate symbol, polarity) pair among its literals.
func PredicateFeatures(c *CNFClause) []FeatureCount[PredicateFeature] {
	counts := map[PredicateFeature]int{}
	var order []PredicateFeature
	for _, l := range c.Literals() {
		f := PredicateFeature{
			Symbol:  l.Predicate().Identifier().String(),
			Negated: l.IsNegated(),
		}
		if _, ok := counts[f]; !ok {
			order = append(order, f)
		}
		counts[f]++
	}
	out := make([]FeatureCount[PredicateFeature], len(order))
	for i, f := range order {
		out[i] = FeatureCount[PredicateFeature]{Feature: f, Count: counts[f]}
	}
	return out
}

// NewPredicateFeatureIndex creates a feature-vector index over the
// predicate-symbol features.
func NewPredicateFeatureIndex() *FeatureVectorIndex[PredicateFeature] {
	return NewFeatureVectorIndex(ComparePredicateFeatures, PredicateFeatures)
}
