// Package fol provides a thread-safe first-order logic knowledge
// representation and reasoning library for Go.
//
// The package is organized around a small number of cooperating pieces:
//   - An immutable sentence algebra (terms, predicates, connectives,
//     quantifiers) with structural equality and hashing
//   - Conversion of arbitrary sentences to conjunctive normal form,
//     including standardization apart and Skolemization
//   - Most-general unification of terms and literals with occurs-check
//   - Clause storage with retrieval by equality, unifiability, and
//     subsumption, including a feature-vector tree index
//   - A backward-chaining inference engine for definite-clause knowledge
//     bases, producing proof trees
//   - A resolution refutation engine with set-of-support search,
//     producing resolution traces
//
// All sentence, term, literal, and clause values are deeply immutable after
// construction and safe for unsynchronized concurrent use. Clause stores
// coordinate writers with a single-writer lock and allow concurrent readers.
// Inference engines accept a context.Context and check it between expansion
// steps, so unbounded searches can be cancelled cooperatively.
//
// Sentence parsing and pretty-printing beyond diagnostic String() output are
// intentionally out of scope; callers construct sentence trees directly
// through the variant constructors.
package fol
