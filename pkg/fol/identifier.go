package fol

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// Identifier names a predicate, function, constant, or variable. Any value
// with well-defined equality and a hash consistent with that equality can
// serve as an identifier; implementations must be immutable.
//
// Identifiers of different kinds never compare equal, even when their printed
// forms collide. In particular the standardization and Skolemization
// identifiers produced by the CNF normalizer compare equal only by instance
// identity, so they can never clash with user-supplied labels.
type Identifier interface {
	// Hash returns a hash consistent with Equal.
	Hash() uint64

	// Equal reports whether two identifiers denote the same symbol.
	Equal(other Identifier) bool

	// String returns a human-readable representation of the identifier.
	String() string
}

// Symbol is the common string-backed identifier for user-supplied predicate,
// function, constant, and variable names.
type Symbol string

// Hash returns a hash of the symbol text.
func (s Symbol) Hash() uint64 {
	return hashCombine(seedSymbol, hashString(string(s)))
}

// Equal reports whether other is the same symbol.
func (s Symbol) Equal(other Identifier) bool {
	o, ok := other.(Symbol)
	return ok && o == s
}

// String returns the symbol text.
func (s Symbol) String() string {
	return string(s)
}

// OrdinalVariable is the integer identifier assigned by Ordinalize. Two
// ordinalized expressions are alpha-equivalent exactly when they are
// structurally equal.
type OrdinalVariable int

// Hash returns a hash of the ordinal.
func (o OrdinalVariable) Hash() uint64 {
	return hashCombine(seedOrdinal, uint64(o))
}

// Equal reports whether other is the same ordinal identifier.
func (o OrdinalVariable) Equal(other Identifier) bool {
	v, ok := other.(OrdinalVariable)
	return ok && v == o
}

// String returns the ordinal in "v0" form.
func (o OrdinalVariable) String() string {
	return fmt.Sprintf("v%d", int(o))
}

// reservedIdentifier is an identifier with instance equality, used for
// symbols the library reserves for itself.
type reservedIdentifier struct {
	name string
	hash uint64
}

func (r *reservedIdentifier) Hash() uint64 { return r.hash }

func (r *reservedIdentifier) Equal(other Identifier) bool {
	o, ok := other.(*reservedIdentifier)
	return ok && o == r
}

func (r *reservedIdentifier) String() string { return r.name }

// Equality is the reserved identifier of the built-in equality predicate.
// It compares unequal to every user identifier, including Symbol("=").
// The library treats equality as an ordinary binary predicate; no equality
// theory is applied during inference.
var Equality Identifier = &reservedIdentifier{
	name: "=",
	hash: hashCombine(seedReserved, hashString("=")),
}

// StandardisedVariable is the fresh identifier given to a bound variable by
// the standardize-apart step of CNF conversion. Instances are globally unique
// and equal only to themselves; the original declaration and the sentence the
// identifier was produced from are retained for diagnostics.
type StandardisedVariable struct {
	uid      uuid.UUID
	hash     uint64
	original *VariableDeclaration
	origin   Sentence
}

// NewStandardisedVariable creates a fresh standardised identifier for the
// given declaration. origin is the sentence being standardized, and may be
// nil when the rename is applied to a bare clause rather than a quantified
// sentence.
func NewStandardisedVariable(original *VariableDeclaration, origin Sentence) *StandardisedVariable {
	uid := uuid.New()
	return &StandardisedVariable{
		uid:      uid,
		hash:     binary.BigEndian.Uint64(uid[:8]),
		original: original,
		origin:   origin,
	}
}

// Hash returns the identifier's precomputed hash.
func (v *StandardisedVariable) Hash() uint64 { return v.hash }

// Equal reports instance identity; two standardised variables are never equal
// by label.
func (v *StandardisedVariable) Equal(other Identifier) bool {
	o, ok := other.(*StandardisedVariable)
	return ok && o == v
}

// String returns the original label tagged with a fragment of the unique id.
func (v *StandardisedVariable) String() string {
	return fmt.Sprintf("%s#%s", v.original.Identifier(), v.uid.String()[:8])
}

// Original returns the declaration this identifier standardized.
func (v *StandardisedVariable) Original() *VariableDeclaration { return v.original }

// Origin returns the sentence the identifier was produced from, or nil.
func (v *StandardisedVariable) Origin() Sentence { return v.origin }

// SkolemFunction is the fresh function identifier introduced by the
// Skolemization step of CNF conversion. Instances are globally unique and
// equal only to themselves; the existential quantification the identifier
// replaced is retained for diagnostics.
type SkolemFunction struct {
	uid      uuid.UUID
	hash     uint64
	replaced *ExistentialQuantification
}

// NewSkolemFunction creates a fresh Skolem identifier for the existential
// quantification it eliminates.
func NewSkolemFunction(replaced *ExistentialQuantification) *SkolemFunction {
	uid := uuid.New()
	return &SkolemFunction{
		uid:      uid,
		hash:     binary.BigEndian.Uint64(uid[:8]),
		replaced: replaced,
	}
}

// Hash returns the identifier's precomputed hash.
func (f *SkolemFunction) Hash() uint64 { return f.hash }

// Equal reports instance identity.
func (f *SkolemFunction) Equal(other Identifier) bool {
	o, ok := other.(*SkolemFunction)
	return ok && o == f
}

// String returns the replaced variable's label tagged with a fragment of the
// unique id.
func (f *SkolemFunction) String() string {
	return fmt.Sprintf("sk%s#%s", f.replaced.Declaration().Identifier(), f.uid.String()[:8])
}

// Replaced returns the existential quantification this identifier eliminated.
func (f *SkolemFunction) Replaced() *ExistentialQuantification { return f.replaced }
