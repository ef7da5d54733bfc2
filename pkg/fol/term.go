package fol

import (
	"fmt"
	"strings"
)

// Term represents a first-order logic term: a constant, a variable reference,
// or a function application. The set of variants is closed; terms are deeply
// immutable after construction and safe for concurrent use without
// synchronization.
type Term interface {
	// Equal reports structural equality with another term.
	Equal(other Term) bool

	// Hash returns a hash consistent with Equal.
	Hash() uint64

	// String returns a human-readable representation of the term.
	String() string

	termNode()
}

// Constant is a nullary, ground term.
type Constant struct {
	id   Identifier
	hash uint64
}

// NewConstant creates a constant with the given identifier.
func NewConstant(id Identifier) *Constant {
	if id == nil {
		panic("fol: nil constant identifier")
	}
	return &Constant{
		id:   id,
		hash: hashCombine(seedConstant, id.Hash()),
	}
}

// Identifier returns the constant's identifier.
func (c *Constant) Identifier() Identifier { return c.id }

// Equal reports whether other is a constant with an equal identifier.
func (c *Constant) Equal(other Term) bool {
	o, ok := other.(*Constant)
	return ok && c.id.Equal(o.id)
}

// Hash returns the constant's precomputed hash.
func (c *Constant) Hash() uint64 { return c.hash }

// String returns the constant's identifier text.
func (c *Constant) String() string { return c.id.String() }

func (c *Constant) termNode() {}

// VariableDeclaration introduces a variable. Declarations appear in
// quantifier nodes and are pointed to by VariableReference nodes; a
// declaration is not itself a term. Rewrites that replace a reference with
// another term never touch the declaration it pointed to.
type VariableDeclaration struct {
	id Identifier
}

// NewVariableDeclaration creates a declaration for the given identifier.
func NewVariableDeclaration(id Identifier) *VariableDeclaration {
	if id == nil {
		panic("fol: nil variable identifier")
	}
	return &VariableDeclaration{id: id}
}

// Identifier returns the declared variable's identifier.
func (d *VariableDeclaration) Identifier() Identifier { return d.id }

// Equal reports whether other declares a variable with an equal identifier.
func (d *VariableDeclaration) Equal(other *VariableDeclaration) bool {
	return other != nil && d.id.Equal(other.id)
}

// Hash returns a hash consistent with Equal.
func (d *VariableDeclaration) Hash() uint64 {
	return hashCombine(seedVariable, d.id.Hash())
}

// String returns the declared variable's identifier text.
func (d *VariableDeclaration) String() string { return d.id.String() }

// VariableReference is a use of a declared variable within a term or
// sentence. Two references are equal when their declarations carry equal
// identifiers, regardless of which declaration instance they point to.
type VariableReference struct {
	decl *VariableDeclaration
	hash uint64
}

// NewVariableReference creates a reference to the given declaration.
func NewVariableReference(decl *VariableDeclaration) *VariableReference {
	if decl == nil {
		panic("fol: nil variable declaration")
	}
	return &VariableReference{
		decl: decl,
		hash: decl.Hash(),
	}
}

// Declaration returns the declaration this reference points to.
func (v *VariableReference) Declaration() *VariableDeclaration { return v.decl }

// Identifier returns the referenced variable's identifier.
func (v *VariableReference) Identifier() Identifier { return v.decl.id }

// Equal reports whether other references a variable with an equal identifier.
func (v *VariableReference) Equal(other Term) bool {
	o, ok := other.(*VariableReference)
	return ok && v.decl.id.Equal(o.decl.id)
}

// Hash returns the reference's precomputed hash.
func (v *VariableReference) Hash() uint64 { return v.hash }

// String returns the referenced variable's identifier text.
func (v *VariableReference) String() string { return v.decl.id.String() }

func (v *VariableReference) termNode() {}

// Function is an n-ary function application. Argument order is significant.
type Function struct {
	id   Identifier
	args []Term
	hash uint64
}

// NewFunction creates a function application of the given identifier to the
// given arguments. The argument slice is copied.
func NewFunction(id Identifier, args ...Term) *Function {
	if id == nil {
		panic("fol: nil function identifier")
	}
	own := make([]Term, len(args))
	for i, a := range args {
		if a == nil {
			panic("fol: nil function argument")
		}
		own[i] = a
	}
	hashes := make([]uint64, 0, len(own)+1)
	hashes = append(hashes, id.Hash())
	for _, a := range own {
		hashes = append(hashes, a.Hash())
	}
	return &Function{
		id:   id,
		args: own,
		hash: hashCombine(seedFunction, hashes...),
	}
}

// Identifier returns the function's identifier.
func (f *Function) Identifier() Identifier { return f.id }

// Arity returns the number of arguments.
func (f *Function) Arity() int { return len(f.args) }

// Argument returns the i-th argument.
func (f *Function) Argument(i int) Term { return f.args[i] }

// Arguments returns the argument list. The returned slice is shared with the
// term and must not be modified.
func (f *Function) Arguments() []Term { return f.args }

// Equal reports structural equality: equal identifiers, equal arity, and
// pairwise-equal arguments in order.
func (f *Function) Equal(other Term) bool {
	o, ok := other.(*Function)
	if !ok || !f.id.Equal(o.id) || len(f.args) != len(o.args) {
		return false
	}
	for i := range f.args {
		if !f.args[i].Equal(o.args[i]) {
			return false
		}
	}
	return true
}

// Hash returns the function's precomputed hash.
func (f *Function) Hash() uint64 { return f.hash }

// String returns the application in "f(a, b)" form.
func (f *Function) String() string {
	if len(f.args) == 0 {
		return f.id.String() + "()"
	}
	parts := make([]string, len(f.args))
	for i, a := range f.args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.id, strings.Join(parts, ", "))
}

func (f *Function) termNode() {}
