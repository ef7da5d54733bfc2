package fol

import (
	"fmt"
	"strings"
)

// Sentence represents a first-order logic sentence. The set of variants is
// closed: Predicate, Negation, Conjunction, Disjunction, Implication,
// Equivalence, UniversalQuantification, and ExistentialQuantification.
// Sentences are deeply immutable after construction.
//
// Structural equality treats Conjunction, Disjunction, and Equivalence as
// commutative in their two operands; no other commutativity or associativity
// is assumed. Hashes are consistent with equality.
type Sentence interface {
	// Equal reports structural equality with another sentence.
	Equal(other Sentence) bool

	// Hash returns a hash consistent with Equal.
	Hash() uint64

	// String returns a human-readable representation of the sentence.
	String() string

	sentenceNode()
}

// Predicate is an application of a predicate identifier to an ordered list
// of term arguments. A nullary predicate is a proposition.
type Predicate struct {
	id   Identifier
	args []Term
	hash uint64
}

// NewPredicate creates a predicate application. The argument slice is copied.
func NewPredicate(id Identifier, args ...Term) *Predicate {
	if id == nil {
		panic("fol: nil predicate identifier")
	}
	own := make([]Term, len(args))
	for i, a := range args {
		if a == nil {
			panic("fol: nil predicate argument")
		}
		own[i] = a
	}
	hashes := make([]uint64, 0, len(own)+1)
	hashes = append(hashes, id.Hash())
	for _, a := range own {
		hashes = append(hashes, a.Hash())
	}
	return &Predicate{
		id:   id,
		args: own,
		hash: hashCombine(seedPredicate, hashes...),
	}
}

// NewEquality creates an application of the reserved equality predicate to
// the two given terms. Equality is treated as an ordinary binary predicate
// during inference.
func NewEquality(lhs, rhs Term) *Predicate {
	return NewPredicate(Equality, lhs, rhs)
}

// Identifier returns the predicate's identifier.
func (p *Predicate) Identifier() Identifier { return p.id }

// Arity returns the number of arguments.
func (p *Predicate) Arity() int { return len(p.args) }

// Argument returns the i-th argument.
func (p *Predicate) Argument(i int) Term { return p.args[i] }

// Arguments returns the argument list. The returned slice is shared with the
// sentence and must not be modified.
func (p *Predicate) Arguments() []Term { return p.args }

// Equal reports structural equality: equal identifiers and pairwise-equal
// arguments in order.
func (p *Predicate) Equal(other Sentence) bool {
	o, ok := other.(*Predicate)
	if !ok || !p.id.Equal(o.id) || len(p.args) != len(o.args) {
		return false
	}
	for i := range p.args {
		if !p.args[i].Equal(o.args[i]) {
			return false
		}
	}
	return true
}

// Hash returns the predicate's precomputed hash.
func (p *Predicate) Hash() uint64 { return p.hash }

// String returns the application in "P(a, b)" form.
func (p *Predicate) String() string {
	if len(p.args) == 0 {
		return p.id.String()
	}
	parts := make([]string, len(p.args))
	for i, a := range p.args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", p.id, strings.Join(parts, ", "))
}

func (p *Predicate) sentenceNode() {}

// Negation is the logical complement of its operand.
type Negation struct {
	operand Sentence
	hash    uint64
}

// NewNegation creates the negation of a sentence.
func NewNegation(operand Sentence) *Negation {
	if operand == nil {
		panic("fol: nil negation operand")
	}
	return &Negation{
		operand: operand,
		hash:    hashCombine(seedNegation, operand.Hash()),
	}
}

// Operand returns the negated sentence.
func (n *Negation) Operand() Sentence { return n.operand }

// Equal reports whether other negates an equal sentence.
func (n *Negation) Equal(other Sentence) bool {
	o, ok := other.(*Negation)
	return ok && n.operand.Equal(o.operand)
}

// Hash returns the negation's precomputed hash.
func (n *Negation) Hash() uint64 { return n.hash }

// String returns the negation in "¬φ" form.
func (n *Negation) String() string {
	return "¬" + parenthesize(n.operand)
}

func (n *Negation) sentenceNode() {}

// Conjunction is the logical "and" of two sentences. Equality and hashing
// are commutative in the two operands.
type Conjunction struct {
	left  Sentence
	right Sentence
	hash  uint64
}

// NewConjunction creates the conjunction of two sentences.
func NewConjunction(left, right Sentence) *Conjunction {
	if left == nil || right == nil {
		panic("fol: nil conjunction operand")
	}
	return &Conjunction{
		left:  left,
		right: right,
		hash:  hashCombineUnordered(seedConjunction, left.Hash(), right.Hash()),
	}
}

// Left returns the first operand.
func (c *Conjunction) Left() Sentence { return c.left }

// Right returns the second operand.
func (c *Conjunction) Right() Sentence { return c.right }

// Equal reports commutative structural equality.
func (c *Conjunction) Equal(other Sentence) bool {
	o, ok := other.(*Conjunction)
	if !ok {
		return false
	}
	return (c.left.Equal(o.left) && c.right.Equal(o.right)) ||
		(c.left.Equal(o.right) && c.right.Equal(o.left))
}

// Hash returns the conjunction's precomputed order-independent hash.
func (c *Conjunction) Hash() uint64 { return c.hash }

// String returns the conjunction in "φ ∧ ψ" form.
func (c *Conjunction) String() string {
	return parenthesize(c.left) + " ∧ " + parenthesize(c.right)
}

func (c *Conjunction) sentenceNode() {}

// Disjunction is the logical "or" of two sentences. Equality and hashing
// are commutative in the two operands.
type Disjunction struct {
	left  Sentence
	right Sentence
	hash  uint64
}

// NewDisjunction creates the disjunction of two sentences.
func NewDisjunction(left, right Sentence) *Disjunction {
	if left == nil || right == nil {
		panic("fol: nil disjunction operand")
	}
	return &Disjunction{
		left:  left,
		right: right,
		hash:  hashCombineUnordered(seedDisjunction, left.Hash(), right.Hash()),
	}
}

// Left returns the first operand.
func (d *Disjunction) Left() Sentence { return d.left }

// Right returns the second operand.
func (d *Disjunction) Right() Sentence { return d.right }

// Equal reports commutative structural equality.
func (d *Disjunction) Equal(other Sentence) bool {
	o, ok := other.(*Disjunction)
	if !ok {
		return false
	}
	return (d.left.Equal(o.left) && d.right.Equal(o.right)) ||
		(d.left.Equal(o.right) && d.right.Equal(o.left))
}

// Hash returns the disjunction's precomputed order-independent hash.
func (d *Disjunction) Hash() uint64 { return d.hash }

// String returns the disjunction in "φ ∨ ψ" form.
func (d *Disjunction) String() string {
	return parenthesize(d.left) + " ∨ " + parenthesize(d.right)
}

func (d *Disjunction) sentenceNode() {}

// Implication is the material conditional from antecedent to consequent.
// It is not commutative.
type Implication struct {
	antecedent Sentence
	consequent Sentence
	hash       uint64
}

// NewImplication creates the implication antecedent ⇒ consequent.
func NewImplication(antecedent, consequent Sentence) *Implication {
	if antecedent == nil || consequent == nil {
		panic("fol: nil implication operand")
	}
	return &Implication{
		antecedent: antecedent,
		consequent: consequent,
		hash:       hashCombine(seedImplication, antecedent.Hash(), consequent.Hash()),
	}
}

// Antecedent returns the implying sentence.
func (i *Implication) Antecedent() Sentence { return i.antecedent }

// Consequent returns the implied sentence.
func (i *Implication) Consequent() Sentence { return i.consequent }

// Equal reports structural equality, sensitive to operand order.
func (i *Implication) Equal(other Sentence) bool {
	o, ok := other.(*Implication)
	return ok && i.antecedent.Equal(o.antecedent) && i.consequent.Equal(o.consequent)
}

// Hash returns the implication's precomputed hash.
func (i *Implication) Hash() uint64 { return i.hash }

// String returns the implication in "φ ⇒ ψ" form.
func (i *Implication) String() string {
	return parenthesize(i.antecedent) + " ⇒ " + parenthesize(i.consequent)
}

func (i *Implication) sentenceNode() {}

// Equivalence is the biconditional of two sentences. Equality and hashing
// are commutative in the two operands.
type Equivalence struct {
	left  Sentence
	right Sentence
	hash  uint64
}

// NewEquivalence creates the equivalence of two sentences.
func NewEquivalence(left, right Sentence) *Equivalence {
	if left == nil || right == nil {
		panic("fol: nil equivalence operand")
	}
	return &Equivalence{
		left:  left,
		right: right,
		hash:  hashCombineUnordered(seedEquivalence, left.Hash(), right.Hash()),
	}
}

// Left returns the first operand.
func (e *Equivalence) Left() Sentence { return e.left }

// Right returns the second operand.
func (e *Equivalence) Right() Sentence { return e.right }

// Equal reports commutative structural equality.
func (e *Equivalence) Equal(other Sentence) bool {
	o, ok := other.(*Equivalence)
	if !ok {
		return false
	}
	return (e.left.Equal(o.left) && e.right.Equal(o.right)) ||
		(e.left.Equal(o.right) && e.right.Equal(o.left))
}

// Hash returns the equivalence's precomputed order-independent hash.
func (e *Equivalence) Hash() uint64 { return e.hash }

// String returns the equivalence in "φ ⇔ ψ" form.
func (e *Equivalence) String() string {
	return parenthesize(e.left) + " ⇔ " + parenthesize(e.right)
}

func (e *Equivalence) sentenceNode() {}

// UniversalQuantification binds a variable universally over its body.
type UniversalQuantification struct {
	decl *VariableDeclaration
	body Sentence
	hash uint64
}

// NewUniversalQuantification creates the sentence ∀decl. body.
func NewUniversalQuantification(decl *VariableDeclaration, body Sentence) *UniversalQuantification {
	if decl == nil {
		panic("fol: nil quantified variable declaration")
	}
	if body == nil {
		panic("fol: nil quantification body")
	}
	return &UniversalQuantification{
		decl: decl,
		body: body,
		hash: hashCombine(seedUniversal, decl.Hash(), body.Hash()),
	}
}

// Declaration returns the bound variable's declaration.
func (u *UniversalQuantification) Declaration() *VariableDeclaration { return u.decl }

// Body returns the quantified sentence.
func (u *UniversalQuantification) Body() Sentence { return u.body }

// Equal reports structural equality of declaration and body.
func (u *UniversalQuantification) Equal(other Sentence) bool {
	o, ok := other.(*UniversalQuantification)
	return ok && u.decl.Equal(o.decl) && u.body.Equal(o.body)
}

// Hash returns the quantification's precomputed hash.
func (u *UniversalQuantification) Hash() uint64 { return u.hash }

// String returns the quantification in "∀x. φ" form.
func (u *UniversalQuantification) String() string {
	return fmt.Sprintf("∀%s. %s", u.decl, parenthesize(u.body))
}

func (u *UniversalQuantification) sentenceNode() {}

// ExistentialQuantification binds a variable existentially over its body.
type ExistentialQuantification struct {
	decl *VariableDeclaration
	body Sentence
	hash uint64
}

// NewExistentialQuantification creates the sentence ∃decl. body.
func NewExistentialQuantification(decl *VariableDeclaration, body Sentence) *ExistentialQuantification {
	if decl == nil {
		panic("fol: nil quantified variable declaration")
	}
	if body == nil {
		panic("fol: nil quantification body")
	}
	return &ExistentialQuantification{
		decl: decl,
		body: body,
		hash: hashCombine(seedExistential, decl.Hash(), body.Hash()),
	}
}

// Declaration returns the bound variable's declaration.
func (e *ExistentialQuantification) Declaration() *VariableDeclaration { return e.decl }

// Body returns the quantified sentence.
func (e *ExistentialQuantification) Body() Sentence { return e.body }

// Equal reports structural equality of declaration and body.
func (e *ExistentialQuantification) Equal(other Sentence) bool {
	o, ok := other.(*ExistentialQuantification)
	return ok && e.decl.Equal(o.decl) && e.body.Equal(o.body)
}

// Hash returns the quantification's precomputed hash.
func (e *ExistentialQuantification) Hash() uint64 { return e.hash }

// String returns the quantification in "∃x. φ" form.
func (e *ExistentialQuantification) String() string {
	return fmt.Sprintf("∃%s. %s", e.decl, parenthesize(e.body))
}

func (e *ExistentialQuantification) sentenceNode() {}

// parenthesize wraps compound sentences in parentheses for unambiguous
// diagnostic output; atoms and negations print bare.
func parenthesize(s Sentence) string {
	switch s.(type) {
	case *Predicate, *Negation:
		return s.String()
	default:
		return "(" + s.String() + ")"
	}
}
