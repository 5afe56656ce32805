// Package node defines the tagged node record shared, abstractly, by every
// genome variant (spec §3: Input, Constant, Function, ERC), parameterized
// over the variant's reference type (int offset for cgp, uint64 id for
// icgp). Tree genomes use their own recursive Expr type (tree/tree.go)
// instead of Node, since tree children are held by direct pointer rather
// than by indirection through a shared store.
package node

import (
	"github.com/cbarrick/gogp/lang"
	"github.com/cbarrick/gogp/value"
)

// Kind tags which of the four node shapes a Node holds.
type Kind int

const (
	Input Kind = iota
	Constant
	Function
	ERC
)

func (k Kind) String() string {
	switch k {
	case Input:
		return "Input"
	case Constant:
		return "Constant"
	case Function:
		return "Function"
	case ERC:
		return "ERC"
	default:
		return "Invalid"
	}
}

// Node is a single node of a program graph, keyed externally by Ref (an int
// offset in cgp, a uint64 id in icgp).
type Node[Ref comparable] struct {
	Kind Kind

	// Input
	Name string

	// Constant, ERC
	Value value.Value

	// Function
	FuncName string
	ArgTypes []lang.Type // copied from the language entry at birth
	In       []Ref       // ordered input references; len == arity

	// Common
	Type    lang.Type // declared/return type of this node
	LastUse uint64    // timestep of last inclusion in an active set (icgp atrophy)
}

// Arity returns the number of input references the node carries.
func (n Node[Ref]) Arity() int { return len(n.In) }

// IsLeaf reports whether the node has no inputs (Input, Constant, ERC).
func (n Node[Ref]) IsLeaf() bool { return n.Kind != Function }

// NewInput builds an Input node.
func NewInput[Ref comparable](name string, t lang.Type) Node[Ref] {
	return Node[Ref]{Kind: Input, Name: name, Type: t}
}

// NewConstant builds a Constant node.
func NewConstant[Ref comparable](v value.Value, t lang.Type) Node[Ref] {
	return Node[Ref]{Kind: Constant, Value: v, Type: t}
}

// NewERC builds an ERC node from a value already drawn by the caller's
// generator.
func NewERC[Ref comparable](v value.Value, t lang.Type) Node[Ref] {
	return Node[Ref]{Kind: ERC, Value: v, Type: t}
}

// NewFunction builds a Function node from a language entry's Func spec and
// a concrete vector of input references.
func NewFunction[Ref comparable](f *lang.Func, in []Ref) Node[Ref] {
	return Node[Ref]{
		Kind:     Function,
		FuncName: f.Name,
		ArgTypes: append([]lang.Type(nil), f.Args...),
		In:       append([]Ref(nil), in...),
		Type:     f.Ret,
	}
}
