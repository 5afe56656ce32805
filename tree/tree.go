// Package tree implements the nested-expression genome variant: a program
// is a forest of Expr trees (one per declared output), each node either a
// leaf (input, constant, ERC) or a function applied to its own argument
// subtrees — no indirection through a shared node store, since a child is
// held by direct pointer (spec §3).
package tree

import (
	"math/rand"

	"github.com/cbarrick/gogp/gperr"
	"github.com/cbarrick/gogp/lang"
	"github.com/cbarrick/gogp/node"
	"github.com/cbarrick/gogp/value"
)

// Options configures rand-expr, mutate, crossover, and compilation caching.
type Options struct {
	ERCProb       float64
	ERCGen        func() (value.Value, lang.Type)
	TerminalProb  float64 // default 0.5: odds of picking a leaf over a function expansion at depth > 0
	MaxExprDepth  int     // default 8
	MutationDepth int     // default 3: max depth of a freshly grown replacement subtree
	ForceRecache  bool
}

func (o Options) withDefaults() Options {
	if o.ERCGen == nil {
		o.ERCGen = func() (value.Value, lang.Type) {
			return value.OfFloat(rand.Float64() * 10), "float"
		}
	}
	if o.TerminalProb == 0 {
		o.TerminalProb = 0.5
	}
	if o.MaxExprDepth == 0 {
		o.MaxExprDepth = 8
	}
	if o.MutationDepth == 0 {
		o.MutationDepth = 3
	}
	return o
}

// Expr is one node of a tree genome, held directly by pointer rather than by
// indirection through a shared store.
type Expr struct {
	Kind node.Kind

	Name string // Input

	Value value.Value // Constant, ERC

	FuncName string      // Function
	ArgTypes []lang.Type // Function
	Args     []*Expr     // Function

	Type lang.Type
}

// Arity returns the number of argument subtrees.
func (e *Expr) Arity() int { return len(e.Args) }

// Cache memoises the compiled callable alongside the fingerprint it was
// built from.
type Cache struct {
	Compiled    Callable
	Fingerprint string
}

// Callable is the compiled form of a genome.
type Callable func(args ...value.Value) ([]value.Value, error)

// Genome is a forest of Expr trees, one per declared output, sharing a
// common input vector, language, and resolver.
type Genome struct {
	Roots      []*Expr
	InputNames []string
	InputTypes []lang.Type
	OutTypes   []lang.Type
	Lang       *lang.Language
	Resolver   lang.Resolver
	Options    Options
	cache      Cache
}

// RandGenome grows initialDepth-deep random trees for every declared output.
func RandGenome(inputNames []string, inputTypes []lang.Type, outTypes []lang.Type, language *lang.Language, resolver lang.Resolver, initialDepth int, opts Options) (*Genome, error) {
	opts = opts.withDefaults()
	if len(inputNames) != len(inputTypes) {
		return nil, gperr.Wrap(gperr.ErrInvalidLanguage, "mismatched input names/types")
	}
	g := &Genome{
		InputNames: append([]string(nil), inputNames...),
		InputTypes: append([]lang.Type(nil), inputTypes...),
		OutTypes:   append([]lang.Type(nil), outTypes...),
		Lang:       language,
		Resolver:   resolver,
		Options:    opts,
	}
	for _, t := range outTypes {
		root, err := RandExpr(g, t, initialDepth)
		if err != nil {
			return nil, err
		}
		g.Roots = append(g.Roots, root)
	}
	return g, nil
}

// EmptyGenome seeds inputs/outputs without growing any root trees; Roots is
// nil until explicitly set.
func EmptyGenome(inputNames []string, inputTypes []lang.Type, outTypes []lang.Type, language *lang.Language, resolver lang.Resolver, opts Options) (*Genome, error) {
	opts = opts.withDefaults()
	return &Genome{
		InputNames: append([]string(nil), inputNames...),
		InputTypes: append([]lang.Type(nil), inputTypes...),
		OutTypes:   append([]lang.Type(nil), outTypes...),
		Lang:       language,
		Resolver:   resolver,
		Options:    opts,
	}, nil
}

// RandExpr grows a random expression of type want, at most maxDepth deep,
// per the ramped grow method: with probability ERCProb (at any depth > 0) it
// produces an ERC constant; otherwise, with probability TerminalProb, it
// stops at a leaf rather than expanding further. At depth 0, or when the
// draw fails to find a compatible function, it falls back to a compatible
// input or constant leaf.
func RandExpr(g *Genome, want lang.Type, maxDepth int) (*Expr, error) {
	if maxDepth > 0 && rand.Float64() < g.Options.ERCProb {
		v, t := g.Options.ERCGen()
		if g.Lang.Subtype(t, want) {
			return &Expr{Kind: node.ERC, Value: v, Type: t}, nil
		}
	}

	if maxDepth > 0 && rand.Float64() >= g.Options.TerminalProb {
		if entry, ok := g.Lang.RandomReturning(want); ok && entry.IsFunc() {
			args := make([]*Expr, len(entry.Func.Args))
			ok := true
			for i, argT := range entry.Func.Args {
				child, err := RandExpr(g, argT, maxDepth-1)
				if err != nil {
					ok = false
					break
				}
				args[i] = child
			}
			if ok {
				return &Expr{
					Kind:     node.Function,
					FuncName: entry.Func.Name,
					ArgTypes: append([]lang.Type(nil), entry.Func.Args...),
					Args:     args,
					Type:     entry.Func.Ret,
				}, nil
			}
		}
	}

	return leafOfType(g, want)
}

// leafOfType returns a random input or constant leaf compatible with want.
func leafOfType(g *Genome, want lang.Type) (*Expr, error) {
	var candidates []*Expr
	for i, t := range g.InputTypes {
		if g.Lang.Subtype(t, want) {
			candidates = append(candidates, &Expr{Kind: node.Input, Name: g.InputNames[i], Type: t})
		}
	}
	for _, e := range g.Lang.Entries() {
		if e.IsFunc() || !g.Lang.Subtype(e.Const.Type, want) {
			continue
		}
		candidates = append(candidates, &Expr{Kind: node.Constant, Value: e.Const.Value, Type: e.Const.Type})
	}
	if len(candidates) == 0 {
		return nil, gperr.Wrapf(gperr.ErrNoTypedNode, "no leaf compatible with %v", want)
	}
	return candidates[rand.Intn(len(candidates))], nil
}

// Clone returns a deep, independent copy of g.
func (g *Genome) Clone() *Genome {
	c := &Genome{
		InputNames: append([]string(nil), g.InputNames...),
		InputTypes: append([]lang.Type(nil), g.InputTypes...),
		OutTypes:   append([]lang.Type(nil), g.OutTypes...),
		Lang:       g.Lang,
		Resolver:   g.Resolver,
		Options:    g.Options,
		cache:      g.cache,
	}
	c.Roots = make([]*Expr, len(g.Roots))
	for i, r := range g.Roots {
		c.Roots[i] = cloneExpr(r)
	}
	return c
}

func cloneExpr(e *Expr) *Expr {
	if e == nil {
		return nil
	}
	ne := &Expr{
		Kind:     e.Kind,
		Name:     e.Name,
		Value:    e.Value,
		FuncName: e.FuncName,
		ArgTypes: append([]lang.Type(nil), e.ArgTypes...),
		Type:     e.Type,
	}
	ne.Args = make([]*Expr, len(e.Args))
	for i, a := range e.Args {
		ne.Args[i] = cloneExpr(a)
	}
	return ne
}

// depth returns the height of the subtree rooted at e (a leaf has depth 0).
func depth(e *Expr) int {
	if len(e.Args) == 0 {
		return 0
	}
	max := 0
	for _, a := range e.Args {
		if d := depth(a); d > max {
			max = d
		}
	}
	return max + 1
}

// collect returns every subtree of e, including e itself.
func collect(e *Expr) []*Expr {
	all := []*Expr{e}
	for _, a := range e.Args {
		all = append(all, collect(a)...)
	}
	return all
}
