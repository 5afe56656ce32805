// Package cgp implements Cartesian Genetic Programming: a flat, indexed
// vector of nodes addressed by absolute position, where a function node's
// inputs are back-links to strictly earlier positions (spec §3's "flat
// graph with back-links").
package cgp

import (
	"math/rand"

	"github.com/cbarrick/gogp/gperr"
	"github.com/cbarrick/gogp/lang"
	"github.com/cbarrick/gogp/node"
	"github.com/cbarrick/gogp/value"
)

// Options configures rand-node, mutate, and compilation caching for a CGP
// genome. Zero values select the documented defaults of spec §6.
type Options struct {
	ERCProb      float64                          // default 0.0
	ERCGen       func() (value.Value, lang.Type)   // default: uniform real in [0,10)
	GeneMutRate  float64                           // default 0.03
	ForceRecache bool                              // default false
}

func (o Options) withDefaults() Options {
	if o.ERCGen == nil {
		o.ERCGen = func() (value.Value, lang.Type) {
			return value.OfFloat(rand.Float64() * 10), "float"
		}
	}
	if o.GeneMutRate == 0 {
		o.GeneMutRate = 0.03
	}
	return o
}

// Node is the per-position node record, keyed by its absolute index in the
// genome's flat node vector.
type Node = node.Node[int]

// Cache holds the memoised compiled callable, per spec §4.4's caching
// contract: a later recache that sees an equal fingerprint skips
// recompilation.
type Cache struct {
	Compiled    Callable
	Fingerprint string
}

// Callable is the compiled form of a genome: given one value per declared
// input, it returns one value per declared output.
type Callable func(args ...value.Value) ([]value.Value, error)

// Genome is a Cartesian genetic program. All contains every node: indices
// [0, NumInputs) are the fixed Input nodes, indices [NumInputs, len(All))
// are the mutable body, addressed by absolute index.
type Genome struct {
	All       []Node
	NumInputs int
	OutRefs   []int
	OutTypes  []lang.Type
	Lang      *lang.Language
	Resolver  lang.Resolver
	Options   Options
	cache     Cache
}

// numNodes returns the number of nodes in the genome, inputs included.
func (g *Genome) numNodes() int { return len(g.All) }

// InputsOf returns the input references of the node at ref, satisfying the
// signature active.Compute expects.
func (g *Genome) InputsOf(ref int) []int {
	return g.All[ref].In
}

// RandGenome seeds inputs and constants, appends initialSize-len(constants)
// random nodes, and initialises outputs by typed random selection. Fails
// gperr.ErrNoCompatibleOutput if no node of a demanded output type exists.
func RandGenome(inputNames []string, inputTypes []lang.Type, constants []node.Node[int], outTypes []lang.Type, language *lang.Language, resolver lang.Resolver, initialSize int, opts Options) (*Genome, error) {
	opts = opts.withDefaults()
	if len(inputNames) != len(inputTypes) {
		return nil, gperr.Wrap(gperr.ErrInvalidLanguage, "mismatched input names/types")
	}

	g := &Genome{
		NumInputs: len(inputNames),
		OutTypes:  append([]lang.Type(nil), outTypes...),
		Lang:      language,
		Resolver:  resolver,
		Options:   opts,
	}
	for i := range inputNames {
		g.All = append(g.All, node.NewInput[int](inputNames[i], inputTypes[i]))
	}
	for _, c := range constants {
		g.All = append(g.All, c)
	}

	for len(g.All) < initialSize+len(inputNames) {
		n, err := RandNode(g, len(g.All))
		if err != nil {
			return nil, err
		}
		g.All = append(g.All, n)
	}

	if err := g.InitOutRefs(); err != nil {
		return nil, err
	}
	return g, nil
}

// EmptyGenome seeds inputs and constants without appending random nodes;
// outputs are nil and the genome is not executable until InitOutRefs is
// called.
func EmptyGenome(inputNames []string, inputTypes []lang.Type, constants []node.Node[int], outTypes []lang.Type, language *lang.Language, resolver lang.Resolver, opts Options) (*Genome, error) {
	opts = opts.withDefaults()
	g := &Genome{
		NumInputs: len(inputNames),
		OutTypes:  append([]lang.Type(nil), outTypes...),
		Lang:      language,
		Resolver:  resolver,
		Options:   opts,
	}
	for i := range inputNames {
		g.All = append(g.All, node.NewInput[int](inputNames[i], inputTypes[i]))
	}
	for _, c := range constants {
		g.All = append(g.All, c)
	}
	return g, nil
}

// InitOutRefs assigns each output a random node whose type is compatible
// with the declared output type. Fails gperr.ErrNoCompatibleOutput if no
// candidate exists for some output.
func (g *Genome) InitOutRefs() error {
	refs := make([]int, len(g.OutTypes))
	for i, t := range g.OutTypes {
		ref, ok := randomNodeOfType(g, len(g.All), t)
		if !ok {
			return gperr.Wrapf(gperr.ErrNoCompatibleOutput, "output %d: no node of type %v", i, t)
		}
		refs[i] = ref
	}
	g.OutRefs = refs
	g.cache = Cache{}
	return nil
}

// randomNodeOfType picks a uniformly random node among indices [0, before)
// whose declared type is a subtype of want.
func randomNodeOfType(g *Genome, before int, want lang.Type) (int, bool) {
	var candidates []int
	for i := 0; i < before; i++ {
		if g.Lang.Subtype(g.All[i].Type, want) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[rand.Intn(len(candidates))], true
}

// Clone returns a deep, independent copy of g, including a fresh (shared)
// cache value — equal fingerprints still short-circuit recompilation in the
// clone since Cache is a plain value, not a pointer.
func (g *Genome) Clone() *Genome {
	c := &Genome{
		NumInputs: g.NumInputs,
		OutRefs:   append([]int(nil), g.OutRefs...),
		OutTypes:  append([]lang.Type(nil), g.OutTypes...),
		Lang:      g.Lang,
		Resolver:  g.Resolver,
		Options:   g.Options,
		cache:     g.cache,
	}
	c.All = make([]Node, len(g.All))
	for i, n := range g.All {
		nn := n
		nn.In = append([]int(nil), n.In...)
		nn.ArgTypes = append([]lang.Type(nil), n.ArgTypes...)
		c.All[i] = nn
	}
	return c
}
