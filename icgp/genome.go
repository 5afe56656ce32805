// Package icgp implements Immutable typed CGP: a genome is a map of nodes
// keyed by globally unique, strictly increasing ids (spec §3), where a
// function node's input ids are always smaller than its own id. Mutation is
// structural rather than in-place: a changed node is inserted under a fresh
// id and everything downstream of it is "bumped" to fresh ids in turn, so no
// id is ever reused or mutated after it is first observed.
package icgp

import (
	"math/rand"

	"github.com/cbarrick/gogp/gperr"
	"github.com/cbarrick/gogp/lang"
	"github.com/cbarrick/gogp/node"
	"github.com/cbarrick/gogp/value"
)

// Options configures rand-node, mutate, atrophy, and compilation caching.
// Zero values select the documented defaults of spec §6.
type Options struct {
	ERCProb      float64
	ERCGen       func() (value.Value, lang.Type)
	NodeMutRate  float64 // default 0.03
	AtrophySteps uint64  // default 200 (a zero value selects the default)
	ForceRecache bool
}

func (o Options) withDefaults() Options {
	if o.ERCGen == nil {
		o.ERCGen = func() (value.Value, lang.Type) {
			return value.OfFloat(rand.Float64() * 10), "float"
		}
	}
	if o.NodeMutRate == 0 {
		o.NodeMutRate = 0.03
	}
	if o.AtrophySteps == 0 {
		o.AtrophySteps = 200
	}
	return o
}

// Node is the per-id node record.
type Node = node.Node[uint64]

// Cache holds the memoised compiled callable. Since node identities under an
// unchanged active set never move, the fingerprint here is taken over just
// the output-ref set rather than the whole structure (spec §4.4).
type Cache struct {
	Compiled    Callable
	Fingerprint string
}

// Callable is the compiled form of a genome.
type Callable func(args ...value.Value) ([]value.Value, error)

// Genome is an Immutable-typed-CGP program: a map of nodes keyed by id, plus
// the fixed sets of input and genome-level constant ids that atrophy and
// neutral drift must never discard.
type Genome struct {
	Nodes       map[uint64]Node
	InputIDs    []uint64 // in declared input order
	ConstantIDs []uint64 // pinned constants, never removed
	OutRefs     []uint64
	OutTypes    []lang.Type
	Lang        *lang.Language
	Resolver    lang.Resolver
	Options     Options
	Timestep    uint64
	cache       Cache
}

// InputsOf returns the input ids of the node at ref, satisfying the
// signature active.Compute expects.
func (g *Genome) InputsOf(ref uint64) []uint64 {
	return g.Nodes[ref].In
}

// RandGenome seeds fixed input and constant nodes, adds initialSize random
// body nodes, and initialises outputs by typed random selection.
func RandGenome(inputNames []string, inputTypes []lang.Type, constantValues []value.Value, constantTypes []lang.Type, outTypes []lang.Type, language *lang.Language, resolver lang.Resolver, initialSize int, opts Options) (*Genome, error) {
	opts = opts.withDefaults()
	if len(inputNames) != len(inputTypes) {
		return nil, gperr.Wrap(gperr.ErrInvalidLanguage, "mismatched input names/types")
	}
	if len(constantValues) != len(constantTypes) {
		return nil, gperr.Wrap(gperr.ErrInvalidLanguage, "mismatched constant values/types")
	}

	g := &Genome{
		Nodes:    make(map[uint64]Node),
		OutTypes: append([]lang.Type(nil), outTypes...),
		Lang:     language,
		Resolver: resolver,
		Options:  opts,
	}
	for i, name := range inputNames {
		id := nextID()
		g.Nodes[id] = node.NewInput[uint64](name, inputTypes[i])
		g.InputIDs = append(g.InputIDs, id)
	}
	for i, v := range constantValues {
		id := nextID()
		g.Nodes[id] = node.NewConstant[uint64](v, constantTypes[i])
		g.ConstantIDs = append(g.ConstantIDs, id)
	}

	for i := 0; i < initialSize; i++ {
		n, err := RandNode(g)
		if err != nil {
			return nil, err
		}
		g.Nodes[nextID()] = n
	}

	if err := g.InitOutRefs(); err != nil {
		return nil, err
	}
	return g, nil
}

// EmptyGenome seeds fixed inputs and constants without body nodes; outputs
// are nil and the genome is not executable until InitOutRefs is called.
func EmptyGenome(inputNames []string, inputTypes []lang.Type, constantValues []value.Value, constantTypes []lang.Type, outTypes []lang.Type, language *lang.Language, resolver lang.Resolver, opts Options) (*Genome, error) {
	opts = opts.withDefaults()
	g := &Genome{
		Nodes:    make(map[uint64]Node),
		OutTypes: append([]lang.Type(nil), outTypes...),
		Lang:     language,
		Resolver: resolver,
		Options:  opts,
	}
	for i, name := range inputNames {
		id := nextID()
		g.Nodes[id] = node.NewInput[uint64](name, inputTypes[i])
		g.InputIDs = append(g.InputIDs, id)
	}
	for i, v := range constantValues {
		id := nextID()
		g.Nodes[id] = node.NewConstant[uint64](v, constantTypes[i])
		g.ConstantIDs = append(g.ConstantIDs, id)
	}
	return g, nil
}

// InitOutRefs assigns each output a random node id whose type is compatible
// with the declared output type.
func (g *Genome) InitOutRefs() error {
	refs := make([]uint64, len(g.OutTypes))
	for i, t := range g.OutTypes {
		ref, ok := randomNodeOfType(g, t, nil)
		if !ok {
			return gperr.Wrapf(gperr.ErrNoCompatibleOutput, "output %d: no node of type %v", i, t)
		}
		refs[i] = ref
	}
	g.OutRefs = refs
	g.cache = Cache{}
	return nil
}

// randomNodeOfType picks a uniformly random node id whose type is a subtype
// of want, excluding ids present in exclude.
func randomNodeOfType(g *Genome, want lang.Type, exclude map[uint64]struct{}) (uint64, bool) {
	var candidates []uint64
	for id, n := range g.Nodes {
		if _, skip := exclude[id]; skip {
			continue
		}
		if g.Lang.Subtype(n.Type, want) {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[rand.Intn(len(candidates))], true
}

// Clone returns a deep, independent copy of g.
func (g *Genome) Clone() *Genome {
	c := &Genome{
		Nodes:       make(map[uint64]Node, len(g.Nodes)),
		InputIDs:    append([]uint64(nil), g.InputIDs...),
		ConstantIDs: append([]uint64(nil), g.ConstantIDs...),
		OutRefs:     append([]uint64(nil), g.OutRefs...),
		OutTypes:    append([]lang.Type(nil), g.OutTypes...),
		Lang:        g.Lang,
		Resolver:    g.Resolver,
		Options:     g.Options,
		Timestep:    g.Timestep,
		cache:       g.cache,
	}
	for id, n := range g.Nodes {
		nn := n
		nn.In = append([]uint64(nil), n.In...)
		nn.ArgTypes = append([]lang.Type(nil), n.ArgTypes...)
		c.Nodes[id] = nn
	}
	return c
}

// fixed reports whether id names an input or genome-level constant, which
// neutral drift and atrophy must never discard.
func (g *Genome) fixed(id uint64) bool {
	for _, i := range g.InputIDs {
		if i == id {
			return true
		}
	}
	for _, i := range g.ConstantIDs {
		if i == id {
			return true
		}
	}
	return false
}
