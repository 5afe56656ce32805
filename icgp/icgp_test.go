package icgp_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbarrick/gogp/active"
	"github.com/cbarrick/gogp/icgp"
	"github.com/cbarrick/gogp/lang"
	"github.com/cbarrick/gogp/node"
	"github.com/cbarrick/gogp/value"
)

const numT = "num"

func numSubtype(a, b lang.Type) bool { return a == b }

func arithLanguage(t *testing.T) (*lang.Language, lang.Resolver) {
	t.Helper()
	l, err := lang.New(numSubtype,
		lang.Entry{Func: &lang.Func{Name: "add", Ret: numT, Args: []lang.Type{numT, numT}}},
		lang.Entry{Func: &lang.Func{Name: "mul", Ret: numT, Args: []lang.Type{numT, numT}}},
		lang.Entry{Const: &lang.Const{Value: value.Of(1), Type: numT}},
	)
	require.NoError(t, err)
	r := lang.Resolver{
		"add": func(args []value.Value) value.Value { return value.Of(value.AddInt(args[0].Int, args[1].Int)) },
		"mul": func(args []value.Value) value.Value { return value.Of(value.MulInt(args[0].Int, args[1].Int)) },
	}
	return l, r
}

func newGenome(t *testing.T) *icgp.Genome {
	t.Helper()
	l, r := arithLanguage(t)
	g, err := icgp.RandGenome(
		[]string{"x", "y"},
		[]lang.Type{numT, numT},
		[]value.Value{value.Of(2)},
		[]lang.Type{numT},
		[]lang.Type{numT},
		l, r,
		10,
		icgp.Options{},
	)
	require.NoError(t, err)
	return g
}

func assertAcyclic(t *testing.T, g *icgp.Genome) {
	t.Helper()
	for id, n := range g.Nodes {
		for _, in := range n.In {
			assert.Lessf(t, in, id, "node %d has a back-link %d that is not strictly smaller", id, in)
		}
	}
}

func TestRandGenomeIsAcyclic(t *testing.T) {
	g := newGenome(t)
	assertAcyclic(t, g)
}

func TestCompileEvaluatesOutputs(t *testing.T) {
	g := newGenome(t)
	fn, err := icgp.Compile(g)
	require.NoError(t, err)
	out, err := fn(value.Of(3), value.Of(4))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, value.Int, out[0].K)
}

func TestMutateDoesNotModifyOriginal(t *testing.T) {
	g := newGenome(t)
	before := g.Clone()
	_ = icgp.Mutate(g)
	if diff := cmp.Diff(before.Nodes, g.Nodes); diff != "" {
		t.Errorf("mutate modified the original genome's nodes (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(before.OutRefs, g.OutRefs); diff != "" {
		t.Errorf("mutate modified the original genome's outputs (-before +after):\n%s", diff)
	}
}

// TestMutateReturnsOriginalWhenEveryStepLinkFails builds a genome where the
// sole body node's argument type has no compatible candidate anywhere in the
// genome (the input is deliberately a different type), so both the
// function-mutation and link-mutation branches exhaust their candidate
// search and every tryMutateNode step rolls back. Mutate must then return
// the original genome bit-for-bit.
func TestMutateReturnsOriginalWhenEveryStepLinkFails(t *testing.T) {
	f := &lang.Func{Name: "f", Ret: "A", Args: []lang.Type{"A"}}
	l, err := lang.New(numSubtype, lang.Entry{Func: f})
	require.NoError(t, err)
	r := lang.Resolver{
		"f": func(args []value.Value) value.Value { return args[0] },
	}

	g, err := icgp.EmptyGenome([]string{"x"}, []lang.Type{"B"}, nil, nil, []lang.Type{"A"}, l, r, icgp.Options{NodeMutRate: 1})
	require.NoError(t, err)

	xID := g.InputIDs[0]
	const bodyID = uint64(1) << 40 // far past any id nextID() will mint in this test run
	g.Nodes[bodyID] = node.NewFunction[uint64](f, []uint64{xID})
	g.OutRefs = []uint64{bodyID}

	before := g.Clone()
	mutated := icgp.Mutate(g)

	if diff := cmp.Diff(before.Nodes, mutated.Nodes); diff != "" {
		t.Errorf("mutate changed nodes though every step should link-fail (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(before.OutRefs, mutated.OutRefs); diff != "" {
		t.Errorf("mutate changed outputs though every step should link-fail (-before +after):\n%s", diff)
	}
}

func TestMutateKeepsGenomeAcyclic(t *testing.T) {
	g := newGenome(t)
	for i := 0; i < 20; i++ {
		g = icgp.Mutate(g)
		assertAcyclic(t, g)
		for _, ref := range g.OutRefs {
			_, ok := g.Nodes[ref]
			assert.True(t, ok, "output ref %d dangles", ref)
		}
	}
}

func TestIDsAreGloballyIncreasing(t *testing.T) {
	icgp.ResetIDCounterForTest()
	g1 := newGenome(t)
	g2 := newGenome(t)
	var maxG1 uint64
	for id := range g1.Nodes {
		if id > maxG1 {
			maxG1 = id
		}
	}
	var minG2 uint64 = ^uint64(0)
	for id := range g2.Nodes {
		if id < minG2 {
			minG2 = id
		}
	}
	assert.Less(t, maxG1, minG2)
}

func TestTickAdvancesTimestepAndStampsActiveNodes(t *testing.T) {
	g := newGenome(t)
	g2 := icgp.Tick(g)
	assert.Equal(t, g.Timestep+1, g2.Timestep)
	for id := range active.Compute(g2.OutRefs, g2.InputsOf) {
		assert.Equal(t, g2.Timestep, g2.Nodes[id].LastUse, "active node %d not stamped", id)
	}
}

func TestVaryNeutralKeepsSizeNearTarget(t *testing.T) {
	g := newGenome(t)
	grown := icgp.VaryNeutral(g, len(g.Nodes)+5)
	assert.Greater(t, len(grown.Nodes), len(g.Nodes))

	shrunk := icgp.VaryNeutral(g, 0)
	assert.LessOrEqual(t, len(shrunk.Nodes), len(g.Nodes))
}

func TestMergeIsCollisionFree(t *testing.T) {
	l, r := arithLanguage(t)
	a, err := icgp.RandGenome([]string{"x"}, []lang.Type{numT}, nil, nil, []lang.Type{numT}, l, r, 5, icgp.Options{})
	require.NoError(t, err)
	b, err := icgp.RandGenome([]string{"y"}, []lang.Type{numT}, nil, nil, []lang.Type{numT}, l, r, 5, icgp.Options{})
	require.NoError(t, err)

	m, err := icgp.Merge(a, b, []lang.Type{numT})
	require.NoError(t, err)
	assert.Equal(t, len(a.Nodes)+len(b.Nodes), len(m.Nodes))
}
