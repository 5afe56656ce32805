package icgp

import (
	"math/rand"

	"github.com/cbarrick/gogp/lang"
)

// Mutate returns a mutated copy of g, implementing spec §4.5.3: non-fixed
// node ids are visited in decreasing order so that a step never disturbs an
// id already processed. Each step is applied to a private snapshot of the
// working genome and rolled back in full if it cannot be completed (a
// link-mutation, function-mutation, or exchange-node failure), so a step
// that cannot succeed is a pure no-op rather than a partial one. Outputs are
// mutated last, then the whole genome is recached.
func Mutate(g *Genome) *Genome {
	c := g.Clone()
	rate := c.Options.NodeMutRate

	ids := bodyIDsDecreasing(c)
	for _, id := range ids {
		if _, ok := c.Nodes[id]; !ok {
			continue // already retired by an earlier (higher-id) step's bump
		}
		if rand.Float64() >= rate {
			continue
		}
		tryMutateNode(c, id)
	}

	for j := range c.OutRefs {
		if rand.Float64() >= rate {
			continue
		}
		if ref, ok := randomNodeOfType(c, c.OutTypes[j], nil); ok {
			c.OutRefs[j] = ref
		} else {
			// ErrNoCompatibleOutput: leave this output unchanged.
			continue
		}
	}

	Recache(c)
	return c
}

// bodyIDsDecreasing returns every non-fixed node id of g, sorted descending.
func bodyIDsDecreasing(g *Genome) []uint64 {
	var ids []uint64
	for id := range g.Nodes {
		if !g.fixed(id) {
			ids = append(ids, id)
		}
	}
	sortDesc(ids)
	return ids
}

func sortDesc(ids []uint64) {
	for i := 1; i < len(ids); i++ {
		v := ids[i]
		j := i - 1
		for j >= 0 && ids[j] < v {
			ids[j+1] = ids[j]
			j--
		}
		ids[j+1] = v
	}
}

// tryMutateNode attempts one id's mutation step, snapshotting g.Nodes/g.OutRefs
// first and restoring them verbatim if the step fails at any point.
func tryMutateNode(g *Genome, id uint64) {
	snapNodes, snapOut := snapshot(g)

	dep := dependents(g)
	downstream := sortedIDs(downstreamOf(id, dep))

	var ok bool
	if rand.Float64() < 0.5 {
		ok = mutateFunction(g, id, downstream)
	} else {
		ok = mutateLink(g, id, downstream)
	}
	if !ok {
		restore(g, snapNodes, snapOut)
	}
}

func snapshot(g *Genome) (map[uint64]Node, []uint64) {
	nodes := make(map[uint64]Node, len(g.Nodes))
	for id, n := range g.Nodes {
		nn := n
		nn.In = append([]uint64(nil), n.In...)
		nn.ArgTypes = append([]lang.Type(nil), n.ArgTypes...)
		nodes[id] = nn
	}
	out := append([]uint64(nil), g.OutRefs...)
	return nodes, out
}

func restore(g *Genome, nodes map[uint64]Node, out []uint64) {
	g.Nodes = nodes
	g.OutRefs = out
}
