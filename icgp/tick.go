package icgp

import (
	"math/rand"

	"github.com/cbarrick/gogp/active"
)

// Tick advances g's timestep and stamps every currently active node's
// LastUse, then discards any non-fixed node whose LastUse lags the new
// timestep by more than Options.AtrophySteps, together with everything that
// depends on it (spec §4.5.6). Outputs pointing at a discarded node are
// re-pointed to a random compatible node; if that fails the discard for that
// node is skipped rather than leaving a dangling output ref.
func Tick(g *Genome) *Genome {
	c := g.Clone()
	c.Timestep++

	set := active.Compute(c.OutRefs, c.InputsOf)
	for id := range set {
		n := c.Nodes[id]
		n.LastUse = c.Timestep
		c.Nodes[id] = n
	}

	if c.Options.AtrophySteps == 0 {
		return c
	}

	dep := dependents(c)
	for id, n := range c.Nodes {
		if c.fixed(id) {
			continue
		}
		if set.Contains(id) {
			continue
		}
		if c.Timestep-n.LastUse <= c.Options.AtrophySteps {
			continue
		}
		downstream := sortedIDs(downstreamOf(id, dep))
		atrophyDiscard(c, id, downstream)
	}
	return c
}

// atrophyDiscard removes id and its dependants, re-pointing any orphaned
// output ref to a random compatible node; a re-point failure leaves the node
// (and its dependants) in place rather than corrupting an output.
func atrophyDiscard(g *Genome, id uint64, downstream []uint64) {
	doomed := make(map[uint64]struct{}, len(downstream)+1)
	doomed[id] = struct{}{}
	for _, d := range downstream {
		doomed[d] = struct{}{}
	}

	orphanedOuts := map[int]struct{}{}
	for i, ref := range g.OutRefs {
		if _, lost := doomed[ref]; lost {
			orphanedOuts[i] = struct{}{}
		}
	}

	replacements := make(map[int]uint64, len(orphanedOuts))
	for i := range orphanedOuts {
		ref, ok := randomNodeOfType(g, g.OutTypes[i], doomed)
		if !ok {
			return // skip this atrophy step entirely
		}
		replacements[i] = ref
	}

	for id := range doomed {
		delete(g.Nodes, id)
	}
	for i, ref := range replacements {
		g.OutRefs[i] = ref
	}
}

// VaryNeutral keeps a genome's node count near targetSize between mutation
// steps (spec §4.5.5): if it exceeds targetSize, a random inactive, non-fixed
// node and its dependants are discarded; otherwise a fresh random node is
// appended.
func VaryNeutral(g *Genome, targetSize int) *Genome {
	c := g.Clone()
	if len(c.Nodes) <= targetSize {
		n, err := RandNode(c)
		if err != nil {
			return c
		}
		c.Nodes[nextID()] = n
		return c
	}

	set := active.Compute(c.OutRefs, c.InputsOf)
	var inactive []uint64
	for id := range c.Nodes {
		if !c.fixed(id) && !set.Contains(id) {
			inactive = append(inactive, id)
		}
	}
	if len(inactive) == 0 {
		return c
	}
	victim := inactive[rand.Intn(len(inactive))]
	dep := dependents(c)
	downstream := sortedIDs(downstreamOf(victim, dep))
	doomed := map[uint64]struct{}{victim: {}}
	for _, d := range downstream {
		doomed[d] = struct{}{}
	}
	for id := range doomed {
		delete(c.Nodes, id)
	}
	return c
}
