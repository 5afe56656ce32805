package cgp

import "math/rand"

// Mutate returns a mutated copy of g, implementing spec §4.5.2: for every
// non-input node in order, with probability GeneMutRate either the node's
// function is replaced wholesale (preserving as much input-link continuity
// as arity allows) or each of its input links is independently resampled at
// the same rate; every output is independently resampled at the same rate.
// The original genome is never modified; recache runs at the end.
func Mutate(g *Genome) *Genome {
	c := g.Clone()
	rate := c.Options.GeneMutRate

	for i := c.NumInputs; i < len(c.All); i++ {
		if rand.Float64() < rate {
			mutateFunction(c, i)
		} else {
			mutateLinks(c, i, rate)
		}
	}

	for j := range c.OutRefs {
		if rand.Float64() < rate {
			if ref, ok := randomBodyNode(c); ok {
				c.OutRefs[j] = ref
			}
		}
	}

	Recache(c)
	return c
}

// mutateFunction replaces the node at i with a fresh random node, preserving
// as much of the old input vector as the new node's arity allows: if the new
// arity is <= the old, the prefix of the old input vector is kept; otherwise
// the new node's extra links (beyond the old arity) are kept from the draw.
func mutateFunction(c *Genome, i int) {
	newNode, err := RandNode(c, i)
	if err != nil {
		return // ErrNoTypedNode: leave the node unchanged
	}
	old := c.All[i]
	if len(newNode.In) > 0 && len(old.In) > 0 {
		keep := len(newNode.In)
		if len(old.In) < keep {
			keep = len(old.In)
		}
		copy(newNode.In[:keep], old.In[:keep])
	}
	c.All[i] = newNode
}

// mutateLinks independently resamples each input link of the node at i.
func mutateLinks(c *Genome, i int, rate float64) {
	n := &c.All[i]
	for j := range n.In {
		if rand.Float64() >= rate {
			continue
		}
		want := n.ArgTypes[j]
		if ref, ok := randomNodeOfType(c, i, want); ok {
			n.In[j] = ref
		}
	}
}

// randomBodyNode picks a uniformly random non-input node index.
func randomBodyNode(c *Genome) (int, bool) {
	if len(c.All) <= c.NumInputs {
		return 0, false
	}
	return c.NumInputs + rand.Intn(len(c.All)-c.NumInputs), true
}
