package icgp

import "sort"

// dependents indexes, for every node id, the ids that hold a direct input
// link to it.
func dependents(g *Genome) map[uint64][]uint64 {
	dep := make(map[uint64][]uint64, len(g.Nodes))
	for id, n := range g.Nodes {
		for _, in := range n.In {
			dep[in] = append(dep[in], id)
		}
	}
	return dep
}

// downstreamOf returns every id that transitively depends on id (directly or
// indirectly holds an input link reachable back to it). Since a node never
// links to an id greater than its own, downstream ids are exactly the nodes
// that would become cyclic if id's replacement linked back to them.
func downstreamOf(id uint64, dep map[uint64][]uint64) map[uint64]struct{} {
	visited := make(map[uint64]struct{})
	stack := append([]uint64(nil), dep[id]...)
	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]
		if _, ok := visited[cur]; ok {
			continue
		}
		visited[cur] = struct{}{}
		stack = append(stack, dep[cur]...)
	}
	return visited
}

func sortedIDs(s map[uint64]struct{}) []uint64 {
	ids := make([]uint64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// bumpAndRewire retires oldID and every id in downstream (already sorted
// ascending, i.e. in relative order), reinserting the downstream nodes under
// fresh ids and rewriting every In/OutRef reference accordingly. remapOld
// gives the id that references to oldID itself should be rewritten to: a
// fresh id if oldID's replacement was inserted fresh, or an existing id if
// oldID was re-parented onto an existing compatible node.
func bumpAndRewire(g *Genome, oldID uint64, newNode *Node, remapOld uint64, downstream []uint64) {
	remap := map[uint64]uint64{oldID: remapOld}
	for _, d := range downstream {
		remap[d] = nextID()
	}

	if newNode != nil {
		g.Nodes[remapOld] = *newNode
	}
	delete(g.Nodes, oldID)

	for _, d := range downstream {
		n := g.Nodes[d]
		for i, in := range n.In {
			if nn, ok := remap[in]; ok {
				n.In[i] = nn
			}
		}
		g.Nodes[remap[d]] = n
		delete(g.Nodes, d)
	}

	for i, ref := range g.OutRefs {
		if nn, ok := remap[ref]; ok {
			g.OutRefs[i] = nn
		}
	}
}

// discardAndRegenerate removes oldID and every id in downstream wholesale,
// appends len(downstream)+1 freshly drawn random nodes to keep genome size
// roughly stable, and re-points any output ref that lost its node to a
// random compatible node. Returns false (leaving g untouched by the caller's
// snapshot/rollback convention) if some orphaned output ref cannot be
// re-pointed.
func discardAndRegenerate(g *Genome, oldID uint64, downstream []uint64) bool {
	doomed := make(map[uint64]struct{}, len(downstream)+1)
	doomed[oldID] = struct{}{}
	for _, d := range downstream {
		doomed[d] = struct{}{}
	}
	for id := range doomed {
		delete(g.Nodes, id)
	}

	n := len(doomed)
	for i := 0; i < n; i++ {
		nn, err := RandNode(g)
		if err != nil {
			return false
		}
		g.Nodes[nextID()] = nn
	}

	for i, ref := range g.OutRefs {
		if _, lost := doomed[ref]; !lost {
			continue
		}
		newRef, ok := randomNodeOfType(g, g.OutTypes[i], nil)
		if !ok {
			return false
		}
		g.OutRefs[i] = newRef
	}
	return true
}
