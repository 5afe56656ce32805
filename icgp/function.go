package icgp

import (
	"math/rand"

	"github.com/cbarrick/gogp/lang"
)

// mutateFunction implements the function-mutation branch of spec §4.5.3: a
// fresh node is drawn (excluding id and everything downstream of it, so it
// can never link back into a cycle), then as many of the old node's input
// ids as remain type-compatible are carried over via links-based-on; any gap
// filled by typed random selection among non-downstream nodes. Returns false
// (mutation skipped) if the draw or the gap-fill cannot succeed.
func mutateFunction(g *Genome, id uint64, downstreamIDs []uint64) bool {
	old, ok := g.Nodes[id]
	if !ok {
		return false
	}
	exclude := excludeSet(id, downstreamIDs)

	drawn, err := randNodeExcluding(g, exclude)
	if err != nil {
		return false
	}
	if len(drawn.In) > 0 {
		linked, ok := linksBasedOn(g, old, drawn.ArgTypes, exclude)
		if !ok {
			return false
		}
		drawn.In = linked
	}
	return exchangeNode(g, id, drawn, downstreamIDs)
}

// mutateLink implements the link-mutation branch: one input position of the
// node at id is re-drawn among non-downstream nodes of the matching type.
// No-op (returns false) if the node has no inputs or no replacement exists.
func mutateLink(g *Genome, id uint64, downstreamIDs []uint64) bool {
	old, ok := g.Nodes[id]
	if !ok || len(old.In) == 0 {
		return false
	}
	exclude := excludeSet(id, downstreamIDs)

	j := rand.Intn(len(old.In))
	ref, found := randomNodeOfType(g, old.ArgTypes[j], exclude)
	if !found {
		return false
	}

	newNode := old
	newNode.In = append([]uint64(nil), old.In...)
	newNode.In[j] = ref
	return exchangeNode(g, id, newNode, downstreamIDs)
}

func excludeSet(id uint64, downstreamIDs []uint64) map[uint64]struct{} {
	exclude := make(map[uint64]struct{}, len(downstreamIDs)+1)
	exclude[id] = struct{}{}
	for _, d := range downstreamIDs {
		exclude[d] = struct{}{}
	}
	return exclude
}

// linksBasedOn groups old's input ids by their declared argument type and
// pairs them, in order, with newArgTypes; a type with no remaining old
// candidate is filled by typed random selection among non-excluded nodes.
// Returns ok=false if any position cannot be filled.
func linksBasedOn(g *Genome, old Node, newArgTypes []lang.Type, exclude map[uint64]struct{}) ([]uint64, bool) {
	pool := make(map[lang.Type][]uint64, len(old.ArgTypes))
	for i, t := range old.ArgTypes {
		pool[t] = append(pool[t], old.In[i])
	}

	result := make([]uint64, len(newArgTypes))
	for j, t := range newArgTypes {
		if ids := pool[t]; len(ids) > 0 {
			result[j] = ids[0]
			pool[t] = ids[1:]
			continue
		}
		ref, ok := randomNodeOfType(g, t, exclude)
		if !ok {
			return nil, false
		}
		result[j] = ref
	}
	return result, true
}

// exchangeNode implements the three-way disjunction of spec §4.5.3: if
// newNode's return type remains a subtype of the old node's, it is inserted
// fresh and downstream nodes are rewired and bumped; otherwise an existing
// compatible non-downstream node stands in for it (re-parent) and downstream
// is bumped; otherwise the old node and everything downstream is discarded
// and regenerated. Returns false if every path fails.
func exchangeNode(g *Genome, oldID uint64, newNode Node, downstreamIDs []uint64) bool {
	old := g.Nodes[oldID]

	if g.Lang.Subtype(newNode.Type, old.Type) {
		freshID := nextID()
		bumpAndRewire(g, oldID, &newNode, freshID, downstreamIDs)
		return true
	}

	exclude := excludeSet(oldID, downstreamIDs)
	if replacement, ok := randomNodeOfType(g, old.Type, exclude); ok {
		bumpAndRewire(g, oldID, nil, replacement, downstreamIDs)
		return true
	}

	return discardAndRegenerate(g, oldID, downstreamIDs)
}
