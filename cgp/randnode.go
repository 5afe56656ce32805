package cgp

import (
	"math/rand"

	"github.com/cbarrick/gogp/gperr"
	"github.com/cbarrick/gogp/node"
)

// maxRandNodeTries bounds the retries rand-node performs across language
// entries before giving up with gperr.ErrNoTypedNode (spec §4.5.1).
const maxRandNodeTries = 32

// RandNode draws a new node to occupy absolute position at (offset). With
// probability Options.ERCProb it calls ERCGen for a constant; otherwise it
// picks a random language entry and, for each argument type, a random
// earlier node (uniform over indices [0, at)) whose declared type is
// compatible. If an entry's argument types can't all be satisfied, another
// entry is tried, up to maxRandNodeTries; ErrNoTypedNode is returned if none
// succeeds.
func RandNode(g *Genome, at int) (Node, error) {
	if rand.Float64() < g.Options.ERCProb {
		v, t := g.Options.ERCGen()
		return node.NewERC[int](v, t), nil
	}

	for try := 0; try < maxRandNodeTries; try++ {
		entry := g.Lang.Random()
		if !entry.IsFunc() {
			return node.NewConstant[int](entry.Const.Value, entry.Const.Type), nil
		}
		if entry.Arity() > 0 && at == 0 {
			continue // no earlier node exists to link to
		}
		in := make([]int, len(entry.Func.Args))
		ok := true
		for i, argT := range entry.Func.Args {
			ref, found := randomNodeOfType(g, at, argT)
			if !found {
				ok = false
				break
			}
			in[i] = ref
		}
		if ok {
			return node.NewFunction[int](entry.Func, in), nil
		}
	}
	return Node{}, gperr.Wrap(gperr.ErrNoTypedNode, "rand-node: exhausted retries")
}
