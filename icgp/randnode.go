package icgp

import (
	"math/rand"

	"github.com/cbarrick/gogp/gperr"
	"github.com/cbarrick/gogp/node"
)

// maxRandNodeTries bounds the retries rand-node performs across language
// entries before giving up with gperr.ErrNoTypedNode (spec §4.5.1).
const maxRandNodeTries = 32

// RandNode draws a new node's content (not yet assigned an id or inserted):
// with probability ERCProb an ERC constant, otherwise a random language
// entry whose argument types are all satisfiable by existing nodes.
func RandNode(g *Genome) (Node, error) {
	return randNodeExcluding(g, nil)
}

// randNodeExcluding is RandNode restricted to candidates outside exclude,
// used by mutate to keep a replacement node from linking to itself or to
// anything downstream of the node it is replacing.
func randNodeExcluding(g *Genome, exclude map[uint64]struct{}) (Node, error) {
	if rand.Float64() < g.Options.ERCProb {
		v, t := g.Options.ERCGen()
		return node.NewERC[uint64](v, t), nil
	}

	for try := 0; try < maxRandNodeTries; try++ {
		entry := g.Lang.Random()
		if !entry.IsFunc() {
			return node.NewConstant[uint64](entry.Const.Value, entry.Const.Type), nil
		}
		in := make([]uint64, len(entry.Func.Args))
		ok := true
		for i, argT := range entry.Func.Args {
			ref, found := randomNodeOfType(g, argT, exclude)
			if !found {
				ok = false
				break
			}
			in[i] = ref
		}
		if ok {
			return node.NewFunction[uint64](entry.Func, in), nil
		}
	}
	return Node{}, gperr.Wrap(gperr.ErrNoTypedNode, "rand-node: exhausted retries")
}
