package icgp

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/cbarrick/gogp/active"
	"github.com/cbarrick/gogp/gperr"
	"github.com/cbarrick/gogp/node"
	"github.com/cbarrick/gogp/value"
)

// fingerprint hashes only the output-ref set, since ICGP node identities are
// stable once created — the structure reachable from an unchanged set of
// output ids cannot itself have changed (spec §4.4).
func fingerprint(g *Genome) string {
	refs := append([]uint64(nil), g.OutRefs...)
	sort.Slice(refs, func(i, j int) bool { return refs[i] < refs[j] })
	h := fnv.New64a()
	fmt.Fprintf(h, "%v", refs)
	return fmt.Sprintf("%x", h.Sum64())
}

// Recache recomputes g's fingerprint and invalidates the compiled callable
// only if the output-ref set actually changed.
func Recache(g *Genome) {
	fp := fingerprint(g)
	if fp == g.cache.Fingerprint && !g.Options.ForceRecache {
		return
	}
	g.cache.Fingerprint = fp
	g.cache.Compiled = nil
}

// Compile returns g's compiled callable, building it on first use or after
// the output-ref set changed. The active set is evaluated in an id-sorted
// order, valid because no node ever links to an id greater than its own.
func Compile(g *Genome) (Callable, error) {
	if g.cache.Compiled != nil && !g.Options.ForceRecache {
		return g.cache.Compiled, nil
	}
	return buildAndCache(g)
}

func buildAndCache(g *Genome) (Callable, error) {
	set := active.Compute(g.OutRefs, g.InputsOf)
	order := sortedIDs(set)
	fp := fingerprint(g)

	inputIndex := make(map[uint64]int, len(g.InputIDs))
	for i, id := range g.InputIDs {
		inputIndex[id] = i
	}

	callable := Callable(func(args ...value.Value) ([]value.Value, error) {
		if len(args) != len(g.InputIDs) {
			return nil, gperr.Wrapf(gperr.ErrCompileError, "expected %d inputs, got %d", len(g.InputIDs), len(args))
		}
		vals := make(map[uint64]value.Value, len(order))
		for _, id := range order {
			n, ok := g.Nodes[id]
			if !ok {
				return nil, gperr.Wrapf(gperr.ErrCompileError, "active node %d missing from genome", id)
			}
			switch n.Kind {
			case node.Input:
				idx, ok := inputIndex[id]
				if !ok {
					return nil, gperr.Wrapf(gperr.ErrCompileError, "node %d: unknown input id", id)
				}
				vals[id] = args[idx]
			case node.Constant, node.ERC:
				vals[id] = n.Value
			case node.Function:
				fn, ok := g.Resolver.Resolve(n.FuncName)
				if !ok {
					return nil, gperr.Wrapf(gperr.ErrCompileError, "unresolved function %q", n.FuncName)
				}
				in := make([]value.Value, len(n.In))
				for j, ref := range n.In {
					v, ok := vals[ref]
					if !ok {
						return nil, gperr.Wrapf(gperr.ErrCompileError, "node %d: input %d not yet evaluated (acyclicity violation)", id, ref)
					}
					in[j] = v
				}
				vals[id] = fn(in)
			default:
				return nil, gperr.Wrapf(gperr.ErrCompileError, "node %d: unknown kind %v", id, n.Kind)
			}
		}
		out := make([]value.Value, len(g.OutRefs))
		for i, ref := range g.OutRefs {
			v, ok := vals[ref]
			if !ok {
				return nil, gperr.Wrapf(gperr.ErrCompileError, "output %d ref %d not in active set", i, ref)
			}
			out[i] = v
		}
		return out, nil
	})

	g.cache = Cache{Compiled: callable, Fingerprint: fp}
	return callable, nil
}
