package cgp

import (
	"fmt"
	"hash/fnv"

	"github.com/cbarrick/gogp/active"
	"github.com/cbarrick/gogp/gperr"
	"github.com/cbarrick/gogp/node"
	"github.com/cbarrick/gogp/value"
)

// fingerprint hashes the active set's structure (kind, func name, type,
// input links) in index order, so two genomes with the same reachable
// structure hash equal even if inactive nodes differ — and a genome
// recomputes the same fingerprint across calls as long as its active set is
// unchanged.
func fingerprint(g *Genome) string {
	set := active.Compute(g.OutRefs, g.InputsOf)
	h := fnv.New64a()
	fmt.Fprintf(h, "out:%v;", g.OutRefs)
	for i, n := range g.All {
		if !set.Contains(i) {
			continue
		}
		fmt.Fprintf(h, "%d:%d:%s:%v:%v;", i, n.Kind, n.FuncName, n.Type, n.In)
	}
	return fmt.Sprintf("%x", h.Sum64())
}

// Recache recomputes g's fingerprint and invalidates the compiled callable
// only if the structure actually changed — a mutation that only touched
// inactive nodes, or the identity mutation, leaves Compiled (and its
// closure identity) untouched.
func Recache(g *Genome) {
	fp := fingerprint(g)
	if fp == g.cache.Fingerprint && !g.Options.ForceRecache {
		return
	}
	g.cache.Fingerprint = fp
	g.cache.Compiled = nil
}

// Compile returns g's compiled callable, building it on first use or after a
// structural change invalidated the cache. The built callable evaluates the
// active set as a straight-line program over g.All in index order — valid
// because a back-link's target index is always strictly earlier than its
// holder's.
func Compile(g *Genome) (Callable, error) {
	if g.cache.Compiled != nil && !g.Options.ForceRecache {
		return g.cache.Compiled, nil
	}
	return buildAndCache(g)
}

func buildAndCache(g *Genome) (Callable, error) {
	set := active.Compute(g.OutRefs, g.InputsOf)
	fp := fingerprint(g)

	for _, ref := range g.OutRefs {
		if ref < 0 || ref >= len(g.All) {
			return nil, gperr.Wrapf(gperr.ErrCompileError, "output ref %d out of range", ref)
		}
	}

	callable := Callable(func(args ...value.Value) ([]value.Value, error) {
		if len(args) != g.NumInputs {
			return nil, gperr.Wrapf(gperr.ErrCompileError, "expected %d inputs, got %d", g.NumInputs, len(args))
		}
		vals := make([]value.Value, len(g.All))
		for i, n := range g.All {
			if !set.Contains(i) {
				continue
			}
			switch n.Kind {
			case node.Input:
				vals[i] = args[i]
			case node.Constant, node.ERC:
				vals[i] = n.Value
			case node.Function:
				fn, ok := g.Resolver.Resolve(n.FuncName)
				if !ok {
					return nil, gperr.Wrapf(gperr.ErrCompileError, "unresolved function %q", n.FuncName)
				}
				in := make([]value.Value, len(n.In))
				for j, ref := range n.In {
					if ref < 0 || ref >= i {
						return nil, gperr.Wrapf(gperr.ErrCompileError, "node %d: acyclicity violation via input %d", i, ref)
					}
					in[j] = vals[ref]
				}
				vals[i] = fn(in)
			default:
				return nil, gperr.Wrapf(gperr.ErrCompileError, "node %d: unknown kind %d", i, n.Kind)
			}
		}
		out := make([]value.Value, len(g.OutRefs))
		for i, ref := range g.OutRefs {
			out[i] = vals[ref]
		}
		return out, nil
	})

	g.cache = Cache{Compiled: callable, Fingerprint: fp}
	return callable, nil
}
