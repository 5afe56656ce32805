package tree

import (
	"fmt"
	"hash/fnv"

	"github.com/cbarrick/gogp/gperr"
	"github.com/cbarrick/gogp/lang"
	"github.com/cbarrick/gogp/node"
	"github.com/cbarrick/gogp/value"
)

// fingerprint hashes the full forest structure — every tree node is active
// by construction, so (unlike cgp/icgp) there is no active-set restriction
// to apply first.
func fingerprint(g *Genome) string {
	h := fnv.New64a()
	for _, r := range g.Roots {
		writeExpr(h, r)
	}
	return fmt.Sprintf("%x", h.Sum64())
}

func writeExpr(h interface{ Write([]byte) (int, error) }, e *Expr) {
	fmt.Fprintf(h, "(%d:%s:%v:%v", e.Kind, e.FuncName, e.Type, e.Value)
	for _, a := range e.Args {
		writeExpr(h, a)
	}
	fmt.Fprint(h, ")")
}

// Recache recomputes g's fingerprint and invalidates the compiled callable
// only if the forest structure actually changed.
func Recache(g *Genome) {
	fp := fingerprint(g)
	if fp == g.cache.Fingerprint && !g.Options.ForceRecache {
		return
	}
	g.cache.Fingerprint = fp
	g.cache.Compiled = nil
}

// Compile returns g's compiled callable, building it on first use or after a
// structural change invalidated the cache.
func Compile(g *Genome) (Callable, error) {
	if g.cache.Compiled != nil && !g.Options.ForceRecache {
		return g.cache.Compiled, nil
	}
	return buildAndCache(g)
}

func buildAndCache(g *Genome) (Callable, error) {
	fp := fingerprint(g)
	roots := g.Roots
	inputIndex := make(map[string]int, len(g.InputNames))
	for i, n := range g.InputNames {
		inputIndex[n] = i
	}
	resolver := g.Resolver

	callable := Callable(func(args ...value.Value) ([]value.Value, error) {
		if len(args) != len(g.InputNames) {
			return nil, gperr.Wrapf(gperr.ErrCompileError, "expected %d inputs, got %d", len(g.InputNames), len(args))
		}
		out := make([]value.Value, len(roots))
		for i, r := range roots {
			v, err := evalExpr(r, args, inputIndex, resolver)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	})

	g.cache = Cache{Compiled: callable, Fingerprint: fp}
	return callable, nil
}

func evalExpr(e *Expr, args []value.Value, inputIndex map[string]int, resolver lang.Resolver) (value.Value, error) {
	switch e.Kind {
	case node.Input:
		idx, ok := inputIndex[e.Name]
		if !ok {
			return value.Value{}, gperr.Wrapf(gperr.ErrCompileError, "unknown input %q", e.Name)
		}
		return args[idx], nil
	case node.Constant, node.ERC:
		return e.Value, nil
	case node.Function:
		fn, ok := resolver.Resolve(e.FuncName)
		if !ok {
			return value.Value{}, gperr.Wrapf(gperr.ErrCompileError, "unresolved function %q", e.FuncName)
		}
		in := make([]value.Value, len(e.Args))
		for i, a := range e.Args {
			v, err := evalExpr(a, args, inputIndex, resolver)
			if err != nil {
				return value.Value{}, err
			}
			in[i] = v
		}
		return fn(in), nil
	default:
		return value.Value{}, gperr.Wrapf(gperr.ErrCompileError, "unknown expr kind %v", e.Kind)
	}
}
