package tree

import "math/rand"

// Mutate returns a copy of g with one randomly chosen subtree, in one
// randomly chosen output root, replaced by a freshly grown random subtree of
// the same declared type, trimmed so the root never exceeds MaxExprDepth.
func Mutate(g *Genome) *Genome {
	c := g.Clone()
	if len(c.Roots) == 0 {
		return c
	}
	rootIdx := rand.Intn(len(c.Roots))
	root := c.Roots[rootIdx]

	nodes := collect(root)
	target := nodes[rand.Intn(len(nodes))]

	budget := c.Options.MutationDepth
	if d := depthOf(root, target); budget > c.Options.MaxExprDepth-d {
		budget = c.Options.MaxExprDepth - d
	}
	if budget < 0 {
		budget = 0
	}

	fresh, err := RandExpr(c, target.Type, budget)
	if err != nil {
		return c // ErrNoTypedNode: leave the genome unchanged
	}
	*target = *fresh
	Recache(c)
	return c
}

// depthOf returns the depth of target within the subtree rooted at root (0
// if target is root), or -1 if target is not found.
func depthOf(root, target *Expr) int {
	if root == target {
		return 0
	}
	for _, a := range root.Args {
		if d := depthOf(a, target); d >= 0 {
			return d + 1
		}
	}
	return -1
}

// Crossover picks a random output root of a and replaces a randomly chosen
// subtree of it with a copy of a randomly chosen, type-compatible subtree of
// b's root at the same index, trimming the result to MaxExprDepth. Neither input genome is modified; a's mutated copy is
// returned.
func Crossover(a, b *Genome) *Genome {
	c := a.Clone()
	if len(c.Roots) == 0 || len(b.Roots) == 0 {
		return c
	}
	rootIdx := rand.Intn(len(c.Roots))
	if rootIdx >= len(b.Roots) {
		return c
	}

	aRoot := c.Roots[rootIdx]
	bNodes := collect(b.Roots[rootIdx])

	aNodes := collect(aRoot)
	target := aNodes[rand.Intn(len(aNodes))]

	var compatible []*Expr
	for _, n := range bNodes {
		if c.Lang.Subtype(n.Type, target.Type) {
			compatible = append(compatible, n)
		}
	}
	if len(compatible) == 0 {
		return c
	}
	donor := cloneExpr(compatible[rand.Intn(len(compatible))])

	*target = *donor
	trimToDepth(c, aRoot, c.Options.MaxExprDepth)
	Recache(c)
	return c
}

// trimToDepth replaces any subtree whose depth would exceed max with a fresh
// random leaf of the same type.
func trimToDepth(g *Genome, e *Expr, max int) {
	if max <= 0 {
		if len(e.Args) == 0 {
			return
		}
		if leaf, err := leafOfType(g, e.Type); err == nil {
			*e = *leaf
		}
		return
	}
	for _, a := range e.Args {
		trimToDepth(g, a, max-1)
	}
}
