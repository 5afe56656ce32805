package tree_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbarrick/gogp/lang"
	"github.com/cbarrick/gogp/tree"
	"github.com/cbarrick/gogp/value"
)

const numT = "num"

func numSubtype(a, b lang.Type) bool { return a == b }

func arithLanguage(t *testing.T) (*lang.Language, lang.Resolver) {
	t.Helper()
	l, err := lang.New(numSubtype,
		lang.Entry{Func: &lang.Func{Name: "add", Ret: numT, Args: []lang.Type{numT, numT}}},
		lang.Entry{Func: &lang.Func{Name: "mul", Ret: numT, Args: []lang.Type{numT, numT}}},
		lang.Entry{Const: &lang.Const{Value: value.Of(1), Type: numT}},
	)
	require.NoError(t, err)
	r := lang.Resolver{
		"add": func(args []value.Value) value.Value { return value.Of(value.AddInt(args[0].Int, args[1].Int)) },
		"mul": func(args []value.Value) value.Value { return value.Of(value.MulInt(args[0].Int, args[1].Int)) },
	}
	return l, r
}

func newGenome(t *testing.T) *tree.Genome {
	t.Helper()
	l, r := arithLanguage(t)
	g, err := tree.RandGenome([]string{"x", "y"}, []lang.Type{numT, numT}, []lang.Type{numT}, l, r, 4, tree.Options{})
	require.NoError(t, err)
	return g
}

func TestCompileEvaluatesOutputs(t *testing.T) {
	g := newGenome(t)
	fn, err := tree.Compile(g)
	require.NoError(t, err)
	out, err := fn(value.Of(3), value.Of(4))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, value.Int, out[0].K)
}

func TestMutateDoesNotModifyOriginal(t *testing.T) {
	g := newGenome(t)
	fp1, err := tree.Compile(g)
	require.NoError(t, err)
	out1, err := fp1(value.Of(1), value.Of(2))
	require.NoError(t, err)

	_ = tree.Mutate(g)

	out2, err := fp1(value.Of(1), value.Of(2))
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
}

func TestCrossoverProducesIndependentGenome(t *testing.T) {
	a := newGenome(t)
	b := newGenome(t)
	c := tree.Crossover(a, b)
	assert.NotSame(t, a, c)
	fn, err := tree.Compile(c)
	require.NoError(t, err)
	_, err = fn(value.Of(1), value.Of(2))
	require.NoError(t, err)
}

func TestCompileIsMemoizedAcrossCalls(t *testing.T) {
	g := newGenome(t)
	fn1, err := tree.Compile(g)
	require.NoError(t, err)
	fn2, err := tree.Compile(g)
	require.NoError(t, err)
	assert.Equal(t, *(*unsafe.Pointer)(unsafe.Pointer(&fn1)), *(*unsafe.Pointer)(unsafe.Pointer(&fn2)))
}

// exprDepth mirrors tree's internal depth helper over Expr's exported fields.
func exprDepth(e *tree.Expr) int {
	if len(e.Args) == 0 {
		return 0
	}
	max := 0
	for _, a := range e.Args {
		if d := exprDepth(a); d > max {
			max = d
		}
	}
	return max + 1
}

func TestMutateAndCrossoverRespectMaxExprDepth(t *testing.T) {
	l, r := arithLanguage(t)
	const maxDepth = 2
	opts := tree.Options{MaxExprDepth: maxDepth}

	g, err := tree.RandGenome([]string{"x", "y"}, []lang.Type{numT, numT}, []lang.Type{numT}, l, r, maxDepth, opts)
	require.NoError(t, err)
	other, err := tree.RandGenome([]string{"x", "y"}, []lang.Type{numT, numT}, []lang.Type{numT}, l, r, maxDepth, opts)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		g = tree.Mutate(g)
		for _, root := range g.Roots {
			assert.LessOrEqualf(t, exprDepth(root), maxDepth, "mutate exceeded MaxExprDepth")
		}
		g = tree.Crossover(g, other)
		for _, root := range g.Roots {
			assert.LessOrEqualf(t, exprDepth(root), maxDepth, "crossover exceeded MaxExprDepth")
		}
	}
}
