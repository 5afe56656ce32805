package demo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cbarrick/gogp/cgp"
	"github.com/cbarrick/gogp/demo"
	"github.com/cbarrick/gogp/pop"
	"github.com/cbarrick/gogp/value"
)

// TestEvolveRediscoversPolynomial runs the demo symbolic-regression task end
// to end against a population of CGP genomes, exercising RandGenome, Mutate,
// Compile, and EvolveDiscrete together. Slow: skipped under -short.
func TestEvolveRediscoversPolynomial(t *testing.T) {
	if testing.Short() {
		t.Skip("end-to-end evolution run; skipped under -short")
	}

	language, err := demo.Language()
	require.NoError(t, err)
	resolver := demo.Resolver()

	const popSize = 24
	init := make([]*cgp.Genome, popSize)
	for i := range init {
		g, err := cgp.RandGenome(demo.InputNames, demo.InputTypes, nil, demo.OutTypes, language, resolver, 10, cgp.Options{})
		require.NoError(t, err)
		init[i] = g
	}

	fitness := func(g *cgp.Genome) (float64, error) {
		callable, err := cgp.Compile(g)
		if err != nil {
			return 0, err
		}
		return demo.Fitness(func(args ...value.Value) ([]value.Value, error) { return callable(args...) }, 17)
	}

	ops := pop.VariationOps[*cgp.Genome]{
		Mutate: func(g *cgp.Genome) *cgp.Genome { return cgp.Mutate(g) },
	}
	regen := pop.NegativeSelection[*cgp.Genome](popSize/2, 1, ops)

	res, err := pop.SimpleEvolve[*cgp.Genome](init, fitness, pop.SequentialMap[*cgp.Genome], regen, pop.Options[*cgp.Genome]{
		NGens:  200,
		Target: 0.95,
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.History)
	best := res.History[len(res.History)-1].Max
	require.Greater(t, best, 0.2) // evolution made measurable progress
}
