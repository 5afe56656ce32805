package pop_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbarrick/gogp/pop"
)

// intGenome is a trivial genome for driver tests: fitness is just its value.
type intGenome int

func fitnessOfInt(g intGenome) (float64, error) { return float64(g), nil }

func mutateInt(g intGenome) intGenome { return g + 1 }

func TestSimpleEvolveReachesTarget(t *testing.T) {
	init := []intGenome{0, 1, 2}
	regen := pop.NegativeSelection[intGenome](2, 1, pop.VariationOps[intGenome]{Mutate: mutateInt})

	res, err := pop.SimpleEvolve[intGenome](init, fitnessOfInt, nil, regen, pop.Options[intGenome]{
		NGens:  50,
		Target: 10,
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.History[len(res.History)-1].Max, 10.0)
	assert.LessOrEqual(t, res.NGens, 49)
}

func TestSimpleEvolveStopsAtNGens(t *testing.T) {
	init := []intGenome{0}
	regen := pop.NegativeSelection[intGenome](1, 1, pop.VariationOps[intGenome]{Mutate: func(g intGenome) intGenome { return g }})

	res, err := pop.SimpleEvolve[intGenome](init, fitnessOfInt, nil, regen, pop.Options[intGenome]{
		NGens: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.NGens)
	assert.Len(t, res.History, 5)
}

func TestParallelMapMatchesSequential(t *testing.T) {
	genomes := []intGenome{0, 1, 2, 3, 4}
	seq, err := pop.SequentialMap[intGenome](fitnessOfInt, genomes)
	require.NoError(t, err)
	par, err := pop.ParallelMap[intGenome](fitnessOfInt, genomes)
	require.NoError(t, err)
	assert.Equal(t, seq, par)
}

func TestTournamentRegeneratePreservesElitism(t *testing.T) {
	evaluated := []pop.Individual[intGenome]{}
	for i := 0; i < 6; i++ {
		f := float64(i)
		evaluated = append(evaluated, pop.Individual[intGenome]{Genome: intGenome(i), Fitness: &f})
	}
	regen := pop.Tournament[intGenome](3, 1, pop.VariationOps[intGenome]{Mutate: mutateInt})
	next := regen(evaluated)
	require.Len(t, next, 6)
	assert.Equal(t, intGenome(5), next[0].Genome) // the single elite champion survives unchanged
}

func TestFullyMixedSplitsProportionally(t *testing.T) {
	evaluated := []pop.Individual[intGenome]{}
	for i := 0; i < 10; i++ {
		f := float64(i)
		evaluated = append(evaluated, pop.Individual[intGenome]{Genome: intGenome(i), Fitness: &f})
	}
	regen := pop.FullyMixed[intGenome](1, 1.0, pop.VariationOps[intGenome]{Mutate: mutateInt})
	next := regen(evaluated)
	require.Len(t, next, 10)
	assert.Equal(t, intGenome(9), next[0].Genome)
}
