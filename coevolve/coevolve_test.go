package coevolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbarrick/gogp/coevolve"
	"github.com/cbarrick/gogp/pop"
)

// A trivial duel: the generator (int) wants to be large, the discriminator
// (int) wants to be close to the generator's value; this is enough to
// exercise the driver's plumbing without pulling in a real GP genome.

type generator int
type discriminator int

func duel(a generator, b discriminator) (fa, fb float64, err error) {
	diff := float64(a) - float64(b)
	if diff < 0 {
		diff = -diff
	}
	fa = float64(a)
	fb = -diff
	return fa, fb, nil
}

func TestCoevolveTerminatesOnTarget(t *testing.T) {
	initA := []generator{1, 2, 3}
	initB := []discriminator{1, 2, 3}

	regenA := pop.NegativeSelection[generator](2, 1, pop.VariationOps[generator]{
		Mutate: func(g generator) generator { return g + 1 },
	})
	regenB := pop.NegativeSelection[discriminator](2, 1, pop.VariationOps[discriminator]{
		Mutate: func(g discriminator) discriminator { return g + 1 },
	})

	res, err := coevolve.Coevolve[generator, discriminator](initA, initB, duel, regenA, regenB, coevolve.Options[generator, discriminator]{
		NGens:  50,
		Target: 10,
	})
	require.NoError(t, err)
	maxFit := res.HistoryA[len(res.HistoryA)-1].Max
	assert.GreaterOrEqual(t, maxFit, 10.0)
}

func TestTopNSelectsHighestFitness(t *testing.T) {
	f1, f2, f3 := 1.0, 5.0, 3.0
	current := []pop.Individual[generator]{
		{Genome: 1, Fitness: &f1},
		{Genome: 2, Fitness: &f2},
		{Genome: 3, Fitness: &f3},
	}
	sel := coevolve.TopN[generator](2)
	picks := sel(current, nil)
	assert.ElementsMatch(t, []generator{2, 3}, picks)
}

func TestCurrentBestPlusPeaksFallsBackWithoutHistory(t *testing.T) {
	f1 := 1.0
	current := []pop.Individual[generator]{{Genome: 1, Fitness: &f1}}
	sel := coevolve.CurrentBestPlusPeaks[generator](1, 3)
	picks := sel(current, nil)
	assert.Equal(t, []generator{1}, picks)
}

func TestCurrentBestPlusPeaksDrawsFromChampionHistory(t *testing.T) {
	f1 := 1.0
	current := []pop.Individual[generator]{{Genome: 99, Fitness: &f1}}
	champions := []coevolve.ChampionEntry[generator]{
		{Gen: 0, Genome: 1, Fitness: 1},
		{Gen: 1, Genome: 2, Fitness: 5},
		{Gen: 2, Genome: 3, Fitness: 2},
	}
	sel := coevolve.CurrentBestPlusPeaks[generator](1, 1)
	picks := sel(current, champions)
	assert.Contains(t, picks, generator(99))
	assert.Contains(t, picks, generator(2))
}
