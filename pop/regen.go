package pop

import (
	"math"
	"math/rand"
)

// VariationOps bundles the variant-specific mutation/crossover functions a
// regeneration policy needs. Crossover may be nil — per spec §4.5.4, cgp and
// icgp don't implement it in the specified variant, so their regeneration
// policies degenerate to mutation-only reproduction.
type VariationOps[G any] struct {
	Mutate    func(G) G
	Crossover func(a, b G) G
}

func (ops VariationOps[G]) reproduce(mom, dad G) G {
	if ops.Crossover == nil {
		return ops.Mutate(mom)
	}
	return ops.Mutate(ops.Crossover(mom, dad))
}

// NegativeSelection implements spec §4.6's negative-selection policy: keep
// the top selectN by fitness, preserve elitism champions verbatim, and fill
// the remaining slots by pairing random picks from the selected pool through
// crossover then mutate. Grounded on the teacher's sel.Elite (streaming
// top-k) for the shape of the selection pool.
func NegativeSelection[G any](selectN, elitism int, ops VariationOps[G]) RegenerateFn[G] {
	return func(evaluated []Individual[G]) []Individual[G] {
		order := sortedByFitness(evaluated)
		if selectN > len(order) {
			selectN = len(order)
		}
		pool := order[:selectN]

		next := make([]Individual[G], len(evaluated))
		for i := 0; i < elitism && i < len(pool); i++ {
			next[i] = evaluated[pool[i]]
		}
		for i := elitism; i < len(next); i++ {
			mom := evaluated[pool[rand.Intn(len(pool))]].Genome
			dad := evaluated[pool[rand.Intn(len(pool))]].Genome
			next[i] = Individual[G]{Genome: ops.reproduce(mom, dad)}
		}
		return next
	}
}

// Tournament implements spec §4.6's tournament policy: run n-elitism
// tournaments of `size` random contestants, send the best two through
// crossover then mutate, with ties broken by shuffling the contestant order
// so neutral mutations still drift. Grounded on the teacher's
// sel.BinaryTournament and sel.RoundRobin.
func Tournament[G any](size, elitism int, ops VariationOps[G]) RegenerateFn[G] {
	return func(evaluated []Individual[G]) []Individual[G] {
		n := len(evaluated)
		order := sortedByFitness(evaluated)

		next := make([]Individual[G], n)
		for i := 0; i < elitism && i < len(order); i++ {
			next[i] = evaluated[order[i]]
		}

		for i := elitism; i < n; i++ {
			contestants := rand.Perm(n)
			if size > n {
				size = n
			}
			contestants = contestants[:size]
			best, second := -1, -1
			for _, c := range contestants {
				switch {
				case best == -1 || fitnessOf(evaluated[c]) > fitnessOf(evaluated[best]):
					second = best
					best = c
				case second == -1 || fitnessOf(evaluated[c]) > fitnessOf(evaluated[second]):
					second = c
				}
			}
			if second == -1 {
				second = best
			}
			next[i] = Individual[G]{Genome: ops.reproduce(evaluated[best].Genome, evaluated[second].Genome)}
		}
		return next
	}
}

// FullyMixed implements spec §4.6's fully-mixed policy: a deterministic
// proportional split between elitism, mutation, and crossover, governed by
// mutationProb: after the elitism slots, round((n-elitism)*mutationProb)
// slots are filled by mutation and the rest by crossover (all by mutation
// when ops.Crossover is nil). Parents are drawn uniformly at random.
func FullyMixed[G any](elitism int, mutationProb float64, ops VariationOps[G]) RegenerateFn[G] {
	return func(evaluated []Individual[G]) []Individual[G] {
		n := len(evaluated)
		order := sortedByFitness(evaluated)

		next := make([]Individual[G], n)
		for i := 0; i < elitism && i < len(order); i++ {
			next[i] = evaluated[order[i]]
		}
		nMut := 0
		if n > elitism {
			nMut = int(math.Round(float64(n-elitism) * mutationProb))
		}
		for i := elitism; i < n; i++ {
			a := evaluated[rand.Intn(n)].Genome
			if i-elitism < nMut || ops.Crossover == nil {
				next[i] = Individual[G]{Genome: ops.Mutate(a)}
			} else {
				b := evaluated[rand.Intn(n)].Genome
				next[i] = Individual[G]{Genome: ops.Crossover(a, b)}
			}
		}
		return next
	}
}
