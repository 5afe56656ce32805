// Package coevolve implements the two-population host/parasite driver of
// spec §4.7, layered on top of pop.EvolveDiscrete. Grounded on the teacher's
// multi-population primitives (pop/graph, diffusion) for the shape of a
// driver built atop a single-population building block, generalized here to
// the host/parasite duel structure rather than migration.
package coevolve

import (
	"math"
	"math/rand"
	"sort"

	"github.com/cbarrick/gogp/pop"
	"github.com/cbarrick/gogp/stats"
)

// DuelFn evaluates one (host, parasite) pair. The caller must ensure
// argument order matches which sub-population is which: spec §4.7 places
// the burden of that convention on the user, not on this driver.
type DuelFn[GA, GB any] func(a GA, b GB) (fitnessA, fitnessB float64, err error)

// ChampionEntry records one generation's best genome in a sub-population,
// the raw material for peak-based parasite selection.
type ChampionEntry[G any] struct {
	Gen     int
	Genome  G
	Fitness float64
}

// ParasiteSelector chooses the members of one sub-population that will duel
// every member of the other this generation.
type ParasiteSelector[G any] func(current []pop.Individual[G], champions []ChampionEntry[G]) []G

// TopN selects the n current highest-fitness members of a sub-population.
func TopN[G any](n int) ParasiteSelector[G] {
	return func(current []pop.Individual[G], _ []ChampionEntry[G]) []G {
		order := pop.SortedByFitness(current)
		if n < len(order) {
			order = order[:n]
		}
		out := make([]G, len(order))
		for i, idx := range order {
			out[i] = current[idx].Genome
		}
		return out
	}
}

// CurrentBestPlusPeaks selects the n current highest-fitness members plus up
// to m genomes drawn from the history of per-generation champions, filtered
// to local fitness peaks (spec §4.7/§4.8): of all eligible peaks, sort by
// value, keep the top 2m, shuffle, then take m.
func CurrentBestPlusPeaks[G any](n, m int) ParasiteSelector[G] {
	top := TopN[G](n)
	return func(current []pop.Individual[G], champions []ChampionEntry[G]) []G {
		picks := top(current, champions)

		values := make([]float64, len(champions))
		for i, c := range champions {
			values[i] = c.Fitness
		}
		peaks := stats.Peaks(values)
		if len(peaks) == 0 || m == 0 {
			return picks
		}

		type cand struct {
			genome G
			value  float64
		}
		cands := make([]cand, len(peaks))
		for i, p := range peaks {
			cands[i] = cand{genome: champions[p.Start].Genome, value: p.Value}
		}
		sort.Slice(cands, func(i, j int) bool { return cands[i].value > cands[j].value })

		keep := 2 * m
		if keep > len(cands) {
			keep = len(cands)
		}
		cands = cands[:keep]
		rand.Shuffle(len(cands), func(i, j int) { cands[i], cands[j] = cands[j], cands[i] })

		mm := m
		if mm > len(cands) {
			mm = len(cands)
		}
		for i := 0; i < mm; i++ {
			picks = append(picks, cands[i].genome)
		}
		return picks
	}
}

// Options configures Coevolve. Zero ParasitesForA/B default to TopN(2).
type Options[GA, GB any] struct {
	NGens         int
	Target        float64
	ProgressEvery int
	Progress      func(gen int, a []pop.Individual[GA], b []pop.Individual[GB], historyA, historyB pop.History)
	ParasitesForA ParasiteSelector[GB]
	ParasitesForB ParasiteSelector[GA]
}

func (o Options[GA, GB]) withDefaults() Options[GA, GB] {
	if o.NGens == 0 {
		o.NGens = 100
	}
	if o.Target == 0 {
		o.Target = math.Inf(1)
	}
	if o.ProgressEvery == 0 {
		o.ProgressEvery = 1
	}
	if o.ParasitesForA == nil {
		o.ParasitesForA = TopN[GB](2)
	}
	if o.ParasitesForB == nil {
		o.ParasitesForB = TopN[GA](2)
	}
	if o.Progress == nil {
		o.Progress = func(int, []pop.Individual[GA], []pop.Individual[GB], pop.History, pop.History) {}
	}
	return o
}

// Result is returned by Coevolve.
type Result[GA, GB any] struct {
	A                  []pop.Individual[GA]
	B                  []pop.Individual[GB]
	HistoryA, HistoryB pop.History
	NGens              int
}
