package coevolve

import (
	"github.com/cbarrick/gogp/gperr"
	"github.com/cbarrick/gogp/pop"
)

func toIndividuals[G any](genomes []G) []pop.Individual[G] {
	out := make([]pop.Individual[G], len(genomes))
	for i, g := range genomes {
		out[i] = pop.Individual[G]{Genome: g}
	}
	return out
}

// duelHostsA evaluates fitness for every GA-side host by duelling it against
// every GB parasite and averaging duel's first return value; duelHostsB does
// the same for GB-side hosts, passing the host second and averaging duel's
// second return value.
func duelHostsA[GA, GB any](hosts []pop.Individual[GA], parasites []GB, duel DuelFn[GA, GB]) ([]pop.Individual[GA], error) {
	out := make([]pop.Individual[GA], len(hosts))
	for i, h := range hosts {
		if len(parasites) == 0 {
			f := 0.0
			out[i] = pop.Individual[GA]{Genome: h.Genome, Fitness: &f}
			continue
		}
		sum := 0.0
		for _, p := range parasites {
			fa, _, err := duel(h.Genome, p)
			if err != nil {
				return nil, gperr.Wrapf(gperr.ErrFitnessError, "duelling host %d: %v", i, err)
			}
			sum += fa
		}
		f := sum / float64(len(parasites))
		out[i] = pop.Individual[GA]{Genome: h.Genome, Fitness: &f}
	}
	return out, nil
}

func duelHostsB[GA, GB any](hosts []pop.Individual[GB], parasites []GA, duel DuelFn[GA, GB]) ([]pop.Individual[GB], error) {
	out := make([]pop.Individual[GB], len(hosts))
	for i, h := range hosts {
		if len(parasites) == 0 {
			f := 0.0
			out[i] = pop.Individual[GB]{Genome: h.Genome, Fitness: &f}
			continue
		}
		sum := 0.0
		for _, p := range parasites {
			_, fb, err := duel(p, h.Genome)
			if err != nil {
				return nil, gperr.Wrapf(gperr.ErrFitnessError, "duelling host %d: %v", i, err)
			}
			sum += fb
		}
		f := sum / float64(len(parasites))
		out[i] = pop.Individual[GB]{Genome: h.Genome, Fitness: &f}
	}
	return out, nil
}

func champion[G any](evaluated []pop.Individual[G], gen int) ChampionEntry[G] {
	d := pop.Default(evaluated, gen)
	return ChampionEntry[G]{Gen: gen, Genome: evaluated[d.BestIndex].Genome, Fitness: d.Max}
}

// Coevolve runs the two-population host/parasite loop of spec §4.7. Each
// generation: parasites are selected from the other sub-population's last
// evaluated state (or, at generation zero, from its unscored initial
// members), every host is duelled against its parasites and tagged with the
// mean score, per-subpopulation distillation and progress fire, and on
// non-termination each sub-population regenerates independently.
func Coevolve[GA, GB any](initA []GA, initB []GB, duel DuelFn[GA, GB], regenA pop.RegenerateFn[GA], regenB pop.RegenerateFn[GB], opts Options[GA, GB]) (Result[GA, GB], error) {
	opts = opts.withDefaults()

	currentA := toIndividuals(initA)
	currentB := toIndividuals(initB)
	prevA := currentA
	prevB := currentB

	historyA := make(pop.History, 0, opts.NGens)
	historyB := make(pop.History, 0, opts.NGens)
	var championsA []ChampionEntry[GA]
	var championsB []ChampionEntry[GB]

	for gen := 0; ; gen++ {
		parasitesForA := opts.ParasitesForA(prevB, championsB)
		parasitesForB := opts.ParasitesForB(prevA, championsA)

		evalA, err := duelHostsA(currentA, parasitesForA, duel)
		if err != nil {
			return Result[GA, GB]{}, err
		}
		evalB, err := duelHostsB(currentB, parasitesForB, duel)
		if err != nil {
			return Result[GA, GB]{}, err
		}

		distA := pop.Default(evalA, gen)
		distB := pop.Default(evalB, gen)
		historyA = append(historyA, distA)
		historyB = append(historyB, distB)
		championsA = append(championsA, champion(evalA, gen))
		championsB = append(championsB, champion(evalB, gen))

		maxFitness := distA.Max
		if distB.Max > maxFitness {
			maxFitness = distB.Max
		}
		reachedTarget := maxFitness >= opts.Target
		final := reachedTarget || gen >= opts.NGens-1

		if gen == 0 || final || gen%opts.ProgressEvery == 0 {
			opts.Progress(gen, evalA, evalB, historyA, historyB)
		}

		if final {
			return Result[GA, GB]{A: evalA, B: evalB, HistoryA: historyA, HistoryB: historyB, NGens: gen}, nil
		}

		prevA, prevB = evalA, evalB
		currentA = regenA(evalA)
		currentB = regenB(evalB)
	}
}
