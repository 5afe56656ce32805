// Package pop implements the discrete-generation population driver of spec
// §4.6: evolve-discrete and its simple-evolve convenience wrapper, plus the
// three regeneration policies of the same section. It is generic over the
// genome representation (tree, cgp, icgp, or a caller's own) via Go
// generics, using an explicit Individual{Genome, Fitness} record in place of
// the source's metadata-stashing. Individual carries no sub-population tag;
// coevolve keeps its two sub-populations in separate slices instead.
package pop

import (
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/cbarrick/gogp/gperr"
	"github.com/cbarrick/gogp/stats"
)

// Individual pairs a genome value with its fitness tag. Fitness is nil on a
// freshly-variated individual that has not yet been evaluated. Equality of
// two genomes (for any caller that needs it) must ignore Fitness, exactly
// as spec Design Notes §9 requires.
type Individual[G any] struct {
	Genome  G
	Fitness *float64
}

// FitnessOf returns an individual's fitness, substituting 0 for a missing or
// NaN value per the external interface contract of spec §6 ("NaN is
// forbidden... treat a NaN fitness as missing and substitute 0").
func FitnessOf[G any](ind Individual[G]) float64 {
	if ind.Fitness == nil || math.IsNaN(*ind.Fitness) {
		return 0
	}
	return *ind.Fitness
}

func fitnessOf[G any](ind Individual[G]) float64 { return FitnessOf(ind) }

// Distillation is a per-generation summary appended to History. The default
// Distil function (Default) records min/median/max fitness and the index of
// the champion.
type Distillation struct {
	Gen       int
	Min       float64
	Median    float64
	Max       float64
	BestIndex int
}

// History is the growable vector of per-generation summaries, passed into
// fitness evaluation and (in coevolve) parasite selection.
type History []Distillation

// EvalFitnessFn tags every individual of current with a fitness, given the
// previous generation and the accumulated history. Order may change; larger
// fitness is better.
type EvalFitnessFn[G any] func(current []Individual[G], prev []Individual[G], history History) ([]Individual[G], error)

// RegenerateFn produces the next population from the current, evaluated one.
type RegenerateFn[G any] func(evaluated []Individual[G]) []Individual[G]

// DistilFn summarises one evaluated generation into a Distillation.
type DistilFn[G any] func(evaluated []Individual[G], gen int) Distillation

// ProgressFn is a side-effecting callback invoked per spec §4.6's gating
// rule (first, last, every ProgressEvery-th, or on reaching Target).
type ProgressFn[G any] func(gen int, popn []Individual[G], history History)

// Options configures EvolveDiscrete. Zero values select the documented
// defaults of spec §6.
type Options[G any] struct {
	NGens         int           // default 100
	Target        float64       // default +Inf
	Distil        DistilFn[G]   // default Default[G]
	Progress      ProgressFn[G] // default no-op
	ProgressEvery int           // default 1
	PrevPopn      []Individual[G]
}

func (o Options[G]) withDefaults() Options[G] {
	if o.NGens == 0 {
		o.NGens = 100
	}
	if o.Target == 0 {
		o.Target = math.Inf(1)
	}
	if o.Distil == nil {
		o.Distil = Default[G]
	}
	if o.Progress == nil {
		o.Progress = func(int, []Individual[G], History) {}
	}
	if o.ProgressEvery == 0 {
		o.ProgressEvery = 1
	}
	return o
}

// Default is the built-in Distil: min/median/max fitness plus the champion.
func Default[G any](evaluated []Individual[G], gen int) Distillation {
	var s stats.Stats
	best := 0
	bestFit := math.Inf(-1)
	for i, ind := range evaluated {
		f := fitnessOf(ind)
		s = s.Insert(f)
		if f > bestFit {
			bestFit = f
			best = i
		}
	}
	return Distillation{
		Gen:       gen,
		Min:       s.Min(),
		Median:    s.Median(),
		Max:       s.Max(),
		BestIndex: best,
	}
}

// Result is returned by EvolveDiscrete.
type Result[G any] struct {
	Popn    []Individual[G]
	History History
	NGens   int
}

// EvolveDiscrete runs the discrete-generation loop of spec §4.6:
//
//  1. eval-popn-fitness tags every individual of the current population.
//  2. distil summarises the evaluated population into history.
//  3. the progress gate fires on first/last/every-Nth generation, or when
//     target is reached.
//  4. if max fitness >= target or the generation budget is spent, return.
//  5. otherwise regenerate produces the next population and the loop steps.
func EvolveDiscrete[G any](init []Individual[G], evalFitness EvalFitnessFn[G], regenerate RegenerateFn[G], opts Options[G]) (Result[G], error) {
	opts = opts.withDefaults()

	current := init
	var prev []Individual[G]
	if opts.PrevPopn != nil {
		prev = opts.PrevPopn
	}
	history := make(History, 0, opts.NGens)

	for gen := 0; ; gen++ {
		evaluated, err := evalFitness(current, prev, history)
		if err != nil {
			return Result[G]{}, gperr.Wrap(err, "evaluating population fitness")
		}

		d := opts.Distil(evaluated, gen)
		history = append(history, d)

		maxFitness := d.Max
		reachedTarget := maxFitness >= opts.Target
		final := reachedTarget || gen >= opts.NGens-1

		if gen == 0 || final || reachedTarget || gen%opts.ProgressEvery == 0 {
			opts.Progress(gen, evaluated, history)
		}

		if final {
			return Result[G]{Popn: evaluated, History: history, NGens: gen}, nil
		}

		prev = evaluated
		current = regenerate(evaluated)
	}
}

// FitnessFn is a pure function of one individual, the common case handled by
// SimpleEvolve.
type FitnessFn[G any] func(genome G) (float64, error)

// MapFn controls the parallelism of SimpleEvolve's per-individual fitness
// evaluation. SequentialMap and ParallelMap are provided; a caller may
// supply its own.
type MapFn[G any] func(fitness FitnessFn[G], genomes []G) ([]float64, error)

// SequentialMap evaluates fitness one genome at a time.
func SequentialMap[G any](fitness FitnessFn[G], genomes []G) ([]float64, error) {
	out := make([]float64, len(genomes))
	for i, g := range genomes {
		f, err := fitness(g)
		if err != nil {
			return nil, gperr.Wrapf(gperr.ErrFitnessError, "genome %d: %v", i, err)
		}
		out[i] = f
	}
	return out, nil
}

// ParallelMap evaluates fitness concurrently via golang.org/x/sync/errgroup,
// the single sanctioned parallelism hook of spec §5. The fitness function
// must be pure and must not mutate shared state.
func ParallelMap[G any](fitness FitnessFn[G], genomes []G) ([]float64, error) {
	out := make([]float64, len(genomes))
	var g errgroup.Group
	for i := range genomes {
		i := i
		g.Go(func() error {
			f, err := fitness(genomes[i])
			if err != nil {
				return gperr.Wrapf(gperr.ErrFitnessError, "genome %d: %v", i, err)
			}
			out[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// SimpleEvolve wraps EvolveDiscrete for the common case where fitness is a
// pure function of one individual, with mapFn controlling parallelism.
func SimpleEvolve[G any](init []G, fitness FitnessFn[G], mapFn MapFn[G], regenerate RegenerateFn[G], opts Options[G]) (Result[G], error) {
	if mapFn == nil {
		mapFn = SequentialMap[G]
	}
	initInds := make([]Individual[G], len(init))
	for i, g := range init {
		initInds[i] = Individual[G]{Genome: g}
	}
	evalFitness := func(current []Individual[G], _ []Individual[G], _ History) ([]Individual[G], error) {
		genomes := make([]G, len(current))
		for i, ind := range current {
			genomes[i] = ind.Genome
		}
		fits, err := mapFn(fitness, genomes)
		if err != nil {
			return nil, err
		}
		out := make([]Individual[G], len(current))
		for i := range current {
			f := fits[i]
			out[i] = Individual[G]{Genome: current[i].Genome, Fitness: &f}
		}
		return out, nil
	}
	return EvolveDiscrete[G](initInds, evalFitness, regenerate, opts)
}

// SortedByFitness returns indices into evaluated sorted by descending
// fitness.
func SortedByFitness[G any](evaluated []Individual[G]) []int {
	idx := make([]int, len(evaluated))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		return fitnessOf(evaluated[idx[i]]) > fitnessOf(evaluated[idx[j]])
	})
	return idx
}

func sortedByFitness[G any](evaluated []Individual[G]) []int { return SortedByFitness(evaluated) }
