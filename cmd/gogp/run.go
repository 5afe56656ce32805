package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cbarrick/gogp/cgp"
	"github.com/cbarrick/gogp/demo"
	"github.com/cbarrick/gogp/pop"
	"github.com/cbarrick/gogp/value"
)

// runConfig is the YAML shape of a run file: n-gens, target, erc-prob,
// mutation rates. Library packages themselves never read YAML directly —
// only this CLI layer does, translating into the packages' Options structs.
type runConfig struct {
	PopSize     int     `yaml:"pop-size"`
	NGens       int     `yaml:"n-gens"`
	Target      float64 `yaml:"target"`
	ERCProb     float64 `yaml:"erc-prob"`
	GeneMutRate float64 `yaml:"gene-mut-rate"`
	InitialSize int     `yaml:"initial-size"`
}

func defaultRunConfig() runConfig {
	return runConfig{
		PopSize:     24,
		NGens:       200,
		Target:      0.95,
		GeneMutRate: 0.03,
		InitialSize: 10,
	}
}

func newRunCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evolve a CGP population against the demo symbolic-regression task",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := defaultRunConfig()
			if configPath != "" {
				data, err := os.ReadFile(configPath)
				if err != nil {
					return fmt.Errorf("reading run config: %w", err)
				}
				if err := yaml.Unmarshal(data, &cfg); err != nil {
					return fmt.Errorf("parsing run config: %w", err)
				}
			}

			log, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer log.Sync()

			runID := uuid.New().String()
			log.Infow("starting run", "run-id", runID, "pop-size", cfg.PopSize, "n-gens", cfg.NGens)

			return runEvolve(cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML run config")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "development-mode logging")
	return cmd
}

func runEvolve(cfg runConfig) error {
	language, err := demo.Language()
	if err != nil {
		return err
	}
	resolver := demo.Resolver()

	init := make([]*cgp.Genome, cfg.PopSize)
	for i := range init {
		g, err := cgp.RandGenome(demo.InputNames, demo.InputTypes, nil, demo.OutTypes, language, resolver, cfg.InitialSize, cgp.Options{
			ERCProb:     cfg.ERCProb,
			GeneMutRate: cfg.GeneMutRate,
		})
		if err != nil {
			return err
		}
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
	regen := pop.NegativeSelection[*cgp.Genome](cfg.PopSize/2, 1, ops)

	var lastMax float64
	progress := func(gen int, popn []pop.Individual[*cgp.Genome], history pop.History) {
		d := history[len(history)-1]
		line := fmt.Sprintf("gen %4d  min=%.4f  median=%.4f  max=%.4f", gen, d.Min, d.Median, d.Max)
		if d.Max > lastMax {
			fmt.Println(color.GreenString(line))
		} else {
			fmt.Println(color.RedString(line))
		}
		lastMax = d.Max
	}

	res, err := pop.SimpleEvolve[*cgp.Genome](init, fitness, pop.SequentialMap[*cgp.Genome], regen, pop.Options[*cgp.Genome]{
		NGens:    cfg.NGens,
		Target:   cfg.Target,
		Progress: progress,
	})
	if err != nil {
		return err
	}
	fmt.Printf("finished after %d generations, best fitness %.4f\n", res.NGens, res.History[len(res.History)-1].Max)
	return nil
}
