// Command gogp is a thin demo driver standing in for the out-of-scope full
// CLI scaffolding: it exercises pop.SimpleEvolve against the built-in
// symbolic-regression language (gp/demo) from a YAML-configured run file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gogp",
		Short: "A genetic-programming demo driver",
	}
	cmd.AddCommand(newRunCmd())
	return cmd
}

func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
