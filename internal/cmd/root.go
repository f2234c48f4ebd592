// Package cmd wires the swarm CLI together.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	outputFormat string
	noColor      bool
)

var rootCmd = &cobra.Command{
	Use:   "swarm",
	Short: "Autonomous multi-agent software delivery",
	Long: `swarm drives a team of AI agent roles through a fixed delivery
pipeline: clarify the specification, plan, implement each feature
test-first with bounded retries and independent reviews, integrate,
and report a scored summary. All state is persisted under the
project's .swarm directory.`,
	SilenceUsage: true,
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <project>/swarm.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, json, or yaml")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")
}
