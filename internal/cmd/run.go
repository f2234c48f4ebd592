package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/swarm/internal/agent"
	"github.com/felixgeelhaar/swarm/internal/config"
	"github.com/felixgeelhaar/swarm/internal/errors"
	"github.com/felixgeelhaar/swarm/internal/eventlog"
	"github.com/felixgeelhaar/swarm/internal/knowledge"
	"github.com/felixgeelhaar/swarm/internal/lifecycle"
	"github.com/felixgeelhaar/swarm/internal/log"
	"github.com/felixgeelhaar/swarm/internal/provider"
	"github.com/felixgeelhaar/swarm/internal/spec"
	"github.com/felixgeelhaar/swarm/internal/ux"
)

var (
	runProject     string
	runAgentCmd    string
	runDryRun      bool
	runSkipClarify bool
)

var runCmd = &cobra.Command{
	Use:   "run <spec-file>",
	Short: "Run the full delivery lifecycle for a project spec",
	Long: `Run loads the project specification and drives every feature
through the gate pipeline: failing acceptance tests first, then a
bounded implement loop with test, coverage, and review gates, then
integration and a scored summary.

Agent calls are delegated to an external command (--agent-cmd) that
receives the request as JSON on stdin and prints the model reply on
stdout. With --dry-run no external command is needed; every agent
call resolves to its deterministic default.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runProject, "project", "p", ".", "project path holding the .swarm state")
	runCmd.Flags().StringVar(&runAgentCmd, "agent-cmd", "", "command invoked for each agent call")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "exercise the pipeline with agent defaults, no external command")
	runCmd.Flags().BoolVar(&runSkipClarify, "skip-clarify", false, "skip clarifying questions (assumptions are still recorded)")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(runProject)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	projectSpec, err := spec.LoadSpec(args[0])
	if err != nil {
		return err
	}

	client, err := buildClient()
	if err != nil {
		return err
	}

	events, err := eventlog.Open(runProject)
	if err != nil {
		return err
	}
	defer events.Close()

	kb, err := knowledge.Open(runProject)
	if err != nil {
		return err
	}
	defer kb.Close()

	invoker := agent.NewInvoker(client,
		agent.WithEventLog(events),
		agent.WithLogger(logger),
		agent.WithGeneration(cfg.Run.MaxTokens, cfg.Run.Temperature),
	)

	orchestrator := lifecycle.NewOrchestrator(projectSpec, invoker, events, kb, logger, lifecycle.Options{
		ProjectPath:   runProject,
		OutputPath:    cfg.Run.OutputPath,
		MinScore:      cfg.Run.MinScore,
		MaxIterations: cfg.Run.MaxIterations,
		MaxQuestions:  cfg.Run.MaxQuestions,
		SkipClarify:   runSkipClarify || cfg.Run.SkipClarify,
	})

	summary, err := orchestrator.Run(cmd.Context())
	if err != nil {
		return err
	}

	return printResult(summary, ux.RenderSummary(summary, noColor))
}

// buildClient selects the agent-calling capability for this run
func buildClient() (provider.Client, error) {
	if runDryRun {
		return provider.NewMockClient(), nil
	}
	if runAgentCmd == "" {
		return nil, errors.NewProviderNotConfiguredError()
	}
	return provider.NewExecClient(runAgentCmd)
}

// loadConfig resolves the config file against the project path
func loadConfig(project string) (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = filepath.Join(project, "swarm.yaml")
	}
	return config.Load(path)
}

// newLogger builds the structured logger from config and installs it as
// the package-level fallback
func newLogger(cfg *config.Config) *log.Logger {
	logCfg := log.DefaultConfig()
	logCfg.Level = log.ParseLevel(cfg.Log.Level)
	logCfg.Format = log.ParseFormat(cfg.Log.Format)
	logger := log.New(logCfg)
	log.SetGlobal(logger)
	return logger
}

// printResult renders either the styled text view or the structured form
func printResult(data any, text string) error {
	if outputFormat == "text" || outputFormat == "" {
		_, err := fmt.Fprint(os.Stdout, text)
		return err
	}
	formatter, err := ux.NewFormatter(outputFormat, nil)
	if err != nil {
		return err
	}
	return formatter.Format(data)
}
