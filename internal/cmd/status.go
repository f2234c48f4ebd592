package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/swarm/internal/board"
	"github.com/felixgeelhaar/swarm/internal/ux"
)

var statusProject string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the task board for a project",
	Long: `Status loads the persisted task board and shows every work
item with its current state. Useful after a run, or mid-run from
another terminal, since the board is flushed at every feature task
boundary.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusProject, "project", "p", ".", "project path holding the .swarm state")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	b, err := board.LoadBoard(statusProject)
	if err != nil {
		return err
	}

	return printResult(b, ux.RenderBoard(b, noColor))
}
