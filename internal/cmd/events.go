package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/swarm/internal/eventlog"
	"github.com/felixgeelhaar/swarm/internal/ux"
)

var (
	eventsProject string
	eventsAction  string
	eventsTail    int
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show the append-only event log for a project",
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().StringVarP(&eventsProject, "project", "p", ".", "project path holding the .swarm state")
	eventsCmd.Flags().StringVar(&eventsAction, "action", "", "filter by action: tool_call, llm_request, gate_check, handoff, reflection")
	eventsCmd.Flags().IntVarP(&eventsTail, "tail", "n", 0, "show only the last N events")

	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	events, err := eventlog.Read(eventsProject)
	if err != nil {
		return err
	}

	if eventsAction != "" {
		filtered := events[:0]
		for _, e := range events {
			if e.Action == eventlog.Action(eventsAction) {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}
	if eventsTail > 0 && len(events) > eventsTail {
		events = events[len(events)-eventsTail:]
	}

	if outputFormat == "text" || outputFormat == "" {
		var sb strings.Builder
		for _, e := range events {
			fmt.Fprintf(&sb, "%s  %-12s %s %s\n",
				e.Timestamp.Format("15:04:05"), e.Action, e.AgentRole, e.Output)
		}
		_, err := fmt.Fprint(os.Stdout, sb.String())
		return err
	}

	formatter, err := ux.NewFormatter(outputFormat, nil)
	if err != nil {
		return err
	}
	return formatter.Format(events)
}
