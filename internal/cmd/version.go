package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/swarm/internal/ux"
	"github.com/felixgeelhaar/swarm/internal/version"
)

var versionVerbose bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().BoolVarP(&versionVerbose, "verbose", "v", false, "show detailed version information")

	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.GetInfo()

	if outputFormat != "text" && outputFormat != "" {
		formatter, err := ux.NewFormatter(outputFormat, nil)
		if err != nil {
			return err
		}
		return formatter.Format(info)
	}

	if versionVerbose {
		fmt.Println(info.String())
		return nil
	}
	fmt.Printf("swarm %s\n", info.Short())
	return nil
}
