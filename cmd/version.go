package cmd

import (
	"fmt"

	"github.com/hoardcache/hoard/util"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates new command instance
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Args:  cobra.NoArgs,
		Short: "Print the version number of hoard",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("hoard")
			fmt.Printf("Version: %s\n", util.Version)
			fmt.Printf("Build time: %s\n", util.BuildTime)
		},
	}
}
