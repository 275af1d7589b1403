package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rectcircle/linechat/internal/variable"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the program version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "linechat %s\n", variable.Version)
			return nil
		},
	}
}
