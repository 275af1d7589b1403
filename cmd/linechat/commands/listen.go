package commands

import "github.com/spf13/cobra"

func listenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listen [<host> <port>]",
		Short: "Wait for one peer and chat with it",
		Args:  endpointArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ep, err := resolveEndpoint(cmd, args, cfg)
			if err != nil {
				return err
			}
			return runChat(cmd, chat{ep: ep})
		},
	}
	addEndpointFlags(cmd, "listen on")
	return cmd
}
