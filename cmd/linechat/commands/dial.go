package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rectcircle/linechat/internal/config"
	"github.com/rectcircle/linechat/internal/keys"
	"github.com/rectcircle/linechat/tools"
)

func dialCmd() *cobra.Command {
	var privateFile, publicFile string
	cmd := &cobra.Command{
		Use:   "dial [<host> <port>]",
		Short: "Connect to a listening peer and chat with it",
		Args:  endpointArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ep, err := resolveEndpoint(cmd, args, cfg)
			if err != nil {
				return err
			}
			load, err := keySource(privateFile, publicFile, cfg)
			if err != nil {
				return err
			}
			return runChat(cmd, chat{ep: ep, pair: load})
		},
	}
	cmd.Flags().StringVar(&privateFile, "private", "", "private key file, created when missing")
	cmd.Flags().StringVar(&publicFile, "public", "", "public key file checked against --private")
	return cmd
}

// keySource - pick where the dialer key comes from. Flags win over the config
// file, and without any key file a fresh pair is generated for the session
func keySource(privateFile, publicFile string, c *config.Config) (func() (keys.Pair, error), error) {
	cfgPrivate, cfgPublic := c.KeyPaths()
	private := tools.If(privateFile != "", privateFile, cfgPrivate)
	public := tools.If(publicFile != "", publicFile, cfgPublic)
	switch {
	case private == "" && public != "":
		return nil, fmt.Errorf("a public key file needs its private key file")
	case private == "":
		return keys.Generate, nil
	case public == "":
		return func() (keys.Pair, error) { return keys.LoadOrCreate(private) }, nil
	}
	return func() (keys.Pair, error) { return keys.Load(private, public) }, nil
}
