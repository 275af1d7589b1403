package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rectcircle/linechat/internal/config"
	"github.com/rectcircle/linechat/internal/variable"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

// ExitError - failure after the arguments were accepted, the process exits
// with Code
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func fatal(err error) error {
	return &ExitError{Code: 1, Err: err}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "linechat",
		Short:         "Peer to peer line chat over TCP",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				variable.Trace = true
			}
			path := cfgFile
			if path == "" {
				path = config.DefaultPath()
			}
			c, err := config.Load(path)
			if err != nil {
				return err
			}
			cfg = c
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.linechat/config.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print trace logs")

	root.AddCommand(listenCmd(), dialCmd(), keygenCmd(), versionCmd())
	return root
}

// Execute - run the command line. A usage error is printed together with the
// usage text and returned as is, see ExitError for the other failures
func Execute() error {
	cmd, err := newRootCmd().ExecuteC()
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	cmd.Usage()
	return err
}
