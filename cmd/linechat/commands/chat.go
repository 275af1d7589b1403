package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rectcircle/linechat/internal/config"
	"github.com/rectcircle/linechat/internal/connect"
	"github.com/rectcircle/linechat/internal/console"
	"github.com/rectcircle/linechat/internal/framing"
	"github.com/rectcircle/linechat/internal/handshake"
	"github.com/rectcircle/linechat/internal/keys"
	"github.com/rectcircle/linechat/internal/session"
	"github.com/rectcircle/linechat/internal/variable"
	"github.com/rectcircle/linechat/tools"
)

// exitInterrupted - conventional status for a process stopped by SIGINT
const exitInterrupted = 130

func addEndpointFlags(cmd *cobra.Command, verb string) {
	cmd.Flags().StringP("host", "H", variable.DefaultHost, "host to "+verb)
	cmd.Flags().Uint16P("port", "p", variable.DefaultPort, "port to "+verb)
}

// endpointArgs - either nothing or `<host> <port>`
func endpointArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return fmt.Errorf("accepts no argument or <host> <port>, received %d", len(args))
	}
	return nil
}

// resolveEndpoint - positional arguments win over flags, flags over the
// config file
func resolveEndpoint(cmd *cobra.Command, args []string, c *config.Config) (connect.Endpoint, error) {
	ep := connect.Endpoint{Host: c.Host, Port: c.Port}
	flags := cmd.Flags()
	if flags.Changed("host") {
		host, err := flags.GetString("host")
		if err != nil {
			return ep, err
		}
		ep.Host = host
	}
	if flags.Changed("port") {
		port, err := flags.GetUint16("port")
		if err != nil {
			return ep, err
		}
		ep.Port = port
	}
	if len(args) == 2 {
		port, err := tools.ParsePort(args[1])
		if err != nil {
			return ep, err
		}
		ep.Host, ep.Port = args[0], port
	}
	if ep.Port == 0 {
		return ep, fmt.Errorf("port must be in 1..65535")
	}
	return ep, nil
}

type chat struct {
	ep connect.Endpoint
	// pair - key material of the dialer, unused by the listener
	pair func() (keys.Pair, error)
}

// runChat - establish, exchange keys, then hand the connection to a session
// driven by the terminal. The subcommand name is the role
func runChat(cmd *cobra.Command, ch chat) error {
	role, err := connect.ParseRole(cmd.Name())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	con, err := console.New(os.Stdin, cmd.OutOrStdout(), console.Options{Prompt: cfg.Prompt, Color: cfg.Color})
	if err != nil {
		return fatal(err)
	}
	defer con.Close()

	var pair keys.Pair
	if ch.pair != nil {
		if pair, err = ch.pair(); err != nil {
			con.Warn("Cannot load the key : %v", err)
			return fatal(err)
		}
	}

	conn, err := connect.Establish(ctx, role, ch.ep, con)
	if err != nil {
		return fatal(err)
	}
	defer conn.Close()

	fc := framing.New(conn)
	var sk handshake.SessionKeys
	if role == connect.Dialer {
		sk, err = handshake.Initiate(fc, pair, con)
	} else {
		sk, err = handshake.Respond(fc, con)
	}
	if err != nil {
		con.Warn("Err : %v", err)
		return fatal(err)
	}

	if err := con.Start(); err != nil {
		return fatal(err)
	}
	result, err := session.Run(ctx, session.Config{
		Conn:     fc,
		Keys:     sk,
		Operator: con,
		Display:  con,
		Reporter: con,
		Closer:   conn,
	})
	tools.TraceF("session result: %s\n", result)
	switch result {
	case session.ResultInterrupted:
		con.Warn("Interrupted")
		return &ExitError{Code: exitInterrupted, Err: err}
	case session.ResultFailed:
		con.Warn("Err : %v", err)
		return fatal(err)
	}
	return nil
}
