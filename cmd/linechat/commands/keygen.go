package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rectcircle/linechat/internal/keys"
	"github.com/rectcircle/linechat/internal/report"
	"github.com/rectcircle/linechat/internal/variable"
)

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen [<private file> <public file>]",
		Short: "Write a new key pair, never overwrites an existing file",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return cobra.ExactArgs(2)(cmd, args)
			}
			return cobra.MaximumNArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			privateFile := filepath.Join(variable.ConfigBaseDir, variable.PrivateKeyFileName)
			publicFile := filepath.Join(variable.ConfigBaseDir, variable.PublicKeyFileName)
			if len(args) == 2 {
				privateFile, publicFile = args[0], args[1]
			}

			reporter := report.NewLogReporter(cmd.OutOrStdout())
			pair, err := keys.Generate()
			if err != nil {
				reporter.Warn("Err : %v", err)
				return fatal(err)
			}
			if err := keys.Save(pair, privateFile, publicFile); err != nil {
				reporter.Warn("Err : %v", err)
				return fatal(err)
			}
			reporter.Info("Key written to the file %s with success !", privateFile)
			reporter.Info("Key written to the file %s with success !", publicFile)
			reporter.Info("Fingerprint %s", pair.Public.Fingerprint())
			return nil
		},
	}
}
