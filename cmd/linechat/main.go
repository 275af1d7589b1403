package main

import (
	"errors"
	"os"

	"github.com/rectcircle/linechat/cmd/linechat/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		var exitErr *commands.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		// usage already printed
		os.Exit(0)
	}
}
