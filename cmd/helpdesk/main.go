package main

import (
	"os"

	"github.com/helpdesk-io/helpdesk-cli/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
