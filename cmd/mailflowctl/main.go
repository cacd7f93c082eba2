package main

import (
	"os"

	"github.com/mukheshvadlamudi/MailFlow/cmd/mailflowctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
