package main

import (
	"context"
	"fmt"
	"os"

	"github.com/andy/billbook/internal/app"
	"github.com/andy/billbook/internal/cli"
)

// wantsHelp reports whether the invocation is a plain help request, which
// must not trigger keyring access or a password prompt.
func wantsHelp(args []string) bool {
	for _, a := range args {
		if a == "-h" || a == "--help" || a == "help" {
			return true
		}
	}
	return false
}

func main() {
	if !wantsHelp(os.Args[1:]) {
		a, err := app.New(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "billbook: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()
		cli.SetApp(a)
	}

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
