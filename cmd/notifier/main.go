/*
Package main provides the CLI entry point for the notifier.
*/
package main

import (
	"context"
	"os"

	"github.com/dmitrymomot/changenotify/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
