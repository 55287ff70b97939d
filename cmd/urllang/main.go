package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/macropower/urllang/internal/cli"
	"github.com/macropower/urllang/pkg/version"
)

func main() {
	err := fang.Execute(context.Background(), cli.NewRootCmd(),
		fang.WithVersion(version.Info()),
		fang.WithErrorHandler(cli.ErrorHandler),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err != nil {
		os.Exit(1)
	}
}
