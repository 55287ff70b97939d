package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/macropower/urllang/pkg/log"
	"github.com/macropower/urllang/pkg/telemetry"
)

const (
	cmdName     = "urllang"
	cmdDesc     = `Detect the language of web pages from their URLs.`
	cmdExamples = `  # Detect the language of a URL:
  urllang detect https://fr.example.com/

  # Detect languages for a list of URLs, one per line:
  urllang detect < urls.txt

  # Show which profile and matcher produced each result:
  urllang detect --explain 'https://example.com/docs?hl=pt_BR'

  # Write the default configuration, then validate your changes:
  urllang config write
  urllang config validate

  # Serve the MCP server over stdio, reloading on config changes:
  urllang serve --watch`
)

type RootArgs struct {
	shutdownTelemetry telemetry.ShutdownFunc

	LogLevel   string
	LogFormat  string
	ConfigPath string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&ra.LogLevel, "log-level", "info", fmt.Sprintf("Log level, one of: %s", log.AllLevels))
	cmd.PersistentFlags().
		StringVar(&ra.LogFormat, "log-format", "text", fmt.Sprintf("Log format, one of: %s", log.AllFormats))
	cmd.PersistentFlags().
		StringVarP(&ra.ConfigPath, "config", "c", "",
			"Path to the urllang configuration file, defaults to the nearest .urllang.yaml or the user config")

	var err error

	err = cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(log.AllFormats, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(log.AllLevels, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.MarkPersistentFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}
}

func NewRootCmd() *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:                cmdName,
		Short:              cmdDesc,
		Example:            cmdExamples,
		PersistentPreRunE:  setup(args),
		PersistentPostRunE: teardown(args),
	}

	args.AddFlags(cmd)

	cmd.AddCommand(
		NewDetectCmd(NewDetectArgs(args)),
		NewConfigCmd(args),
		NewInspectCmd(args),
		NewServeCmd(NewServeArgs(args)),
	)

	bindEnvVars(cmd)

	return cmd
}

func setup(ra *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		logHandler, err := log.NewHandler(cmd.ErrOrStderr(), ra.LogLevel, ra.LogFormat)
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		slog.SetDefault(slog.New(logHandler))

		ra.shutdownTelemetry, err = telemetry.Setup(commandContext(cmd), cmdName)
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}

		return nil
	}
}

func teardown(ra *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if ra.shutdownTelemetry == nil {
			return nil
		}

		err := ra.shutdownTelemetry(context.WithoutCancel(commandContext(cmd)))
		if err != nil {
			slog.Warn("shut down telemetry", slog.Any("err", err))
		}

		return nil
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
