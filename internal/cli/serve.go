package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/macropower/urllang/api/v1beta1/configs"
	"github.com/macropower/urllang/pkg/detector"
	"github.com/macropower/urllang/pkg/mcp"
)

const serveExamples = `  # Serve over stdio, e.g. for an MCP client config:
  urllang serve

  # Serve over streamable HTTP:
  urllang serve --addr localhost:8080

  # Reload the detector when the configuration file changes:
  urllang serve --config ./.urllang.yaml --watch`

var errWatchWithoutFile = errors.New("--watch requires a configuration file")

type ServeArgs struct {
	*RootArgs

	Addr  string
	Watch bool
}

func NewServeArgs(rootArgs *RootArgs) *ServeArgs {
	return &ServeArgs{
		RootArgs: rootArgs,
	}
}

func (sa *ServeArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sa.Addr, "addr", "", "Serve over streamable HTTP at this address instead of stdio")
	cmd.Flags().BoolVarP(&sa.Watch, "watch", "w", false, "Watch the configuration file and reload on changes")
}

func NewServeCmd(sa *ServeArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Serve the MCP server",
		Example: serveExamples,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, sa)
		},
	}

	sa.AddFlags(cmd)

	return cmd
}

func runServe(cmd *cobra.Command, sa *ServeArgs) error {
	ctx := commandContext(cmd)

	provider, err := sa.newProvider(ctx, cmd)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(sa.Addr, provider)
	if err != nil {
		return fmt.Errorf("create MCP server: %w", err)
	}

	err = server.Serve(ctx)
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}

	return nil
}

// newProvider returns a [detector.Reloader] when a configuration file
// exists, and the default detector otherwise. With --watch, the reloader
// follows the file until ctx is done.
func (sa *ServeArgs) newProvider(ctx context.Context, cmd *cobra.Command) (detector.Provider, error) {
	path, explicit, err := sa.resolveConfigPath()
	if err != nil {
		return nil, err
	}

	r, err := detector.NewReloader(path, detectorLoader(cmd.ErrOrStderr()))
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		if sa.Watch {
			return nil, fmt.Errorf("%w: %q does not exist", errWatchWithoutFile, path)
		}

		slog.InfoContext(ctx, "no config file, serving defaults", slog.String("path", path))

		d, err := detector.New(configs.Default())
		if err != nil {
			return nil, fmt.Errorf("default config: %w", err)
		}

		return detector.Static(d), nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	if !sa.Watch {
		return r, nil
	}

	go func() {
		err := r.Watch(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "watch config", slog.String("path", r.Path()), slog.Any("err", err))
		}
	}()

	return r, nil
}
