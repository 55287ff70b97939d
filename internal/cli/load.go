package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/macropower/urllang/api"
	"github.com/macropower/urllang/api/v1beta1/configs"
	"github.com/macropower/urllang/pkg/config"
	"github.com/macropower/urllang/pkg/detector"
)

// resolveConfigPath returns the configuration file to use, and whether it
// was set explicitly.
func (ra *RootArgs) resolveConfigPath() (string, bool, error) {
	if ra.ConfigPath != "" {
		return ra.ConfigPath, true, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("get working directory: %w", err)
	}

	return api.ResolveConfigPath(cwd, "config.yaml"), false, nil
}

// loadConfig loads the active configuration. A missing file is an error only
// when it was set explicitly; otherwise the embedded default configuration
// is used and the returned path is empty.
func (ra *RootArgs) loadConfig(cmd *cobra.Command) (*configs.Config, string, error) {
	path, explicit, err := ra.resolveConfigPath()
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadConfigFile(path, isTerminal(cmd.ErrOrStderr()))
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		slog.Debug("no config file, using defaults", slog.String("path", path))

		return configs.Default(), "", nil
	}
	if err != nil {
		return nil, path, fmt.Errorf("invalid config %q: %w", path, err)
	}

	slog.Debug("loaded config", slog.String("path", path))

	return cfg, path, nil
}

// loadDetector builds a detector from the active configuration.
func (ra *RootArgs) loadDetector(cmd *cobra.Command) (*detector.Detector, string, error) {
	cfg, path, err := ra.loadConfig(cmd)
	if err != nil {
		return nil, path, err
	}

	d, err := detector.New(cfg)
	if err != nil {
		if path == "" {
			return nil, path, fmt.Errorf("default config: %w", err)
		}

		return nil, path, fmt.Errorf("invalid config %q: %w", path, err)
	}

	return d, path, nil
}

func loadConfigFile(path string, color bool) (*configs.Config, error) {
	l, err := configs.NewLoaderFromFile(path, config.WithColor(color))
	if err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped by configs.
	}

	cfg, err := l.ValidateAndLoad()
	if err != nil {
		return nil, err //nolint:wrapcheck // Annotated YAML error.
	}

	return cfg, nil
}

// detectorLoader returns a [detector.LoadFunc] that annotates errors for the
// given output.
func detectorLoader(w io.Writer) detector.LoadFunc {
	color := isTerminal(w)

	return func(path string) (*detector.Detector, error) {
		cfg, err := loadConfigFile(path, color)
		if err != nil {
			return nil, err
		}

		return detector.New(cfg)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: file descriptors fit in an int.
}
