package cli

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/macropower/urllang/api/v1beta1/configs"
	"github.com/macropower/urllang/pkg/detector"
)

const configExamples = `  # Print the active configuration:
  urllang config show

  # Validate a configuration file:
  urllang config validate ./.urllang.yaml

  # Write the default configuration to the user config directory:
  urllang config write

  # Generate the JSON schema for editor integration:
  urllang config schema > urllang.schema.json`

func NewConfigCmd(ra *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Show, validate and write urllang configuration",
		Example: configExamples,
	}

	cmd.AddCommand(
		newConfigShowCmd(ra),
		newConfigValidateCmd(ra),
		newConfigWriteCmd(ra),
		newConfigSchemaCmd(),
	)

	return cmd
}

func newConfigShowCmd(ra *RootArgs) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the active configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, path, err := ra.loadConfig(cmd)
			if err != nil {
				return err
			}

			if path == "" {
				slog.Info("no config file found, showing defaults")
			} else {
				slog.Info("active configuration", slog.String("path", path))
			}

			b, err := cfg.MarshalYAML()
			if err != nil {
				return fmt.Errorf("marshal config yaml: %w", err)
			}

			w := cmd.OutOrStdout()
			if plain || !isTerminal(w) {
				mustN(w.Write(b))

				return nil
			}

			err = quick.Highlight(w, string(b), "yaml", "terminal256", "monokai")
			if err != nil {
				mustN(w.Write(b))

				return fmt.Errorf("highlight config: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Disable syntax highlighting")

	return cmd
}

func newConfigValidateCmd(ra *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a configuration file",
		Long: "Validate a configuration file against the schema, then build its " +
			"mappings, matchers and profiles. Defaults to the active configuration file.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _, err := ra.resolveConfigPath()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				path = args[0]
			}

			d, err := detectorLoader(cmd.ErrOrStderr())(path)
			if err != nil {
				return fmt.Errorf("invalid config %q: %w", path, err)
			}

			mustN(fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %s\n", path, describeDetector(d)))

			return nil
		},
	}
}

func newConfigWriteCmd(ra *RootArgs) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "write [path]",
		Short: "Write the default configuration",
		Long: "Write the default configuration to path, the --config path, or the user config directory. " +
			"Existing files are kept unless --force is set, in which case they are backed up first.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configs.GetPath()
			if ra.ConfigPath != "" {
				path = ra.ConfigPath
			}
			if len(args) == 1 {
				path = args[0]
			}

			err := configs.WriteDefault(path, force)
			if err != nil {
				return err //nolint:wrapcheck // Already wrapped by configs.
			}

			mustN(fmt.Fprintln(cmd.OutOrStdout(), path))

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace an existing file, keeping a backup")

	return cmd
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema := configs.Schema()
			if !bytes.HasSuffix(schema, []byte("\n")) {
				schema = append(schema, '\n')
			}

			mustN(cmd.OutOrStdout().Write(schema))

			return nil
		},
	}
}

func pluralize(n int, noun string) string {
	if n != 1 {
		noun += "s"
	}

	return humanize.Comma(int64(n)) + " " + noun
}

// describeDetector summarizes the registries of d.
func describeDetector(d *detector.Detector) string {
	return fmt.Sprintf("%s, %s, %s",
		pluralize(d.Mappings().Len(), "mapping"),
		pluralize(d.Matchers().Len(), "matcher"),
		pluralize(d.Profiles().Len(), "profile"),
	)
}
