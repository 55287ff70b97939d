package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/macropower/urllang/pkg/detector"
	"github.com/macropower/urllang/pkg/locale"
)

var errTokenNotFound = errors.New("token not found")

const inspectExamples = `  # List the mappings, including the built-in ones:
  urllang inspect mappings

  # Show the tokens of a mapping that point to French:
  urllang inspect mapping all --language fr

  # List the profiles in evaluation order:
  urllang inspect profiles

  # Look up a token:
  urllang inspect lookup ISO-639-ALPHA-3 fra`

func NewInspectCmd(ra *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inspect",
		Short:   "Inspect the mappings, matchers and profiles of the active configuration",
		Example: inspectExamples,
	}

	cmd.AddCommand(
		newInspectMappingsCmd(ra),
		newInspectMappingCmd(ra),
		newInspectMatchersCmd(ra),
		newInspectProfilesCmd(ra),
		newInspectLookupCmd(ra),
	)

	return cmd
}

// runWithDetector loads the active detector and passes it to run.
func runWithDetector(
	ra *RootArgs,
	run func(cmd *cobra.Command, d *detector.Detector, args []string) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		d, _, err := ra.loadDetector(cmd)
		if err != nil {
			return err
		}

		return run(cmd, d, args)
	}
}

func newInspectMappingsCmd(ra *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "mappings",
		Short: "List mappings",
		Args:  cobra.NoArgs,
		RunE: runWithDetector(ra, func(cmd *cobra.Command, d *detector.Detector, _ []string) error {
			reg := d.Mappings()

			rows := make([][]string, 0, reg.Len())
			for _, name := range reg.Names() {
				t, _ := reg.Get(name)
				rows = append(rows, []string{
					t.Name(),
					humanize.Comma(int64(t.Len())),
					humanize.Comma(int64(len(t.Languages()))),
					yesNo(t.CaseSensitive()),
				})
			}

			return writeTable(cmd.OutOrStdout(), []string{"NAME", "TOKENS", "LANGUAGES", "CASE SENSITIVE"}, rows)
		}),
	}
}

func newInspectMappingCmd(ra *RootArgs) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "mapping <name>",
		Short: "List the tokens of a mapping",
		Args:  cobra.ExactArgs(1),
		RunE: runWithDetector(ra, func(cmd *cobra.Command, d *detector.Detector, args []string) error {
			t, err := d.Mappings().Resolve(args[0])
			if err != nil {
				return err //nolint:wrapcheck // Reference errors carry suggestions.
			}

			keep := func(locale.Language) bool { return true }
			if strings.TrimSpace(language) != "" {
				list, err := locale.ParsePriorityList(language)
				if err != nil {
					return fmt.Errorf("--language: %w", err)
				}

				kept := list.Filter(t.Languages())
				keep = func(l locale.Language) bool { return slices.Contains(kept, l) }
			}

			var rows [][]string
			for _, e := range t.Entries() {
				if keep(e.Language) {
					rows = append(rows, []string{e.Token, e.Language.String()})
				}
			}

			return writeTable(cmd.OutOrStdout(), []string{"TOKEN", "LANGUAGE"}, rows)
		}),
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Only show tokens for these languages, as a filter list, e.g. \"fr\" or \"en-US, pt\"")

	return cmd
}

func newInspectMatchersCmd(ra *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "matchers",
		Short: "List matchers",
		Args:  cobra.NoArgs,
		RunE: runWithDetector(ra, func(cmd *cobra.Command, d *detector.Detector, _ []string) error {
			reg := d.Matchers()

			rows := make([][]string, 0, reg.Len())
			for _, name := range reg.Names() {
				m, _ := reg.Get(name)

				patterns := make([]string, 0, len(m.Patterns()))
				for _, p := range m.Patterns() {
					patterns = append(patterns, p.String())
				}

				mappingName := ""
				if t := m.Mapping(); t != nil {
					mappingName = t.Name()
				}

				rows = append(rows, []string{
					m.Name(),
					m.URLPart().String(),
					mappingName,
					strings.Join(patterns, "\n"),
				})
			}

			return writeTable(cmd.OutOrStdout(), []string{"NAME", "URL PART", "MAPPING", "PATTERNS"}, rows)
		}),
	}
}

func newInspectProfilesCmd(ra *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List profiles in evaluation order",
		Args:  cobra.NoArgs,
		RunE: runWithDetector(ra, func(cmd *cobra.Command, d *detector.Detector, _ []string) error {
			profiles := d.Profiles().Profiles()

			rows := make([][]string, 0, len(profiles))
			for _, p := range profiles {
				matchers := make([]string, 0, len(p.Matchers()))
				for _, m := range p.Matchers() {
					matchers = append(matchers, fmt.Sprintf("%s (%s)", m.Name(), m.Mapping().Name()))
				}

				condition := ""
				if c := p.Condition(); c != nil {
					condition = c.String()
				}

				rows = append(rows, []string{
					p.Name(),
					strings.Join(p.Domains(), "\n"),
					strings.Join(matchers, "\n"),
					condition,
				})
			}

			return writeTable(cmd.OutOrStdout(), []string{"NAME", "DOMAINS", "MATCHERS", "MATCH"}, rows)
		}),
	}
}

func newInspectLookupCmd(ra *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <mapping> <token>",
		Short: "Look up the language of a token in a mapping",
		Args:  cobra.ExactArgs(2),
		RunE: runWithDetector(ra, func(cmd *cobra.Command, d *detector.Detector, args []string) error {
			t, err := d.Mappings().Resolve(args[0])
			if err != nil {
				return err //nolint:wrapcheck // Reference errors carry suggestions.
			}

			lang, ok := t.Detect(args[1])
			if !ok {
				return fmt.Errorf("%w: %q is not in mapping %q", errTokenNotFound, args[1], t.Name())
			}

			mustN(fmt.Fprintln(cmd.OutOrStdout(), lang.String()))

			return nil
		}),
	}
}
