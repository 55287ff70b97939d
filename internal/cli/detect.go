package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/macropower/urllang/pkg/detector"
	"github.com/macropower/urllang/pkg/log"
	"github.com/macropower/urllang/pkg/telemetry"
)

const detectExamples = `  # Detect the language of URLs:
  urllang detect https://fr.example.com/ 'https://example.com/?lang=de'

  # Read URLs from stdin, one per line:
  cat urls.txt | urllang detect -

  # Print the language, or "und" when none is detected:
  urllang detect --fallback und https://example.com/

  # Explain the results as JSON:
  urllang detect -o json --explain https://example.com/en/docs`

type DetectArgs struct {
	*RootArgs

	Output   string
	Fallback string
	URLs     []string
	Explain  bool
}

func NewDetectArgs(rootArgs *RootArgs) *DetectArgs {
	return &DetectArgs{
		RootArgs: rootArgs,
	}
}

func (da *DetectArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&da.Output, "output", "o", string(outputText),
		fmt.Sprintf("Output format, one of: %s", allOutputFormats))
	cmd.Flags().StringVar(&da.Fallback, "fallback", "-", "Text printed in place of a language when none is detected")
	cmd.Flags().BoolVar(&da.Explain, "explain", false, "Show the profile, matcher and token behind each result")

	err := cmd.RegisterFlagCompletionFunc("output",
		cobra.FixedCompletions(allOutputFormats, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}
}

func NewDetectCmd(da *DetectArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "detect [url...]",
		Short:   "Detect the language of URLs",
		Long:    "Detect the language of URLs. With no arguments, or with \"-\", URLs are read from stdin, one per line.",
		Example: detectExamples,
		RunE: func(cmd *cobra.Command, args []string) error {
			da.URLs = args

			return runDetect(cmd, da)
		},
	}

	da.AddFlags(cmd)

	return cmd
}

func runDetect(cmd *cobra.Command, da *DetectArgs) error {
	format, err := parseOutputFormat(da.Output)
	if err != nil {
		return err
	}

	urls := da.URLs
	if len(urls) == 0 || (len(urls) == 1 && urls[0] == "-") {
		urls, err = readLines(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	d, _, err := da.loadDetector(cmd)
	if err != nil {
		return err
	}

	ctx, span := telemetry.Tracer("cli").Start(commandContext(cmd), "detect")
	defer span.End()

	results := make([]detector.Result, 0, len(urls))
	detected := 0

	for _, u := range urls {
		r := d.Explain(u)

		urlCtx := log.With(ctx, log.URL(u))
		log.FromContext(urlCtx).DebugContext(urlCtx, "explained url", slog.Any("result", r))

		if r.Found {
			detected++
		}
		if !da.Explain {
			r = r.Brief()
		}

		results = append(results, r)
	}

	span.SetAttributes(
		attribute.Int("urls", len(urls)),
		attribute.Int("detected", detected),
	)
	log.FromContext(ctx).DebugContext(ctx, "detected languages",
		slog.Int("urls", len(urls)),
		slog.Int("detected", detected),
	)

	w := cmd.OutOrStdout()

	switch format {
	case outputJSON:
		return writeJSON(w, results)

	case outputYAML:
		return writeYAML(w, results)

	case outputText:
		if da.Explain {
			return writeExplainTable(w, results, da.Fallback)
		}

		for _, r := range results {
			mustN(fmt.Fprintf(w, "%s\t%s\n", r.LanguageOr(da.Fallback), r.URL))
		}
	}

	return nil
}

func writeExplainTable(w io.Writer, results []detector.Result, fallback string) error {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		row := []string{r.LanguageOr(fallback), r.URL, r.Profile, "", "", ""}
		if r.Found {
			row[3] = r.Matcher
			row[4] = r.URLPart + "#" + strconv.Itoa(r.Pattern)
			row[5] = r.Token
		}

		rows = append(rows, row)
	}

	return writeTable(w, []string{"LANGUAGE", "URL", "PROFILE", "MATCHER", "PATTERN", "TOKEN"}, rows)
}

// readLines returns the non-blank lines of r, trimmed. Lines have no
// length limit.
func readLines(r io.Reader) ([]string, error) {
	var lines []string

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}

		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read line: %w", err)
		}
	}
}
