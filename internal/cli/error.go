package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"

	"github.com/macropower/urllang/pkg/errdefs"
)

// ErrorHandler renders command errors for [fang.WithErrorHandler].
func ErrorHandler(w io.Writer, styles fang.Styles, err error) {
	mustN(fmt.Fprintln(w, styles.ErrorHeader.String()))
	mustN(fmt.Fprintln(w, lipgloss.NewStyle().MarginLeft(2).Render(err.Error())))
	mustN(fmt.Fprintln(w))

	switch {
	case isUsageError(err):
		mustN(fmt.Fprintln(w, hint(styles, "--help", "for usage.")))
		mustN(fmt.Fprintln(w))

	case isConfigError(err):
		mustN(fmt.Fprintln(w, hint(styles, "urllang config validate", "for details.")))
		mustN(fmt.Fprintln(w))
	}
}

func hint(styles fang.Styles, flag, suffix string) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		styles.ErrorText.UnsetWidth().Render("Try"),
		styles.Program.Flag.Render(flag),
		styles.ErrorText.UnsetWidth().UnsetMargins().UnsetTransform().PaddingLeft(1).Render(suffix),
	)
}

// XXX: this is a hack to detect usage errors.
// See: https://github.com/spf13/cobra/pull/2266
func isUsageError(err error) bool {
	s := err.Error()
	for _, prefix := range []string{
		"flag needs an argument:",
		"unknown flag:",
		"unknown shorthand flag:",
		"unknown command",
		"invalid argument",
		"accepts ",
	} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return false
}

func isConfigError(err error) bool {
	for _, target := range []error{
		errdefs.ErrInvalidConfig,
		errdefs.ErrInvalidPattern,
		errdefs.ErrPatternSyntax,
		errdefs.ErrUnresolvedMapping,
		errdefs.ErrDuplicateName,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func mustN(_ int, err error) {
	must(err)
}
