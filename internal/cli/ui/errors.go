package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	bcerrors "github.com/conduit-lang/buildconf/internal/errors"
)

// ErrorLevel represents the severity of an error message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Details      []string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError creates a standardized error message with suggestions and help commands
//
// Example output:
//
//	❌ CONFIGURATION ERROR [C104]: evaluation dependency on project "app", which is not in the project graph
//	   project: app
//
//	   Did you mean: ap?
//
//	   → List projects: buildconf projects
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	var headerColor, bodyColor *color.Color
	var symbol string

	switch opts.Level {
	case ErrorLevelError:
		headerColor = color.New(color.FgRed, color.Bold)
		bodyColor = color.New(color.FgRed)
		symbol = "❌"
	case ErrorLevelWarning:
		headerColor = color.New(color.FgYellow, color.Bold)
		bodyColor = color.New(color.FgYellow)
		symbol = "⚠️"
	default:
		headerColor = color.New(color.FgCyan, color.Bold)
		bodyColor = color.New(color.FgCyan)
		symbol = "ℹ️"
	}

	hint := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)
	if opts.NoColor {
		for _, c := range []*color.Color{headerColor, bodyColor, hint, cyan} {
			c.DisableColor()
		}
	}

	if opts.Context != "" {
		headerColor.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		headerColor.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	for _, detail := range opts.Details {
		bodyColor.Fprintf(&b, "   %s\n", detail)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		hint.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// FormatBuildError renders any error returned by a configuration pass or task.
// BuildErrors get their kind, code, offending project and path.
func FormatBuildError(err error, noColor bool) string {
	be, ok := bcerrors.As(err)
	if !ok {
		return FormatError(ErrorOptions{
			Level:   ErrorLevelError,
			Context: "ERROR",
			Problem: err.Error(),
			NoColor: noColor,
		})
	}

	opts := ErrorOptions{
		Level:       ErrorLevelError,
		Context:     fmt.Sprintf("%s error [%s]", be.Kind, be.Code),
		Problem:     be.Message,
		Suggestions: be.Suggestions,
		NoColor:     noColor,
	}
	if be.Node != "" {
		opts.Details = append(opts.Details, "project: "+be.Node)
	}
	if be.Path != "" {
		opts.Details = append(opts.Details, "path: "+be.Path)
	}
	if be.Cause != nil {
		opts.Details = append(opts.Details, "caused by: "+be.Cause.Error())
	}

	switch be.Kind {
	case bcerrors.KindConfiguration:
		opts.HelpCommands = []string{
			"List projects: buildconf projects",
			"Get help: buildconf --help",
		}
	case bcerrors.KindFilesystem:
		opts.HelpCommands = []string{
			"Check permissions and open file handles under the path above",
		}
	}

	return FormatError(opts)
}

// WriteError writes a formatted error message to the writer
func WriteError(w io.Writer, err error, noColor bool) {
	fmt.Fprint(w, FormatBuildError(err, noColor))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// Warning creates a standardized warning message
func Warning(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelWarning,
		Problem: message,
		NoColor: noColor,
	})
}
