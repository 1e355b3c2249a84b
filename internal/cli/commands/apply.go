package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conduit-lang/buildconf/internal/cli/ui"
	bcerrors "github.com/conduit-lang/buildconf/internal/errors"
	"github.com/conduit-lang/buildconf/internal/loader"
)

var (
	applyJSON bool
	applyYAML bool
)

// NewApplyCommand creates the apply command
func NewApplyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Run the configuration pass and show the result",
		Long: `Run one configuration pass over the project graph and print the resolved
output directories, evaluation order, compilation settings and tasks.

Examples:
  buildconf apply
  buildconf apply --json
  buildconf apply -C android --yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withSession(cmd, func(session *loader.Session) error {
				return writeReport(cmd.OutOrStdout(), session)
			})
			if err != nil && applyJSON {
				// Tooling reads failures from stdout as well
				if out, jsonErr := bcerrors.FormatErrorsAsJSON(err); jsonErr == nil {
					fmt.Fprintln(cmd.OutOrStdout(), out)
				}
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&applyJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&applyYAML, "yaml", false, "Output as YAML")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")

	return cmd
}

func writeReport(w io.Writer, session *loader.Session) error {
	report := session.Report()

	switch {
	case applyJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case applyYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return enc.Close()
	}

	script := report.BuildScript
	if script == "" {
		script = "(defaults)"
	}

	kv := ui.NewKeyValueTable(w, noColor)
	kv.AddRow("Session", report.Session)
	kv.AddRow("Build script", script)
	kv.AddRow("Root project", report.RootProject)
	kv.AddRow("Java", fmt.Sprintf("source %s, target %s", report.SourceCompatibility, report.TargetCompatibility))
	kv.AddRow("Evaluation order", orNone(report.EvaluationOrder))
	kv.AddRow("Classpath", orNone(report.Classpath))
	kv.Render()
	fmt.Fprintln(w)

	projects := ui.NewTable(w, []string{"Project", "Build dir", "Evaluates after", "Repositories"}, noColor)
	for _, p := range report.Projects {
		projects.AddRow(p.Path, p.BuildDir, strings.Join(p.DependsOn, ", "), strings.Join(p.Repositories, ", "))
	}
	projects.Render()
	fmt.Fprintln(w)

	tasks := ui.NewTable(w, []string{"Task", "Description"}, noColor)
	for _, t := range report.Tasks {
		tasks.AddRow(t.Name, t.Description)
	}
	tasks.Render()

	if len(report.SkippedUnits) > 0 {
		fmt.Fprintln(w)
		fmt.Fprint(w, ui.Warning("Java level not pinned on non-Java units: "+strings.Join(report.SkippedUnits, ", "), noColor))
	}

	return nil
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
