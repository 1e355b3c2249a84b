package commands

import (
	"fmt"
	"io"

	"github.com/ddddddO/gtree"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/buildconf/internal/loader"
	"github.com/conduit-lang/buildconf/internal/project"
)

// NewProjectsCommand creates the projects command
func NewProjectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "Show the project graph",
		Long: `Run the configuration pass and render the project graph as a tree.
Subprojects are listed in evaluation order with their output directory,
evaluation dependencies and compilation units.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(session *loader.Session) error {
				return writeProjectTree(cmd.OutOrStdout(), session)
			})
		},
	}
}

func writeProjectTree(w io.Writer, session *loader.Session) error {
	graph := session.Graph
	layout := graph.Layout()

	rootDir, _ := layout.RootBuildDir()
	root := gtree.NewRoot(fmt.Sprintf("%s (%s)", graph.Root().Name, rootDir))

	for _, name := range session.EvaluationOrder {
		node, ok := graph.Lookup(name)
		if !ok {
			continue
		}
		dir, _ := layout.BuildDir(name)
		child := root.Add(fmt.Sprintf("%s (%s)", node.Path(), dir))

		for _, dep := range graph.Evaluation().GetDependencies(name) {
			child.Add("evaluates after :" + dep)
		}
		for _, unit := range node.Units {
			child.Add(describeUnit(unit))
		}
	}

	if err := gtree.OutputProgrammably(w, root); err != nil {
		return fmt.Errorf("failed to render project tree: %w", err)
	}
	return nil
}

func describeUnit(unit *project.CompilationUnit) string {
	if unit.TargetCompatibility == "" {
		return fmt.Sprintf("%s [%s]", unit.Name, unit.Kind)
	}
	return fmt.Sprintf("%s [%s, source %s, target %s]", unit.Name, unit.Kind, unit.SourceCompatibility, unit.TargetCompatibility)
}
