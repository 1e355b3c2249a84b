// Package loader applies a build script to a project graph in a single
// synchronous configuration pass.
//
// The pass runs these steps in order and aborts on the first failure:
//
//  1. registries on every project
//  2. root output directory
//  3. subproject output directories (root must already be bound)
//  4. evaluation dependency on the sink project
//  5. Java language levels on every Java compilation unit
//  6. the clean task
//  7. build-script classpath entries
package loader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/conduit-lang/buildconf/internal/cli/config"
	bcerrors "github.com/conduit-lang/buildconf/internal/errors"
	"github.com/conduit-lang/buildconf/internal/logging"
	"github.com/conduit-lang/buildconf/internal/project"
	"github.com/conduit-lang/buildconf/internal/tasks"
	strutil "github.com/conduit-lang/buildconf/internal/util/strings"
)

// Loader runs configuration passes
type Loader struct {
	logger *zap.Logger
}

// New creates a loader. A nil logger discards log output.
func New(logger *zap.Logger) *Loader {
	return &Loader{logger: logging.OrNop(logger)}
}

// Apply builds the project graph described by script and runs every
// configuration step against it.
func (l *Loader) Apply(ctx context.Context, script *config.Script) (*Session, error) {
	session := &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Script:    script,
		Tasks:     tasks.NewRegistry(),
	}
	log := l.logger.With(zap.String("session", session.ID))
	log.Debug("configuration pass started", zap.String("dir", script.Dir))

	graph, err := project.NewGraph(script.RootProjectName, script.Dir)
	if err != nil {
		return nil, err
	}
	for _, name := range script.Include {
		if _, err := graph.AddSubproject(name, script.Units(name)...); err != nil {
			return nil, err
		}
	}
	session.Graph = graph

	steps := []struct {
		name string
		run  func() error
	}{
		{"registries", func() error {
			l.ApplyRegistries(graph.Nodes(), script.Registries())
			return nil
		}},
		{"root output directory", func() error {
			_, err := l.RebindOutputDirectory(graph, script.BuildDir)
			return err
		}},
		{"subproject output directories", func() error {
			return l.RebindSubprojectOutputDirectories(graph)
		}},
		{"evaluation dependency", func() error {
			if script.EvaluationDependsOn == "" {
				return nil
			}
			return l.DeclareEvaluationDependency(graph, script.EvaluationDependsOn)
		}},
		{"evaluation order", func() error {
			order, err := graph.Evaluation().Order()
			session.EvaluationOrder = order
			return err
		}},
		{"compilation settings", func() error {
			source, target, err := script.JavaLevels()
			if err != nil {
				return err
			}
			session.SourceCompatibility = source
			session.TargetCompatibility = target
			session.PinnedUnits, session.SkippedUnits = l.PinCompilationSettings(graph, source, target)
			return nil
		}},
		{"clean task", func() error {
			root, _ := graph.Layout().RootBuildDir()
			return l.RegisterCleanTask(session.Tasks, script.CleanTask, root)
		}},
		{"classpath", func() error {
			session.Classpath = append([]string(nil), script.Buildscript.Classpath...)
			return nil
		}},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := step.run(); err != nil {
			log.Debug("configuration pass aborted", zap.String("step", step.name), zap.Error(err))
			return nil, err
		}
	}

	session.Duration = time.Since(session.StartedAt)
	log.Debug("configuration pass finished",
		zap.Int("projects", len(graph.Nodes())),
		zap.Duration("duration", session.Duration))
	return session, nil
}

// ApplyRegistries appends each registry a node does not have yet. Applying
// the same registries again changes nothing. Returns the number appended.
func (l *Loader) ApplyRegistries(nodes []*project.Node, registries []project.Repository) int {
	added := 0
	for _, node := range nodes {
		for _, repo := range registries {
			if node.HasRepository(repo) {
				continue
			}
			node.Repositories = append(node.Repositories, repo)
			added++
			l.logger.Debug("registry added",
				zap.String("project", node.Path()),
				zap.String("registry", repo.Name),
				zap.String("url", repo.URL))
		}
	}
	return added
}

// RebindOutputDirectory binds the root output directory to basePath resolved
// against the project root.
func (l *Loader) RebindOutputDirectory(graph *project.Graph, basePath string) (string, error) {
	dir, err := graph.Layout().BindRoot(basePath)
	if err != nil {
		if be, ok := bcerrors.As(err); ok && be.Node == "" {
			be.WithNode(graph.Root().Name)
		}
		return "", err
	}
	l.logger.Debug("root output directory bound",
		zap.String("project", graph.Root().Path()),
		zap.String("path", dir))
	return dir, nil
}

// RebindSubprojectOutputDirectories binds every subproject to
// <root output>/<subproject name>. The root must already be bound.
func (l *Loader) RebindSubprojectOutputDirectories(graph *project.Graph) error {
	for _, node := range graph.Subprojects() {
		if err := graph.Layout().BindSubproject(node.Name); err != nil {
			return err
		}
		dir, _ := graph.Layout().BuildDir(node.Name)
		l.logger.Debug("subproject output directory bound",
			zap.String("project", node.Path()),
			zap.String("path", dir))
	}
	return nil
}

// DeclareEvaluationDependency makes every subproject other than sink
// evaluate after sink. A sink missing from the graph fails the pass.
func (l *Loader) DeclareEvaluationDependency(graph *project.Graph, sink string) error {
	if _, ok := graph.Lookup(sink); !ok {
		return bcerrors.NewConfigurationError(bcerrors.ErrUnknownProject).
			WithMessage("evaluation dependency on project %q, which is not in the project graph", sink).
			WithNode(sink).
			WithSuggestions(strutil.FindSimilar(sink, graph.Names())...)
	}

	for _, node := range graph.Subprojects() {
		if node.Name == sink {
			continue
		}
		if err := graph.Evaluation().DependsOn(node.Name, sink); err != nil {
			return err
		}
		l.logger.Debug("evaluation dependency declared",
			zap.String("project", node.Path()),
			zap.String("depends_on", ":"+sink))
	}
	return nil
}

// PinCompilationSettings sets source and target compatibility on every Java
// unit of every subproject. Units of other kinds are skipped. Returns the
// pinned and skipped units as "project:unit".
func (l *Loader) PinCompilationSettings(graph *project.Graph, source, target project.JavaVersion) (pinned, skipped []string) {
	for _, node := range graph.Subprojects() {
		for _, unit := range node.Units {
			id := node.Name + ":" + unit.Name
			if unit.Kind != project.UnitKindJava {
				skipped = append(skipped, id)
				continue
			}
			unit.SourceCompatibility = source
			unit.TargetCompatibility = target
			pinned = append(pinned, id)
			l.logger.Debug("compilation unit pinned",
				zap.String("project", node.Path()),
				zap.String("unit", unit.Name),
				zap.String("source", source.String()),
				zap.String("target", target.String()))
		}
	}
	return pinned, skipped
}

// RegisterCleanTask registers a task named name that deletes target recursively
func (l *Loader) RegisterCleanTask(registry *tasks.Registry, name, target string) error {
	if target == "" {
		return bcerrors.NewConfigurationError(bcerrors.ErrRootOutputDirNotBound).
			WithMessage("clean task %q has no target directory", name)
	}
	if err := registry.Register(tasks.NewDeleteTask(name, target)); err != nil {
		return err
	}
	l.logger.Debug("task registered", zap.String("task", name), zap.String("path", target))
	return nil
}
