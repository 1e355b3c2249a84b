package loader

import (
	"time"

	"github.com/conduit-lang/buildconf/internal/cli/config"
	"github.com/conduit-lang/buildconf/internal/project"
	"github.com/conduit-lang/buildconf/internal/tasks"
)

// Session is the result of one configuration pass. It lives for a single
// invocation and is never persisted.
type Session struct {
	ID                  string
	StartedAt           time.Time
	Duration            time.Duration
	Script              *config.Script
	Graph               *project.Graph
	Tasks               *tasks.Registry
	EvaluationOrder     []string
	SourceCompatibility project.JavaVersion
	TargetCompatibility project.JavaVersion
	PinnedUnits         []string
	SkippedUnits        []string
	Classpath           []string
}

// Report is the serializable view of a session
type Report struct {
	Session             string               `json:"session" yaml:"session"`
	RootProject         string               `json:"root_project" yaml:"root_project"`
	ProjectDir          string               `json:"project_dir" yaml:"project_dir"`
	BuildScript         string               `json:"build_script,omitempty" yaml:"build_script,omitempty"`
	Projects            []ProjectReport      `json:"projects" yaml:"projects"`
	EvaluationOrder     []string             `json:"evaluation_order" yaml:"evaluation_order"`
	SourceCompatibility project.JavaVersion  `json:"source_compatibility" yaml:"source_compatibility"`
	TargetCompatibility project.JavaVersion  `json:"target_compatibility" yaml:"target_compatibility"`
	SkippedUnits        []string             `json:"skipped_units,omitempty" yaml:"skipped_units,omitempty"`
	Tasks               []TaskReport         `json:"tasks" yaml:"tasks"`
	Classpath           []string             `json:"classpath,omitempty" yaml:"classpath,omitempty"`
	Repositories        []project.Repository `json:"repositories" yaml:"repositories"`
}

// ProjectReport describes one project after the pass
type ProjectReport struct {
	Name         string                     `json:"name" yaml:"name"`
	Path         string                     `json:"path" yaml:"path"`
	BuildDir     string                     `json:"build_dir" yaml:"build_dir"`
	DependsOn    []string                   `json:"evaluation_depends_on,omitempty" yaml:"evaluation_depends_on,omitempty"`
	Repositories []string                   `json:"repositories" yaml:"repositories"`
	Units        []*project.CompilationUnit `json:"units,omitempty" yaml:"units,omitempty"`
}

// TaskReport describes a registered task
type TaskReport struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Report builds the serializable view of the session
func (s *Session) Report() Report {
	root := s.Graph.Root()
	rootDir, _ := s.Graph.Layout().RootBuildDir()

	r := Report{
		Session:             s.ID,
		RootProject:         root.Name,
		ProjectDir:          root.Dir,
		BuildScript:         s.Script.File,
		EvaluationOrder:     s.EvaluationOrder,
		SourceCompatibility: s.SourceCompatibility,
		TargetCompatibility: s.TargetCompatibility,
		SkippedUnits:        s.SkippedUnits,
		Classpath:           s.Classpath,
		Repositories:        root.Repositories,
	}

	r.Projects = append(r.Projects, ProjectReport{
		Name:         root.Name,
		Path:         root.Path(),
		BuildDir:     rootDir,
		Repositories: repositoryNames(root.Repositories),
	})
	for _, node := range s.Graph.Subprojects() {
		dir, _ := s.Graph.Layout().BuildDir(node.Name)
		r.Projects = append(r.Projects, ProjectReport{
			Name:         node.Name,
			Path:         node.Path(),
			BuildDir:     dir,
			DependsOn:    s.Graph.Evaluation().GetDependencies(node.Name),
			Repositories: repositoryNames(node.Repositories),
			Units:        node.Units,
		})
	}

	for _, name := range s.Tasks.Names() {
		task, _ := s.Tasks.Lookup(name)
		r.Tasks = append(r.Tasks, TaskReport{Name: name, Description: task.Description()})
	}

	return r
}

func repositoryNames(repos []project.Repository) []string {
	names := make([]string, 0, len(repos))
	for _, repo := range repos {
		names = append(names, repo.Name)
	}
	return names
}
