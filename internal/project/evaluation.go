package project

import (
	"sort"
	"strings"

	bcerrors "github.com/conduit-lang/buildconf/internal/errors"
)

// EvaluationGraph records "evaluate B before finalizing A" constraints between projects.
// edges[A] = [B, C] means A is evaluated after B and C.
type EvaluationGraph struct {
	projects []string
	known    map[string]struct{}
	edges    map[string][]string
}

// NewEvaluationGraph creates an empty evaluation graph
func NewEvaluationGraph() *EvaluationGraph {
	return &EvaluationGraph{
		known: make(map[string]struct{}),
		edges: make(map[string][]string),
	}
}

// AddProject registers a project. Registering twice is a no-op.
func (eg *EvaluationGraph) AddProject(name string) {
	if _, ok := eg.known[name]; ok {
		return
	}
	eg.known[name] = struct{}{}
	eg.projects = append(eg.projects, name)
}

// DependsOn declares that project must be evaluated after dependency.
// Both must be registered; declaring an existing edge again is a no-op.
func (eg *EvaluationGraph) DependsOn(project, dependency string) error {
	for _, name := range []string{project, dependency} {
		if _, ok := eg.known[name]; !ok {
			return bcerrors.NewConfigurationError(bcerrors.ErrUnknownProject).WithNode(name)
		}
	}
	if project == dependency {
		return bcerrors.NewConfigurationError(bcerrors.ErrEvaluationCycle).
			WithMessage("project cannot depend on its own evaluation").
			WithNode(project)
	}

	for _, dep := range eg.edges[project] {
		if dep == dependency {
			return nil
		}
	}
	eg.edges[project] = append(eg.edges[project], dependency)
	return nil
}

// GetDependencies returns the projects that must be evaluated before project
func (eg *EvaluationGraph) GetDependencies(project string) []string {
	deps := eg.edges[project]
	result := make([]string, len(deps))
	copy(result, deps)
	return result
}

// GetDependents returns the projects that wait for project, in registration order
func (eg *EvaluationGraph) GetDependents(project string) []string {
	dependents := make([]string, 0)
	for _, candidate := range eg.projects {
		for _, dep := range eg.edges[candidate] {
			if dep == project {
				dependents = append(dependents, candidate)
				break
			}
		}
	}
	return dependents
}

// EdgeCount returns the number of declared constraints
func (eg *EvaluationGraph) EdgeCount() int {
	count := 0
	for _, deps := range eg.edges {
		count += len(deps)
	}
	return count
}

// Order returns every project in evaluation order (dependencies first).
// Projects with no ordering between them keep registration order.
func (eg *EvaluationGraph) Order() ([]string, error) {
	inDegree := make(map[string]int, len(eg.projects))
	for _, name := range eg.projects {
		inDegree[name] = len(eg.edges[name])
	}

	queue := make([]string, 0)
	for _, name := range eg.projects {
		if inDegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	result := make([]string, 0, len(eg.projects))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		result = append(result, name)

		for _, dependent := range eg.GetDependents(name) {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(eg.projects) {
		missing := make([]string, 0)
		for _, name := range eg.projects {
			if inDegree[name] > 0 {
				missing = append(missing, name)
			}
		}
		sort.Strings(missing)
		return nil, bcerrors.NewConfigurationError(bcerrors.ErrEvaluationCycle).
			WithMessage("evaluation dependencies form a cycle between %s", strings.Join(missing, ", "))
	}

	return result, nil
}
