// Package project models the project graph a build configuration pass is
// applied to: a root project, its subprojects, their output directory
// bindings, evaluation-order constraints and compilation units.
package project

import (
	"path/filepath"
	"strings"

	bcerrors "github.com/conduit-lang/buildconf/internal/errors"
)

// Repository is a package source consulted when resolving external dependencies
type Repository struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Node is a project in the graph. The root has a nil Parent.
type Node struct {
	Name         string
	Dir          string
	Parent       *Node
	Repositories []Repository
	Units        []*CompilationUnit
}

// IsRoot reports whether the node is the root project
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// Path returns the colon-separated project path (":" for the root, ":app" for a subproject)
func (n *Node) Path() string {
	if n.IsRoot() {
		return ":"
	}
	return ":" + n.Name
}

// HasRepository reports whether a repository with the same name and URL is already registered
func (n *Node) HasRepository(repo Repository) bool {
	for _, existing := range n.Repositories {
		if existing == repo {
			return true
		}
	}
	return false
}

// Graph is a root project plus uniquely named subprojects
type Graph struct {
	root        *Node
	subprojects []*Node
	byName      map[string]*Node
	layout      *Layout
	evaluation  *EvaluationGraph
}

// NewGraph creates a graph whose root project lives in projectDir.
// projectDir is made absolute so that every later path derivation is stable.
func NewGraph(rootName, projectDir string) (*Graph, error) {
	if projectDir == "" {
		return nil, bcerrors.NewConfigurationError(bcerrors.ErrUnresolvableOutputDir).
			WithMessage("project root directory is empty")
	}

	absDir, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, bcerrors.NewConfigurationError(bcerrors.ErrUnresolvableOutputDir).
			WithMessage("project root directory cannot be made absolute").
			WithPath(projectDir).
			WithCause(err)
	}

	if rootName == "" {
		rootName = filepath.Base(absDir)
	}

	root := &Node{Name: rootName, Dir: absDir}
	return &Graph{
		root:       root,
		byName:     make(map[string]*Node),
		layout:     NewLayout(absDir),
		evaluation: NewEvaluationGraph(),
	}, nil
}

// AddSubproject adds a subproject whose directory is <root dir>/<name>.
// A subproject without units gets a single java unit named compileJava.
func (g *Graph) AddSubproject(name string, units ...*CompilationUnit) (*Node, error) {
	if err := ValidateProjectName(name); err != nil {
		return nil, err
	}
	if _, exists := g.byName[name]; exists {
		return nil, bcerrors.NewConfigurationError(bcerrors.ErrDuplicateProject).WithNode(name)
	}

	if len(units) == 0 {
		units = []*CompilationUnit{NewCompilationUnit("compileJava", UnitKindJava)}
	}

	node := &Node{
		Name:   name,
		Dir:    filepath.Join(g.root.Dir, name),
		Parent: g.root,
		Units:  units,
	}
	g.subprojects = append(g.subprojects, node)
	g.byName[name] = node
	g.evaluation.AddProject(name)
	return node, nil
}

// Root returns the root project
func (g *Graph) Root() *Node {
	return g.root
}

// Subprojects returns the subprojects in insertion order
func (g *Graph) Subprojects() []*Node {
	out := make([]*Node, len(g.subprojects))
	copy(out, g.subprojects)
	return out
}

// Nodes returns the root followed by every subproject
func (g *Graph) Nodes() []*Node {
	return append([]*Node{g.root}, g.subprojects...)
}

// Lookup finds a subproject by name
func (g *Graph) Lookup(name string) (*Node, bool) {
	node, ok := g.byName[name]
	return node, ok
}

// Names returns subproject names in insertion order
func (g *Graph) Names() []string {
	names := make([]string, 0, len(g.subprojects))
	for _, node := range g.subprojects {
		names = append(names, node.Name)
	}
	return names
}

// Layout returns the output directory bindings
func (g *Graph) Layout() *Layout {
	return g.layout
}

// Evaluation returns the evaluation-order constraints
func (g *Graph) Evaluation() *EvaluationGraph {
	return g.evaluation
}

// ValidateProjectName rejects names that cannot be used as a single directory component
func ValidateProjectName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed != name {
		return bcerrors.NewConfigurationError(bcerrors.ErrInvalidBuildScript).
			WithMessage("project name must be non-empty and have no surrounding whitespace").
			WithNode(name)
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\:`) {
		return bcerrors.NewConfigurationError(bcerrors.ErrInvalidBuildScript).
			WithMessage("project name must be a single path component").
			WithNode(name)
	}
	return nil
}
