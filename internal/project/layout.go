package project

import (
	"path/filepath"
	"strings"

	bcerrors "github.com/conduit-lang/buildconf/internal/errors"
)

// Layout holds output directory bindings. The root binding is stored as an
// absolute path; subproject bindings are stored relative to it and resolved
// on read, so they always follow the current root.
type Layout struct {
	projectDir  string
	root        string
	rootBound   bool
	subprojects []string
	bound       map[string]struct{}
}

// NewLayout creates an empty layout for a project rooted at projectDir
func NewLayout(projectDir string) *Layout {
	return &Layout{
		projectDir: projectDir,
		bound:      make(map[string]struct{}),
	}
}

// ResolveDir resolves path against the project directory. Absolute paths are
// cleaned and kept.
func (l *Layout) ResolveDir(path string) (string, error) {
	if path == "" {
		return "", bcerrors.NewConfigurationError(bcerrors.ErrUnresolvableOutputDir).
			WithMessage("output directory is empty")
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	if !filepath.IsAbs(l.projectDir) {
		return "", bcerrors.NewConfigurationError(bcerrors.ErrUnresolvableOutputDir).
			WithMessage("project directory is not absolute").
			WithPath(l.projectDir)
	}
	return filepath.Join(l.projectDir, path), nil
}

// BindRoot sets the root output directory, resolved against the project directory.
// The root may not be the project directory or one of its ancestors.
func (l *Layout) BindRoot(path string) (string, error) {
	resolved, err := l.ResolveDir(path)
	if err != nil {
		return "", err
	}
	if containsDir(resolved, l.projectDir) {
		return "", bcerrors.NewConfigurationError(bcerrors.ErrUnresolvableOutputDir).
			WithMessage("root output directory must not contain the project directory").
			WithPath(resolved)
	}
	l.root = resolved
	l.rootBound = true
	return resolved, nil
}

// RootBuildDir returns the root output directory and whether it is bound
func (l *Layout) RootBuildDir() (string, bool) {
	return l.root, l.rootBound
}

// BindSubproject binds name to <root output>/<name>. The root must be bound first.
func (l *Layout) BindSubproject(name string) error {
	if !l.rootBound {
		return bcerrors.NewConfigurationError(bcerrors.ErrRootOutputDirNotBound).WithNode(name)
	}
	if _, ok := l.bound[name]; ok {
		return nil
	}

	dir := filepath.Join(l.root, name)
	if dir == l.root {
		return bcerrors.NewConfigurationError(bcerrors.ErrOutputDirCollision).
			WithMessage("subproject output directory equals the root output directory").
			WithNode(name).
			WithPath(dir)
	}
	for _, other := range l.subprojects {
		if filepath.Join(l.root, other) == dir {
			return bcerrors.NewConfigurationError(bcerrors.ErrOutputDirCollision).
				WithMessage("subprojects %q and %q resolve to the same output directory", other, name).
				WithNode(name).
				WithPath(dir)
		}
	}

	l.subprojects = append(l.subprojects, name)
	l.bound[name] = struct{}{}
	return nil
}

// BuildDir returns the output directory of a bound subproject
func (l *Layout) BuildDir(name string) (string, bool) {
	if _, ok := l.bound[name]; !ok || !l.rootBound {
		return "", false
	}
	return filepath.Join(l.root, name), true
}

// containsDir reports whether dir equals or is an ancestor of target
func containsDir(dir, target string) bool {
	if !filepath.IsAbs(target) {
		return false
	}
	rel, err := filepath.Rel(dir, filepath.Clean(target))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
