package project

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bcerrors "github.com/conduit-lang/buildconf/internal/errors"
)

func newTestGraph(t *testing.T, names ...string) *Graph {
	t.Helper()
	g, err := NewGraph("android", "/repo/android")
	require.NoError(t, err)
	for _, name := range names {
		_, err := g.AddSubproject(name)
		require.NoError(t, err)
	}
	return g
}

func TestNewGraph(t *testing.T) {
	g := newTestGraph(t)

	assert.Equal(t, "android", g.Root().Name)
	assert.True(t, g.Root().IsRoot())
	assert.Equal(t, ":", g.Root().Path())
	assert.Equal(t, filepath.Clean("/repo/android"), g.Root().Dir)
	assert.Empty(t, g.Subprojects())
	assert.NotNil(t, g.Layout())
	assert.NotNil(t, g.Evaluation())
}

func TestNewGraph_DefaultRootName(t *testing.T) {
	g, err := NewGraph("", "/repo/android")
	require.NoError(t, err)
	assert.Equal(t, "android", g.Root().Name)
}

func TestNewGraph_EmptyDir(t *testing.T) {
	_, err := NewGraph("android", "")
	require.Error(t, err)
	assert.True(t, bcerrors.IsConfiguration(err))
}

func TestNewGraph_RelativeDirIsMadeAbsolute(t *testing.T) {
	g, err := NewGraph("android", "android")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(g.Root().Dir))
}

func TestAddSubproject(t *testing.T) {
	g := newTestGraph(t, "app", "camera_plugin")

	app, ok := g.Lookup("app")
	require.True(t, ok)
	assert.Equal(t, g.Root(), app.Parent)
	assert.Equal(t, ":app", app.Path())
	assert.Equal(t, filepath.Join("/repo/android", "app"), app.Dir)
	require.Len(t, app.Units, 1)
	assert.Equal(t, "compileJava", app.Units[0].Name)
	assert.Equal(t, UnitKindJava, app.Units[0].Kind)

	assert.Equal(t, []string{"app", "camera_plugin"}, g.Names())
	assert.Len(t, g.Nodes(), 3)
	assert.Equal(t, []string{"app", "camera_plugin"}, g.Evaluation().projects)
}

func TestAddSubproject_ExplicitUnits(t *testing.T) {
	g := newTestGraph(t)
	node, err := g.AddSubproject("app",
		NewCompilationUnit("compileDebugJavaWithJavac", UnitKindJava),
		NewCompilationUnit("compileDebugKotlin", UnitKindKotlin),
	)
	require.NoError(t, err)
	assert.Len(t, node.Units, 2)
}

func TestAddSubproject_Duplicate(t *testing.T) {
	g := newTestGraph(t, "app")
	_, err := g.AddSubproject("app")
	require.Error(t, err)
	assert.True(t, bcerrors.HasCode(err, bcerrors.ErrDuplicateProject))
}

func TestValidateProjectName(t *testing.T) {
	for _, name := range []string{"app", "camera_plugin", "my-lib", "lib2"} {
		assert.NoError(t, ValidateProjectName(name), name)
	}
	for _, name := range []string{"", " app", ".", "..", "a/b", `a\b`, ":app"} {
		err := ValidateProjectName(name)
		assert.Error(t, err, name)
		assert.True(t, bcerrors.IsConfiguration(err), name)
	}
}

func TestSubprojects_ReturnsCopy(t *testing.T) {
	g := newTestGraph(t, "app")
	subs := g.Subprojects()
	subs[0] = nil
	assert.NotNil(t, g.Subprojects()[0])
}

func TestNode_HasRepository(t *testing.T) {
	n := &Node{Name: "app"}
	repo := Repository{Name: "google", URL: "https://dl.google.com/dl/android/maven2/"}
	assert.False(t, n.HasRepository(repo))
	n.Repositories = append(n.Repositories, repo)
	assert.True(t, n.HasRepository(repo))
	assert.False(t, n.HasRepository(Repository{Name: "google", URL: "https://example.com/"}))
}
