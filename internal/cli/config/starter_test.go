package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStarter_Defaults(t *testing.T) {
	s := NewStarter("android")

	assert.Equal(t, []string{"app"}, s.Include)
	assert.Equal(t, "app", s.EvaluationDependsOn)
	assert.Equal(t, "../build", s.BuildDir)
	assert.Equal(t, "clean", s.CleanTask)
}

func TestNewStarter_NoApp(t *testing.T) {
	s := NewStarter("android", "camera", "maps")
	assert.Empty(t, s.EvaluationDependsOn)
}

func TestWriteStarter_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "android")
	require.NoError(t, os.Mkdir(dir, 0755))

	starter := NewStarter("android", "app", "camera")
	starter.Java = JavaConfig{SourceCompatibility: "1.8", TargetCompatibility: "1.8"}

	path, err := WriteStarter(dir, starter, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "buildconf.yml"), path)

	script, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, path, script.File)
	assert.Equal(t, "android", script.RootProjectName)
	assert.Equal(t, []string{"app", "camera"}, script.Include)
	assert.Equal(t, "app", script.EvaluationDependsOn)
	assert.Equal(t, "1.8", script.Java.SourceCompatibility)
	assert.Equal(t, []RepositoryConfig{
		{Name: GoogleRepository.Name, URL: GoogleRepository.URL},
		{Name: MavenCentralRepository.Name, URL: MavenCentralRepository.URL},
	}, script.Repositories)
}

func TestWriteStarter_Existing(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "include: [app]\n")

	_, err := WriteStarter(dir, NewStarter("android"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = WriteStarter(dir, NewStarter("android", "maps"), true)
	require.NoError(t, err)

	script, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"maps"}, script.Include)
	assert.Empty(t, script.EvaluationDependsOn)
}
