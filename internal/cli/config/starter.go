package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Starter is the content of a generated build script
type Starter struct {
	RootProjectName     string             `yaml:"root_project_name"`
	Include             []string           `yaml:"include"`
	Repositories        []RepositoryConfig `yaml:"repositories"`
	BuildDir            string             `yaml:"build_dir"`
	EvaluationDependsOn string             `yaml:"evaluation_depends_on"`
	Java                JavaConfig         `yaml:"java"`
	CleanTask           string             `yaml:"clean_task"`
}

// NewStarter returns a starter script equivalent to the stock root build script
func NewStarter(rootName string, include ...string) *Starter {
	if len(include) == 0 {
		include = []string{"app"}
	}

	s := &Starter{
		RootProjectName: rootName,
		Include:         include,
		Repositories: []RepositoryConfig{
			{Name: GoogleRepository.Name, URL: GoogleRepository.URL},
			{Name: MavenCentralRepository.Name, URL: MavenCentralRepository.URL},
		},
		BuildDir:  "../build",
		Java:      JavaConfig{SourceCompatibility: "11", TargetCompatibility: "11"},
		CleanTask: "clean",
	}
	for _, name := range include {
		if name == "app" {
			s.EvaluationDependsOn = name
		}
	}
	return s
}

// WriteStarter writes s to dir/buildconf.yml and returns the path. An existing
// build script is only replaced when force is set.
func WriteStarter(dir string, s *Starter, force bool) (string, error) {
	path := filepath.Join(dir, FileName+".yml")

	if !force {
		for _, ext := range []string{".yml", ".yaml"} {
			existing := filepath.Join(dir, FileName+ext)
			if _, err := os.Stat(existing); err == nil {
				return "", fmt.Errorf("build script %s already exists (use --force to overwrite)", existing)
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString("# Root build configuration. See `buildconf --help`.\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("failed to encode build script: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode build script: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write build script: %w", err)
	}
	return path, nil
}
