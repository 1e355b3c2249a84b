package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	bcerrors "github.com/conduit-lang/buildconf/internal/errors"
	"github.com/conduit-lang/buildconf/internal/project"
)

// FileName is the build script base name, read as buildconf.yml or buildconf.yaml
const FileName = "buildconf"

// EnvPrefix prefixes environment overrides, e.g. BUILDCONF_BUILD_DIR
const EnvPrefix = "BUILDCONF"

// Default registries applied to every project
var (
	GoogleRepository = project.Repository{
		Name: "google",
		URL:  "https://dl.google.com/dl/android/maven2/",
	}
	MavenCentralRepository = project.Repository{
		Name: "mavenCentral",
		URL:  "https://repo.maven.apache.org/maven2/",
	}
)

// Script is the build script for one configuration pass. It is loaded once
// and not mutated afterwards.
type Script struct {
	RootProjectName     string                   `mapstructure:"root_project_name"`
	Include             []string                 `mapstructure:"include" validate:"dive,required"`
	Repositories        []RepositoryConfig       `mapstructure:"repositories" validate:"dive"`
	BuildDir            string                   `mapstructure:"build_dir" validate:"required"`
	EvaluationDependsOn string                   `mapstructure:"evaluation_depends_on"`
	Java                JavaConfig               `mapstructure:"java"`
	CleanTask           string                   `mapstructure:"clean_task" validate:"required"`
	Buildscript         BuildscriptConfig        `mapstructure:"buildscript"`
	Projects            map[string]ProjectConfig `mapstructure:"projects" validate:"dive"`

	// Dir is the project root directory the script was loaded from
	Dir string `mapstructure:"-"`
	// File is the script path, empty when only defaults were used
	File string `mapstructure:"-"`
}

// RepositoryConfig represents a package registry
type RepositoryConfig struct {
	Name string `mapstructure:"name" yaml:"name" validate:"required"`
	URL  string `mapstructure:"url" yaml:"url" validate:"required,url"`
}

// JavaConfig pins the Java language level of compilation units
type JavaConfig struct {
	SourceCompatibility string `mapstructure:"source_compatibility" yaml:"source_compatibility" validate:"required"`
	TargetCompatibility string `mapstructure:"target_compatibility" yaml:"target_compatibility" validate:"required"`
}

// BuildscriptConfig holds build-time dependencies of the script itself
type BuildscriptConfig struct {
	Classpath []string `mapstructure:"classpath"`
}

// ProjectConfig describes one subproject
type ProjectConfig struct {
	Units []UnitConfig `mapstructure:"units" validate:"dive"`
}

// UnitConfig describes one compilation unit
type UnitConfig struct {
	Name string `mapstructure:"name" validate:"required"`
	Kind string `mapstructure:"kind" validate:"required"`
}

var coordinatePattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]+:[A-Za-z0-9_.\-]+:[A-Za-z0-9_.+\-]+$`)

// Load reads buildconf.yml or buildconf.yaml from dir. A missing script is not
// an error: the defaults reproduce the stock root build script.
func Load(dir string) (*Script, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, bcerrors.NewFilesystemError(bcerrors.ErrProjectDirNotFound, dir, err)
	}
	if info, err := os.Stat(absDir); err != nil || !info.IsDir() {
		if err == nil {
			err = fmt.Errorf("not a directory")
		}
		return nil, bcerrors.NewFilesystemError(bcerrors.ErrProjectDirNotFound, absDir, err)
	}

	// Subproject names may contain dots, so nested keys split on "::" instead.
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	setDefaults(v)

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(absDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(keyDelimiter, "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var parseErr viper.ConfigParseError
		switch {
		case stderrors.As(err, &notFound):
			// Build script not found - use defaults
		case stderrors.As(err, &parseErr):
			return nil, bcerrors.NewConfigurationError(bcerrors.ErrInvalidBuildScript).
				WithMessage("failed to parse build script").
				WithPath(v.ConfigFileUsed()).
				WithCause(err)
		default:
			return nil, bcerrors.NewFilesystemError(bcerrors.ErrBuildScriptNotReadable, v.ConfigFileUsed(), err)
		}
	}

	var script Script
	if err := v.Unmarshal(&script); err != nil {
		return nil, bcerrors.NewConfigurationError(bcerrors.ErrInvalidBuildScript).
			WithMessage("failed to unmarshal build script").
			WithPath(v.ConfigFileUsed()).
			WithCause(err)
	}
	script.Dir = absDir
	script.File = v.ConfigFileUsed()

	if script.RootProjectName == "" {
		script.RootProjectName = filepath.Base(absDir)
	}

	if err := validateConfig(&script); err != nil {
		return nil, err
	}

	return &script, nil
}

// Find walks up from dir looking for a build script and returns the directory containing it
func Find(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		for _, ext := range []string{".yml", ".yaml"} {
			if _, err := os.Stat(filepath.Join(current, FileName+ext)); err == nil {
				return current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", bcerrors.NewFilesystemError(bcerrors.ErrProjectDirNotFound, dir,
				fmt.Errorf("no %s.yml found in %s or any parent directory", FileName, dir))
		}
		current = parent
	}
}

const keyDelimiter = "::"

func setDefaults(v *viper.Viper) {
	v.SetDefault("include", []string{"app"})
	v.SetDefault("repositories", []map[string]any{
		{"name": GoogleRepository.Name, "url": GoogleRepository.URL},
		{"name": MavenCentralRepository.Name, "url": MavenCentralRepository.URL},
	})
	v.SetDefault("build_dir", "../build")
	v.SetDefault("evaluation_depends_on", "app")
	v.SetDefault("java::source_compatibility", "11")
	v.SetDefault("java::target_compatibility", "11")
	v.SetDefault("clean_task", "clean")
	v.SetDefault("buildscript::classpath", []string{})
}

// validateConfig validates the build script
func validateConfig(script *Script) error {
	if err := validator.New().Struct(script); err != nil {
		return bcerrors.NewConfigurationError(bcerrors.ErrInvalidBuildScript).
			WithMessage("build script failed validation").
			WithPath(script.File).
			WithCause(err)
	}

	seen := make(map[string]struct{}, len(script.Include))
	for _, name := range script.Include {
		if err := project.ValidateProjectName(name); err != nil {
			return err
		}
		if _, dup := seen[name]; dup {
			return bcerrors.NewConfigurationError(bcerrors.ErrDuplicateProject).WithNode(name)
		}
		seen[name] = struct{}{}
	}

	// viper lowercases map keys, so project sections match include names case-insensitively
	lowered := make(map[string]struct{}, len(seen))
	for name := range seen {
		lowered[strings.ToLower(name)] = struct{}{}
	}
	for name := range script.Projects {
		if _, ok := lowered[strings.ToLower(name)]; !ok {
			return bcerrors.NewConfigurationError(bcerrors.ErrUnknownProject).
				WithMessage("projects section configures %q, which is not included", name).
				WithNode(name)
		}
	}

	if _, err := project.ParseJavaVersion(script.Java.SourceCompatibility); err != nil {
		return err
	}
	if _, err := project.ParseJavaVersion(script.Java.TargetCompatibility); err != nil {
		return err
	}

	for _, entry := range script.Buildscript.Classpath {
		if !coordinatePattern.MatchString(entry) {
			return bcerrors.NewConfigurationError(bcerrors.ErrInvalidClasspathEntry).
				WithMessage("classpath entry %q is not a group:artifact:version coordinate", entry)
		}
	}

	return nil
}

// Registries returns the configured registries as project repositories
func (s *Script) Registries() []project.Repository {
	out := make([]project.Repository, 0, len(s.Repositories))
	for _, r := range s.Repositories {
		out = append(out, project.Repository{Name: r.Name, URL: r.URL})
	}
	return out
}

// Units returns the compilation units configured for a subproject, or nil for the default
func (s *Script) Units(name string) []*project.CompilationUnit {
	cfg, ok := s.Projects[name]
	if !ok {
		cfg, ok = s.Projects[strings.ToLower(name)]
	}
	if !ok || len(cfg.Units) == 0 {
		return nil
	}
	units := make([]*project.CompilationUnit, 0, len(cfg.Units))
	for _, u := range cfg.Units {
		units = append(units, project.NewCompilationUnit(u.Name, project.UnitKind(strings.ToLower(u.Kind))))
	}
	return units
}

// JavaLevels returns the parsed source and target levels
func (s *Script) JavaLevels() (source, target project.JavaVersion, err error) {
	if source, err = project.ParseJavaVersion(s.Java.SourceCompatibility); err != nil {
		return "", "", err
	}
	if target, err = project.ParseJavaVersion(s.Java.TargetCompatibility); err != nil {
		return "", "", err
	}
	return source, target, nil
}
