package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/buildconf/internal/cli/config"
	"github.com/conduit-lang/buildconf/internal/cli/ui"
	"github.com/conduit-lang/buildconf/internal/project"
)

var (
	initInteractive bool
	initForce       bool
	initBuildDir    string
	initJava        string
)

var javaLevelOptions = []string{"1.8", "11", "17", "21"}

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [subproject...]",
		Short: "Write a starter build script",
		Long: `Write buildconf.yml in the project directory. Without arguments the script
includes a single "app" subproject, matching the stock root build script.

Examples:
  buildconf init
  buildconf init app camera maps --java 17
  buildconf init --interactive`,
		RunE: runInit,
	}

	cmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "Prompt for each setting")
	cmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing build script")
	cmd.Flags().StringVar(&initBuildDir, "build-dir", "../build", "Root output directory, relative to the project directory")
	cmd.Flags().StringVar(&initJava, "java", "11", "Java source and target compatibility")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := projectDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		dir = cwd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	if err := validateNames(args); err != nil {
		return err
	}

	starter := config.NewStarter(filepath.Base(dir), args...)
	starter.BuildDir = initBuildDir
	starter.Java = config.JavaConfig{SourceCompatibility: initJava, TargetCompatibility: initJava}

	if initInteractive {
		if err := promptStarter(starter); err != nil {
			return err
		}
	}

	path, err := config.WriteStarter(dir, starter, initForce)
	if err != nil {
		return err
	}

	// Reject anything the loader would reject before reporting success.
	if _, err := config.Load(dir); err != nil {
		return err
	}

	ui.WriteSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wrote %s", path), noColor)
	return nil
}

func promptStarter(s *config.Starter) error {
	if err := survey.AskOne(&survey.Input{
		Message: "Root project name:",
		Default: s.RootProjectName,
	}, &s.RootProjectName, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	var include string
	if err := survey.AskOne(&survey.Input{
		Message: "Subprojects (comma separated):",
		Default: strings.Join(s.Include, ", "),
	}, &include, survey.WithValidator(survey.ComposeValidators(survey.Required, validateIncludeList))); err != nil {
		return err
	}
	s.Include = splitIncludeList(include)

	if err := survey.AskOne(&survey.Input{
		Message: "Root output directory:",
		Default: s.BuildDir,
	}, &s.BuildDir, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	const none = "(none)"
	sink := none
	if slices.Contains(s.Include, s.EvaluationDependsOn) {
		sink = s.EvaluationDependsOn
	}
	if err := survey.AskOne(&survey.Select{
		Message: "Evaluate subprojects after:",
		Options: append([]string{none}, s.Include...),
		Default: sink,
	}, &sink); err != nil {
		return err
	}
	s.EvaluationDependsOn = ""
	if sink != none {
		s.EvaluationDependsOn = sink
	}

	java := s.Java.SourceCompatibility
	options := javaLevelOptions
	if !slices.Contains(options, java) {
		options = append([]string{java}, options...)
	}
	if err := survey.AskOne(&survey.Select{
		Message: "Java compatibility:",
		Options: options,
		Default: java,
	}, &java); err != nil {
		return err
	}
	s.Java = config.JavaConfig{SourceCompatibility: java, TargetCompatibility: java}

	return nil
}

func validateIncludeList(ans interface{}) error {
	s, ok := ans.(string)
	if !ok {
		return fmt.Errorf("expected a comma separated list")
	}
	return validateNames(splitIncludeList(s))
}

func validateNames(names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if err := project.ValidateProjectName(name); err != nil {
			return err
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("subproject %q is listed twice", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func splitIncludeList(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
