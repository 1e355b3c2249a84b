package commands

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/buildconf/internal/cli/config"
	"github.com/conduit-lang/buildconf/internal/cli/ui"
	"github.com/conduit-lang/buildconf/internal/loader"
	"github.com/conduit-lang/buildconf/internal/logging"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

var (
	projectDir string
	verbose    bool
	logJSON    bool
	noColor    bool
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "buildconf",
		Short: "Root build configuration for multi-project Android builds",
		Long: `buildconf - root build configuration for multi-project Android builds

buildconf reads buildconf.yml from the project root and runs one configuration
pass over the project graph:
  • applies package registries to every project
  • relocates the root output directory and nests each subproject under it
  • orders subproject evaluation after a designated project
  • pins the Java language level of every Java compilation unit
  • registers the clean task that deletes the root output directory`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&projectDir, "project-dir", "C", "", "Project root directory (default: nearest directory with buildconf.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewApplyCommand())
	rootCmd.AddCommand(NewCleanCommand())
	rootCmd.AddCommand(NewTasksCommand())
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewProjectsCommand())
	rootCmd.AddCommand(NewWatchCommand())
	rootCmd.AddCommand(NewInitCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the buildconf version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			kv := ui.NewKeyValueTable(cmd.OutOrStdout(), noColor)
			kv.AddRow("buildconf version", Version)
			kv.AddRow("Git commit", GitCommit)
			kv.AddRow("Build date", BuildDate)
			kv.AddRow("Go version", goVer)
			kv.Render()
		},
	}
}

// resolveProjectDir returns --project-dir, or the nearest directory holding a
// build script, or the working directory when there is none.
func resolveProjectDir() (string, error) {
	if projectDir != "" {
		return projectDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if dir, err := config.Find(cwd); err == nil {
		return dir, nil
	}
	return cwd, nil
}

func newLogger() (*zap.Logger, error) {
	return logging.New(logging.Options{Verbose: verbose, JSON: logJSON})
}

// applyScript loads the build script in dir and runs one configuration pass
func applyScript(ctx context.Context, dir string, logger *zap.Logger) (*loader.Session, error) {
	script, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	return loader.New(logger).Apply(ctx, script)
}

// withSession runs fn against a fresh configuration pass
func withSession(cmd *cobra.Command, fn func(*loader.Session) error) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	dir, err := resolveProjectDir()
	if err != nil {
		return err
	}
	session, err := applyScript(cmd.Context(), dir, logger)
	if err != nil {
		return err
	}
	return fn(session)
}

// Execute runs the root command
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ui.WriteError(rootCmd.ErrOrStderr(), err, noColor)
		return err
	}
	return nil
}
