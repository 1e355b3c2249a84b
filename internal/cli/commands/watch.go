package commands

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/buildconf/internal/cli/config"
	"github.com/conduit-lang/buildconf/internal/cli/ui"
	"github.com/conduit-lang/buildconf/internal/watch"
)

var watchDelay time.Duration

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the configuration pass when the build script changes",
		Long: `Run the configuration pass, then watch buildconf.yml and run it again
after every change. Failed passes are reported and watching continues.

Examples:
  buildconf watch
  buildconf watch --delay 500ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			dir, err := resolveProjectDir()
			if err != nil {
				return err
			}
			dir, err = filepath.Abs(dir)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			// One pass at a time; the debouncer may fire while a pass is running.
			var mu sync.Mutex
			pass := func() {
				mu.Lock()
				defer mu.Unlock()

				session, err := applyScript(ctx, dir, logger)
				if err != nil {
					ui.WriteError(cmd.ErrOrStderr(), err, noColor)
					return
				}
				ui.WriteSuccess(out, fmt.Sprintf("Configured %d projects in %s (session %s)",
					len(session.Graph.Nodes()), session.Duration.Round(time.Microsecond), session.ID), noColor)
			}

			pass()

			names := []string{config.FileName + ".yml", config.FileName + ".yaml"}
			watcher, err := watch.NewScriptWatcher(dir, names, watchDelay, logger, func([]string) error {
				pass()
				return nil
			})
			if err != nil {
				return err
			}
			if err := watcher.Start(); err != nil {
				return err
			}
			defer watcher.Stop() //nolint:errcheck

			info := color.New(color.FgCyan)
			if noColor {
				info.DisableColor()
			}
			info.Fprintf(out, "Watching %s for changes. Press Ctrl+C to stop.\n", dir)

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().DurationVar(&watchDelay, "delay", watch.DefaultDelay, "Wait this long after the last change before re-running")

	return cmd
}
