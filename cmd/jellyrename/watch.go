package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/jellyrename/internal/logging"
	"github.com/Nomadcxx/jellyrename/internal/prompt"
	"github.com/Nomadcxx/jellyrename/internal/ui"
	"github.com/Nomadcxx/jellyrename/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	var settle time.Duration
	var scanFirst bool
	var recursive bool

	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Watch a directory and rename new movie files",
		Long: `Monitor a movie directory and run the rename workflow on every video file
that appears in it, once the file has stopped changing.

Files are handled one at a time. Files already named "Title (Year).ext",
including the ones just renamed, are ignored.

Examples:
  jellyrename watch /media/Movies
  jellyrename watch /media/Movies --settle 30s
  jellyrename watch --scan-first -n
  jellyrename watch /media/Incoming --recursive=false`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("settle") {
				settle = cfg.Watch.Settle()
			}

			log := openLogger(cfg)
			defer log.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			// A second Ctrl+C kills the process even while a prompt is waiting.
			go func() {
				<-ctx.Done()
				stop()
			}()

			r := buildRenamer(cfg, log)

			if scanFirst {
				if _, err := r.Run(ctx, cfg.Library.Root); err != nil {
					return stopped(err)
				}
			}

			w, err := watcher.NewWatcher(r,
				watcher.WithSettle(settle),
				watcher.WithRecursive(recursive),
				watcher.WithLogger(log))
			if err != nil {
				return fmt.Errorf("creating watcher: %w", err)
			}
			defer w.Close()

			if err := w.Watch([]string{cfg.Library.Root}); err != nil {
				return fmt.Errorf("watching directory: %w", err)
			}

			log.Info("watch", "Watch started",
				logging.F("root", cfg.Library.Root),
				logging.F("settle", settle))
			ui.InfoMsg(os.Stdout, "Watching %s (settle %s). Press Ctrl+C to stop.",
				ui.Path(cfg.Library.Root), ui.FormatDuration(settle))

			if err := w.Start(ctx); err != nil {
				return stopped(err)
			}
			fmt.Println()
			ui.InfoMsg(os.Stdout, "Watch stopped.")
			return nil
		},
	}

	cmd.Flags().DurationVar(&settle, "settle", 5*time.Second, "how long a file must stay unchanged before it is handled")
	cmd.Flags().BoolVar(&recursive, "recursive", true, "also watch subdirectories")
	cmd.Flags().BoolVar(&scanFirst, "scan-first", false, "process files already in the directory before watching")

	return cmd
}

// stopped turns "the user is gone" errors into a clean exit.
func stopped(err error) error {
	if errors.Is(err, prompt.ErrInterrupted) || errors.Is(err, prompt.ErrInputClosed) || errors.Is(err, context.Canceled) {
		ui.WarningMsg(os.Stdout, "Stopped.")
		return nil
	}
	return err
}
