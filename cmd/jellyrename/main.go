package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Nomadcxx/jellyrename/internal/config"
	"github.com/Nomadcxx/jellyrename/internal/logging"
	"github.com/Nomadcxx/jellyrename/internal/prompt"
	"github.com/Nomadcxx/jellyrename/internal/renamer"
	"github.com/Nomadcxx/jellyrename/internal/scanner"
	"github.com/Nomadcxx/jellyrename/internal/tmdb"
	"github.com/Nomadcxx/jellyrename/internal/ui"
)

var (
	version = "dev" // Set by build flags: -ldflags="-X main.version=1.0.0"
	cfgFile string
	dryRun  bool
	verbose bool
	useTUI  bool
	noColor bool
)

const asciiHeader = `     _      _ _
    (_) ___| | |_   _ _ __ ___ _ __   __ _ _ __ ___   ___
    | |/ _ \ | | | | | '__/ _ \ '_ \ / _' | '_ ' _ \ / _ \
    | |  __/ | | |_| | | |  __/ | | | (_| | | | | | |  __/
   _/ |\___|_|_|\__, |_|  \___|_| |_|\__,_|_| |_| |_|\___|
  |__/          |___/                                     `

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, config.Remediation(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jellyrename [directory]",
		Short: "Rename movie files to Title (Year).ext using TMDB",
		Long: `jellyrename walks a movie directory and renames every video file to the
"Title (Year).ext" form Jellyfin and Kodi expect.

For each file it cleans the name into a search query, looks it up on TMDB,
lets you pick the right match and asks before renaming. Files that already
follow the naming scheme are skipped without a lookup. Nothing is ever
overwritten.

Examples:
  jellyrename /media/Movies
  jellyrename /media/Movies --dry-run
  jellyrename --tui                       # use [library] root from config`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				ui.DisableColors()
			}
		},
		RunE: runRename,
	}

	originalHelpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd == rootCmd {
			printHeader(version)
		}
		originalHelpFunc(cmd, args)
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/jellyrename/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "ask as usual but never rename")
	rootCmd.PersistentFlags().BoolVar(&useTUI, "tui", false, "pick matches with an arrow-key list")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func runRename(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	log := openLogger(cfg)
	defer log.Close()

	r := buildRenamer(cfg, log)
	if _, err := r.Run(context.Background(), cfg.Library.Root); err != nil {
		return stopped(err)
	}
	return nil
}

// loadConfig merges the config file, .env, environment and flags, then
// validates the result. The token is checked before anything else.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.LoadFrom(config.Sources{ConfigFile: cfgFile})
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.Library.Root = args[0]
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.Options.DryRun = dryRun
	}
	if cmd.Flags().Changed("tui") {
		cfg.Options.TUI = useTUI
	}
	if verbose {
		cfg.Logging.Level = "debug"
		cfg.Logging.Console = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openLogger(cfg *config.Config) *logging.Logger {
	log, err := logging.New(cfg.Logging)
	if err != nil {
		ui.WarningMsg(os.Stderr, "Logging disabled: %v", err)
		return logging.Nop()
	}
	return log
}

func buildRenamer(cfg *config.Config, log *logging.Logger) *renamer.Renamer {
	client := tmdb.NewClient(tmdb.Config{
		BaseURL:  cfg.TMDB.BaseURL,
		Token:    cfg.TMDB.Bearer,
		Language: cfg.TMDB.Language,
		Timeout:  cfg.TMDB.Timeout(),
	})

	var p prompt.Prompter = prompt.NewConsolePrompter(os.Stdin, os.Stdout)
	if cfg.Options.TUI {
		if ui.IsInteractive(os.Stdin) {
			p = prompt.NewTUIPrompter(os.Stdin, os.Stdout)
		} else {
			ui.WarningMsg(os.Stderr, "stdin is not a terminal, using plain prompts")
		}
	}

	fsys := afero.NewOsFs()
	return renamer.New(
		fsys,
		scanner.New(fsys, cfg.Library.Extensions),
		tmdb.NewSearcher(client, log),
		p,
		renamer.WithDryRun(cfg.Options.DryRun),
		renamer.WithLogger(log),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			printHeader(version)
		},
	}
}

// printHeader displays the ASCII header with version info
func printHeader(version string) {
	fmt.Println(asciiHeader)
	fmt.Printf("Version: %s\n\n", version)
}
