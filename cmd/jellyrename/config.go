package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/jellyrename/internal/config"
	"github.com/Nomadcxx/jellyrename/internal/tmdb"
	"github.com/Nomadcxx/jellyrename/internal/ui"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage jellyrename configuration",
		Long: `Commands for managing jellyrename configuration.

The config file is stored at: ~/.config/jellyrename/config.toml
The TMDB token may also come from TMDB_BEARER in a .env file or the environment.

Examples:
  jellyrename config init              # Create default config file
  jellyrename config show              # Display current configuration
  jellyrename config test              # Check the token and movie directory
  jellyrename config path              # Show config file path`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigTestCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Long: `Create a new configuration file with default values.

The config file will be created at ~/.config/jellyrename/config.toml
Edit this file to set your TMDB token and movie directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if path == "" {
				var err error
				if path, err = config.ConfigPath(); err != nil {
					return err
				}
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}

			cfg := config.DefaultConfig()
			if err := cfg.SaveTo(path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			ui.SuccessMsg(os.Stdout, "Created config file: %s", path)
			fmt.Println("\nNext steps:")
			fmt.Println("  1. Set [tmdb] bearer, or TMDB_BEARER in .env")
			fmt.Println("  2. Set [library] root to your movie directory")
			fmt.Println("  3. Run 'jellyrename config test' to verify")

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing config file")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFrom(config.Sources{ConfigFile: cfgFile})
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			path := cfgFile
			if path == "" {
				path, _ = config.ConfigPath()
			}
			fmt.Printf("Config file: %s\n", path)

			printConfig(cfg)
			return nil
		},
	}
}

func printConfig(cfg *config.Config) {
	ui.Section(os.Stdout, "TMDB")
	ui.KeyValues(os.Stdout, [][2]string{
		{"Token", maskAPIKey(cfg.TMDB.Bearer)},
		{"Base URL", cfg.TMDB.BaseURL},
		{"Language", cfg.TMDB.Language},
		{"Timeout", cfg.TMDB.Timeout().String()},
	})

	root := cfg.Library.Root
	if root == "" {
		root = "(not set)"
	}
	ui.Section(os.Stdout, "Library")
	ui.KeyValues(os.Stdout, [][2]string{
		{"Root", root},
		{"Extensions", strings.Join(cfg.Library.Extensions, " ")},
	})

	ui.Section(os.Stdout, "Options")
	ui.KeyValues(os.Stdout, [][2]string{
		{"Dry run", fmt.Sprint(cfg.Options.DryRun)},
		{"TUI", fmt.Sprint(cfg.Options.TUI)},
		{"Watch settle", cfg.Watch.Settle().String()},
	})

	logFile := cfg.Logging.File
	if logFile == "" {
		logFile = "(default)"
	}
	ui.Section(os.Stdout, "Logging")
	ui.KeyValues(os.Stdout, [][2]string{
		{"Level", cfg.Logging.Level},
		{"File", logFile},
	})
}

func newConfigTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Test configuration and TMDB access",
		Long: `Verify that the configuration is usable.

Tests:
  - A TMDB token is configured and accepted by the API
  - The movie directory exists and is readable`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFrom(config.Sources{ConfigFile: cfgFile})
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			var problems []string

			fmt.Println("Testing configuration...")

			ui.Section(os.Stdout, "TMDB")
			if err := cfg.ValidateToken(); err != nil {
				problems = append(problems, "TMDB token not set")
				ui.ErrorMsg(os.Stdout, "Token not configured (set TMDB_BEARER)")
			} else {
				client := tmdb.NewClient(tmdb.Config{
					BaseURL:  cfg.TMDB.BaseURL,
					Token:    cfg.TMDB.Bearer,
					Language: cfg.TMDB.Language,
					Timeout:  cfg.TMDB.Timeout(),
				})
				ctx, cancel := context.WithTimeout(context.Background(), cfg.TMDB.Timeout()+time.Second)
				movies, err := client.SearchMovies(ctx, "The Matrix")
				cancel()
				if err != nil {
					problems = append(problems, fmt.Sprintf("TMDB search failed: %v", err))
					ui.ErrorMsg(os.Stdout, "Search failed: %v", err)
				} else {
					ui.SuccessMsg(os.Stdout, "Token accepted (%d results for a test search)", len(movies))
				}
			}

			ui.Section(os.Stdout, "Library")
			if cfg.Library.Root == "" {
				ui.WarningMsg(os.Stdout, "No movie directory configured (pass one on the command line)")
			} else if err := testReadable(cfg.Library.Root); err != nil {
				problems = append(problems, fmt.Sprintf("movie directory %s: %v", cfg.Library.Root, err))
				ui.ErrorMsg(os.Stdout, "%s (%v)", cfg.Library.Root, err)
			} else {
				ui.SuccessMsg(os.Stdout, "%s", cfg.Library.Root)
			}

			if len(problems) > 0 {
				fmt.Printf("\n%d problem(s) found:\n", len(problems))
				for _, p := range problems {
					fmt.Printf("  - %s\n", p)
				}
				return fmt.Errorf("configuration has %d problem(s)", len(problems))
			}

			fmt.Println()
			ui.SuccessMsg(os.Stdout, "Configuration OK")
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if path == "" {
				var err error
				if path, err = config.ConfigPath(); err != nil {
					return err
				}
			}
			fmt.Println(path)
			if _, err := os.Stat(path); err != nil {
				fmt.Println("(file does not exist)")
			}
			return nil
		},
	}
}

func testReadable(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory")
	}
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Readdirnames(1)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
