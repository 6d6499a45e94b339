package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/treykane/logicalroot/internal/app"
	"github.com/treykane/logicalroot/internal/config"
	"github.com/treykane/logicalroot/internal/logging"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootOptions struct {
	configPath string
	logLevel   string
	provider   string
	noMouse    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "logicalroot",
		Short: "Build issue trees in the terminal",
		Long: `logicalroot breaks a problem statement down into a MECE issue tree.

Describe the problem, then grow the tree on the canvas. The assistant can
suggest child issues for the selected node and audit the whole tree for
gaps and overlaps. Trees export to Markdown, HTML, JSON and YAML.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(opts.logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to config.json (default ~/.logicalroot/config.json)")
	flags.StringVar(&opts.provider, "provider", "", "assistant provider: openai, heuristic or off")
	flags.BoolVar(&opts.noMouse, "no-mouse", false, "disable mouse input")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the logicalroot version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "logicalroot", version)
		},
	}
}

// configureLogging applies the --log-level flag. Without the flag or any
// logging environment, only errors are written so stderr does not bleed
// into the alternate screen.
func configureLogging(flagLevel string) {
	switch {
	case flagLevel != "":
		logging.SetLevel(flagLevel)
	case os.Getenv("LOGICALROOT_LOG_LEVEL") == "" && os.Getenv("LOGICALROOT_LOG_FILE") == "":
		logging.SetLevel("error")
	}
}

func runApp(opts *rootOptions) error {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return errors.New("logicalroot needs an interactive terminal")
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	provider, err := app.NewProvider(cfg)
	if err != nil {
		return err
	}

	model := app.New(app.Options{Config: cfg, Provider: provider})
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if !cfg.DisableMouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	if _, err := tea.NewProgram(model, programOpts...).Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

// loadConfig reads the config file, falling back to defaults when none
// exists, then applies command-line overrides.
func loadConfig(opts *rootOptions) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFrom(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if errors.Is(err, config.ErrNotConfigured) {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return config.Config{}, err
	}

	if opts.provider != "" {
		cfg.Assistant.Provider = opts.provider
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	if opts.noMouse {
		cfg.DisableMouse = true
	}
	return cfg, nil
}
