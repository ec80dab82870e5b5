// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/AnirudhGatech/IECS-UI/internal/config"
	"github.com/AnirudhGatech/IECS-UI/internal/search"
	"github.com/AnirudhGatech/IECS-UI/internal/session"
)

// Version information, set by main from build flags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// skipConfigAnnotation marks commands that run without loading config.
const skipConfigAnnotation = "gtsearch/skip-config"

// globalFlags holds the persistent flag values.
type globalFlags struct {
	configPath string
	endpoint   string
	timeout    int
	theme      string
	logFile    string
	logLevel   string
	verbose    bool
}

// App is the state shared by every command: streams, loaded config and
// the logger.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	flags globalFlags

	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	closeLog func() error

	// Hooks replaced in tests.
	newSearcher      func(cfg *config.Config) session.Searcher
	newLineReader    func(historyPath string) lineReader
	isTerminal       func() bool
	outputIsTerminal func(w io.Writer) bool
}

// NewApp creates an App wired to the process streams.
func NewApp() *App {
	return &App{
		Stdin:            os.Stdin,
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
		newSearcher:      defaultSearcher,
		newLineReader:    newLinerReader,
		isTerminal:       stdioIsTerminal,
		outputIsTerminal: isTerminalWriter,
	}
}

// Execute runs the command line with the process arguments.
func Execute(ctx context.Context) error {
	return NewApp().RootCommand().ExecuteContext(ctx)
}

// RootCommand builds the command tree.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "gtsearch",
		Short: "Search from the terminal",
		Long: `gtsearch sends questions to a GTSearch backend and shows the answers.

Run without a subcommand to open the interactive view.`,
		Version:            Version,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
		Args:               cobra.NoArgs,
		RunE:               a.runTUI,
	}
	root.SetIn(a.Stdin)
	root.SetOut(a.Stdout)
	root.SetErr(a.Stderr)
	root.SetVersionTemplate(versionLine() + "\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "config file (.toml, .json or .yaml)")
	pf.StringVar(&a.flags.endpoint, "endpoint", "", "search endpoint URL")
	pf.IntVar(&a.flags.timeout, "timeout", 0, "request timeout in seconds (0 for none)")
	pf.StringVar(&a.flags.theme, "theme", "", "color theme: auto, dark or light")
	pf.StringVar(&a.flags.logFile, "log-file", "", "log file path")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "mirror logs to stderr")

	root.AddCommand(
		a.askCommand(),
		a.chatCommand(),
		a.configCommand(),
		a.versionCommand(),
	)
	return root
}

// =============================================================================
// SETUP
// =============================================================================

// setup loads config, applies flag overrides and opens the logger.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[skipConfigAnnotation] == "true" {
		a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return nil
	}

	cfg, path, err := a.loadConfig()
	if err != nil {
		return configError(err)
	}
	if err := a.applyFlags(cmd, cfg); err != nil {
		return configError(err)
	}
	a.cfg = cfg
	a.cfgPath = path

	level, err := config.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return configError(err)
	}
	logFile, err := cfg.LogFilePath()
	if err != nil {
		return configError(err)
	}

	var stderr io.Writer
	if a.flags.verbose {
		stderr = a.Stderr
	}
	a.logger, a.closeLog = config.SetupLogger(logFile, level, stderr)
	a.logger.Debug("config loaded", "path", path, "endpoint", cfg.Search.Endpoint)
	return nil
}

func (a *App) teardown(*cobra.Command, []string) error {
	if a.closeLog == nil {
		return nil
	}
	err := a.closeLog()
	a.closeLog = nil
	return err
}

func (a *App) loadConfig() (*config.Config, string, error) {
	if a.flags.configPath != "" {
		cfg, err := config.LoadFromPath(a.flags.configPath)
		return cfg, a.flags.configPath, err
	}
	return config.Load()
}

// applyFlags copies explicitly set flags over cfg and revalidates it.
func (a *App) applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Search.Endpoint = a.flags.endpoint
	}
	if flags.Changed("timeout") {
		cfg.Search.TimeoutSecs = a.flags.timeout
	}
	if flags.Changed("theme") {
		cfg.UI.Theme = a.flags.theme
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = a.flags.logFile
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.flags.logLevel
	}
	cfg.SetDefaults()
	return cfg.Validate()
}

// newSession creates a session backed by the configured searcher.
func (a *App) newSession() *session.Session {
	return session.New(a.newSearcher(a.cfg), session.WithLogger(a.logger))
}

func defaultSearcher(cfg *config.Config) session.Searcher {
	return search.NewClientWithConfig(&search.ClientConfig{
		Endpoint:  cfg.Search.Endpoint,
		Timeout:   cfg.Search.Timeout(),
		UserAgent: "gtsearch/" + Version,
	})
}
