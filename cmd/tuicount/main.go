// Package main provides the CLI entrypoint for tuicount.
package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuicount/internal/config"
	"github.com/verte-zerg/tuicount/internal/generator"
	"github.com/verte-zerg/tuicount/internal/locale"
	"github.com/verte-zerg/tuicount/internal/model"
	"github.com/verte-zerg/tuicount/internal/store"
	"github.com/verte-zerg/tuicount/internal/theme"
	"github.com/verte-zerg/tuicount/internal/tui"
)

var (
	practiceRange    int
	practiceOps      string
	practicePerPage  int
	practiceDeadline int
	practiceTheme    string
	practiceLang     string

	verbose bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := model.DefaultSettings()
	rootCmd := &cobra.Command{
		Use:           "tuicount",
		Short:         "TUI arithmetic drills for kids",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogging(verbose)
		},
		RunE: runPracticeCmd,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	rootCmd.Flags().IntVar(&practiceRange, "range", defaults.CountingRange, "counting range (e.g. 10, 20, 100, 1000)")
	rootCmd.Flags().StringVar(&practiceOps, "ops", operationsFlag(defaults.Operations), "operations to practice, any of + - * /")
	rootCmd.Flags().IntVar(&practicePerPage, "per-page", defaults.ExamplesPerPage, "problems per page (1-10)")
	rootCmd.Flags().IntVar(&practiceDeadline, "deadline", defaults.DeadlineSeconds, "seconds per page, 0 disables the deadline (0-300)")
	rootCmd.Flags().StringVar(&practiceTheme, "theme", defaults.Theme, "theme: dinosaur, unicorn or penguin")
	rootCmd.Flags().StringVar(&practiceLang, "lang", defaults.Lang, "interface language: en, cs or he")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newKeysCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newResetCmd())

	return rootCmd
}

func setupLogging(verbose bool) {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	if verbose {
		level.Set(slog.LevelDebug)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settings, err := resolvePracticeSettings(cmd, fileCfg)
	if err != nil {
		return err
	}
	th, err := theme.Get(settings.Theme)
	if err != nil {
		return err
	}
	cat, err := locale.New(settings.Lang)
	if err != nil {
		return err
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	slog.Debug("starting practice", "difficulty_key", settings.DifficultyKey(), "deadline", settings.DeadlineSeconds)
	m := tui.NewModel(settings, st, generator.New(), th, cat)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	m.SaveFinished()
	return nil
}

// resolvePracticeSettings merges defaults, the config file and CLI flags,
// in increasing priority, and validates the result.
func resolvePracticeSettings(cmd *cobra.Command, fileCfg config.FileConfig) (model.Settings, error) {
	applyIntConfig(cmd, "range", &practiceRange, fileCfg.Practice.Range)
	applyStringConfig(cmd, "ops", &practiceOps, fileCfg.Practice.Ops)
	applyIntConfig(cmd, "per-page", &practicePerPage, fileCfg.Practice.PerPage)
	applyIntConfig(cmd, "deadline", &practiceDeadline, fileCfg.Practice.Deadline)
	applyStringConfig(cmd, "theme", &practiceTheme, fileCfg.Display.Theme)
	applyStringConfig(cmd, "lang", &practiceLang, fileCfg.Display.Lang)

	ops, err := model.ParseOperations(practiceOps)
	if err != nil {
		return model.Settings{}, fmt.Errorf("invalid --ops value: %w", err)
	}
	settings := model.Settings{
		CountingRange:   practiceRange,
		Operations:      ops,
		ExamplesPerPage: practicePerPage,
		DeadlineSeconds: practiceDeadline,
		Theme:           practiceTheme,
		Lang:            practiceLang,
	}
	if err := settings.Validate(); err != nil {
		return model.Settings{}, err
	}
	return settings, nil
}

// fileSettings returns the practice settings of the config file on top of the
// defaults, for commands that do not take practice flags.
func fileSettings(fileCfg config.FileConfig) model.Settings {
	settings := model.DefaultSettings()
	if v := fileCfg.Practice.Range; v != nil {
		settings.CountingRange = *v
	}
	if v := fileCfg.Practice.Ops; v != nil {
		if ops, err := model.ParseOperations(*v); err == nil && len(ops) > 0 {
			settings.Operations = ops
		}
	}
	if v := fileCfg.Practice.PerPage; v != nil {
		settings.ExamplesPerPage = *v
	}
	if v := fileCfg.Practice.Deadline; v != nil {
		settings.DeadlineSeconds = *v
	}
	if v := fileCfg.Display.Theme; v != nil {
		settings.Theme = *v
	}
	if v := fileCfg.Display.Lang; v != nil {
		settings.Lang = *v
	}
	return settings
}

func operationsFlag(ops []model.Operation) string {
	out := ""
	for _, op := range ops {
		out += op.Symbol()
	}
	return out
}

func openStore() (*store.Store, func(), error) {
	storePath := config.DefaultDBPath()
	st, err := store.Open(storePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	slog.Debug("opened database", "path", storePath)
	closeStore := func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}
	return st, closeStore, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
