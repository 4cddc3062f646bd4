package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuicount/internal/config"
	"github.com/verte-zerg/tuicount/internal/export"
	"github.com/verte-zerg/tuicount/internal/locale"
	"github.com/verte-zerg/tuicount/internal/model"
	"github.com/verte-zerg/tuicount/internal/stats"
	"github.com/verte-zerg/tuicount/internal/statsui"
	"github.com/verte-zerg/tuicount/internal/store"
	"github.com/verte-zerg/tuicount/internal/theme"
)

var (
	statsKey   string
	statsFrame string
	statsPlain bool
	statsWidth int

	exportOut string
	exportKey string

	resetKey string
	resetYes bool
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		slog.Info("created config", "path", path)
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	d := model.DefaultSettings()
	return fmt.Sprintf(`# tuicount configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# range = %d              # Counting range (e.g. 10, 20, 100, 1000)
# ops = %q               # Operations, any of + - * /
# per-page = %d            # Problems per page (1-10)
# deadline = %d           # Seconds per page, 0 disables the deadline (0-300)

[display]
# theme = %q      # dinosaur, unicorn or penguin
# lang = %q             # en, cs or he
`,
		d.CountingRange,
		operationsFlag(d.Operations),
		d.ExamplesPerPage,
		d.DeadlineSeconds,
		d.Theme,
		d.Lang,
	)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the progress dashboard",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsKey, "key", "", "difficulty key, e.g. 20_+-_5 (default: current settings)")
	cmd.Flags().StringVar(&statsFrame, "frame", string(model.FrameWeek), "time frame: day, week, month or year")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the dashboard")
	cmd.Flags().IntVar(&statsWidth, "width", 0, "text report width (default: terminal width)")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	frame, err := model.ParseTimeFrame(statsFrame)
	if err != nil {
		return fmt.Errorf("invalid --frame value: %w", err)
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settings := fileSettings(fileCfg)
	cfg := model.StatsConfig{
		DifficultyKey: strings.TrimSpace(statsKey),
		CurrentKey:    settings.DifficultyKey(),
		TimeFrame:     frame,
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	if statsPlain {
		report, err := stats.BuildReport(cmd.Context(), st, cfg, time.Now())
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		slog.Debug("built report", "difficulty_key", report.DifficultyKey, "frame", report.TimeFrame, "sessions", report.Metrics.TotalSessions)
		return stats.RenderReport(cmd.OutOrStdout(), report, statsWidth, false)
	}

	cat, err := locale.New(settings.Lang)
	if err != nil {
		cat, _ = locale.New("en")
	}
	m := statsui.NewModel(st, cfg, theme.MustGet(settings.Theme), cat)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List recorded difficulty keys",
		Args:  cobra.NoArgs,
		RunE:  runKeysCmd,
	}
}

func runKeysCmd(cmd *cobra.Command, _ []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()
	keys, err := st.ListDifficultyKeys(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list difficulty keys: %w", err)
	}
	if len(keys) == 0 {
		logErrln("No sessions recorded yet. Start practicing with: tuicount")
		return nil
	}
	return writeKeys(cmd.OutOrStdout(), keys)
}

func writeKeys(w io.Writer, keys []string) error {
	width := 0
	for _, key := range keys {
		if len(key) > width {
			width = len(key)
		}
	}
	for _, key := range keys {
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", width, key, stats.DisplayName(key)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export sessions and dashboard to an Excel workbook",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVarP(&exportOut, "out", "o", "", "output .xlsx path (default: data dir)")
	cmd.Flags().StringVar(&exportKey, "key", "", "difficulty key for the dashboard sheet (default: current settings)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	out := strings.TrimSpace(exportOut)
	if out == "" {
		out = config.DefaultExportPath()
	}
	if !strings.EqualFold(filepath.Ext(out), ".xlsx") {
		return fmt.Errorf("--out must end with .xlsx")
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	sessions, err := st.ListSessions(cmd.Context(), store.SessionFilter{})
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	keys := stats.AvailableDifficultyKeys(sessions)
	key := stats.SelectDifficultyKey(keys, strings.TrimSpace(exportKey), fileSettings(fileCfg).DifficultyKey())

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := export.WriteFile(out, sessions, key, time.Now()); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	slog.Info("exported workbook", "path", out, "sessions", len(sessions), "difficulty_key", key)
	logErrf("Wrote %s\n", out)
	return nil
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete recorded sessions",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().StringVar(&resetKey, "key", "", "only delete sessions of this difficulty key")
	cmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	key := strings.TrimSpace(resetKey)
	if !resetYes {
		target := "all sessions"
		if key != "" {
			target = fmt.Sprintf("sessions of %s", stats.DisplayName(key))
		}
		ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("Delete %s?", target))
		if err != nil {
			return err
		}
		if !ok {
			logErrln("Aborted.")
			return nil
		}
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()
	removed, err := deleteSessions(cmd.Context(), st, key)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d sessions.\n", removed)
	return err
}

func deleteSessions(ctx context.Context, st *store.Store, key string) (int64, error) {
	removed, err := st.DeleteSessions(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions: %w", err)
	}
	slog.Info("deleted sessions", "difficulty_key", key, "count", removed)
	return removed, nil
}

func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N] ", question); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
