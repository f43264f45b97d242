package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jv/internal/limiter"
	"github.com/oakwood-commons/jv/internal/navigator"
	"github.com/oakwood-commons/jv/internal/ui"
	"github.com/oakwood-commons/jv/pkg/loader"
	"github.com/oakwood-commons/jv/pkg/logger"
	"github.com/oakwood-commons/jv/pkg/settings"
)

var (
	themeName      string
	configFile     string
	debug          bool
	noColor        bool
	renderSnapshot bool
	startKeys      []string
	snapshotWidth  int
	snapshotHeight int
	logFile        string
	limitRecords   int
	offsetRecords  int
	tailRecords    int
)

var rootCtx = context.Background()

// logCloser closes --log-file once the command finishes.
var logCloser io.Closer

// runModelFn starts the interactive program; tests replace it.
var runModelFn = ui.RunModel

var errNotTerminal = errors.New("stdout is not a terminal (use --snapshot for non-interactive output)")

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " <file>",
	Short: "Browse JSON Lines files one record at a time",
	Long: `jv shows the records of a JSON Lines (NDJSON) file one at a time as an
indented, colored tree. Step between records, collapse a record to a
placeholder, and scroll long or wide records.

Keys: ↑/↓ record, j/k line, f/b (PgDn/PgUp, Ctrl+F/Ctrl+B) page,
←/→ scroll sideways, g/G top/bottom, Enter collapse, q quit.`,
	Example: "\n  jv events.jsonl\n  jv --theme light events.jsonl\n  jv --snapshot --press '<Down><Enter>' --width 100 events.jsonl\n",
	Args:    cobra.ExactArgs(1),
	Version: settings.VersionInformation.BuildVersion,
	// main prints the returned error once.
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Map CLI debug flag to log level: debug => zap.DebugLevel (-1), else zap.InfoLevel (0)
		var level int8
		if debug {
			level = -1
		}
		run := settings.NewCliParams()
		run.MinLogLevel = level
		run.ConfigPath = configFile
		run.ThemeName = themeName
		run.NoColor = noColor
		run.Snapshot = renderSnapshot
		run.LogFile = logFile

		lgr, err := newCommandLogger(run)
		if err != nil {
			return err
		}
		named := lgr.WithValues("command", cmd.Name())
		rootCtx = settings.IntoContext(logger.WithLogger(context.Background(), &named), run)
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logCloser != nil {
			_ = logCloser.Close()
			logCloser = nil
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runViewer(rootCtx, cmd, args[0])
	},
}

// newCommandLogger returns the global stderr logger, or a file logger when
// --log-file is set.
func newCommandLogger(run *settings.Run) (logr.Logger, error) {
	if run.LogFile == "" {
		return *logger.Get(run.MinLogLevel), nil
	}
	f, err := os.OpenFile(run.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return logr.Discard(), fmt.Errorf("open log file: %w", err)
	}
	logCloser = f
	lgr, _ := logger.New(logger.Options{Level: run.MinLogLevel, Output: f})
	return lgr, nil
}

func runViewer(ctx context.Context, cmd *cobra.Command, path string) error {
	lgr := *logger.FromContext(ctx)
	run := settings.RunFromContext(ctx)
	run.InputPath = path

	limits := limiter.Config{Limit: limitRecords, Offset: offsetRecords, Tail: tailRecords}
	if err := limits.Validate(); err != nil {
		return err
	}

	cfgPath := resolveConfigPath(run.ConfigPath)
	cfg, err := loadMergedConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfgPath != "" {
		lgr.V(1).Info("config loaded", logger.FileKey, cfgPath)
	}

	name := cfg.Theme
	if cmd.Flags().Changed("theme") {
		name = run.ThemeName
	}
	theme, err := ui.LoadTheme(name, cfg.Colors)
	if err != nil {
		return err
	}
	keys, err := cfg.KeyMap()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	palette := theme.Palette(run.NoColor || os.Getenv("NO_COLOR") != "")

	doc, err := loader.LoadFile(path)
	if err != nil {
		return err
	}
	lgr.V(1).Info("input loaded", logger.FileKey, path, "records", doc.Len())
	if limits.IsActive() {
		doc = limits.Apply(doc)
		lgr.V(1).Info("records limited", "kept", doc.Len())
	}

	// Log lines written to stderr would tear the alt screen, so the
	// interactive controller logs only to --log-file.
	ctrlLog := lgr
	if !run.Snapshot && run.LogFile == "" {
		ctrlLog = logr.Discard()
	}
	opts := []navigator.Option{
		navigator.WithLogger(ctrlLog),
		navigator.WithPageSize(cfg.PageSize),
	}
	if cfg.HintsEnabled() {
		opts = append(opts, navigator.WithHints(keys.Hints()))
	}
	ctrl := navigator.New(doc, opts...)

	if run.Snapshot {
		size := snapshotGrid(snapshotWidth, snapshotHeight)
		out, err := ui.RenderSnapshot(ctrl, ui.SnapshotConfig{
			Width:     size.Width,
			Height:    size.Height,
			Keys:      keys,
			Palette:   palette,
			StartKeys: startKeys,
		})
		if err != nil {
			return fmt.Errorf("--press: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	}

	if !stdoutIsTerminal() {
		return errNotTerminal
	}
	pending, err := ui.ParseStartupKeys(keys, startKeys)
	if err != nil {
		return fmt.Errorf("--press: %w", err)
	}
	for _, c := range pending {
		if c == navigator.CommandQuit {
			return nil
		}
		ctrl.Apply(c)
	}

	progOpts, release := ttyProgramOptions()
	defer release()
	if snapshotWidth > 0 && snapshotHeight > 0 {
		progOpts = append(progOpts, tea.WithWindowSize(snapshotWidth, snapshotHeight))
	}
	if err := runModelFn(ctrl, keys, palette, progOpts...); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	lgr.V(1).Info("viewer closed", logger.RecordKey, ctrl.Index())
	return nil
}

// cliVersionString builds a human-readable version string for --version and
// the version subcommand.
func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)", settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print jv version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
		return err
	},
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runThemesList(cmd.OutOrStdout())
	},
}

// runThemesList prints the built-in themes and marks the configured default.
func runThemesList(w io.Writer) error {
	cfg, err := loadMergedConfig(resolveConfigPath(configFile))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	def := cfg.Theme
	if def == "" {
		def = ui.DefaultThemeName
	}
	if _, err := fmt.Fprintf(w, "Available themes (default: %s):\n", def); err != nil {
		return err
	}
	for _, name := range ui.ThemeNames() {
		if _, err := fmt.Fprintf(w, " - %s\n", name); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.SetVersionTemplate(cliVersionString() + "\n")
	rootCmd.Flags().StringVar(&themeName, "theme", ui.DefaultThemeName, "color theme: dark|light|mono (default from config)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "path to a YAML or TOML config file (default $XDG_CONFIG_HOME/jv/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.Flags().BoolVar(&renderSnapshot, "snapshot", false, "render one screen and exit; honors --width, --height and --press")
	rootCmd.Flags().StringArrayVar(&startKeys, "press", nil, "simulate keys on startup. Use <Key> for special keys (e.g. <Down>, <Enter>, <PgDn>, <C-f>); other text types literally")
	rootCmd.Flags().IntVar(&snapshotWidth, "width", 0, "screen width in columns (snapshot, or fixed size for the viewer)")
	rootCmd.Flags().IntVar(&snapshotHeight, "height", 0, "screen height in rows (snapshot, or fixed size for the viewer)")
	rootCmd.Flags().IntVar(&limitRecords, "limit", 0, "show only the first N records (after --offset)")
	rootCmd.Flags().IntVar(&offsetRecords, "offset", 0, "skip the first N records")
	rootCmd.Flags().IntVar(&tailRecords, "tail", 0, "show only the last N records (mutually exclusive with --limit; ignores --offset)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(themesCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
