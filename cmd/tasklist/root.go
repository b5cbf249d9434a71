package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/config"
	"github.com/sandeepkv93/tasklist/internal/logging"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
	"github.com/sandeepkv93/tasklist/internal/store"
	"github.com/sandeepkv93/tasklist/internal/update"
	"github.com/sandeepkv93/tasklist/internal/views"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootFlags struct {
	configPath string
	storage    string
	dbPath     string
	dataDir    string
	key        string
	filter     string
	logFile    string
	logLevel   string
	noMouse    bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	cmd := &cobra.Command{
		Use:           "tasklist",
		Short:         "Dated task list in the terminal",
		Long:          "tasklist keeps a newest-first list of dated tasks in local storage. Add, complete, delete and filter them from a terminal UI.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "YAML or TOML config file (default <data-dir>/config.yaml or config.toml if present)")
	pf.StringVar(&flags.storage, "storage", "", "storage backend: sqlite or file")
	pf.StringVar(&flags.dbPath, "db", "", "sqlite database path")
	pf.StringVar(&flags.dataDir, "data-dir", "", "directory for data, logs and the file backend")
	pf.StringVar(&flags.key, "key", "", "storage key holding the task list")
	pf.StringVar(&flags.filter, "filter", "", "initial filter: all, completed or uncompleted")
	pf.StringVar(&flags.logFile, "log-file", "", `log file path, or "off"`)
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&flags.noMouse, "no-mouse", false, "disable mouse support")

	cmd.AddCommand(newListCmd(&flags), newClearCmd(&flags))
	return cmd
}

func newListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the task list and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, *flags)
			if err != nil {
				return err
			}
			return runList(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
}

func newClearCmd(flags *rootFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task under the configured key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("clear removes all tasks; pass --yes to confirm")
			}
			cfg, err := resolveConfig(cmd, *flags)
			if err != nil {
				return err
			}
			return runClear(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting all tasks")
	return cmd
}

// resolveConfig applies defaults, then the config file, then env (with
// <data-dir>/.env filling unset variables), then flags.
func resolveConfig(cmd *cobra.Command, flags rootFlags) (config.Config, error) {
	dataDir := flags.dataDir
	if dataDir == "" {
		dataDir = strings.TrimSpace(os.Getenv("TASKLIST_DATA_DIR"))
	}
	if dataDir == "" {
		dataDir = config.DefaultDataDir()
	}
	cfg := config.Default(dataDir)
	if err := config.LoadDotEnv(dataDir); err != nil {
		return cfg, err
	}

	configPath := flags.configPath
	if configPath == "" {
		configPath = config.FindFile(dataDir)
	}
	if configPath != "" {
		loaded, err := config.LoadFile(cfg, configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	cfg = config.FromEnv(cfg)

	changed := cmd.Flags().Changed
	if changed("data-dir") {
		cfg.DataDir = flags.dataDir
	}
	if changed("storage") {
		cfg.Storage = strings.ToLower(flags.storage)
	}
	if changed("db") {
		cfg.DBPath = flags.dbPath
	}
	if changed("key") {
		cfg.Key = flags.key
	}
	if changed("filter") {
		cfg.Filter = flags.filter
	}
	if changed("log-file") {
		cfg.LogFile = flags.logFile
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if changed("no-mouse") && flags.noMouse {
		cfg.Mouse = false
	}
	return cfg, cfg.Validate()
}

// openStore builds the logger, opens the backend and loads the list. The
// returned cleanup closes both.
func openStore(ctx context.Context, cfg config.Config) (*store.Store, *zap.Logger, func(), error) {
	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}
	zap.ReplaceGlobals(logger)

	if cfg.Storage == storage.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, nil, nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	kv, err := storage.Open(cfg.Storage, cfg.StorageLocation())
	if err != nil {
		logger.Error("open storage failed", zap.String("storage", cfg.Storage), zap.Error(err))
		_ = logger.Sync()
		return nil, nil, nil, err
	}
	cleanup := func() {
		if err := kv.Close(); err != nil {
			logger.Warn("failed to close storage", zap.Error(err))
		}
		_ = logger.Sync()
	}

	st := store.New(kv, store.WithKey(cfg.Key), store.WithLogger(logger))
	if err := st.Load(ctx); err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	logger.Info("store ready",
		zap.String("storage", cfg.Storage),
		zap.String("location", cfg.StorageLocation()),
		zap.String("key", st.Key()),
		zap.Int("tasks", st.Len()),
	)
	return st, logger, cleanup, nil
}

func runTUI(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, logger, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	filter, _ := model.ParseFilter(cfg.Filter)
	m := update.NewModel(st, update.WithLogger(logger), update.WithFilter(filter))

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("program exited with error", zap.Error(err))
		return err
	}
	return nil
}

func runList(ctx context.Context, cfg config.Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, _, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	filter, _ := model.ParseFilter(cfg.Filter)
	list := views.RenderTaskList(st.Tasks(), filter, -1)
	_, err = fmt.Fprintln(out, list.String())
	return err
}

func runClear(ctx context.Context, cfg config.Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, _, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	n, err := st.Clear(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "cleared %d tasks from %q\n", n, st.Key())
	return err
}
