// Package cli is the tugas command tree. Without a subcommand it starts the
// interactive UI; the subcommands print the same views as tables.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tugas/internal/config"
	"tugas/internal/deadline"
	"tugas/internal/logging"
	"tugas/internal/store"
	"tugas/internal/tui"
)

type rootOptions struct {
	ConfigPath string
	DataFile   string
	LogLevel   string
	NoColor    bool
}

// App carries the initialized collaborators through the command tree.
type App struct {
	Config *config.Config
	Log    *zap.Logger
	Store  *store.Store
	Engine *deadline.Engine
	Now    func() time.Time
}

type appKey struct{}

// NewRootCommand builds the command tree. now is the clock every view is
// evaluated against; nil means time.Now.
func NewRootCommand(now func() time.Time) *cobra.Command {
	if now == nil {
		now = time.Now
	}
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "tugas",
		Short: "Daftar tugas sekolah dengan pengingat tenggat",
		Long: `tugas keeps a list of school assignments and shows how close each deadline is.

Run without a subcommand to open the interactive view.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts, now)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app, err := appFrom(cmd); err == nil {
				_ = app.Log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			err = tui.Run(cmd.Context(), tui.Options{
				Store:  app.Store,
				Engine: app.Engine,
				Now:    app.Now,
				Log:    app.Log,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "👋 Terima kasih telah menggunakan tugas!")
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default: "+config.DefaultPath()+")")
	pf.StringVar(&opts.DataFile, "data", "", "task file, overrides data_file")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newListCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newUrgentCmd(),
		newPressingCmd(),
	)
	return cmd
}

func persistentPreRun(cmd *cobra.Command, opts *rootOptions, now func() time.Time) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.DataFile != "" {
		cfg.DataFile = opts.DataFile
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.NoColor {
		cfg.NoColor = true
	}
	if cfg.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	log.Debug("starting",
		zap.String("command", cmd.Name()),
		zap.String("data_file", cfg.DataFile),
		zap.Int("urgent_days", cfg.UrgentDays),
		zap.Int("warning_days", cfg.WarningDays),
	)

	app := &App{
		Config: cfg,
		Log:    log,
		Store:  store.New(cfg.DataFile, log),
		Engine: deadline.NewEngine(cfg.Thresholds(), cfg.BarWindowDays),
		Now:    now,
	}
	cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, app))
	return nil
}

func appFrom(cmd *cobra.Command) (*App, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New("command context is nil")
	}
	app, ok := ctx.Value(appKey{}).(*App)
	if !ok || app == nil {
		return nil, errors.New("app not initialized")
	}
	return app, nil
}

// Execute runs the command tree against os.Args.
func Execute() error {
	cmd := NewRootCommand(nil)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
