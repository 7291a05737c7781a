package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/rosary/internal/app"
	"github.com/abhisek/rosary/internal/config"
	"github.com/abhisek/rosary/internal/i18n"
	"github.com/abhisek/rosary/internal/logging"
	"github.com/abhisek/rosary/internal/notify"
	"github.com/abhisek/rosary/internal/screen"
	"github.com/abhisek/rosary/internal/session"
	"github.com/abhisek/rosary/internal/store"
)

// runApp opens the store, restores any interrupted session, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
		logger = logging.Discard()
	} else {
		defer closer.Close()
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath, store.WithMaxSessions(cfg.MaxSessions), store.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	mgr := session.NewManager(st.SessionRepo(), st.SettingsRepo(), session.WithLogger(logger))
	phase := mgr.Restore(ctx)
	logger.Info("app started", "version", version, "db", dbPath, "phase", phase.String())

	bundle := i18n.Default()
	deps := &screen.Deps{
		Manager: mgr,
		History: session.NewHistory(st.SessionRepo(), logger),
		Bundle:  bundle,
		Notify:  notify.NewBus(cfg.NotifyDuration),
		Logger:  logger,
		Brand:   cfg.Brand,
		AppURL:  cfg.AppURL,
		Version: version,
		Refresh: cfg.RefreshInterval,
	}
	deps.SetLocale(resolveLocale(cmd, bundle, mgr.Preferences().Locale(ctx), cfg))

	return app.Run(deps)
}
