package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/rosary/internal/config"
	"github.com/abhisek/rosary/internal/i18n"
	"github.com/abhisek/rosary/internal/store"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rosary",
		Short: "Pray the Rosary or the Divine Mercy chaplet in your terminal",
		Long: "rosary walks you through the Holy Rosary or the Chaplet of the Divine Mercy\n" +
			"one page at a time, remembers where you stopped and keeps a history of\n" +
			"finished prayers.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd)
		},
	}

	root.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ROSARY_DB env var)")
	root.PersistentFlags().String("locale", "", "Language for prayers and menus, e.g. en or la")

	root.AddCommand(newPagesCmd())
	root.AddCommand(newMysteryCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the command line.
func Execute() error {
	return newRootCmd().Execute()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ROSARY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// resolveLocale picks the catalog locale from, in order, the --locale flag,
// the saved preference, ROSARY_LOCALE and the POSIX locale variables.
func resolveLocale(cmd *cobra.Command, b *i18n.Bundle, saved string, cfg config.Config) string {
	flag, _ := cmd.Flags().GetString("locale")
	prefs := []string{flag, saved, cfg.Locale}
	prefs = append(prefs, i18n.EnvLocales()...)
	return b.Match(prefs...)
}

// openStore loads config and opens the database the flags point at.
func openStore(cmd *cobra.Command) (*store.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, cfg, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath, store.WithMaxSessions(cfg.MaxSessions))
	if err != nil {
		return nil, cfg, fmt.Errorf("open store: %w", err)
	}
	return st, cfg, nil
}
