package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/rosary/internal/devotion"
	"github.com/abhisek/rosary/internal/i18n"
	"github.com/abhisek/rosary/internal/session"
	"github.com/abhisek/rosary/internal/store"
	"github.com/abhisek/rosary/internal/ui/components"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List finished prayers, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			st, cfg, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := context.Background()
			sessions, err := st.SessionRepo().ListFinished(ctx, store.QueryOpts{Limit: limit})
			if err != nil {
				return fmt.Errorf("query sessions: %w", err)
			}

			b := i18n.Default()
			saved, _, _ := st.SettingsRepo().Get(ctx, session.SettingLocale)
			t := b.Translator(resolveLocale(cmd, b, saved, cfg))

			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, t.T("NO_HISTORY"))
				return nil
			}
			printSessions(out, sessions, t, time.Now())
			return nil
		},
	}
	cmd.Flags().IntP("limit", "n", 20, "Number of sessions to show (0 for all)")
	cmd.AddCommand(newHistoryDeleteCmd())
	return cmd
}

func printSessions(out io.Writer, sessions []devotion.Session, t *i18n.Translator, now time.Time) {
	fmt.Fprintf(out, "%-5s  %-16s  %-14s  %8s  %-24s  %s\n",
		"ID", "Started", "", "Duration", "Prayer", "Intention")
	fmt.Fprintln(out, strings.Repeat("─", 100))
	for _, s := range sessions {
		fmt.Fprintf(out, "%-5d  %-16s  %-14s  %8s  %-24s  %s\n",
			s.ID,
			s.Start.Local().Format("2006-01-02 15:04"),
			humanize.RelTime(s.Start, now, "ago", "from now"),
			components.FormatDuration(s.Duration()),
			t.T(s.TitleKey()),
			s.Intention,
		)
	}
}

func newHistoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session from the history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid ID %q: %w", args[0], err)
			}

			st, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := context.Background()
			if err := st.SessionRepo().Delete(ctx, id); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("session %d not found", id)
				}
				return fmt.Errorf("delete session: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %d.\n", id)
			return nil
		},
	}
}
