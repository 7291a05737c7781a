package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/rosary/internal/config"
	"github.com/abhisek/rosary/internal/devotion"
	"github.com/abhisek/rosary/internal/i18n"
	"github.com/abhisek/rosary/internal/session"
)

const dateLayout = "2006-01-02"

func newPagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Print the page sequence of a devotion (no database)",
		Long: `Generate the pages a session would walk through and print them.

The text form shows one line per page with its bead and translated title.
--json prints the sequence keyed p_1..p_N with catalog keys, as stored
by the app.`,
		Args: cobra.NoArgs,
		RunE: runPages,
	}
	cmd.Flags().String("kind", "rosary", "Devotion: rosary or divine-mercy")
	cmd.Flags().String("date", "", "Start date as YYYY-MM-DD (default: now); picks the mysteries")
	cmd.Flags().String("intention", "", "Intention shown on the first page")
	cmd.Flags().Bool("json", false, "Print JSON instead of text")
	return cmd
}

func runPages(cmd *cobra.Command, args []string) error {
	kindVal, _ := cmd.Flags().GetString("kind")
	dateVal, _ := cmd.Flags().GetString("date")
	intention, _ := cmd.Flags().GetString("intention")
	asJSON, _ := cmd.Flags().GetBool("json")

	kind, err := devotion.ParseKind(kindVal)
	if err != nil {
		return err
	}
	start, err := parseDate(dateVal, time.Now())
	if err != nil {
		return err
	}

	pages := devotion.Generate(devotion.Session{
		Kind:      kind,
		Start:     start,
		Intention: session.SanitizeIntention(intention),
	})

	out := cmd.OutOrStdout()
	if asJSON {
		data, err := json.MarshalIndent(pages, "", "  ")
		if err != nil {
			return fmt.Errorf("encode pages: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	b := i18n.Default()
	t := b.Translator(resolveLocale(cmd, b, "", cfg))

	fmt.Fprintf(out, "%-5s  %-6s  %4s  %-10s  %s\n", "Page", "Type", "Bead", "Next", "Title")
	fmt.Fprintln(out, strings.Repeat("─", 72))
	for i, p := range pages.All() {
		bead := ""
		if p.Rosary > 0 {
			bead = strconv.Itoa(p.Rosary)
		}
		next := ""
		if p.AltNext != "" {
			next = t.T(p.AltNext)
		}
		title := t.T(p.Title)
		if p.Subtitle != "" {
			title += ": " + t.T(p.Subtitle)
		}
		fmt.Fprintf(out, "%-5s  %-6s  %4s  %-10s  %s\n", devotion.Key(i+1), p.Type, bead, next, title)
	}
	fmt.Fprintf(out, "\n%d pages\n", pages.Len())
	return nil
}

// parseDate reads YYYY-MM-DD as noon local time. An empty value means now.
func parseDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	d, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return d.Add(12 * time.Hour), nil
}
