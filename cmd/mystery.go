package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/rosary/internal/config"
	"github.com/abhisek/rosary/internal/devotion"
	"github.com/abhisek/rosary/internal/i18n"
)

func newMysteryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mystery",
		Short: "Show the mysteries prayed on a given day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dateVal, _ := cmd.Flags().GetString("date")
			day, err := parseDate(dateVal, time.Now())
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			b := i18n.Default()
			t := b.Translator(resolveLocale(cmd, b, "", cfg))

			set := devotion.SelectMysterySet(day)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s: %s\n\n", day.Weekday(), day.Format(dateLayout), t.T(set.NameKey()))
			for o := 0; o < 5; o++ {
				fmt.Fprintf(out, "%d. %s\n", o+1, t.T(set.MysteryKey(o)))
			}
			return nil
		},
	}
	cmd.Flags().String("date", "", "Date as YYYY-MM-DD (default: today)")
	return cmd
}
