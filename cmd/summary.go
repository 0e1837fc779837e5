package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-duel-matrix/internal/aggregator"
	"github.com/pable/go-duel-matrix/internal/report"
)

// summaryCmd shows a database overview, or the player statistics of one match.
var summaryCmd = &cobra.Command{
	Use:   "summary [match-id-prefix]",
	Short: "Show a database overview or one match's player statistics",
	Long: `Without arguments, print how many matches, duel records, players and maps
are stored. With a match ID prefix, print that match's per-player totals and
top performers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if len(args) == 1 {
		md, err := loadMatch(db, args[0])
		if err != nil {
			return err
		}
		report.PrintMatchSummary(os.Stdout, md.Summary)
		fmt.Fprintf(os.Stdout, "--- Player Totals (All Maps / All Kills) ---\n\n")
		report.PrintPlayerTotals(os.Stdout, aggregator.PlayerTotals(md.Records))
		fmt.Fprintf(os.Stdout, "\n--- Top Performers ---\n\n")
		report.PrintTopPerformers(os.Stdout, aggregator.TopPerformers(md.Records))
		return nil
	}

	ov, err := db.GetOverview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.Matches == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'duelmatrix fetch <matchId>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n=== Database Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Matches stored : %d\n", ov.Matches)
	fmt.Fprintf(os.Stdout, "  Duel records   : %d\n", ov.Records)
	fmt.Fprintf(os.Stdout, "  Players seen   : %d\n", ov.Players)
	fmt.Fprintf(os.Stdout, "  Map values     : %d\n", ov.Maps)
	fmt.Fprintf(os.Stdout, "  Database       : %s\n", cfg.DBPath)
	return nil
}
