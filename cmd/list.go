package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-duel-matrix/internal/model"
	"github.com/pable/go-duel-matrix/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	matches, err := listMatches(db)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'duelmatrix fetch <matchId>' or 'duelmatrix parse <demo.dem>' to add one.")
		return nil
	}
	printMatchList(matches, func(format string, a ...any) { fmt.Fprintf(os.Stdout, format, a...) },
		func(format string, a ...any) { fmt.Fprintf(os.Stdout, format, a...) })
	return nil
}

func listMatches(db *storage.DB) ([]model.MatchSummary, error) {
	matches, err := db.ListMatches()
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

// printMatchList writes the match listing; header and rule lines go through
// head so the shell can colour them.
func printMatchList(matches []model.MatchSummary, head, row func(string, ...any)) {
	head("%-14s  %-22s  %-22s  %-14s  %-6s  %s\n", "ID", "TEAM A", "TEAM B", "WINNER", "SOURCE", "DUELS")
	head("%-14s  %-22s  %-22s  %-14s  %-6s  %s\n",
		"──────────────", "──────────────────────", "──────────────────────", "──────────────", "──────", "─────")
	for _, m := range matches {
		row("%-14s  %-22s  %-22s  %-14s  %-6s  %d\n",
			short(m.MatchID, 14), short(m.TeamA, 22), short(m.TeamB, 22), short(m.Winner, 14), m.Source, m.Records)
	}
}

func short(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
