package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-duel-matrix/internal/aggregator"
	"github.com/pable/go-duel-matrix/internal/duels"
	"github.com/pable/go-duel-matrix/internal/model"
	"github.com/pable/go-duel-matrix/internal/report"
)

// matchData is a stored match together with its duel records and map draft.
type matchData struct {
	Summary model.MatchSummary
	Records []model.DuelRecord
	Draft   []model.DraftAction
}

var (
	showMap        string
	showKillType   string
	showDuplicates string
	showSwap       bool
	showPlayers    bool
)

var showCmd = &cobra.Command{
	Use:   "show <match-id-prefix>",
	Short: "Show the duel matrix of a stored match",
	Long: `Print the Team A vs Team B duel matrix, each team's combat record and the
combat summary for one stored match. Cells read "kills-deaths (diff)" from the
row player's view; "` + duels.NoDataMark + `" means the pair has no record.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&showMap, "map", "", "map filter (default from config, \"All Maps\")")
	showCmd.Flags().StringVar(&showKillType, "kill-type", "", "kill type filter (default from config, \"All Kills\")")
	showCmd.Flags().StringVar(&showDuplicates, "duplicates", "", "duplicate pair policy: last, first or sum")
	showCmd.Flags().BoolVar(&showSwap, "swap", false, "put Team B on the rows")
	showCmd.Flags().BoolVar(&showPlayers, "players", false, "also print player totals and top performers")
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	md, err := loadMatch(db, args[0])
	if err != nil {
		return err
	}
	if showDuplicates != "" {
		p, ok := duels.ParsePolicy(showDuplicates)
		if !ok {
			return fmt.Errorf("unknown duplicates policy %q (want last, first or sum)", showDuplicates)
		}
		cfg.Duplicates = p
	}
	if showSwap {
		md.Summary.TeamA, md.Summary.TeamB = md.Summary.TeamB, md.Summary.TeamA
	}

	mapName, killType := cfg.Map, cfg.KillType
	if showMap != "" {
		mapName = showMap
	}
	if showKillType != "" {
		killType = showKillType
	}
	if err := printMatch(os.Stdout, md, mapName, killType); err != nil {
		return err
	}
	if showPlayers {
		fmt.Fprintf(os.Stdout, "\n--- Players ---\n\n")
		report.PrintPlayerTotals(os.Stdout, aggregator.PlayerTotals(md.Records))
		fmt.Fprintln(os.Stdout)
		report.PrintTopPerformers(os.Stdout, aggregator.TopPerformers(md.Records))
	}
	return nil
}

// printMatch renders the matrix, both combat records and the combat summary.
func printMatch(w io.Writer, md *matchData, mapName, killType string) error {
	s := md.Summary
	m := duels.Build(md.Records, duels.Options{
		TeamA:    s.TeamA,
		TeamB:    s.TeamB,
		Map:      mapName,
		KillType: killType,
		Policy:   cfg.Duplicates,
	})

	report.PrintMatchSummary(w, s)
	report.PrintDraft(w, md.Draft)
	report.PrintDuelMatrix(w, m)
	if len(md.Records) > 0 && m.Index.Len() == 0 {
		fmt.Fprintf(w, "Available maps: %v\nAvailable kill types: %v\n",
			duels.Maps(md.Records), duels.KillTypes(md.Records))
	}

	filtered := duels.FilterRecords(md.Records, mapName, killType)
	for _, team := range []string{s.TeamA, s.TeamB} {
		fmt.Fprintln(w)
		report.PrintTeamDuels(w, team, duels.TeamDuels(filtered, team))
	}
	fmt.Fprintln(w)
	for _, team := range []string{s.TeamA, s.TeamB} {
		report.PrintCombatSummary(w, team, duels.Summarize(duels.TeamDuels(filtered, team)))
	}
	return nil
}
