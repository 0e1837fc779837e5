package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-duel-matrix/internal/duels"
	"github.com/pable/go-duel-matrix/internal/model"
	"github.com/pable/go-duel-matrix/internal/report"
)

var (
	playerMap      string
	playerKillType string
)

// playerCmd lists one player's duels across every stored match.
var playerCmd = &cobra.Command{
	Use:   "player <name> [<name>...]",
	Short: "Cross-match duel history for one or more players",
	Long: `List every stored duel record naming the player, on either side, oriented so
the player is always on the left. Defaults to "All Maps" / "All Kills" rows.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlayer,
}

func init() {
	playerCmd.Flags().StringVar(&playerMap, "map", "", "map filter (default from config)")
	playerCmd.Flags().StringVar(&playerKillType, "kill-type", "", "kill type filter (default from config)")
}

func runPlayer(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	mapName, killType := cfg.Map, cfg.KillType
	if playerMap != "" {
		mapName = playerMap
	}
	if playerKillType != "" {
		killType = playerKillType
	}

	for _, name := range args {
		all, err := db.GetPlayerDuelRecords(name)
		if err != nil {
			return fmt.Errorf("query duels for %s: %w", name, err)
		}
		recs := filterPlayerRecords(all, mapName, killType)
		if len(recs) == 0 {
			fmt.Fprintf(os.Stderr, "No %s / %s duels found for %q\n", mapName, killType, name)
			continue
		}
		fmt.Fprintf(os.Stdout, "\n=== %s (%s)  |  %s  |  %s ===\n\n", name, recs[0].PlayerTeam, mapName, killType)
		report.PrintPlayerDuels(os.Stdout, recs)
	}
	return nil
}

// filterPlayerRecords applies the exact map/kill-type filter to tagged records.
func filterPlayerRecords(in []model.PlayerDuelRecord, mapName, killType string) []model.PlayerDuelRecord {
	var out []model.PlayerDuelRecord
	for _, r := range in {
		if duels.Matches(r.DuelRecord, mapName, killType) {
			out = append(out, r)
		}
	}
	return out
}
