package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-duel-matrix/internal/api"
	"github.com/pable/go-duel-matrix/internal/duels"
	"github.com/pable/go-duel-matrix/internal/report"
	"github.com/pable/go-duel-matrix/internal/storage"
)

var (
	// fetchAll ingests every match the backend lists.
	fetchAll bool
	// fetchForce re-downloads matches that are already stored.
	fetchForce bool
)

// fetchCmd downloads match details from the backend and stores their duel records.
var fetchCmd = &cobra.Command{
	Use:   "fetch [matchId...]",
	Short: "Download duel records from the tournament backend",
	Long: `Fetches /match_details/{matchId} from the backend and stores the match
metadata and its flat player-vs-enemy duel records.

Examples:
  duelmatrix fetch 8f2c1a
  duelmatrix fetch --all
  duelmatrix fetch --api http://backend:5000/api --all --force`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchAll, "all", false, "fetch every match listed by the backend")
	fetchCmd.Flags().BoolVarP(&fetchForce, "force", "f", false, "re-fetch matches that are already stored")
}

func runFetch(cmd *cobra.Command, args []string) error {
	if !fetchAll && len(args) == 0 {
		return fmt.Errorf("give at least one match ID or --all")
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	ids := args
	if fetchAll {
		matches, err := client.GetMatches()
		if err != nil {
			return fmt.Errorf("list matches: %w", err)
		}
		ids = ids[:0:0]
		for _, m := range matches {
			if m.MatchID != "" {
				ids = append(ids, m.MatchID)
			}
		}
		fmt.Fprintf(os.Stdout, "Backend lists %d matches.\n", len(ids))
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	var stored, skipped, failed int
	for _, id := range ids {
		if !fetchForce {
			exists, err := db.MatchExists(id)
			if err != nil {
				return fmt.Errorf("check match: %w", err)
			}
			if exists {
				fmt.Fprintf(os.Stdout, "  %s already stored, skipping (use --force to refresh)\n", id)
				skipped++
				continue
			}
		}
		if err := fetchOne(client, db, id); err != nil {
			if errors.Is(err, api.ErrMatchNotFound) {
				fmt.Fprintf(os.Stderr, "  %s: match not found on backend\n", id)
			} else {
				fmt.Fprintf(os.Stderr, "  %s: %v\n", id, err)
			}
			failed++
			continue
		}
		stored++
	}

	fmt.Fprintf(os.Stdout, "\nStored %d, skipped %d, failed %d.\n", stored, skipped, failed)
	if failed > 0 && stored == 0 && skipped == 0 {
		return fmt.Errorf("no matches fetched")
	}
	return nil
}

// fetchOne downloads a single match and replaces whatever was stored for it.
func fetchOne(client *api.Client, db *storage.DB, id string) error {
	d, err := client.GetMatchDetails(id)
	if err != nil {
		return err
	}
	summary := d.Summary(time.Now().UTC().Format(time.RFC3339))
	if err := db.InsertMatch(summary); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	if err := db.ReplaceDuelRecords(summary.MatchID, d.PlayerVsEnemy); err != nil {
		return fmt.Errorf("insert duel records: %w", err)
	}
	if err := db.ReplaceDraft(summary.MatchID, d.DraftPhase); err != nil {
		return fmt.Errorf("insert draft: %w", err)
	}

	report.PrintMatchSummary(os.Stdout, summary)
	for _, team := range []string{summary.TeamA, summary.TeamB} {
		report.PrintCombatSummary(os.Stdout, team, duels.Summarize(duels.TeamDuels(d.PlayerVsEnemy, team)))
	}
	fmt.Fprintf(os.Stdout, "  %d duel records, %d draft actions stored.\n", len(d.PlayerVsEnemy), len(d.DraftPhase))
	return nil
}
