package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-duel-matrix/internal/aggregator"
	"github.com/pable/go-duel-matrix/internal/model"
	"github.com/pable/go-duel-matrix/internal/parser"
)

var (
	parseMatchID string
	parseType    string
	parseStage   string
	parseTourney string
)

var parseCmd = &cobra.Command{
	Use:   "parse <demo.dem>",
	Short: "Derive duel records from a CS2 demo file and store them",
	Long: `Parses a CS2 demo, counts kills between every pair of opposing players and
stores them as duel records for "All Maps" and the demo's map, split into
"All Kills" and "Headshot".

The match ID defaults to the first 12 characters of the demo's SHA-256.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseMatchID, "match-id", "", "match ID to store under (default: demo hash prefix)")
	parseCmd.Flags().StringVar(&parseType, "type", "Demo", "match type label")
	parseCmd.Flags().StringVar(&parseStage, "stage", "", "stage label")
	parseCmd.Flags().StringVar(&parseTourney, "tournament", "", "tournament label")
}

func runParse(cmd *cobra.Command, args []string) error {
	demoPath := args[0]

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintf(os.Stdout, "Parsing %s...\n", demoPath)
	raw, err := parser.ParseDemo(demoPath, parseType)
	if err != nil {
		return fmt.Errorf("parse demo: %w", err)
	}

	records, err := aggregator.RecordsFromKills(raw)
	if err != nil {
		return fmt.Errorf("build duel records: %w", err)
	}

	id := parseMatchID
	if id == "" {
		id = raw.DemoHash[:12]
	}
	summary := model.MatchSummary{
		MatchID:    id,
		MatchName:  fmt.Sprintf("%s vs %s", raw.Teams[0], raw.Teams[1]),
		MatchType:  raw.MatchType,
		Tournament: parseTourney,
		Stage:      parseStage,
		TeamA:      raw.Teams[0],
		TeamB:      raw.Teams[1],
		TeamAScore: raw.Scores[raw.Teams[0]],
		TeamBScore: raw.Scores[raw.Teams[1]],
		Winner:     demoWinner(raw.Teams[0], raw.Teams[1], raw.Scores),
		Source:     "demo",
		FetchedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	if err := db.InsertMatch(summary); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	if err := db.ReplaceDuelRecords(id, records); err != nil {
		return fmt.Errorf("insert duel records: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Map %s, %d rounds, %d kills, %d duel records.\n",
		raw.MapName, raw.Rounds, len(raw.Kills), len(records))
	return printMatch(os.Stdout, &matchData{Summary: summary, Records: records}, cfg.Map, cfg.KillType)
}

// demoWinner names the team with more rounds won; a draw has no winner.
func demoWinner(a, b string, scores map[string]int) string {
	switch {
	case scores[a] > scores[b]:
		return a
	case scores[b] > scores[a]:
		return b
	default:
		return ""
	}
}
