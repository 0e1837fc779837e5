package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the duel database",
	Long: `Run an arbitrary SQL query against the duel database and print results as a table.

Schema overview:
  matches(match_id, match_name, match_type, tournament, stage, team_a, team_b,
    team_a_score, team_b_score, winner, source, fetched_at)
  draft_actions(match_id, seq, team, action, map)
  duel_records(id, match_id, player, enemy, player_team, enemy_team,
    player_kills, enemy_kills, difference, map, kill_type)

Records keep their backend orientation; a pair may be stored from either side.
Example: duelmatrix sql "SELECT player, SUM(player_kills) FROM duel_records
  WHERE map = 'All Maps' AND kill_type = 'All Kills' GROUP BY player"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}

