package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-duel-matrix/internal/duels"
	"github.com/pable/go-duel-matrix/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// PrintMatchSummary prints a one-line summary header for the match.
func PrintMatchSummary(w io.Writer, s model.MatchSummary) {
	fmt.Fprintf(w, "\n%s  |  %s  |  %s %s  |  Winner: %s  |  ID: %s\n\n",
		Scoreline(s), s.Tournament, s.MatchType, s.Stage, orDash(s.Winner), s.MatchID)
}

// Scoreline renders "A 2-1 B", or "A vs B" when no score is known.
func Scoreline(s model.MatchSummary) string {
	if s.TeamAScore == 0 && s.TeamBScore == 0 {
		return s.TeamA + " vs " + s.TeamB
	}
	return fmt.Sprintf("%s %d-%d %s", s.TeamA, s.TeamAScore, s.TeamBScore, s.TeamB)
}

// PrintDraft prints the map pick/ban sequence. Nothing is printed without a draft.
func PrintDraft(w io.Writer, draft []model.DraftAction) {
	if len(draft) == 0 {
		return
	}
	fmt.Fprintf(w, "--- Map Draft ---\n\n")
	table := newTable(w)
	table.Header("#", "TEAM", "ACTION", "MAP")
	for i, a := range draft {
		table.Append(strconv.Itoa(i+1), orDash(a.Team), orDash(a.Action), orDash(a.Map))
	}
	table.Render()
	fmt.Fprintln(w)
}

// FormatCell renders a matrix cell as "kills-deaths (diff)" or the no-data marker.
func FormatCell(c duels.Cell) string {
	if !c.OK {
		return duels.NoDataMark
	}
	return fmt.Sprintf("%d-%d (%s)", c.Duel.PlayerKills, c.Duel.EnemyKills, signed(c.Duel.Difference))
}

// PrintDuelMatrix prints Team A players as rows and Team B players as columns,
// with per-row and per-column kill totals.
func PrintDuelMatrix(w io.Writer, m *duels.Matrix) {
	fmt.Fprintf(w, "%s (rows) vs %s (columns)  |  Map: %s  |  Kill type: %s\n",
		m.Options.TeamA, m.Options.TeamB, m.Options.Map, m.Options.KillType)
	if len(m.Rosters.TeamA) == 0 || len(m.Rosters.TeamB) == 0 {
		fmt.Fprintln(w, "No duel data for these teams.")
		return
	}

	header := []any{m.Options.TeamA}
	for _, b := range m.Rosters.TeamB {
		header = append(header, b)
	}
	header = append(header, "TOTAL")

	table := newTable(w)
	table.Header(header...)

	rows, cols := m.Totals()
	for _, a := range m.Rosters.TeamA {
		row := []any{a}
		for _, b := range m.Rosters.TeamB {
			row = append(row, FormatCell(m.Cell(a, b)))
		}
		row = append(row, strconv.Itoa(rows[a]))
		table.Append(row...)
	}
	footer := []any{"TOTAL"}
	for _, b := range m.Rosters.TeamB {
		footer = append(footer, strconv.Itoa(cols[b]))
	}
	footer = append(footer, "")
	table.Append(footer...)
	table.Render()

	if m.Index.Len() == 0 {
		fmt.Fprintln(w, "No records match this map and kill type.")
	}
}

// PrintTeamDuels prints the combat record of one team: every record stored
// from that team's perspective, in input order.
func PrintTeamDuels(w io.Writer, team string, records []model.DuelRecord) {
	fmt.Fprintf(w, "Combat record: %s\n", team)
	if len(records) == 0 {
		fmt.Fprintln(w, "(no duels)")
		return
	}
	table := newTable(w)
	table.Header("PLAYER", "ENEMY", "ENEMY_TEAM", "K", "D", "DIFF", "MAP", "KILL_TYPE")
	for _, r := range records {
		table.Append(
			r.Player,
			r.Enemy,
			r.EnemyTeam,
			strconv.Itoa(r.PlayerKills),
			strconv.Itoa(r.EnemyKills),
			signed(r.Difference),
			r.Map,
			r.KillType,
		)
	}
	table.Render()
}

// PrintCombatSummary prints the total/winning duels and eliminations strip.
func PrintCombatSummary(w io.Writer, team string, s model.CombatSummary) {
	winPct := "—"
	if s.TotalDuels > 0 {
		winPct = fmt.Sprintf("%.0f%%", float64(s.WinningDuels)/float64(s.TotalDuels)*100)
	}
	fmt.Fprintf(w, "%s: %d duels  |  %d won (%s)  |  %d eliminations\n",
		team, s.TotalDuels, s.WinningDuels, winPct, s.TotalEliminations)
}

// PrintPlayerTotals prints per-player totals across all opponents.
func PrintPlayerTotals(w io.Writer, totals []model.PlayerTotals) {
	table := newTable(w)
	table.Header("PLAYER", "TEAM", "K", "D", "DIFF", "K/D", "OPPONENTS")
	for i := range totals {
		p := &totals[i]
		table.Append(
			p.Player,
			p.Team,
			strconv.Itoa(p.Kills),
			strconv.Itoa(p.Deaths),
			signed(p.Difference),
			fmt.Sprintf("%.2f", p.KDRatio()),
			strconv.Itoa(len(p.Opponents)),
		)
	}
	table.Render()
}

// PrintTopPerformers prints the per-match stat leaders.
func PrintTopPerformers(w io.Writer, top model.TopPerformers) {
	table := newTable(w)
	table.Header("STAT", "PLAYER", "TEAM", "VALUE")
	table.Append("Most kills", top.MostKills.Player, orDash(top.MostKills.Team), fmt.Sprintf("%.0f", top.MostKills.Value))
	table.Append("Best differential", top.BestDifference.Player, orDash(top.BestDifference.Team), fmt.Sprintf("%+.0f", top.BestDifference.Value))
	table.Append("Best K/D", top.BestKD.Player, orDash(top.BestKD.Team), fmt.Sprintf("%.2f", top.BestKD.Value))
	table.Append("Most headshot kills", top.MostHeadshotKills.Player, orDash(top.MostHeadshotKills.Team), fmt.Sprintf("%.0f", top.MostHeadshotKills.Value))
	table.Render()
}

// PrintPlayerDuels prints every stored duel of one player, oriented to that player.
func PrintPlayerDuels(w io.Writer, records []model.PlayerDuelRecord) {
	table := newTable(w)
	table.Header("MATCH", "ENEMY", "ENEMY_TEAM", "K", "D", "DIFF", "MAP", "KILL_TYPE", "SAMPLE")
	var k, d int
	for _, r := range records {
		id := r.MatchID
		if len(id) > 12 {
			id = id[:12]
		}
		table.Append(
			id,
			r.Enemy,
			r.EnemyTeam,
			strconv.Itoa(r.PlayerKills),
			strconv.Itoa(r.EnemyKills),
			signed(r.Difference),
			r.Map,
			r.KillType,
			sampleFlag(r.PlayerKills+r.EnemyKills),
		)
		k += r.PlayerKills
		d += r.EnemyKills
	}
	table.Render()
	fmt.Fprintf(w, "\n%d duels  |  %d kills  |  %d deaths  |  diff %s\n", len(records), k, d, signed(k-d))
}

// sampleFlag grades how much a single pair's kill count can be trusted.
func sampleFlag(n int) string {
	switch {
	case n >= 8:
		return "OK"
	case n >= 4:
		return "LOW"
	default:
		return "VERY_LOW"
	}
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
