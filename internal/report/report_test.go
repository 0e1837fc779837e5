package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pable/go-duel-matrix/internal/duels"
	"github.com/pable/go-duel-matrix/internal/model"
)

func rec(player, enemy, playerTeam, enemyTeam string, pk, ek int) model.DuelRecord {
	return model.DuelRecord{
		Player: player, Enemy: enemy, PlayerTeam: playerTeam, EnemyTeam: enemyTeam,
		PlayerKills: pk, EnemyKills: ek, Difference: pk - ek,
		Map: model.AllMaps, KillType: model.AllKills,
	}
}

func TestFormatCell(t *testing.T) {
	if got := FormatCell(duels.Cell{}); got != duels.NoDataMark {
		t.Errorf("no data cell: %q", got)
	}
	c := duels.Cell{Duel: model.NormalizedDuel{PlayerKills: 0, EnemyKills: 0}, Class: duels.Neutral, OK: true}
	if got := FormatCell(c); got != "0-0 (0)" {
		t.Errorf("0-0 cell: %q", got)
	}
	c = duels.Cell{Duel: model.NormalizedDuel{PlayerKills: 5, EnemyKills: 3, Difference: 2}, Class: duels.Positive, OK: true}
	if got := FormatCell(c); got != "5-3 (+2)" {
		t.Errorf("positive cell: %q", got)
	}
}

func TestPrintDuelMatrix(t *testing.T) {
	records := []model.DuelRecord{
		rec("a1", "b1", "A", "B", 5, 3),
		rec("b2", "a1", "B", "A", 4, 1),
		rec("a2", "b2", "A", "B", 0, 0),
	}
	m := duels.Build(records, duels.Options{TeamA: "A", TeamB: "B", Map: model.AllMaps, KillType: model.AllKills})

	var buf bytes.Buffer
	PrintDuelMatrix(&buf, m)
	out := buf.String()

	for _, want := range []string{"5-3 (+2)", "1-4 (-3)", "0-0 (0)", duels.NoDataMark, "TOTAL", "a1", "a2"} {
		if !strings.Contains(out, want) {
			t.Errorf("matrix output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintDuelMatrix_NoRosters(t *testing.T) {
	m := duels.Build(nil, duels.Options{TeamA: "A", TeamB: "B", Map: model.AllMaps, KillType: model.AllKills})
	var buf bytes.Buffer
	PrintDuelMatrix(&buf, m)
	if !strings.Contains(buf.String(), "No duel data") {
		t.Errorf("expected empty message, got:\n%s", buf.String())
	}
}

func TestPrintCombatSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintCombatSummary(&buf, "A", model.CombatSummary{TotalDuels: 4, WinningDuels: 1, TotalEliminations: 9})
	want := "A: 4 duels  |  1 won (25%)  |  9 eliminations\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestPrintPlayerDuels_Totals(t *testing.T) {
	var buf bytes.Buffer
	PrintPlayerDuels(&buf, []model.PlayerDuelRecord{
		{MatchID: "0123456789abcdef", DuelRecord: rec("a1", "b1", "A", "B", 5, 3)},
		{MatchID: "m2", DuelRecord: rec("a1", "b2", "A", "B", 1, 2)},
	})
	out := buf.String()
	if !strings.Contains(out, "0123456789ab") || strings.Contains(out, "0123456789abc") {
		t.Errorf("match id not truncated to 12 chars:\n%s", out)
	}
	if !strings.Contains(out, "2 duels  |  6 kills  |  5 deaths  |  diff +1") {
		t.Errorf("footer missing:\n%s", out)
	}
}

func TestSampleFlag(t *testing.T) {
	cases := map[int]string{0: "VERY_LOW", 3: "VERY_LOW", 4: "LOW", 8: "OK"}
	for n, want := range cases {
		if got := sampleFlag(n); got != want {
			t.Errorf("sampleFlag(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestScoreline(t *testing.T) {
	s := model.MatchSummary{TeamA: "Paper Rex", TeamB: "Fnatic"}
	if got := Scoreline(s); got != "Paper Rex vs Fnatic" {
		t.Errorf("no score: %q", got)
	}
	s.TeamAScore, s.TeamBScore = 1, 2
	if got := Scoreline(s); got != "Paper Rex 1-2 Fnatic" {
		t.Errorf("with score: %q", got)
	}

	var buf bytes.Buffer
	PrintMatchSummary(&buf, s)
	if !strings.Contains(buf.String(), "Paper Rex 1-2 Fnatic") {
		t.Errorf("summary header missing score:\n%s", buf.String())
	}
}

func TestPrintDraft(t *testing.T) {
	var buf bytes.Buffer
	PrintDraft(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("empty draft printed %q", buf.String())
	}

	PrintDraft(&buf, []model.DraftAction{
		{Team: "Paper Rex", Action: "ban", Map: "Haven"},
		{Team: "Fnatic", Action: "pick", Map: "Lotus"},
		{Action: "decider", Map: "Ascent"},
	})
	out := buf.String()
	for _, want := range []string{"Map Draft", "Haven", "Lotus", "decider", "Ascent"} {
		if !strings.Contains(out, want) {
			t.Errorf("draft output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Haven") > strings.Index(out, "Lotus") {
		t.Errorf("draft order lost:\n%s", out)
	}
}
