package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pable/go-duel-matrix/internal/model"
)

func sampleRecords() []model.DuelRecord {
	return []model.DuelRecord{
		{Player: "a1", Enemy: "b1", PlayerTeam: "A", EnemyTeam: "B", PlayerKills: 3, EnemyKills: 1, Difference: 2,
			Map: model.AllMaps, KillType: model.AllKills},
		{Player: "b1", Enemy: "a2", PlayerTeam: "B", EnemyTeam: "A", PlayerKills: 2, EnemyKills: 2, Difference: 0,
			Map: "Lotus", KillType: model.AllKills},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := writeCSV(&buf, sampleRecords()[:1]); err != nil {
		t.Fatalf("writeCSV: %v", err)
	}
	want := "Player,Enemy,Player Team,Enemy Team,Player Kills,Enemy Kills,Difference,Map,Kill Type\n" +
		"a1,b1,A,B,3,1,2,All Maps,All Kills\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFilterPlayerRecords(t *testing.T) {
	in := []model.PlayerDuelRecord{
		{MatchID: "m1", DuelRecord: sampleRecords()[0]},
		{MatchID: "m1", DuelRecord: sampleRecords()[1]},
	}
	got := filterPlayerRecords(in, "Lotus", model.AllKills)
	if len(got) != 1 || got[0].Map != "Lotus" {
		t.Errorf("unexpected filter result: %+v", got)
	}
}

func TestPrintMatch_NoMatchingFilterListsOptions(t *testing.T) {
	md := &matchData{
		Summary: model.MatchSummary{MatchID: "m1", TeamA: "A", TeamB: "B"},
		Records: sampleRecords(),
	}
	var buf bytes.Buffer
	if err := printMatch(&buf, md, "Haven", model.AllKills); err != nil {
		t.Fatalf("printMatch: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "No records match") || !strings.Contains(out, "Available maps: [All Maps Lotus]") {
		t.Errorf("expected empty-filter hints:\n%s", out)
	}
}

func TestShort(t *testing.T) {
	if got := short("Paper Rex", 20); got != "Paper Rex" {
		t.Errorf("short kept: %q", got)
	}
	if got := short("abcdef", 4); got != "abc…" {
		t.Errorf("short cut: %q", got)
	}
}

func TestPrintMatch_ShowsScoreAndDraft(t *testing.T) {
	md := &matchData{
		Summary: model.MatchSummary{MatchID: "m1", TeamA: "A", TeamB: "B", TeamAScore: 2, TeamBScore: 1},
		Records: sampleRecords(),
		Draft:   []model.DraftAction{{Team: "A", Action: "pick", Map: "Lotus"}},
	}
	var buf bytes.Buffer
	if err := printMatch(&buf, md, model.AllMaps, model.AllKills); err != nil {
		t.Fatalf("printMatch: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "A 2-1 B") || !strings.Contains(out, "Map Draft") {
		t.Errorf("expected score and draft:\n%s", out)
	}
}

func TestDemoWinner(t *testing.T) {
	scores := map[string]int{"Team T start": 13, "Team CT start": 9}
	if got := demoWinner("Team T start", "Team CT start", scores); got != "Team T start" {
		t.Errorf("winner: %q", got)
	}
	if got := demoWinner("Team CT start", "Team T start", scores); got != "Team T start" {
		t.Errorf("winner as team B: %q", got)
	}
	if got := demoWinner("x", "y", map[string]int{"x": 12, "y": 12}); got != "" {
		t.Errorf("draw: %q", got)
	}
}
