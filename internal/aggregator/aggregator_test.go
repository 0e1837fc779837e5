package aggregator

import (
	"reflect"
	"testing"

	"github.com/pable/go-duel-matrix/internal/model"
)

// Team labels for test matches.
const (
	alpha = "Alpha"
	bravo = "Bravo"
)

// makeRaw builds a minimal RawMatch on de_mirage with the two test teams.
func makeRaw(kills []model.RawKill) *model.RawMatch {
	return &model.RawMatch{
		DemoHash: "testhash",
		MapName:  "de_mirage",
		Kills:    kills,
		Teams:    []string{alpha, bravo},
	}
}

// kill creates a kill event between two named players.
func kill(round int, killer, killerTeam, victim, victimTeam string, hs bool) model.RawKill {
	return model.RawKill{
		Tick: round * 1000, RoundNumber: round,
		KillerName: killer, KillerTeam: killerTeam,
		VictimName: victim, VictimTeam: victimTeam,
		IsHeadshot: hs,
	}
}

// rec builds a stored duel record with a consistent difference.
func rec(player, enemy, playerTeam, enemyTeam string, pk, ek int, mapName, killType string) model.DuelRecord {
	return model.DuelRecord{
		Player: player, Enemy: enemy, PlayerTeam: playerTeam, EnemyTeam: enemyTeam,
		PlayerKills: pk, EnemyKills: ek, Difference: pk - ek,
		Map: mapName, KillType: killType,
	}
}

// ---- RecordsFromKills ----

func TestRecordsFromKills_OrientsFromFirstTeam(t *testing.T) {
	raw := makeRaw([]model.RawKill{
		kill(1, "a1", alpha, "b1", bravo, true),
		kill(2, "b1", bravo, "a1", alpha, false),
		kill(3, "a1", alpha, "b1", bravo, false),
		kill(3, "a2", alpha, "a1", alpha, false), // team kill, ignored
		kill(4, "b2", bravo, "a2", alpha, false),
	})

	got, err := RecordsFromKills(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []model.DuelRecord{
		rec("a1", "b1", alpha, bravo, 2, 1, model.AllMaps, model.AllKills),
		rec("a2", "b2", alpha, bravo, 0, 1, model.AllMaps, model.AllKills),
		rec("a1", "b1", alpha, bravo, 1, 0, model.AllMaps, model.KillTypeHeadshot),
		rec("a1", "b1", alpha, bravo, 2, 1, "de_mirage", model.AllKills),
		rec("a2", "b2", alpha, bravo, 0, 1, "de_mirage", model.AllKills),
		rec("a1", "b1", alpha, bravo, 1, 0, "de_mirage", model.KillTypeHeadshot),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("records mismatch:\n got  %+v\n want %+v", got, want)
	}
}

// TestRecordsFromKills_IgnoresUnknownTeams: spectators or third labels never produce records.
func TestRecordsFromKills_IgnoresUnknownTeams(t *testing.T) {
	raw := makeRaw([]model.RawKill{
		kill(1, "a1", alpha, "x", "Spectators", false),
		kill(1, "", alpha, "b1", bravo, false),
		kill(1, "a1", alpha, "a1", bravo, false),
	})
	got, err := RecordsFromKills(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no records, got %+v", got)
	}
}

func TestRecordsFromKills_NeedsTwoTeams(t *testing.T) {
	if _, err := RecordsFromKills(nil); err == nil {
		t.Error("expected error for nil RawMatch")
	}
	raw := makeRaw(nil)
	raw.Teams = []string{alpha}
	if _, err := RecordsFromKills(raw); err == nil {
		t.Error("expected error with a single team")
	}
}

// ---- PlayerTotals / TopPerformers ----

// overallRecords stores a1-b1 in both orientations plus per-map rows that must be ignored.
func overallRecords() []model.DuelRecord {
	return []model.DuelRecord{
		rec("a1", "b1", alpha, bravo, 2, 1, model.AllMaps, model.AllKills),
		rec("b1", "a1", bravo, alpha, 1, 2, model.AllMaps, model.AllKills),
		rec("a2", "b1", alpha, bravo, 0, 3, model.AllMaps, model.AllKills),
		rec("a1", "b1", alpha, bravo, 2, 1, "Ascent", model.AllKills),
		rec("a1", "b1", alpha, bravo, 1, 0, model.AllMaps, model.KillTypeHeadshot),
		rec("b1", "a2", bravo, alpha, 2, 0, model.AllMaps, model.KillTypeHeadshot),
	}
}

func TestPlayerTotals_CountsPairOnce(t *testing.T) {
	got := PlayerTotals(overallRecords())
	if len(got) != 3 {
		t.Fatalf("expected 3 players, got %d: %+v", len(got), got)
	}

	// Most kills first: b1 (4), a1 (2), a2 (0).
	if got[0].Player != "b1" || got[1].Player != "a1" || got[2].Player != "a2" {
		t.Errorf("unexpected order: %s, %s, %s", got[0].Player, got[1].Player, got[2].Player)
	}
	b1 := got[0]
	if b1.Kills != 4 || b1.Deaths != 2 || b1.Difference != 2 {
		t.Errorf("b1: want 4/2/+2, got %d/%d/%+d", b1.Kills, b1.Deaths, b1.Difference)
	}
	if b1.Team != bravo {
		t.Errorf("b1 team: want %s, got %s", bravo, b1.Team)
	}
	if !reflect.DeepEqual(b1.Opponents, []string{"a1", "a2"}) {
		t.Errorf("b1 opponents: %v", b1.Opponents)
	}
	a1 := got[1]
	if a1.Kills != 2 || a1.Deaths != 1 {
		t.Errorf("a1: want 2/1, got %d/%d", a1.Kills, a1.Deaths)
	}
	if kd := got[2].KDRatio(); kd != 0 {
		t.Errorf("a2 K/D: want 0, got %f", kd)
	}
}

// TestPlayerTotals_FallsBackToPerMap: without "All Maps" rows every map is summed.
func TestPlayerTotals_FallsBackToPerMap(t *testing.T) {
	in := []model.DuelRecord{
		rec("a1", "b1", alpha, bravo, 2, 1, "Ascent", model.AllKills),
		rec("a1", "b1", alpha, bravo, 3, 0, "Haven", model.AllKills),
	}
	got := PlayerTotals(in)
	if len(got) != 2 || got[0].Player != "a1" || got[0].Kills != 5 || got[0].Deaths != 1 {
		t.Errorf("unexpected totals: %+v", got)
	}
}

func TestTopPerformers(t *testing.T) {
	top := TopPerformers(overallRecords())

	if top.MostKills.Player != "b1" || top.MostKills.Value != 4 {
		t.Errorf("MostKills: %+v", top.MostKills)
	}
	if top.BestDifference.Player != "b1" || top.BestDifference.Value != 2 {
		t.Errorf("BestDifference: %+v", top.BestDifference)
	}
	// b1 and a1 both have K/D 2.0; the earlier row wins.
	if top.BestKD.Player != "b1" || top.BestKD.Value != 2 {
		t.Errorf("BestKD: %+v", top.BestKD)
	}
	if top.MostHeadshotKills.Player != "b1" || top.MostHeadshotKills.Value != 2 {
		t.Errorf("MostHeadshotKills: %+v", top.MostHeadshotKills)
	}
}

func TestTopPerformers_Empty(t *testing.T) {
	top := TopPerformers(nil)
	for name, p := range map[string]model.Performer{
		"MostKills":         top.MostKills,
		"BestDifference":    top.BestDifference,
		"BestKD":            top.BestKD,
		"MostHeadshotKills": top.MostHeadshotKills,
	} {
		if p.Player != "N/A" || p.Value != 0 {
			t.Errorf("%s: want N/A, got %+v", name, p)
		}
	}
}
