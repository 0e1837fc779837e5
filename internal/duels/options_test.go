package duels

import (
	"reflect"
	"testing"

	"github.com/pable/go-duel-matrix/internal/model"
)

func TestMaps_AllMapsFirst(t *testing.T) {
	in := []model.DuelRecord{
		rec("a", "b", teamA, teamB, 1, 0, "Lotus", model.AllKills),
		rec("a", "b", teamA, teamB, 1, 0, model.AllMaps, model.AllKills),
		rec("a", "b", teamA, teamB, 1, 0, "Bind", model.KillTypeHeadshot),
		rec("a", "b", teamA, teamB, 1, 0, "", model.AllKills),
		rec("a", "b", teamA, teamB, 1, 0, "Lotus", model.KillTypeHeadshot),
	}
	want := []string{model.AllMaps, "Bind", "Lotus"}
	if got := Maps(in); !reflect.DeepEqual(got, want) {
		t.Errorf("Maps: want %v, got %v", want, got)
	}
	wantKT := []string{model.AllKills, model.KillTypeHeadshot}
	if got := KillTypes(in); !reflect.DeepEqual(got, wantKT) {
		t.Errorf("KillTypes: want %v, got %v", wantKT, got)
	}
}

func TestTeamDuels_KeepsInputOrder(t *testing.T) {
	got := TeamDuels(mixed(), teamB)
	if len(got) != 2 {
		t.Fatalf("want 2 Team B records, got %d", len(got))
	}
	if got[0].Player != "charlie" || got[1].Player != "delta" {
		t.Errorf("unexpected order: %s, %s", got[0].Player, got[1].Player)
	}
	if len(TeamDuels(mixed(), "")) != 0 {
		t.Error("empty team should select nothing")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(mixed())
	if s.TotalDuels != 6 {
		t.Errorf("TotalDuels: want 6, got %d", s.TotalDuels)
	}
	// zeta +2, charlie +3, alpha(Haven) +1; ghost tie and delta -2 do not count.
	if s.WinningDuels != 3 {
		t.Errorf("WinningDuels: want 3, got %d", s.WinningDuels)
	}
	if s.TotalEliminations != 4+1+5+1+0+9 {
		t.Errorf("TotalEliminations: got %d", s.TotalEliminations)
	}
	if (Summarize(nil) != model.CombatSummary{}) {
		t.Error("empty summary should be zero")
	}
}
