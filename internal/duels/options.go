package duels

import (
	"sort"

	"github.com/pable/go-duel-matrix/internal/model"
)

// Maps returns the distinct map names in records, "All Maps" first.
func Maps(records []model.DuelRecord) []string {
	return distinct(records, func(r model.DuelRecord) string { return r.Map }, model.AllMaps)
}

// KillTypes returns the distinct kill types in records, "All Kills" first.
func KillTypes(records []model.DuelRecord) []string {
	return distinct(records, func(r model.DuelRecord) string { return r.KillType }, model.AllKills)
}

func distinct(records []model.DuelRecord, field func(model.DuelRecord) string, first string) []string {
	set := make(map[string]struct{})
	for _, r := range records {
		if v := field(r); v != "" {
			set[v] = struct{}{}
		}
	}
	out := sortedKeys(set)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i] == first && out[j] != first
	})
	return out
}

// TeamDuels returns the records stored from team's perspective, in input order.
func TeamDuels(records []model.DuelRecord, team string) []model.DuelRecord {
	var out []model.DuelRecord
	for _, r := range records {
		if r.PlayerTeam == team && team != "" {
			out = append(out, r)
		}
	}
	return out
}

// Summarize computes the combat summary strip over records as given.
func Summarize(records []model.DuelRecord) model.CombatSummary {
	s := model.CombatSummary{TotalDuels: len(records)}
	for _, r := range records {
		if r.Difference > 0 {
			s.WinningDuels++
		}
		s.TotalEliminations += r.PlayerKills
	}
	return s
}
