// Package duels builds the team-A-vs-team-B duel matrix from flat,
// asymmetric player-vs-enemy kill records.
package duels

import (
	"sort"

	"github.com/pable/go-duel-matrix/internal/model"
)

// DuplicatePolicy decides what happens when two filtered records normalize to
// the same player pair.
type DuplicatePolicy int

const (
	// LastWins keeps the later record in iteration order.
	LastWins DuplicatePolicy = iota
	// FirstWins keeps the earlier record in iteration order.
	FirstWins
	// Sum adds the kills of every record for the pair and recomputes the difference.
	Sum
)

func (p DuplicatePolicy) String() string {
	switch p {
	case FirstWins:
		return "first"
	case Sum:
		return "sum"
	default:
		return "last"
	}
}

// ParsePolicy maps "last", "first" or "sum" to a policy; empty means "last".
// Unknown values fall back to LastWins and report false.
func ParsePolicy(s string) (DuplicatePolicy, bool) {
	switch s {
	case "last", "":
		return LastWins, true
	case "first":
		return FirstWins, true
	case "sum":
		return Sum, true
	default:
		return LastWins, false
	}
}

// Rosters are the sorted, duplicate-free player lists per side.
type Rosters struct {
	TeamA []string
	TeamB []string
}

// BuildRosters scans every record, regardless of any map or kill-type
// filter, so a player with zero kills of the selected type keeps a row.
// Records whose PlayerTeam matches neither team are ignored.
func BuildRosters(records []model.DuelRecord, teamA, teamB string) Rosters {
	a := make(map[string]struct{})
	b := make(map[string]struct{})
	add := func(set map[string]struct{}, name string) {
		if name != "" {
			set[name] = struct{}{}
		}
	}
	for _, r := range records {
		switch r.PlayerTeam {
		case "":
			continue
		case teamA:
			add(a, r.Player)
			add(b, r.Enemy)
		case teamB:
			add(a, r.Enemy)
			add(b, r.Player)
		}
	}
	return Rosters{TeamA: sortedKeys(a), TeamB: sortedKeys(b)}
}

// FilterRecords returns the records whose Map and KillType equal the selected
// values exactly. Records missing either field never match.
func FilterRecords(records []model.DuelRecord, mapName, killType string) []model.DuelRecord {
	var out []model.DuelRecord
	for _, r := range records {
		if Matches(r, mapName, killType) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether a single record passes the map/kill-type filter.
func Matches(r model.DuelRecord, mapName, killType string) bool {
	if r.Map == "" || r.KillType == "" {
		return false
	}
	return r.Map == mapName && r.KillType == killType
}

// Normalize orients r from Team A's perspective. It reports false when the
// record belongs to neither team. When teamA == teamB every attributed record
// keeps its stored orientation.
func Normalize(r model.DuelRecord, teamA, teamB string) (model.NormalizedDuel, bool) {
	if r.PlayerTeam == "" {
		return model.NormalizedDuel{}, false
	}
	switch r.PlayerTeam {
	case teamA:
		return model.NormalizedDuel(r), true
	case teamB:
		f := r.Flip()
		f.PlayerTeam = teamA
		f.EnemyTeam = teamB
		return model.NormalizedDuel(f), true
	default:
		return model.NormalizedDuel{}, false
	}
}

// sortedKeys returns the set's members in ascending order.
func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
