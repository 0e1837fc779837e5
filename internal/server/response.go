package server

import (
	"github.com/pable/go-duel-matrix/internal/duels"
	"github.com/pable/go-duel-matrix/internal/model"
)

type matchJSON struct {
	MatchID    string `json:"match_id"`
	MatchName  string `json:"match_name"`
	MatchType  string `json:"match_type"`
	Tournament string `json:"tournament"`
	Stage      string `json:"stage"`
	TeamA      string `json:"team_a"`
	TeamB      string `json:"team_b"`
	TeamAScore int    `json:"team_a_score"`
	TeamBScore int    `json:"team_b_score"`
	Winner     string `json:"winner"`
	Source     string `json:"source"`
	FetchedAt  string `json:"fetched_at"`
	Records    int    `json:"records"`
}

func toMatchJSON(m model.MatchSummary) matchJSON {
	return matchJSON{
		MatchID:    m.MatchID,
		MatchName:  m.MatchName,
		MatchType:  m.MatchType,
		Tournament: m.Tournament,
		Stage:      m.Stage,
		TeamA:      m.TeamA,
		TeamB:      m.TeamB,
		TeamAScore: m.TeamAScore,
		TeamBScore: m.TeamBScore,
		Winner:     m.Winner,
		Source:     m.Source,
		FetchedAt:  m.FetchedAt,
		Records:    m.Records,
	}
}

type cellJSON struct {
	Key         string `json:"key"`
	Player      string `json:"player"`
	Enemy       string `json:"enemy"`
	PlayerKills int    `json:"player_kills"`
	EnemyKills  int    `json:"enemy_kills"`
	Difference  int    `json:"difference"`
	Class       string `json:"class"`
}

type draftJSON struct {
	Team   string `json:"team"`
	Action string `json:"action"`
	Map    string `json:"map"`
}

type summaryJSON struct {
	TotalDuels        int `json:"total_duels"`
	WinningDuels      int `json:"winning_duels"`
	TotalEliminations int `json:"total_eliminations"`
}

type duelsResponse struct {
	Match      matchJSON           `json:"match"`
	TeamA      string              `json:"team_a"`
	TeamB      string              `json:"team_b"`
	Map        string              `json:"map"`
	KillType   string              `json:"kill_type"`
	Duplicates string              `json:"duplicates"`
	Rosters    map[string][]string `json:"rosters"`
	// Cells holds only pairs with data, in grid order. A pair without a cell
	// has no data, which clients must not render as 0-0. Key is "{player}-{enemy}"
	// for display; it is not unique when names contain '-'.
	Cells   []cellJSON             `json:"cells"`
	Options map[string][]string    `json:"options"`
	Summary map[string]summaryJSON `json:"combat_summary"`
	Draft   []draftJSON            `json:"draft_phase"`
}

func buildDuelsResponse(m *model.MatchSummary, records []model.DuelRecord, draft []model.DraftAction, opts duels.Options) duelsResponse {
	mx := duels.Build(records, opts)
	out := duelsResponse{
		Match:      toMatchJSON(*m),
		TeamA:      opts.TeamA,
		TeamB:      opts.TeamB,
		Map:        opts.Map,
		KillType:   opts.KillType,
		Duplicates: opts.Policy.String(),
		Rosters: map[string][]string{
			"team_a": nonNil(mx.Rosters.TeamA),
			"team_b": nonNil(mx.Rosters.TeamB),
		},
		Cells: make([]cellJSON, 0, mx.Index.Len()),
		Options: map[string][]string{
			"maps":       nonNil(duels.Maps(records)),
			"kill_types": nonNil(duels.KillTypes(records)),
		},
		Summary: make(map[string]summaryJSON, 2),
		Draft:   make([]draftJSON, 0, len(draft)),
	}
	for _, a := range draft {
		out.Draft = append(out.Draft, draftJSON{Team: a.Team, Action: a.Action, Map: a.Map})
	}
	for _, d := range mx.Index.Duels() {
		out.Cells = append(out.Cells, cellJSON{
			Key:         duels.PairKey(d.Player, d.Enemy),
			Player:      d.Player,
			Enemy:       d.Enemy,
			PlayerKills: d.PlayerKills,
			EnemyKills:  d.EnemyKills,
			Difference:  d.Difference,
			Class:       duels.Classify(d.Difference).String(),
		})
	}
	filtered := duels.FilterRecords(records, opts.Map, opts.KillType)
	for _, team := range []string{opts.TeamA, opts.TeamB} {
		s := duels.Summarize(duels.TeamDuels(filtered, team))
		out.Summary[team] = summaryJSON{
			TotalDuels:        s.TotalDuels,
			WinningDuels:      s.WinningDuels,
			TotalEliminations: s.TotalEliminations,
		}
	}
	return out
}

type playerTotalsJSON struct {
	Player     string   `json:"player"`
	Team       string   `json:"team"`
	Kills      int      `json:"kills"`
	Deaths     int      `json:"deaths"`
	Difference int      `json:"difference"`
	KD         float64  `json:"kd"`
	Opponents  []string `json:"opponents"`
}

type performerJSON struct {
	Player string  `json:"player"`
	Team   string  `json:"team"`
	Value  float64 `json:"value"`
}

type playersResponse struct {
	Match   matchJSON                `json:"match"`
	Players []playerTotalsJSON       `json:"players"`
	Top     map[string]performerJSON `json:"top_performers"`
}

func toTopJSON(t model.TopPerformers) map[string]performerJSON {
	conv := func(p model.Performer) performerJSON {
		return performerJSON{Player: p.Player, Team: p.Team, Value: p.Value}
	}
	return map[string]performerJSON{
		"most_kills":          conv(t.MostKills),
		"best_difference":     conv(t.BestDifference),
		"best_kd":             conv(t.BestKD),
		"most_headshot_kills": conv(t.MostHeadshotKills),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
