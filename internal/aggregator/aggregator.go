package aggregator

import (
	"fmt"
	"sort"

	"github.com/pable/go-duel-matrix/internal/model"
)

// RecordsFromKills turns a parsed demo into duel records: one per player pair
// per kill type, emitted once for the demo's map and once under "All Maps".
// The first team in raw.Teams is always the player side.
func RecordsFromKills(raw *model.RawMatch) ([]model.DuelRecord, error) {
	if raw == nil {
		return nil, fmt.Errorf("nil RawMatch")
	}
	if len(raw.Teams) < 2 {
		return nil, fmt.Errorf("need two teams, found %d", len(raw.Teams))
	}
	sideA, sideB := raw.Teams[0], raw.Teams[1]

	// ---- Pass 1: count kills per oriented pair and kill type. ----

	type pairKey struct {
		player, enemy string
		killType      string
	}
	type tally struct{ playerKills, enemyKills int }
	counts := make(map[pairKey]*tally)

	bump := func(k pairKey, playerSide bool) {
		t := counts[k]
		if t == nil {
			t = &tally{}
			counts[k] = t
		}
		if playerSide {
			t.playerKills++
		} else {
			t.enemyKills++
		}
	}

	for _, k := range raw.Kills {
		if k.KillerName == "" || k.VictimName == "" || k.KillerName == k.VictimName {
			continue
		}
		if k.KillerTeam == k.VictimTeam {
			continue // team kill
		}
		var player, enemy string
		var playerSide bool
		switch {
		case k.KillerTeam == sideA && k.VictimTeam == sideB:
			player, enemy, playerSide = k.KillerName, k.VictimName, true
		case k.KillerTeam == sideB && k.VictimTeam == sideA:
			player, enemy, playerSide = k.VictimName, k.KillerName, false
		default:
			continue
		}
		bump(pairKey{player, enemy, model.AllKills}, playerSide)
		if k.IsHeadshot {
			bump(pairKey{player, enemy, model.KillTypeHeadshot}, playerSide)
		}
	}

	// ---- Pass 2: emit in a stable order. ----

	keys := make([]pairKey, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].killType != keys[j].killType {
			return keys[i].killType < keys[j].killType
		}
		if keys[i].player != keys[j].player {
			return keys[i].player < keys[j].player
		}
		return keys[i].enemy < keys[j].enemy
	})

	maps := []string{model.AllMaps}
	if raw.MapName != "" && raw.MapName != model.AllMaps {
		maps = append(maps, raw.MapName)
	}

	out := make([]model.DuelRecord, 0, len(keys)*len(maps))
	for _, m := range maps {
		for _, k := range keys {
			t := counts[k]
			out = append(out, model.DuelRecord{
				Player:      k.player,
				Enemy:       k.enemy,
				PlayerTeam:  sideA,
				EnemyTeam:   sideB,
				PlayerKills: t.playerKills,
				EnemyKills:  t.enemyKills,
				Difference:  t.playerKills - t.enemyKills,
				Map:         m,
				KillType:    k.killType,
			})
		}
	}
	return out, nil
}

// PlayerTotals credits both sides of every duel and returns one row per
// player, most kills first. Only "All Maps" rows are used when the input has
// any, and only "All Kills" rows when the selection has any. A pair stored in
// both orientations is counted once.
func PlayerTotals(records []model.DuelRecord) []model.PlayerTotals {
	return collect(selectKillType(selectOverall(records), model.AllKills, true))
}

// HeadshotTotals is PlayerTotals restricted to "Headshot" rows.
func HeadshotTotals(records []model.DuelRecord) []model.PlayerTotals {
	return collect(selectKillType(selectOverall(records), model.KillTypeHeadshot, false))
}

func selectOverall(records []model.DuelRecord) []model.DuelRecord {
	var overall []model.DuelRecord
	for _, r := range records {
		if r.Map == model.AllMaps {
			overall = append(overall, r)
		}
	}
	if len(overall) == 0 {
		return records
	}
	return overall
}

func selectKillType(records []model.DuelRecord, killType string, fallback bool) []model.DuelRecord {
	var out []model.DuelRecord
	for _, r := range records {
		if r.KillType == killType {
			out = append(out, r)
		}
	}
	if len(out) == 0 && fallback {
		return records
	}
	return out
}

func collect(records []model.DuelRecord) []model.PlayerTotals {
	type seenKey struct{ lo, hi, mapName, killType string }
	seen := make(map[seenKey]struct{})

	byPlayer := make(map[string]*model.PlayerTotals)
	opponents := make(map[string]map[string]struct{})
	credit := func(player, team, enemy string, kills, deaths int) {
		if player == "" {
			return
		}
		p := byPlayer[player]
		if p == nil {
			p = &model.PlayerTotals{Player: player, Team: team}
			byPlayer[player] = p
			opponents[player] = make(map[string]struct{})
		}
		if p.Team == "" {
			p.Team = team
		}
		p.Kills += kills
		p.Deaths += deaths
		p.Difference += kills - deaths
		if enemy != "" {
			opponents[player][enemy] = struct{}{}
		}
	}

	for _, r := range records {
		lo, hi := r.Player, r.Enemy
		if hi < lo {
			lo, hi = hi, lo
		}
		k := seenKey{lo, hi, r.Map, r.KillType}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		credit(r.Player, r.PlayerTeam, r.Enemy, r.PlayerKills, r.EnemyKills)
		credit(r.Enemy, r.EnemyTeam, r.Player, r.EnemyKills, r.PlayerKills)
	}

	out := make([]model.PlayerTotals, 0, len(byPlayer))
	for name, p := range byPlayer {
		for opp := range opponents[name] {
			p.Opponents = append(p.Opponents, opp)
		}
		sort.Strings(p.Opponents)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kills != out[j].Kills {
			return out[i].Kills > out[j].Kills
		}
		if out[i].Difference != out[j].Difference {
			return out[i].Difference > out[j].Difference
		}
		return out[i].Player < out[j].Player
	})
	return out
}

// TopPerformers picks the match leaders. Ties go to the player listed first
// by PlayerTotals. Empty input yields "N/A" leaders.
func TopPerformers(records []model.DuelRecord) model.TopPerformers {
	na := model.Performer{Player: "N/A"}
	top := model.TopPerformers{MostKills: na, BestDifference: na, BestKD: na, MostHeadshotKills: na}

	totals := PlayerTotals(records)
	for i, p := range totals {
		kd := p.KDRatio()
		if i == 0 || float64(p.Kills) > top.MostKills.Value {
			top.MostKills = model.Performer{Player: p.Player, Team: p.Team, Value: float64(p.Kills)}
		}
		if i == 0 || float64(p.Difference) > top.BestDifference.Value {
			top.BestDifference = model.Performer{Player: p.Player, Team: p.Team, Value: float64(p.Difference)}
		}
		if i == 0 || kd > top.BestKD.Value {
			top.BestKD = model.Performer{Player: p.Player, Team: p.Team, Value: kd}
		}
	}
	for i, p := range HeadshotTotals(records) {
		if i == 0 || float64(p.Kills) > top.MostHeadshotKills.Value {
			top.MostHeadshotKills = model.Performer{Player: p.Player, Team: p.Team, Value: float64(p.Kills)}
		}
	}
	return top
}
