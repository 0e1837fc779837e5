package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pable/go-duel-matrix/internal/model"
)

// flexInt accepts JSON integers, floats such as 3.0, numeric strings and null.
type flexInt struct {
	n   int
	set bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = flexInt{}
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = flexInt{}
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", b)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		*f = flexInt{}
		return nil
	}
	*f = flexInt{n: int(math.Round(v)), set: true}
	return nil
}

// flexString accepts JSON strings, numbers and null.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(b)
	return nil
}

// wireRecord is one row of the backend's player_vs_enemy list.
type wireRecord struct {
	Player      flexString  `json:"Player"`
	Enemy       flexString  `json:"Enemy"`
	PlayerTeam  flexString  `json:"Player Team"`
	EnemyTeam   flexString  `json:"Enemy Team"`
	PlayerKills flexInt     `json:"Player Kills"`
	EnemyKills  flexInt     `json:"Enemy Kills"`
	Difference  flexInt     `json:"Difference"`
	Map         *flexString `json:"Map"`
	KillType    *flexString `json:"Kill Type"`
}

// toRecord converts a wire row, filling the defaults of the older backend
// shape: no map means "All Maps", no kill type means "All Kills", and a
// missing difference is derived from the kills.
func (w wireRecord) toRecord() model.DuelRecord {
	r := model.DuelRecord{
		Player:      string(w.Player),
		Enemy:       string(w.Enemy),
		PlayerTeam:  string(w.PlayerTeam),
		EnemyTeam:   string(w.EnemyTeam),
		PlayerKills: w.PlayerKills.n,
		EnemyKills:  w.EnemyKills.n,
		Map:         model.AllMaps,
		KillType:    model.AllKills,
	}
	if w.Difference.set {
		r.Difference = w.Difference.n
	} else {
		r.Difference = r.PlayerKills - r.EnemyKills
	}
	if w.Map != nil {
		r.Map = string(*w.Map)
	}
	if w.KillType != nil {
		r.KillType = string(*w.KillType)
	}
	return r
}

// DecodeRecords decodes a JSON array of backend duel rows.
func DecodeRecords(data []byte) ([]model.DuelRecord, error) {
	var rows []wireRecord
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode duel records: %w", err)
	}
	out := make([]model.DuelRecord, 0, len(rows))
	for _, w := range rows {
		out = append(out, w.toRecord())
	}
	return out, nil
}

// MatchInfo is the match metadata row served by the backend.
type MatchInfo model.MatchInfo

func (m *MatchInfo) UnmarshalJSON(b []byte) error {
	var w struct {
		MatchID     flexString `json:"match_id"`
		MatchName   flexString `json:"Match Name"`
		MatchType   flexString `json:"Match Type"`
		Tournament  flexString `json:"Tournament"`
		Stage       flexString `json:"Stage"`
		TeamA       flexString `json:"Team A"`
		TeamB       flexString `json:"Team B"`
		TeamAScore  flexInt    `json:"Team A Score"`
		TeamBScore  flexInt    `json:"Team B Score"`
		MatchResult flexString `json:"Match Result"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*m = MatchInfo{
		MatchID:     string(w.MatchID),
		MatchName:   string(w.MatchName),
		MatchType:   string(w.MatchType),
		Tournament:  string(w.Tournament),
		Stage:       string(w.Stage),
		TeamA:       string(w.TeamA),
		TeamB:       string(w.TeamB),
		TeamAScore:  w.TeamAScore.n,
		TeamBScore:  w.TeamBScore.n,
		MatchResult: string(w.MatchResult),
	}
	return nil
}

// Winner returns the winning team named by the match result, e.g. "Fnatic won".
func (m MatchInfo) Winner() string {
	return strings.TrimSpace(strings.TrimSuffix(m.MatchResult, " won"))
}

// MatchDetails is the /match_details response.
type MatchDetails struct {
	MatchID       string
	Match         MatchInfo
	MatchType     string
	Winner        string
	PlayerVsEnemy []model.DuelRecord
	DraftPhase    []model.DraftAction
}

func (d *MatchDetails) UnmarshalJSON(b []byte) error {
	var w struct {
		MatchID       flexString   `json:"match_id"`
		Match         MatchInfo    `json:"match"`
		MatchType     flexString   `json:"match_type"`
		Winner        flexString   `json:"winner"`
		PlayerVsEnemy []wireRecord `json:"player_vs_enemy"`
		DraftPhase    []struct {
			Team   flexString `json:"Team"`
			Action flexString `json:"Action"`
			Map    flexString `json:"Map"`
		} `json:"draft_phase"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*d = MatchDetails{
		MatchID:   string(w.MatchID),
		Match:     w.Match,
		MatchType: string(w.MatchType),
		Winner:    string(w.Winner),
	}
	if d.Match.MatchID == "" {
		d.Match.MatchID = d.MatchID
	}
	if d.MatchType == "" {
		d.MatchType = d.Match.MatchType
	}
	if d.Winner == "" {
		d.Winner = d.Match.Winner()
	}
	d.PlayerVsEnemy = make([]model.DuelRecord, 0, len(w.PlayerVsEnemy))
	for _, r := range w.PlayerVsEnemy {
		d.PlayerVsEnemy = append(d.PlayerVsEnemy, r.toRecord())
	}
	for _, a := range w.DraftPhase {
		d.DraftPhase = append(d.DraftPhase, model.DraftAction{
			Team: string(a.Team), Action: string(a.Action), Map: string(a.Map),
		})
	}
	return nil
}

// Summary converts the details to the stored match row.
func (d *MatchDetails) Summary(fetchedAt string) model.MatchSummary {
	return model.MatchSummary{
		MatchID:    d.MatchID,
		MatchName:  d.Match.MatchName,
		MatchType:  d.MatchType,
		Tournament: d.Match.Tournament,
		Stage:      d.Match.Stage,
		TeamA:      d.Match.TeamA,
		TeamB:      d.Match.TeamB,
		TeamAScore: d.Match.TeamAScore,
		TeamBScore: d.Match.TeamBScore,
		Winner:     d.Winner,
		Source:     "api",
		FetchedAt:  fetchedAt,
	}
}

// outRecord is the backend row shape used when writing records back out.
type outRecord struct {
	Player      string `json:"Player"`
	Enemy       string `json:"Enemy"`
	PlayerTeam  string `json:"Player Team"`
	EnemyTeam   string `json:"Enemy Team"`
	PlayerKills int    `json:"Player Kills"`
	EnemyKills  int    `json:"Enemy Kills"`
	Difference  int    `json:"Difference"`
	Map         string `json:"Map"`
	KillType    string `json:"Kill Type"`
}

// RecordColumns are the backend column names in export order.
var RecordColumns = []string{
	"Player", "Enemy", "Player Team", "Enemy Team",
	"Player Kills", "Enemy Kills", "Difference", "Map", "Kill Type",
}

// EncodeRecords writes records in the backend's player_vs_enemy shape, so
// DecodeRecords reads them back unchanged.
func EncodeRecords(records []model.DuelRecord) ([]byte, error) {
	out := make([]outRecord, 0, len(records))
	for _, r := range records {
		out = append(out, outRecord(r))
	}
	return json.MarshalIndent(out, "", "  ")
}
