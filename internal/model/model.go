package model

// Filter values used by the backend when a record is not split by map or kill type.
const (
	AllMaps  = "All Maps"
	AllKills = "All Kills"

	KillTypeHeadshot = "Headshot"
)

// Side represents which half a CS2 player started on.
type Side int

const (
	SideUnknown Side = 0
	SideT       Side = 2
	SideCT      Side = 3
)

func (s Side) String() string {
	switch s {
	case SideT:
		return "T"
	case SideCT:
		return "CT"
	default:
		return "?"
	}
}

// ---- Duel records ----

// DuelRecord is one observed kill relationship between two players on a map
// for a kill-type category. Records are asymmetric: either player may be
// stored on the "player" side.
type DuelRecord struct {
	Player      string
	Enemy       string
	PlayerTeam  string
	EnemyTeam   string
	PlayerKills int
	EnemyKills  int
	Difference  int // PlayerKills - EnemyKills
	Map         string
	KillType    string
}

// Flip returns the record seen from the enemy's side. Flip(Flip(r)) == r.
func (r DuelRecord) Flip() DuelRecord {
	return DuelRecord{
		Player:      r.Enemy,
		Enemy:       r.Player,
		PlayerTeam:  r.EnemyTeam,
		EnemyTeam:   r.PlayerTeam,
		PlayerKills: r.EnemyKills,
		EnemyKills:  r.PlayerKills,
		Difference:  -r.Difference,
		Map:         r.Map,
		KillType:    r.KillType,
	}
}

// NormalizedDuel is a DuelRecord oriented so that Player/PlayerTeam are the
// Team A side and Enemy/EnemyTeam are the Team B side.
type NormalizedDuel DuelRecord

// PlayerDuelRecord is a stored record tagged with its match.
type PlayerDuelRecord struct {
	MatchID string
	DuelRecord
}

// MatchInfo is the match metadata row served by the backend.
type MatchInfo struct {
	MatchID     string
	MatchName   string
	MatchType   string
	Tournament  string
	Stage       string
	TeamA       string
	TeamB       string
	TeamAScore  int
	TeamBScore  int
	MatchResult string
}

// DraftAction is one pick/ban step of the map draft.
type DraftAction struct {
	Team   string
	Action string
	Map    string
}

// MatchSummary is a lightweight stored record for list/show commands.
type MatchSummary struct {
	MatchID    string
	MatchName  string
	MatchType  string
	Tournament string
	Stage      string
	TeamA      string
	TeamB      string
	TeamAScore int
	TeamBScore int
	Winner     string
	Source     string // "api" or "demo"
	FetchedAt  string
	Records    int // populated by ListMatches
}

// ---- Demo-derived raw events ----

// RawKill is one kill emitted by the demo parser.
type RawKill struct {
	Tick, RoundNumber int
	KillerName        string
	VictimName        string
	KillerTeam        string
	VictimTeam        string
	Weapon            string
	IsHeadshot        bool
}

// RawMatch is everything the parser extracts from one demo.
type RawMatch struct {
	DemoHash  string
	MapName   string
	MatchDate string
	MatchType string
	Tickrate  float64
	Rounds    int
	Kills     []RawKill
	Teams     []string       // team labels in first-seen order
	Scores    map[string]int // final rounds won, by team label
}

// ---- Derived statistics ----

// PlayerTotals holds one player's duel totals across all opponents.
type PlayerTotals struct {
	Player     string
	Team       string
	Kills      int
	Deaths     int
	Difference int
	Opponents  []string
}

// KDRatio returns kills per death, or kills when the player never died.
func (p *PlayerTotals) KDRatio() float64 {
	if p.Deaths == 0 {
		return float64(p.Kills)
	}
	return float64(p.Kills) / float64(p.Deaths)
}

// Performer names one leader for a statistic.
type Performer struct {
	Player string
	Team   string
	Value  float64
}

// TopPerformers are the per-match leaders.
type TopPerformers struct {
	MostKills         Performer
	BestDifference    Performer
	BestKD            Performer
	MostHeadshotKills Performer
}

// CombatSummary mirrors the dashboard's combat summary strip.
type CombatSummary struct {
	TotalDuels        int
	WinningDuels      int
	TotalEliminations int
}
