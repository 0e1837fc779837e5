package duels

import "github.com/pable/go-duel-matrix/internal/model"

// Class is the display classification of a grid cell.
type Class int

const (
	NoData Class = iota
	Neutral
	Positive
	Negative
)

func (c Class) String() string {
	switch c {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	case Neutral:
		return "neutral"
	default:
		return "no data"
	}
}

// Classify maps a Team A difference to its display class.
func Classify(difference int) Class {
	switch {
	case difference > 0:
		return Positive
	case difference < 0:
		return Negative
	default:
		return Neutral
	}
}

// NoDataMark is shown for a pair with no record. It must never read as 0-0.
const NoDataMark = "·"

// Cell is the lookup result for one (Team A player, Team B player) pair.
// A zero Cell is the "no data" sentinel: OK is false and Class is NoData.
type Cell struct {
	Duel  model.NormalizedDuel
	Class Class
	OK    bool
}

// PairKey is the display key for a pair: "{player}-{enemy}".
func PairKey(player, enemy string) string {
	return player + "-" + enemy
}

// pair is the internal index key. A struct key keeps "a-b"+"c" and "a"+"b-c" apart.
type pair struct{ player, enemy string }

// Index maps Team A / Team B player pairs to their normalized duel.
type Index struct {
	duels map[pair]model.NormalizedDuel
	order []pair
}

// BuildIndex normalizes every filtered record and indexes it by pair.
// Records attributed to neither team are dropped.
func BuildIndex(filtered []model.DuelRecord, teamA, teamB string, policy DuplicatePolicy) *Index {
	idx := &Index{duels: make(map[pair]model.NormalizedDuel)}
	for _, r := range filtered {
		d, ok := Normalize(r, teamA, teamB)
		if !ok {
			continue
		}
		k := pair{d.Player, d.Enemy}
		prev, seen := idx.duels[k]
		if !seen {
			idx.order = append(idx.order, k)
			idx.duels[k] = d
			continue
		}
		switch policy {
		case FirstWins:
			// keep prev
		case Sum:
			prev.PlayerKills += d.PlayerKills
			prev.EnemyKills += d.EnemyKills
			prev.Difference = prev.PlayerKills - prev.EnemyKills
			idx.duels[k] = prev
		default:
			idx.duels[k] = d
		}
	}
	return idx
}

// Len returns the number of indexed pairs.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.duels)
}

// Lookup returns the cell for (playerA, playerB), or the "no data" sentinel.
func (idx *Index) Lookup(playerA, playerB string) Cell {
	if idx == nil {
		return Cell{}
	}
	d, ok := idx.duels[pair{playerA, playerB}]
	if !ok {
		return Cell{}
	}
	return Cell{Duel: d, Class: Classify(d.Difference), OK: true}
}

// Duels returns the indexed duels in first-insertion order.
func (idx *Index) Duels() []model.NormalizedDuel {
	if idx == nil {
		return nil
	}
	out := make([]model.NormalizedDuel, 0, len(idx.order))
	for _, k := range idx.order {
		out = append(out, idx.duels[k])
	}
	return out
}

// Options select the orientation and filter of a matrix.
type Options struct {
	TeamA    string
	TeamB    string
	Map      string
	KillType string
	Policy   DuplicatePolicy
}

// Matrix is the full derived view for one set of inputs.
type Matrix struct {
	Options Options
	Rosters Rosters
	Index   *Index
}

// Build recomputes rosters and index from scratch.
func Build(records []model.DuelRecord, opts Options) *Matrix {
	return &Matrix{
		Options: opts,
		Rosters: BuildRosters(records, opts.TeamA, opts.TeamB),
		Index:   BuildIndex(FilterRecords(records, opts.Map, opts.KillType), opts.TeamA, opts.TeamB, opts.Policy),
	}
}

// Cell looks up one grid cell.
func (m *Matrix) Cell(playerA, playerB string) Cell {
	return m.Index.Lookup(playerA, playerB)
}

// Totals sums Team A kills per row and Team B kills per column over the cells
// that have data.
func (m *Matrix) Totals() (rows, cols map[string]int) {
	rows = make(map[string]int, len(m.Rosters.TeamA))
	cols = make(map[string]int, len(m.Rosters.TeamB))
	for _, a := range m.Rosters.TeamA {
		for _, b := range m.Rosters.TeamB {
			c := m.Cell(a, b)
			if !c.OK {
				continue
			}
			rows[a] += c.Duel.PlayerKills
			cols[b] += c.Duel.EnemyKills
		}
	}
	return rows, cols
}
