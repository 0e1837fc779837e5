package storage

import (
	"database/sql"
	"fmt"

	"github.com/pable/go-duel-matrix/internal/model"
)

// MatchExists returns true if a match with the given ID is already stored.
func (db *DB) MatchExists(matchID string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE match_id = ?", matchID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertMatch upserts a match row. Stored duel records are kept.
func (db *DB) InsertMatch(m model.MatchSummary) error {
	_, err := db.conn.Exec(`
		INSERT INTO matches(match_id, match_name, match_type, tournament, stage, team_a, team_b,
			team_a_score, team_b_score, winner, source, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(match_id) DO UPDATE SET
			match_name = excluded.match_name, match_type = excluded.match_type,
			tournament = excluded.tournament, stage = excluded.stage,
			team_a = excluded.team_a, team_b = excluded.team_b,
			team_a_score = excluded.team_a_score, team_b_score = excluded.team_b_score,
			winner = excluded.winner, source = excluded.source, fetched_at = excluded.fetched_at`,
		m.MatchID, m.MatchName, m.MatchType, m.Tournament, m.Stage,
		m.TeamA, m.TeamB, m.TeamAScore, m.TeamBScore, m.Winner, m.Source, m.FetchedAt,
	)
	return err
}

// ReplaceDuelRecords swaps all duel records of a match in one transaction,
// preserving the given order.
func (db *DB) ReplaceDuelRecords(matchID string, records []model.DuelRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM duel_records WHERE match_id = ?", matchID); err != nil {
		return fmt.Errorf("clear duel_records for %s: %w", matchID, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO duel_records(
			match_id, player, enemy, player_team, enemy_team,
			player_kills, enemy_kills, difference, map, kill_type
		) VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		_, err = stmt.Exec(
			matchID, r.Player, r.Enemy, r.PlayerTeam, r.EnemyTeam,
			r.PlayerKills, r.EnemyKills, r.Difference, r.Map, r.KillType,
		)
		if err != nil {
			return fmt.Errorf("insert duel_records for %s vs %s: %w", r.Player, r.Enemy, err)
		}
	}
	return tx.Commit()
}

// ReplaceDraft swaps the stored map draft of a match, keeping the given order.
func (db *DB) ReplaceDraft(matchID string, draft []model.DraftAction) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM draft_actions WHERE match_id = ?", matchID); err != nil {
		return fmt.Errorf("clear draft_actions for %s: %w", matchID, err)
	}
	stmt, err := tx.Prepare("INSERT INTO draft_actions(match_id, seq, team, action, map) VALUES (?,?,?,?,?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, a := range draft {
		if _, err := stmt.Exec(matchID, i, a.Team, a.Action, a.Map); err != nil {
			return fmt.Errorf("insert draft action %d for %s: %w", i, matchID, err)
		}
	}
	return tx.Commit()
}

// GetDraft returns a match's map draft in pick/ban order.
func (db *DB) GetDraft(matchID string) ([]model.DraftAction, error) {
	rows, err := db.conn.Query(`
		SELECT team, action, map FROM draft_actions
		WHERE match_id = ? ORDER BY seq`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.DraftAction
	for rows.Next() {
		var a model.DraftAction
		if err := rows.Scan(&a.Team, &a.Action, &a.Map); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

const matchColumns = `m.match_id, m.match_name, m.match_type, m.tournament, m.stage,
	m.team_a, m.team_b, m.team_a_score, m.team_b_score, m.winner, m.source, m.fetched_at`

func scanMatch(sc interface{ Scan(...any) error }, extra ...any) (model.MatchSummary, error) {
	var s model.MatchSummary
	dest := []any{&s.MatchID, &s.MatchName, &s.MatchType, &s.Tournament, &s.Stage,
		&s.TeamA, &s.TeamB, &s.TeamAScore, &s.TeamBScore, &s.Winner, &s.Source, &s.FetchedAt}
	err := sc.Scan(append(dest, extra...)...)
	return s, err
}

// ListMatches returns all stored matches with their record counts, newest fetch first.
func (db *DB) ListMatches() ([]model.MatchSummary, error) {
	rows, err := db.conn.Query(`
		SELECT ` + matchColumns + `, COUNT(d.id)
		FROM matches m LEFT JOIN duel_records d ON d.match_id = m.match_id
		GROUP BY m.match_id
		ORDER BY m.fetched_at DESC, m.match_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchSummary
	for rows.Next() {
		var n int
		s, err := scanMatch(rows, &n)
		if err != nil {
			return nil, err
		}
		s.Records = n
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetMatchByPrefix finds the match with exactly this ID, or else the first
// match whose ID starts with prefix. The comparison is case-sensitive and
// treats '_' and '%' literally.
func (db *DB) GetMatchByPrefix(prefix string) (*model.MatchSummary, error) {
	if prefix == "" {
		return nil, nil
	}
	row := db.conn.QueryRow(`
		SELECT `+matchColumns+`
		FROM matches m
		WHERE substr(m.match_id, 1, length(?1)) = ?1
		ORDER BY m.match_id <> ?1, m.match_id
		LIMIT 1`, prefix)
	s, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

const recordColumns = `player, enemy, player_team, enemy_team,
	player_kills, enemy_kills, difference, map, kill_type`

func scanRecords(rows *sql.Rows) ([]model.DuelRecord, error) {
	defer rows.Close()
	var out []model.DuelRecord
	for rows.Next() {
		var r model.DuelRecord
		if err := rows.Scan(
			&r.Player, &r.Enemy, &r.PlayerTeam, &r.EnemyTeam,
			&r.PlayerKills, &r.EnemyKills, &r.Difference, &r.Map, &r.KillType,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetDuelRecords returns a match's records in insertion order.
func (db *DB) GetDuelRecords(matchID string) ([]model.DuelRecord, error) {
	rows, err := db.conn.Query(`
		SELECT `+recordColumns+`
		FROM duel_records WHERE match_id = ? ORDER BY id`, matchID)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// GetPlayerDuelRecords returns every record naming the player on either side,
// flipped so the player is always on the player side.
func (db *DB) GetPlayerDuelRecords(player string) ([]model.PlayerDuelRecord, error) {
	rows, err := db.conn.Query(`
		SELECT match_id, `+recordColumns+`
		FROM duel_records WHERE player = ? OR enemy = ?
		ORDER BY match_id, id`, player, player)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PlayerDuelRecord
	for rows.Next() {
		var r model.PlayerDuelRecord
		if err := rows.Scan(
			&r.MatchID, &r.Player, &r.Enemy, &r.PlayerTeam, &r.EnemyTeam,
			&r.PlayerKills, &r.EnemyKills, &r.Difference, &r.Map, &r.KillType,
		); err != nil {
			return nil, err
		}
		if r.Player != player {
			r.DuelRecord = r.DuelRecord.Flip()
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Overview is a high-level count of what the store holds.
type Overview struct {
	Matches int
	Records int
	Players int
	Maps    int
}

// GetOverview counts stored matches, records, distinct players and maps.
func (db *DB) GetOverview() (Overview, error) {
	var ov Overview
	err := db.conn.QueryRow(`
		SELECT
			(SELECT COUNT(1) FROM matches),
			(SELECT COUNT(1) FROM duel_records),
			(SELECT COUNT(1) FROM (SELECT player FROM duel_records UNION SELECT enemy FROM duel_records)),
			(SELECT COUNT(DISTINCT map) FROM duel_records WHERE map <> '')`).
		Scan(&ov.Matches, &ov.Records, &ov.Players, &ov.Maps)
	return ov, err
}

// QueryRaw runs an arbitrary query and returns column names and stringified rows.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}
