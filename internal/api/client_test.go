package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pable/go-duel-matrix/internal/model"
)

const detailsJSON = `{
  "match_id": "abc123",
  "match": {"match_id": "abc123", "Team A": "Paper Rex", "Team B": "Fnatic",
            "Team A Score": 1.0, "Team B Score": 3.0,
            "Match Name": "Paper Rex vs Fnatic", "Match Type": "Playoffs",
            "Tournament": "Valorant Champions 2025", "Stage": "Upper Final",
            "Match Result": "Fnatic won"},
  "match_type": "Playoffs",
  "winner": "Fnatic",
  "player_vs_enemy": [
    {"Player": "f0rsakeN", "Enemy": "Boaster", "Player Team": "Paper Rex", "Enemy Team": "Fnatic",
     "Player Kills": 5.0, "Enemy Kills": 3.0, "Difference": 2.0, "Map": "Lotus", "Kill Type": "All Kills"},
    {"Player": "Boaster", "Enemy": "something", "Player Team": "Fnatic", "Enemy Team": "Paper Rex",
     "Player Kills": 4, "Enemy Kills": 6}
  ],
  "draft_phase": [{"Team": "Fnatic", "Action": "ban", "Map": "Bind"}]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/matches", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"match_id": "abc123", "Team A": "Paper Rex", "Team B": "Fnatic", "Match Result": "Fnatic won"}]`))
	})
	mux.HandleFunc("/api/match_details/abc123", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(detailsJSON))
	})
	mux.HandleFunc("/api/match_details/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "Match not found"}`))
	})
	mux.HandleFunc("/api/match_details/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGetMatches(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL+"/api/", time.Second)

	got, err := c.GetMatches()
	if err != nil {
		t.Fatalf("GetMatches: %v", err)
	}
	if len(got) != 1 || got[0].MatchID != "abc123" || got[0].TeamA != "Paper Rex" {
		t.Fatalf("unexpected matches: %+v", got)
	}
	if got[0].Winner() != "Fnatic" {
		t.Errorf("winner: %q", got[0].Winner())
	}
}

func TestGetMatchDetails(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL+"/api", time.Second)

	d, err := c.GetMatchDetails("abc123")
	if err != nil {
		t.Fatalf("GetMatchDetails: %v", err)
	}
	if d.Match.TeamAScore != 1 || d.Match.TeamBScore != 3 || d.Winner != "Fnatic" {
		t.Errorf("unexpected match info: %+v winner=%q", d.Match, d.Winner)
	}
	if len(d.PlayerVsEnemy) != 2 {
		t.Fatalf("expected 2 records, got %d", len(d.PlayerVsEnemy))
	}
	first := d.PlayerVsEnemy[0]
	if first.PlayerKills != 5 || first.EnemyKills != 3 || first.Difference != 2 || first.Map != "Lotus" {
		t.Errorf("float fields not decoded: %+v", first)
	}
	// Older shape: no map, kill type or difference.
	second := d.PlayerVsEnemy[1]
	if second.Map != model.AllMaps || second.KillType != model.AllKills || second.Difference != -2 {
		t.Errorf("defaults not applied: %+v", second)
	}
	if len(d.DraftPhase) != 1 || d.DraftPhase[0].Action != "ban" {
		t.Errorf("draft phase: %+v", d.DraftPhase)
	}

	s := d.Summary("2025-10-01")
	if s.MatchID != "abc123" || s.Source != "api" || s.Tournament != "Valorant Champions 2025" {
		t.Errorf("summary: %+v", s)
	}
	if s.TeamAScore != 1 || s.TeamBScore != 3 {
		t.Errorf("summary score: %d-%d", s.TeamAScore, s.TeamBScore)
	}
}

func TestGetMatchDetails_NotFound(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL+"/api", time.Second)

	_, err := c.GetMatchDetails("missing")
	if !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("expected ErrMatchNotFound, got %v", err)
	}
	_, err = c.GetMatchDetails("broken")
	if err == nil || errors.Is(err, ErrMatchNotFound) {
		t.Errorf("expected plain HTTP error, got %v", err)
	}
	if _, err := c.GetMatchDetails(""); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestDecodeRecords(t *testing.T) {
	got, err := DecodeRecords([]byte(`[{"Player": "a", "Enemy": "b", "Player Kills": "2", "Enemy Kills": null, "Difference": 2, "Map": null}]`))
	if err != nil {
		t.Fatalf("DecodeRecords: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	r := got[0]
	if r.PlayerKills != 2 || r.EnemyKills != 0 || r.Difference != 2 {
		t.Errorf("kills: %+v", r)
	}
	// null is treated like a missing key.
	if r.Map != model.AllMaps || r.KillType != model.AllKills {
		t.Errorf("map/kill type: %q %q", r.Map, r.KillType)
	}

	if _, err := DecodeRecords([]byte(`[{"Player Kills": "x"}]`)); err == nil {
		t.Error("expected error for non-numeric kills")
	}
}

func TestEncodeRecords_ReadsBack(t *testing.T) {
	in := []model.DuelRecord{{
		Player: "a", Enemy: "b", PlayerTeam: "A", EnemyTeam: "B",
		PlayerKills: 3, EnemyKills: 1, Difference: 2, Map: "Lotus", KillType: model.KillTypeHeadshot,
	}}
	data, err := EncodeRecords(in)
	if err != nil {
		t.Fatalf("EncodeRecords: %v", err)
	}
	out, err := DecodeRecords(data)
	if err != nil {
		t.Fatalf("DecodeRecords: %v", err)
	}
	if len(out) != 1 || out[0] != in[0] {
		t.Errorf("read back %+v, want %+v", out, in)
	}
}
