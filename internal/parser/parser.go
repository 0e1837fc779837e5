package parser

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	demoinfocs "github.com/markus-wa/demoinfocs-golang/v4/pkg/demoinfocs"
	common "github.com/markus-wa/demoinfocs-golang/v4/pkg/demoinfocs/common"
	"github.com/markus-wa/demoinfocs-golang/v4/pkg/demoinfocs/events"

	"github.com/pable/go-duel-matrix/internal/model"
)

// ParseDemo parses the demo at path and returns the kills needed to build duel records.
func ParseDemo(path, matchType string) (*model.RawMatch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open demo: %w", err)
	}
	defer f.Close()

	// Hash file for idempotency key.
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("hash demo: %w", err)
	}
	demoHash := fmt.Sprintf("%x", h.Sum(nil))

	// Seek back to start for the parser.
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek demo: %w", err)
	}

	p := demoinfocs.NewParser(f)
	defer p.Close()

	raw := &model.RawMatch{
		DemoHash:  demoHash,
		MatchType: matchType,
	}

	labels := newTeamLabeler()
	var roundNumber int

	p.RegisterEventHandler(func(e events.RoundStart) {
		if p.GameState().IsWarmupPeriod() {
			return
		}
		roundNumber++
		var playing []participant
		for _, pl := range p.GameState().Participants().Playing() {
			if pl != nil {
				playing = append(playing, participantOf(pl))
			}
		}
		labels.observe(playing)
	})

	p.RegisterEventHandler(func(e events.RoundEnd) {
		if roundNumber == 0 {
			return
		}
		raw.Rounds = roundNumber
	})

	p.RegisterEventHandler(func(e events.Kill) {
		if roundNumber == 0 {
			return
		}
		if e.Killer == nil || e.Victim == nil {
			return
		}
		var weapName string
		if e.Weapon != nil {
			weapName = e.Weapon.Type.String()
		}
		raw.Kills = append(raw.Kills, model.RawKill{
			Tick:        p.GameState().IngameTick(),
			RoundNumber: roundNumber,
			KillerName:  e.Killer.Name,
			VictimName:  e.Victim.Name,
			KillerTeam:  labels.label(participantOf(e.Killer)),
			VictimTeam:  labels.label(participantOf(e.Victim)),
			Weapon:      weapName,
			IsHeadshot:  e.IsHeadshot,
		})
	})

	if err := p.ParseToEnd(); err != nil {
		return nil, fmt.Errorf("parse demo: %w", err)
	}

	header := p.Header()
	raw.MapName = header.MapName
	raw.MatchDate = time.Now().Format("2006-01-02") // demos rarely embed wall-clock time
	raw.Tickrate = p.TickRate()
	raw.Teams = labels.order
	raw.Scores = make(map[string]int, 2)
	for _, ts := range []*common.TeamState{p.GameState().TeamTerrorists(), p.GameState().TeamCounterTerrorists()} {
		if ts == nil {
			continue
		}
		if name := labels.sideLabel[sideFromCommon(ts.Team())]; name != "" {
			raw.Scores[name] = ts.Score()
		}
	}
	return raw, nil
}

// participant is the part of a player the team labeler needs.
type participant struct {
	key  string
	side model.Side
	clan string
}

func participantOf(pl *common.Player) participant {
	pt := participant{side: sideFromCommon(pl.Team)}
	if pl.SteamID64 != 0 {
		pt.key = strconv.FormatUint(pl.SteamID64, 10)
	} else {
		pt.key = "bot:" + pl.Name
	}
	if pl.TeamState != nil {
		pt.clan = pl.TeamState.ClanName()
	}
	return pt
}

// teamLabeler pins each player to one team label for the whole demo, so a
// halftime side swap does not split a team in two. Without clan names the
// label is the side the team started on.
type teamLabeler struct {
	byPlayer  map[string]string
	sideLabel map[model.Side]string // label of the team currently on each side
	seen      map[string]struct{}
	order     []string
}

func newTeamLabeler() *teamLabeler {
	return &teamLabeler{
		byPlayer:  make(map[string]string),
		sideLabel: make(map[model.Side]string),
		seen:      make(map[string]struct{}),
	}
}

// observe is called at each round start with everyone playing. Pinned players
// tell which team holds which side now; the rest are pinned to that team.
func (l *teamLabeler) observe(playing []participant) {
	for _, pt := range playing {
		if name, ok := l.byPlayer[pt.key]; ok && pt.side != model.SideUnknown {
			l.sideLabel[pt.side] = name
		}
	}
	for _, pt := range playing {
		l.label(pt)
	}
}

func (l *teamLabeler) label(pt participant) string {
	if name, ok := l.byPlayer[pt.key]; ok {
		return name
	}
	name := pt.clan
	if name == "" {
		if pt.side == model.SideUnknown {
			return "" // spectators and unassigned players are not pinned
		}
		name = l.sideLabel[pt.side]
		if name == "" {
			name = "Team " + pt.side.String() + " start"
		}
	}
	if pt.side != model.SideUnknown {
		if _, ok := l.sideLabel[pt.side]; !ok {
			l.sideLabel[pt.side] = name
		}
	}
	l.byPlayer[pt.key] = name
	if _, ok := l.seen[name]; !ok {
		l.seen[name] = struct{}{}
		l.order = append(l.order, name)
	}
	return name
}

func sideFromCommon(t common.Team) model.Side {
	switch t {
	case common.TeamTerrorists:
		return model.SideT
	case common.TeamCounterTerrorists:
		return model.SideCT
	default:
		return model.SideUnknown
	}
}
