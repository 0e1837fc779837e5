package parser

import (
	"reflect"
	"testing"

	common "github.com/markus-wa/demoinfocs-golang/v4/pkg/demoinfocs/common"

	"github.com/pable/go-duel-matrix/internal/model"
)

func seat(key string, side model.Side) participant {
	return participant{key: key, side: side}
}

// TestTeamLabeler_PinsStartingSide: everyone playing at the first round keeps
// their starting-side label, even if their first kill comes after halftime.
func TestTeamLabeler_PinsStartingSide(t *testing.T) {
	l := newTeamLabeler()
	l.observe([]participant{seat("a", model.SideT), seat("b", model.SideCT), seat("c", model.SideCT)})

	// Halftime: sides swap, c has not been in a kill yet.
	l.observe([]participant{seat("a", model.SideCT), seat("b", model.SideT), seat("c", model.SideT)})

	if got := l.label(seat("c", model.SideT)); got != "Team CT start" {
		t.Errorf("c after swap: got %q", got)
	}
	if got := l.label(seat("a", model.SideCT)); got != "Team T start" {
		t.Errorf("a after swap: got %q", got)
	}
	if !reflect.DeepEqual(l.order, []string{"Team T start", "Team CT start"}) {
		t.Errorf("order: %v", l.order)
	}
}

// TestTeamLabeler_LateJoinerFollowsTeam: a player first seen after the swap
// joins the team that currently holds their side.
func TestTeamLabeler_LateJoinerFollowsTeam(t *testing.T) {
	l := newTeamLabeler()
	l.observe([]participant{seat("a", model.SideT), seat("b", model.SideCT)})
	l.observe([]participant{seat("a", model.SideCT), seat("b", model.SideT)})

	if got := l.label(seat("d", model.SideCT)); got != "Team T start" {
		t.Errorf("late CT joiner: got %q", got)
	}
	if got := l.label(seat("e", model.SideT)); got != "Team CT start" {
		t.Errorf("late T joiner: got %q", got)
	}
}

func TestTeamLabeler_ClanNameWins(t *testing.T) {
	l := newTeamLabeler()
	l.observe([]participant{{key: "a", side: model.SideT, clan: "Vitality"}})
	if got := l.label(seat("a", model.SideCT)); got != "Vitality" {
		t.Errorf("clan label: got %q", got)
	}
}

func TestTeamLabeler_SpectatorNotPinned(t *testing.T) {
	l := newTeamLabeler()
	if got := l.label(seat("s", model.SideUnknown)); got != "" {
		t.Errorf("spectator label: %q", got)
	}
	if got := l.label(seat("s", model.SideT)); got != "Team T start" {
		t.Errorf("late joiner label: %q", got)
	}
	if len(l.order) != 1 {
		t.Errorf("order: %v", l.order)
	}
}

func TestParticipantOf(t *testing.T) {
	human := participantOf(&common.Player{SteamID64: 76561198000000001, Name: "x", Team: common.TeamCounterTerrorists})
	if human.key != "76561198000000001" || human.side != model.SideCT || human.clan != "" {
		t.Errorf("human: %+v", human)
	}
	bot := participantOf(&common.Player{Name: "Bot Joe", Team: common.TeamSpectators})
	if bot.key != "bot:Bot Joe" || bot.side != model.SideUnknown {
		t.Errorf("bot: %+v", bot)
	}
}
