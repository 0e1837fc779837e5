// Package browse provides the Bubble Tea duel matrix browser.
package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/pable/go-duel-matrix/internal/duels"
	"github.com/pable/go-duel-matrix/internal/model"
)

const maxColWidth = 12

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	filterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	neutralStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	noDataStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
)

// Options are the initial filter and duplicate handling.
type Options struct {
	Map      string
	KillType string
	Policy   duels.DuplicatePolicy
}

// Model implements the Bubble Tea duel browser.
type Model struct {
	match   model.MatchSummary
	records []model.DuelRecord
	policy  duels.DuplicatePolicy

	maps      []string
	killTypes []string
	mapIdx    int
	killIdx   int
	swapped   bool

	matrix *duels.Matrix

	keys keyMap
	help help.Model

	width  int
	height int
}

// NewModel constructs a browser over one match's records.
func NewModel(match model.MatchSummary, records []model.DuelRecord, opts Options) *Model {
	m := &Model{
		match:     match,
		records:   records,
		policy:    opts.Policy,
		maps:      duels.Maps(records),
		killTypes: duels.KillTypes(records),
		keys:      defaultKeys(),
		help:      help.New(),
	}
	if len(m.maps) == 0 {
		m.maps = []string{model.AllMaps}
	}
	if len(m.killTypes) == 0 {
		m.killTypes = []string{model.AllKills}
	}
	m.mapIdx = indexOf(m.maps, opts.Map)
	m.killIdx = indexOf(m.killTypes, opts.KillType)
	m.rebuild()
	return m
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return 0
}

// Map returns the selected map filter.
func (m *Model) Map() string { return m.maps[m.mapIdx] }

// KillType returns the selected kill-type filter.
func (m *Model) KillType() string { return m.killTypes[m.killIdx] }

// Matrix returns the matrix currently displayed.
func (m *Model) Matrix() *duels.Matrix { return m.matrix }

func (m *Model) teams() (string, string) {
	if m.swapped {
		return m.match.TeamB, m.match.TeamA
	}
	return m.match.TeamA, m.match.TeamB
}

// rebuild recomputes the matrix from scratch for the current selection.
func (m *Model) rebuild() {
	a, b := m.teams()
	m.matrix = duels.Build(m.records, duels.Options{
		TeamA:    a,
		TeamB:    b,
		Map:      m.Map(),
		KillType: m.KillType(),
		Policy:   m.policy,
	})
}

func cycle(i, delta, n int) int {
	return ((i+delta)%n + n) % n
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.NextMap):
			m.mapIdx = cycle(m.mapIdx, 1, len(m.maps))
			m.rebuild()
		case key.Matches(msg, m.keys.PrevMap):
			m.mapIdx = cycle(m.mapIdx, -1, len(m.maps))
			m.rebuild()
		case key.Matches(msg, m.keys.NextKill):
			m.killIdx = cycle(m.killIdx, 1, len(m.killTypes))
			m.rebuild()
		case key.Matches(msg, m.keys.PrevKill):
			m.killIdx = cycle(m.killIdx, -1, len(m.killTypes))
			m.rebuild()
		case key.Matches(msg, m.keys.Swap):
			m.swapped = !m.swapped
			m.rebuild()
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	a, b := m.teams()
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s vs %s", a, b)))
	if m.match.Stage != "" {
		sb.WriteString(headerStyle.Render("  " + m.match.Tournament + " · " + m.match.Stage))
	}
	sb.WriteString("\n")
	sb.WriteString(filterStyle.Render(fmt.Sprintf("Map: %s  Kill type: %s  Duplicates: %s", m.Map(), m.KillType(), m.policy)))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderGrid())
	sb.WriteString("\n")
	sb.WriteString(m.renderSummary())
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m *Model) renderGrid() string {
	mx := m.matrix
	if len(mx.Rosters.TeamA) == 0 || len(mx.Rosters.TeamB) == 0 {
		return headerStyle.Render("No duel data for these teams.") + "\n"
	}

	nameWidth := 4
	for _, p := range mx.Rosters.TeamA {
		nameWidth = max(nameWidth, runewidth.StringWidth(p))
	}
	nameWidth = min(nameWidth, maxColWidth)
	colWidth := 5
	for _, p := range mx.Rosters.TeamB {
		colWidth = max(colWidth, runewidth.StringWidth(p))
	}
	colWidth = min(colWidth, maxColWidth)

	var sb strings.Builder
	sb.WriteString(fit("", nameWidth))
	for _, p := range mx.Rosters.TeamB {
		sb.WriteString(" ")
		sb.WriteString(headerStyle.Render(fit(p, colWidth)))
	}
	sb.WriteString("\n")

	for _, pa := range mx.Rosters.TeamA {
		sb.WriteString(fit(pa, nameWidth))
		for _, pb := range mx.Rosters.TeamB {
			sb.WriteString(" ")
			sb.WriteString(renderCell(mx.Cell(pa, pb), colWidth))
		}
		sb.WriteString("\n")
	}
	if mx.Index.Len() == 0 {
		sb.WriteString(headerStyle.Render("No records match this map and kill type."))
		sb.WriteString("\n")
	}
	return sb.String()
}

// CellText is the plain text shown for a cell.
func CellText(c duels.Cell) string {
	if !c.OK {
		return duels.NoDataMark
	}
	return fmt.Sprintf("%d-%d", c.Duel.PlayerKills, c.Duel.EnemyKills)
}

func renderCell(c duels.Cell, width int) string {
	text := runewidth.FillLeft(CellText(c), width)
	if !c.OK {
		return noDataStyle.Render(text)
	}
	switch c.Class {
	case duels.Positive:
		return positiveStyle.Render(text)
	case duels.Negative:
		return negativeStyle.Render(text)
	default:
		return neutralStyle.Render(text)
	}
}

// fit truncates or pads s to exactly width terminal cells.
func fit(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

func (m *Model) renderSummary() string {
	a, b := m.teams()
	filtered := duels.FilterRecords(m.records, m.Map(), m.KillType())
	var lines []string
	for _, team := range []string{a, b} {
		s := duels.Summarize(duels.TeamDuels(filtered, team))
		lines = append(lines, headerStyle.Render(fmt.Sprintf("%s: %d duels, %d won, %d eliminations",
			team, s.TotalDuels, s.WinningDuels, s.TotalEliminations)))
	}
	return strings.Join(lines, "\n") + "\n"
}
