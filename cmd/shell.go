package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-duel-matrix/internal/aggregator"
	"github.com/pable/go-duel-matrix/internal/duels"
	"github.com/pable/go-duel-matrix/internal/report"
	"github.com/pable/go-duel-matrix/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

// shellState is the selection carried between REPL lines.
type shellState struct {
	db       *storage.DB
	match    *matchData
	mapName  string
	killType string
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	st := &shellState{db: db, mapName: cfg.Map, killType: cfg.KillType}

	cGreeting.Println("duelmatrix shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("duelmatrix")
		if st.match != nil {
			cMuted.Printf("[%s]", short(st.match.Summary.MatchID, 12))
		}
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			st.list()
		case "use":
			if rest == "" {
				cError.Fprintln(os.Stderr, "usage: use <match-id-prefix>")
				continue
			}
			st.use(rest)
		case "map":
			st.pick(rest, true)
		case "kill":
			st.pick(rest, false)
		case "swap":
			if st.requireMatch() {
				s := &st.match.Summary
				s.TeamA, s.TeamB = s.TeamB, s.TeamA
				st.matrix()
			}
		case "matrix", "show":
			if st.requireMatch() {
				st.matrix()
			}
		case "duels":
			if st.requireMatch() {
				filtered := duels.FilterRecords(st.match.Records, st.mapName, st.killType)
				for _, team := range []string{st.match.Summary.TeamA, st.match.Summary.TeamB} {
					report.PrintTeamDuels(os.Stdout, team, duels.TeamDuels(filtered, team))
					fmt.Println()
				}
			}
		case "players":
			if st.requireMatch() {
				report.PrintPlayerTotals(os.Stdout, aggregator.PlayerTotals(st.match.Records))
				fmt.Println()
				report.PrintTopPerformers(os.Stdout, aggregator.TopPerformers(st.match.Records))
			}
		case "player":
			if rest == "" {
				cError.Fprintln(os.Stderr, "usage: player <name>")
				continue
			}
			st.player(rest)
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored matches"},
		{"use <match-id-prefix>", "select a match"},
		{"matrix", "show the selected match's duel matrix"},
		{"map [name]", "set the map filter, or cycle to the next map"},
		{"kill [name]", "set the kill type filter, or cycle to the next one"},
		{"swap", "swap which team is on the rows"},
		{"duels", "combat record of both teams"},
		{"players", "player totals and top performers"},
		{"player <name>", "one player's duels across all matches"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-28s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func (st *shellState) requireMatch() bool {
	if st.match == nil {
		cError.Fprintln(os.Stderr, "no match selected, run 'use <match-id-prefix>' first")
		return false
	}
	return true
}

func (st *shellState) list() {
	matches, err := listMatches(st.db)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(matches) == 0 {
		cMuted.Println("No matches stored yet.")
		return
	}
	printMatchList(matches,
		func(format string, a ...any) { cHeader.Fprintf(os.Stdout, format, a...) },
		func(format string, a ...any) { fmt.Fprintf(os.Stdout, format, a...) })
}

func (st *shellState) use(prefix string) {
	md, err := loadMatch(st.db, prefix)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	st.match = md
	cMuted.Printf("%s vs %s, %d records\n", md.Summary.TeamA, md.Summary.TeamB, len(md.Records))
}

// pick sets the map (or kill type) filter to value, or advances to the next
// available option when value is empty.
func (st *shellState) pick(value string, isMap bool) {
	if !st.requireMatch() {
		return
	}
	options := duels.KillTypes(st.match.Records)
	current := &st.killType
	if isMap {
		options = duels.Maps(st.match.Records)
		current = &st.mapName
	}
	if value == "" {
		if len(options) == 0 {
			cWarn.Fprintln(os.Stderr, "no options available")
			return
		}
		next := 0
		for i, o := range options {
			if o == *current {
				next = (i + 1) % len(options)
				break
			}
		}
		value = options[next]
	}
	*current = value
	cMuted.Printf("map: %s, kill type: %s\n", st.mapName, st.killType)
	st.matrix()
}

func (st *shellState) matrix() {
	m := duels.Build(st.match.Records, duels.Options{
		TeamA:    st.match.Summary.TeamA,
		TeamB:    st.match.Summary.TeamB,
		Map:      st.mapName,
		KillType: st.killType,
		Policy:   cfg.Duplicates,
	})
	report.PrintDuelMatrix(os.Stdout, m)
	filtered := duels.FilterRecords(st.match.Records, st.mapName, st.killType)
	for _, team := range []string{st.match.Summary.TeamA, st.match.Summary.TeamB} {
		report.PrintCombatSummary(os.Stdout, team, duels.Summarize(duels.TeamDuels(filtered, team)))
	}
	fmt.Println()
}

func (st *shellState) player(name string) {
	all, err := st.db.GetPlayerDuelRecords(name)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	recs := filterPlayerRecords(all, st.mapName, st.killType)
	if len(recs) == 0 {
		cWarn.Fprintf(os.Stderr, "no %s / %s duels for %q\n", st.mapName, st.killType, name)
		return
	}
	report.PrintPlayerDuels(os.Stdout, recs)
}
