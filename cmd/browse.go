package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pable/go-duel-matrix/internal/browse"
)

var browseCmd = &cobra.Command{
	Use:   "browse <match-id-prefix>",
	Short: "Browse a match's duel matrix interactively",
	Long: `Open a full-screen duel matrix. Keys:
  m / M   next / previous map
  k / K   next / previous kill type
  s       swap the teams on rows and columns
  ?       toggle help
  q       quit`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	md, err := loadMatch(db, args[0])
	db.Close()
	if err != nil {
		return err
	}

	model := browse.NewModel(md.Summary, md.Records, browse.Options{
		Map:      cfg.Map,
		KillType: cfg.KillType,
		Policy:   cfg.Duplicates,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}
