package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-duel-matrix/internal/config"
	"github.com/pable/go-duel-matrix/internal/storage"
)

var (
	dbPath     string
	configPath string
	apiURL     string

	// cfg is resolved once per invocation before any command runs.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "duelmatrix",
	Short: "Tournament duel matrix tool",
	Long: `Fetch player-vs-enemy duel records from the tournament backend (or derive
them from CS2 demos), store them locally and render team-vs-team duel matrices.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath, config.Overrides{APIBaseURL: apiURL, DBPath: dbPath})
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite database (default "+config.DefaultDBPath()+")")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to TOML config (default "+config.DefaultConfigPath()+")")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "backend base URL (default from config or "+config.EnvAPIURL+")")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(browseCmd)
}

// openDB opens the configured database, creating its directory when needed.
func openDB() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// loadMatch resolves an ID prefix to a stored match and its duel records.
func loadMatch(db *storage.DB, prefix string) (*matchData, error) {
	m, err := db.GetMatchByPrefix(prefix)
	if err != nil {
		return nil, fmt.Errorf("lookup match: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("no match found with prefix %q", prefix)
	}
	records, err := db.GetDuelRecords(m.MatchID)
	if err != nil {
		return nil, fmt.Errorf("get duel records: %w", err)
	}
	draft, err := db.GetDraft(m.MatchID)
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	return &matchData{Summary: *m, Records: records, Draft: draft}, nil
}
