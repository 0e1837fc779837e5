package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pable/go-duel-matrix/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored matches and duel matrices as a JSON API",
	Long: `Start an HTTP server exposing:

  GET /health
  GET /api/matches
  GET /api/matches/{id}/duels?map=&kill_type=&duplicates=&swap=
  GET /api/matches/{id}/players

{id} may be any unique prefix of a stored match ID.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(db, server.Defaults{
		Map:      cfg.Map,
		KillType: cfg.KillType,
		Policy:   cfg.Duplicates,
	})
	return srv.Run(ctx, addr)
}
