package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/go-duel-matrix/internal/api"
	"github.com/pable/go-duel-matrix/internal/duels"
	"github.com/pable/go-duel-matrix/internal/model"
)

var (
	exportFormat   string
	exportOut      string
	exportMap      string
	exportKillType string
)

var exportCmd = &cobra.Command{
	Use:   "export <match-id-prefix>",
	Short: "Export a match's duel records as JSON or CSV",
	Long: `Write the stored duel records of one match using the backend's column names
("Player", "Enemy", "Player Team", ...). The JSON output has the same shape as
the backend's player_vs_enemy list.

Examples:
  duelmatrix export 8f2c --format csv --out duels.csv
  duelmatrix export 8f2c --map Lotus --kill-type Headshot`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json or csv")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportMap, "map", "", "only export records for this map")
	exportCmd.Flags().StringVar(&exportKillType, "kill-type", "", "only export records for this kill type")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "json" && exportFormat != "csv" {
		return fmt.Errorf("unknown format %q (want json or csv)", exportFormat)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	md, err := loadMatch(db, args[0])
	if err != nil {
		return err
	}
	records := md.Records
	if exportMap != "" || exportKillType != "" {
		m, k := exportMap, exportKillType
		if m == "" {
			m = model.AllMaps
		}
		if k == "" {
			k = model.AllKills
		}
		records = duels.FilterRecords(records, m, k)
	}

	var w io.Writer = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch exportFormat {
	case "csv":
		err = writeCSV(w, records)
	default:
		err = writeJSON(w, records)
	}
	if err != nil {
		return err
	}
	if exportOut != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d records to %s\n", len(records), exportOut)
	}
	return nil
}

func writeJSON(w io.Writer, records []model.DuelRecord) error {
	data, err := api.EncodeRecords(records)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func writeCSV(w io.Writer, records []model.DuelRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(api.RecordColumns); err != nil {
		return err
	}
	for _, r := range records {
		err := cw.Write([]string{
			r.Player, r.Enemy, r.PlayerTeam, r.EnemyTeam,
			strconv.Itoa(r.PlayerKills), strconv.Itoa(r.EnemyKills), strconv.Itoa(r.Difference),
			r.Map, r.KillType,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
