package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MalithGihan/annotation-extractor/internal/ingest"
	"github.com/MalithGihan/annotation-extractor/internal/store"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest FILE...",
	Short: "Validate meta documents and store them as jobs",
	Long: `Each file is checked against the meta document schema and copied into
the job store. The printed job ids can be queried through
GET /jobs/{id}/annotation once 'annox serve' is running.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.New(cfg.Store.Root)
		if err != nil {
			return err
		}
		for _, path := range args {
			if ingest.DetectType(path) != "meta" {
				logger.Warn("skipping file", "file", path, "reason", "not a .json meta document")
				continue
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			id, err := st.SaveMeta(raw)
			if err != nil {
				logger.Error("rejected", "file", path, "error", err)
				continue
			}
			logger.Info("stored", "file", path, "job", id)
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}
