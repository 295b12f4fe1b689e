package cmd

import (
	"fmt"
	"time"

	"bucket-sync/core/config"
	"bucket-sync/core/database"
	"bucket-sync/feature/history"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd lists the most recent journaled passes.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent sync passes",
	Long:  `Lists the most recent sync passes recorded in the history database (requires DATABASE_ENABLED=true).`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("history database unavailable: %w", err)
		}

		repo := history.NewRepository(db)
		if err := repo.Migrate(); err != nil {
			return err
		}

		runs, err := repo.Recent(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(w, "No sync passes recorded.")
			return nil
		}

		for _, r := range runs {
			mode := r.Direction
			if r.DryRun {
				mode += " (dry run)"
			}
			fmt.Fprintf(w, "%s  %-16s %s/%s  up=%d down=%d skip=%d del=%d err=%d  %s, took %s\n",
				r.RunID, mode, r.Bucket, r.Prefix,
				r.Uploaded, r.Downloaded, r.Skipped, r.Deleted, r.Errors,
				humanize.Time(r.StartedAt), r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", history.DefaultLimit, "Number of passes to show")
	RootCmd.AddCommand(historyCmd)
}
