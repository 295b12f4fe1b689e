package cmd

import (
	"fmt"
	"path/filepath"

	"bucket-sync/core/reconcile"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var planFlags passFlags

// planCmd previews an upload without touching the bucket.
var planCmd = &cobra.Command{
	Use:   "plan <bucket-dir>",
	Short: "Show what an upload would do",
	Long:  `Runs a dry-run upload of <bucket-dir>/_website and prints the planned actions with their reasons.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPlan,
}

func init() {
	planFlags.register(planCmd)
	// Always a dry run
	_ = planCmd.Flags().MarkHidden("dry-run")
	RootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	s, err := openSession(args[0])
	if err != nil {
		return err
	}
	defer s.logger.Sync()

	req := planFlags.request(filepath.Join(args[0], websiteDir), s.bucket)
	req.DryRun = true

	res, err := s.service(planFlags.workers).Push(ctx, req, reconcile.Discard)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, a := range res.Plan.Actions {
		if a.Type == reconcile.ActionSkip && !planFlags.verbose {
			continue
		}
		line := fmt.Sprintf("%-8s %s", a.Type, a.Key)
		if a.Size > 0 {
			line += " (" + humanize.Bytes(uint64(a.Size)) + ")"
		}
		if a.Reason != "" {
			line += ": " + a.Reason
		}
		fmt.Fprintln(w, line)
	}

	sum := res.Plan.Summary
	fmt.Fprintf(w, "\nBucket %s: %d to upload, %d unchanged, %d to delete, %d unreadable\n",
		s.bucket, sum.Uploads, sum.Skips, sum.Deletes, sum.Failures)
	fmt.Fprintf(w, "Bytes to transfer: %s\n", humanize.Bytes(uint64(sum.BytesToTransfer)))
	return nil
}
