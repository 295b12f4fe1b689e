package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	bucketsync "bucket-sync/feature/sync"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// passFlags are shared by the commands that run a sync pass.
type passFlags struct {
	prefix  string
	delete  bool
	dryRun  bool
	workers int
	verbose bool
}

func (f *passFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "Remote directory inside the bucket")
	cmd.Flags().BoolVar(&f.delete, "delete", false, "Delete entries missing on the source side")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Report actions without transferring anything")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Concurrent hashes and transfers (default from config)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Also print skipped files")
}

func (f *passFlags) request(localDir, bucket string) bucketsync.Request {
	return bucketsync.Request{
		LocalDir:      localDir,
		Bucket:        bucket,
		Prefix:        f.prefix,
		DeleteMissing: f.delete,
		DryRun:        f.dryRun,
	}
}

var uploadFlags passFlags

// uploadCmd pushes <bucket-dir>/_website into the bucket named after the directory.
var uploadCmd = &cobra.Command{
	Use:   "upload <bucket-dir>",
	Short: "Upload a bucket directory's website",
	Long: `Synchronizes <bucket-dir>/_website into the bucket named after <bucket-dir>.

Credentials are read from <bucket-dir>/credentials.toml:

  key_id       = "..."
  secret_key   = "..."
  endpoint_url = "https://<account>.r2.cloudflarestorage.com"
  region       = "auto"   # optional

Examples:
  # Preview what would change
  bucket-sync upload buckets/example.com --dry-run

  # Upload and remove objects deleted locally
  bucket-sync upload buckets/example.com --delete`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadFlags.register(uploadCmd)
	RootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	s, err := openSession(args[0])
	if err != nil {
		return err
	}
	defer s.logger.Sync()

	out := newPrinter(cmd.OutOrStdout(), uploadFlags.verbose)
	req := uploadFlags.request(filepath.Join(args[0], websiteDir), s.bucket)

	// An interrupted pass still returns what ran
	res, err := s.service(uploadFlags.workers).Push(ctx, req, out)
	if res != nil {
		printSummary(cmd.OutOrStdout(), res)
	}
	if err != nil {
		return err
	}
	return out.err()
}

// printSummary writes the totals of a pass. Dry runs report the plan, real
// passes report what actually happened.
func printSummary(w io.Writer, res *bucketsync.Result) {
	s := res.Plan.Summary
	planned := humanize.Bytes(uint64(s.BytesToTransfer))

	if res.Run == nil || res.Run.DryRun {
		fmt.Fprintf(w, "Dry run: %d uploads, %d downloads, %d skipped, %d deletes, %d failures (%s to transfer)\n",
			s.Uploads, s.Downloads, s.Skips, s.Deletes, s.Failures, planned)
		return
	}

	r := res.Run
	fmt.Fprintf(w, "%d uploaded, %d downloaded, %d skipped, %d deleted, %d errors (%s planned)\n",
		r.Uploaded, r.Downloaded, r.Skipped, r.Deleted, r.Errors, planned)
}
