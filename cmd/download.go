package cmd

import (
	"github.com/spf13/cobra"
)

var downloadFlags passFlags

// downloadCmd mirrors a bucket into a local directory.
var downloadCmd = &cobra.Command{
	Use:   "download <bucket-dir> <target>",
	Short: "Download a bucket into a local directory",
	Long: `Synchronizes the bucket named after <bucket-dir> into <target>.

Objects are downloaded when the local file is missing or differs in content.
With --delete, local files that no longer exist in the bucket are removed.`,
	Args: cobra.ExactArgs(2),
	RunE: runDownload,
}

func init() {
	downloadFlags.register(downloadCmd)
	RootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	s, err := openSession(args[0])
	if err != nil {
		return err
	}
	defer s.logger.Sync()

	out := newPrinter(cmd.OutOrStdout(), downloadFlags.verbose)
	req := downloadFlags.request(args[1], s.bucket)

	res, err := s.service(downloadFlags.workers).Pull(ctx, req, out)
	if res != nil {
		printSummary(cmd.OutOrStdout(), res)
	}
	if err != nil {
		return err
	}
	return out.err()
}
