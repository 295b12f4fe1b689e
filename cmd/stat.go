package cmd

import (
	"fmt"

	bucketsync "bucket-sync/feature/sync"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statPrefix string

// statCmd prints the metadata of a single object.
var statCmd = &cobra.Command{
	Use:   "stat <bucket-dir> <key>",
	Short: "Show metadata of a single object",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		s, err := openSession(args[0])
		if err != nil {
			return err
		}
		defer s.logger.Sync()

		key := bucketsync.NormalizePrefix(statPrefix) + args[1]
		info, err := s.client.StatObject(ctx, s.bucket, key)
		if err != nil {
			return fmt.Errorf("failed to stat %s/%s: %w", s.bucket, key, err)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Key:           %s\n", info.Key)
		fmt.Fprintf(w, "Size:          %s (%d bytes)\n", humanize.Bytes(uint64(info.Size)), info.Size)
		fmt.Fprintf(w, "ETag:          %s\n", info.ETag)
		if !info.LastModified.IsZero() {
			fmt.Fprintf(w, "Last modified: %s (%s)\n", info.LastModified.Format("2006-01-02 15:04:05 MST"), humanize.Time(info.LastModified))
		}
		return nil
	},
}

func init() {
	statCmd.Flags().StringVar(&statPrefix, "prefix", "", "Remote directory inside the bucket")
	RootCmd.AddCommand(statCmd)
}
