package cmd

import (
	"fmt"
	"os"

	"bucket-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configDir  string
	bucketFlag string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "bucket-manager",
	Short: "Upload, download, list and delete objects in an S3 bucket",
	Long: `Bucket Manager is a client for a single S3 or MinIO bucket.
Without a subcommand it starts the interactive menu; the put, get, ls and rm
subcommands run the same operations non-interactively.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the debug config gives ISO8601 timestamps for CLI users.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding the optional .env file")
	RootCmd.PersistentFlags().StringVarP(&bucketFlag, "bucket", "b", "", "Bucket to operate on (overrides STORAGE_BUCKET)")
}
