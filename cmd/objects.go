package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var listPrefix string

// rmConcurrency bounds the number of in-flight deletes for rm.
const rmConcurrency = 4

var putCmd = &cobra.Command{
	Use:   "put <local-path> <key>",
	Short: "Upload a local file to the bucket",
	Long:  `Uploads the file at local-path under key, replacing any existing object with that key.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap()
		if err != nil {
			return err
		}
		defer app.close()

		ctx, stop := interruptible(cmd.Context())
		defer stop()

		if err := app.objects.Put(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s as %s\n", args[0], args[1])
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <key> <local-path>",
	Short: "Download an object to a local file",
	Long: `Downloads the object stored under key to local-path. The destination is only
replaced once the whole object has been received.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap()
		if err != nil {
			return err
		}
		defer app.close()

		ctx, stop := interruptible(cmd.Context())
		defer stop()

		if err := app.objects.Get(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %s to %s\n", args[0], args[1])
		return nil
	},
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List object keys",
	Long:  `Prints one key per line, optionally restricted to keys starting with --prefix.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap()
		if err != nil {
			return err
		}
		defer app.close()

		out := cmd.OutOrStdout()
		count := 0
		for key, err := range app.objects.Keys(cmd.Context(), listPrefix) {
			if err != nil {
				return err
			}
			fmt.Fprintln(out, key)
			count++
		}
		app.logger.Debug("Listed objects", zap.String("prefix", listPrefix), zap.Int("count", count))
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <key>...",
	Short: "Delete objects",
	Long: `Deletes every given key, a few at a time. Keys that do not exist are not an
error; a failure for one key does not stop the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap()
		if err != nil {
			return err
		}
		defer app.close()

		out := cmd.OutOrStdout()
		var (
			mu   sync.Mutex
			errs []error
		)
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(rmConcurrency)
		for _, key := range args {
			g.Go(func() error {
				err := app.objects.Delete(ctx, key)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs = append(errs, err)
					return nil
				}
				fmt.Fprintf(out, "Deleted %s\n", key)
				return nil
			})
		}
		_ = g.Wait()
		return errors.Join(errs...)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the bucket is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap()
		if err != nil {
			return err
		}
		defer app.close()

		if err := app.objects.Check(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Bucket %s is reachable at %s\n", app.objects.Bucket(), app.cfg.Storage.Endpoint)
		return nil
	},
}

func init() {
	lsCmd.Flags().StringVarP(&listPrefix, "prefix", "p", "", "Only list keys starting with this prefix")

	RootCmd.AddCommand(putCmd, getCmd, lsCmd, rmCmd, checkCmd)
}

// interruptible cancels ctx on SIGINT or SIGTERM so an in-flight transfer can
// clean up its temporary file before the process exits.
func interruptible(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
