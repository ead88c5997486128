package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"bucket-manager/feature/audit"

	"github.com/spf13/cobra"
)

var auditLimit int

var errAuditDisabled = errors.New("audit journal is disabled (set DATABASE_ENABLED=true)")

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent operations from the audit journal",
	Long:  `Prints the most recent journal entries for the configured bucket, newest first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap()
		if err != nil {
			return err
		}
		defer app.close()

		if app.audit == nil {
			return errAuditDisabled
		}

		events, err := app.audit.Recent(cmd.Context(), auditLimit)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No operations recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tOP\tKEY\tOUTCOME\tRAY ID")
		for _, ev := range events {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				ev.CreatedAt.Local().Format(time.DateTime), ev.Operation, ev.Key, ev.Outcome, ev.RayID)
		}
		return w.Flush()
	},
}

func init() {
	auditCmd.Flags().IntVarP(&auditLimit, "limit", "n", audit.DefaultLimit, "Maximum number of entries to show")
	RootCmd.AddCommand(auditCmd)
}
