package cmd

import (
	"os"

	"bucket-manager/feature/menu"

	"github.com/spf13/cobra"
)

// menuCmd represents the interactive menu command
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Shows a numbered menu (upload, download, delete, list, exit) and runs the
selected operation against the bucket until Exit is chosen.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	RootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, args []string) error {
	app, err := bootstrap()
	if err != nil {
		return err
	}
	defer app.close()

	app.logger.Debug("Starting interactive menu")
	loop := menu.NewLoop(app.objects, app.objects.Bucket(), os.Stdin, cmd.OutOrStdout(), app.logger)
	return loop.Run(cmd.Context())
}
