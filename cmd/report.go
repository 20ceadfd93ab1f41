package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"phototag/internal"
)

var reportCmd = &cobra.Command{
	Use:   "report <m|f|d> <path>",
	Short: "Print a directory report of the archive",
	Long: `Walk the folders beneath <path> and print one of the archive reports.

Switches:
  'm' - Find main folders that do not have a best sub-folder
  'f' - List the file types found in main folders
  'd' - List photos whose capture date does not match their folder date

Use '?' to print this help.`,
	Example: `  phototag report m ~/Photos
  phototag report f ~/Photos/2010`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, path, err := parseToolArgs(cmd, args, internal.ReportSwitches)
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err != nil {
			return &internal.ArgumentError{Msg: fmt.Sprintf("path does not exist: %s", path)}
		}

		conf, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		defer logger.Close()

		out := cmd.OutOrStdout()
		start := time.Now()
		visited, err := internal.NewReporter(afero.NewOsFs(), conf, mode, out, logger).Run(path)
		if err != nil {
			return err
		}
		printSummary(out, time.Since(start), visited)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
