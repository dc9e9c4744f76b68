package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var daysCmd = &cobra.Command{
	Use:   "days",
	Short: "List the days that have scheduled sessions",
	RunE:  runDays,
}

func init() {
	rootCmd.AddCommand(daysCmd)
}

func runDays(cmd *cobra.Command, args []string) error {
	ctx, stop, svc, err := newService()
	if err != nil {
		return err
	}
	defer stop()
	defer closeService(svc)

	days, err := svc.Days(ctx)
	if err != nil {
		return err
	}
	for _, d := range days {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), d); err != nil {
			return err
		}
	}
	return nil
}
