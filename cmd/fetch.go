package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the sessions again and replace the cache file",
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx, stop, svc, err := newService()
	if err != nil {
		return err
	}
	defer stop()
	defer closeService(svc)

	n, err := svc.Refresh(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "fetched %d sessions\n", n)
	return err
}
