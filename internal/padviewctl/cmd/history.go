package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/padview/padview/internal/padviewctl/util"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit      int
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded countdown sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient()
			if err != nil {
				return err
			}

			entries, err := c.GetHistory(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("error fetching history: %w", err)
			}

			if outputJSON {
				return util.PrintJSON(os.Stdout, entries)
			}

			w := util.NewTabWriter(os.Stdout)
			fmt.Fprintln(w, "MISSION\tLIFTOFF\tSTARTED\tOUTCOME\tIMAGE")
			for _, e := range entries {
				outcome := e.Outcome
				if outcome == "" {
					outcome = "running"
				}
				image := "no"
				if e.HadImage {
					image = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.Name,
					e.Net.Local().Format("2006-01-02 15:04"),
					util.FormatDuration(time.Since(e.StartedAt)),
					outcome,
					image,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of sessions to list")
	cmd.Flags().BoolVarP(&outputJSON, "json", "j", false, "Output as JSON")
	return cmd
}
