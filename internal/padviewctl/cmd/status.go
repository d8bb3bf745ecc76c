package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/padview/padview/internal/padviewctl/util"
)

func newStatusCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the device's current display state",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient()
			if err != nil {
				return err
			}

			status, err := c.GetStatus(cmd.Context())
			if err != nil {
				return fmt.Errorf("error fetching status: %w", err)
			}

			if outputJSON {
				return util.PrintJSON(os.Stdout, status)
			}

			w := util.NewTabWriter(os.Stdout)
			fmt.Fprintf(w, "State:\t%s\n", status.State)
			fmt.Fprintf(w, "Version:\t%s\n", status.Version)
			fmt.Fprintf(w, "Uptime:\t%s\n", status.Uptime)
			if status.Event != nil {
				fmt.Fprintf(w, "Mission:\t%s\n", status.Event.Name)
				fmt.Fprintf(w, "Provider:\t%s\n", status.Event.Provider)
				fmt.Fprintf(w, "Location:\t%s\n", status.Event.Location)
				fmt.Fprintf(w, "Liftoff:\t%s\n", status.Event.Net.Local().Format("2006-01-02 15:04:05 MST"))
			}
			if status.Countdown != nil {
				fmt.Fprintf(w, "Countdown:\t%s (%s)\n",
					util.FormatCountdown(status.Countdown.Days, status.Countdown.Hours, status.Countdown.Minutes, status.Countdown.Seconds),
					status.Countdown.Regime)
			}
			if status.Session != nil {
				fmt.Fprintf(w, "Session:\t%s\n", status.Session.ID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&outputJSON, "json", "j", false, "Output as JSON")
	return cmd
}
