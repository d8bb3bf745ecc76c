package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/padview/padview/api/types/v1alpha1"
	"github.com/padview/padview/internal/padviewctl/util"
)

func newWatchCmd() *cobra.Command {
	var showZones bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream live state transitions from the device",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ch, err := c.Watch(ctx)
			if err != nil {
				return err
			}

			for msg := range ch {
				switch msg.Type {
				case v1alpha1.StreamMessageState:
					if msg.Status == nil {
						continue
					}
					line := fmt.Sprintf("%s  %s", msg.Timestamp.Local().Format("15:04:05"), msg.Status.State)
					if msg.Status.Event != nil {
						line += "  " + msg.Status.Event.Name
					}
					if msg.Status.Countdown != nil {
						line += "  " + util.FormatCountdown(
							msg.Status.Countdown.Days, msg.Status.Countdown.Hours,
							msg.Status.Countdown.Minutes, msg.Status.Countdown.Seconds)
					}
					fmt.Println(line)
				case v1alpha1.StreamMessageZones:
					if !showZones {
						continue
					}
					line := fmt.Sprintf("%s  zones", msg.Timestamp.Local().Format("15:04:05"))
					for _, z := range msg.Zones {
						line += fmt.Sprintf("  #%02x%02x%02x", z.R, z.G, z.B)
					}
					fmt.Println(line)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showZones, "zones", false, "Also print light zone color updates")
	return cmd
}
