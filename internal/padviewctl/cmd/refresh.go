package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "End the current session and re-fetch the launch schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient()
			if err != nil {
				return err
			}
			if err := c.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("error requesting refresh: %w", err)
			}
			fmt.Println("Refresh requested")
			return nil
		},
	}
}
