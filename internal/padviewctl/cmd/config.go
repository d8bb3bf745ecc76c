package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/padview/padview/internal/padviewctl/config"
	"github.com/padview/padview/internal/padviewctl/util"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage device contexts",
	}

	cmd.AddCommand(newConfigSetContextCmd())
	cmd.AddCommand(newConfigUseContextCmd())
	cmd.AddCommand(newConfigDeleteContextCmd())
	cmd.AddCommand(newConfigGetContextsCmd())
	return cmd
}

func newConfigSetContextCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "set-context NAME",
		Short: "Add or update a device context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if server == "" {
				return fmt.Errorf("--server is required")
			}

			cfg.AddContext(name, &config.Context{Server: server})
			if cfg.CurrentContext == "" {
				cfg.CurrentContext = name
			}
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}
			fmt.Printf("Context %q set\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "Device API URL, e.g. http://pad-display.local:8080")
	return cmd
}

func newConfigUseContextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use-context NAME",
		Short: "Select the active device context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.SetCurrentContext(args[0]); err != nil {
				return err
			}
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}
			fmt.Printf("Switched to context %q\n", args[0])
			return nil
		},
	}
}

func newConfigDeleteContextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-context NAME",
		Short: "Remove a device context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.RemoveContext(args[0]); err != nil {
				return err
			}
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}
			fmt.Printf("Context %q deleted\n", args[0])
			return nil
		},
	}
}

func newConfigGetContextsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get-contexts",
		Short: "List configured device contexts",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := util.NewTabWriter(os.Stdout)
			fmt.Fprintln(w, "CURRENT\tNAME\tSERVER")
			for name, ctx := range cfg.Contexts {
				current := ""
				if name == cfg.CurrentContext {
					current = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", current, name, ctx.Server)
			}
			return w.Flush()
		},
	}
}
