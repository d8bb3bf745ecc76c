// Package cmd implements the padview CLI commands
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/padview/padview/internal/padviewctl/client"
	"github.com/padview/padview/internal/padviewctl/config"
)

var (
	cfg       *config.Config
	serverURL string
	debug     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "padviewctl",
	Short: "padview control tool",
	Long: `padviewctl is a command line tool for observing and controlling a
padview countdown display: query its status, inspect session history,
watch the live state stream, and trigger a schedule refresh.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "device API address (overrides the current context)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newRefreshCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// initConfig reads in the config file if set
func initConfig() {
	var err error
	cfg, err = config.LoadConfig()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
}

// apiClient builds a client for the selected device: the --server flag wins,
// then the current context.
func apiClient() (*client.Client, error) {
	server := serverURL
	if server == "" {
		ctx, err := cfg.GetCurrentContext()
		if err != nil {
			return nil, fmt.Errorf("no device selected: %w (use --server or 'padviewctl config use-context')", err)
		}
		server = ctx.Server
	}
	return client.NewClient(server)
}
