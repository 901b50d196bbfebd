package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	userID  string
	token   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gobudget-cli",
		Short:         "GoBudget CLI tool",
		Long:          `A command line interface for operating the GoBudget API and database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoBudget API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "Owner id sent as X-User-ID")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token")

	rootCmd.AddCommand(sourcesCmd(), summaryCmd(), migrateCmd())
	return rootCmd
}
