package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// @title Stock Event Calendar API
// @version 1.0
// @description Market event catalog, personal calendars, votes, onboarding recommendations and portfolios.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "calendar-service"}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-calendar.yaml", "Path to the configuration file")

	seedCmd.Flags().StringVar(&seedEventsPath, "events", "seeds/events.yaml", "Path to the events seed file")
	seedCmd.Flags().StringVar(&seedStocksPath, "stocks", "seeds/stocks.yaml", "Path to the stocks seed file")
	seedCmd.Flags().BoolVar(&seedDemoPortfolio, "demo-portfolio", false, "Create a connected demo broker portfolio")

	rootCmd.AddCommand(serveCmd, seedCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing calendar-service CLI: %s\n", err)
		os.Exit(1)
	}
}
