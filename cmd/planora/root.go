package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "planora",
	Short: "Planora is a command-driven trip itinerary engine",
	Long:  `Planora keeps a multi-day trip itinerary as a canonical document and mutates it through a single command dispatcher, fed by UI actions and agent-translated prompts alike.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the YAML configuration file")
}
