package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "archivectl",
	Short: "Administration tool for the document archive",
	Long: `archivectl manages the local document archive store directly,
without going through the HTTP API.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "archivectl: %v\n", err)
		os.Exit(1)
	}
}
