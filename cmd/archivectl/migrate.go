package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the store schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, cfg, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()
		fmt.Printf("store at %s is up to date\n", cfg.DBPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
