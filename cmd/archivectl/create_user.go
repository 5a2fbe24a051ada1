package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"archive-backend/internal/users"
)

var createUserFlags struct {
	username string
	password string
	fullName string
	role     string
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Register a new archive user",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, cfg, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		svc := users.NewService(&users.SQLiteRepo{DB: conn}, cfg.DefaultRole)
		user, err := svc.Create(cmd.Context(), users.CreateInput{
			Username: createUserFlags.username,
			Password: createUserFlags.password,
			FullName: createUserFlags.fullName,
			Role:     createUserFlags.role,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created user %s (%s)\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	createUserCmd.Flags().StringVar(&createUserFlags.username, "username", "", "login name (required)")
	createUserCmd.Flags().StringVar(&createUserFlags.password, "password", "", "password (required)")
	createUserCmd.Flags().StringVar(&createUserFlags.fullName, "full-name", "", "display name (required)")
	createUserCmd.Flags().StringVar(&createUserFlags.role, "role", "", "role label, defaults to the configured role")
	_ = createUserCmd.MarkFlagRequired("username")
	_ = createUserCmd.MarkFlagRequired("password")
	_ = createUserCmd.MarkFlagRequired("full-name")
	rootCmd.AddCommand(createUserCmd)
}
