package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"archive-backend/internal/documents"
	"archive-backend/internal/users"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print archive-wide statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, cfg, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		userSvc := users.NewService(&users.SQLiteRepo{DB: conn}, cfg.DefaultRole)
		svc := documents.NewService(&documents.SQLiteRepo{DB: conn}, userSvc, nil)
		stats, err := svc.Statistics(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("documents: %d\n", stats.TotalDocuments)
		fmt.Printf("users:     %d\n", stats.TotalUsers)

		categories := make([]string, 0, len(stats.ByCategory))
		for category := range stats.ByCategory {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		if len(categories) > 0 {
			fmt.Println("by category:")
			for _, category := range categories {
				fmt.Printf("  %s: %d\n", category, stats.ByCategory[category])
			}
		}
		if len(stats.RecentDocuments) > 0 {
			fmt.Println("recent:")
			for _, doc := range stats.RecentDocuments {
				fmt.Printf("  %s  %s  %s\n", doc.CreatedAt.Format("2006-01-02 15:04"), doc.ID, doc.Title)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
