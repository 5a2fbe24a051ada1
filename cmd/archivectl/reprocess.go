package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"archive-backend/internal/documents"
	"archive-backend/internal/enrich"
	"archive-backend/internal/extract"
	"archive-backend/internal/ocr"
)

var reprocessCmd = &cobra.Command{
	Use:   "reprocess <document-id>",
	Short: "Re-run the enrichment pipeline over a stored document",
	Long: `reprocess re-extracts text from the stored artifact and rewrites the
derived fields (extracted text, summary, category, keywords). Fields
edited by users are left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, cfg, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		var recognizer ocr.Recognizer = ocr.Noop{}
		if cfg.OCRBaseURL != "" {
			client, err := ocr.NewClient(cfg.OCRBaseURL, cfg.OCRTimeout)
			if err != nil {
				return fmt.Errorf("ocr client: %w", err)
			}
			recognizer = client
		}
		pipeline := &enrich.Pipeline{Extractor: &extract.Adapter{OCR: recognizer}}

		svc := documents.NewService(&documents.SQLiteRepo{DB: conn}, nil, pipeline)
		doc, err := svc.Reprocess(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("reprocessed %s: category=%s keywords=%d\n", doc.ID, doc.AutoCategory, len(doc.Keywords))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reprocessCmd)
}
