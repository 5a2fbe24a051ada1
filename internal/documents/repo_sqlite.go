package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"archive-backend/internal/enrich"
	"archive-backend/internal/shared/storage/db"
	"archive-backend/internal/shared/telemetry"
)

// SQLiteRepo implements Repo on the embedded store.
type SQLiteRepo struct {
	DB *sql.DB
}

func (r *SQLiteRepo) ready() error {
	if r == nil || r.DB == nil {
		return db.ErrUninitialized
	}
	return nil
}

// Create inserts the document with every column populated; optional
// fields arrive as empty strings, never NULL.
func (r *SQLiteRepo) Create(ctx context.Context, doc Document) error {
	if err := r.ready(); err != nil {
		return err
	}
	const query = `
INSERT INTO documents (id, title, description, file_type, file_data, category,
owner_name, land_type, location, extracted_text, summary, auto_category,
keywords, notes, uploaded_by, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.Title,
		doc.Description,
		doc.FileType,
		doc.FileData,
		doc.Category,
		doc.OwnerName,
		doc.LandType,
		doc.Location,
		doc.ExtractedText,
		doc.Summary,
		doc.AutoCategory,
		keywordsToJSON(doc.Keywords),
		doc.Notes,
		doc.UploadedBy,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return err
}

// GetByID returns one document or ErrNotFound.
func (r *SQLiteRepo) GetByID(ctx context.Context, id string) (Document, error) {
	if err := r.ready(); err != nil {
		return Document{}, err
	}
	query := "SELECT " + selectColumns + " FROM documents WHERE id = ? LIMIT 1"
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// List returns documents matching the filter, newest first.
func (r *SQLiteRepo) List(ctx context.Context, filter Filter) ([]Document, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	query, args := buildListQuery(filter)
	return r.queryDocuments(ctx, query, args)
}

// Update applies the patch and refreshes updated_at. A missing row
// yields ErrNotFound.
func (r *SQLiteRepo) Update(ctx context.Context, id string, patch Patch, now time.Time) error {
	if err := r.ready(); err != nil {
		return err
	}
	query, args, ok := buildUpdateQuery(id, patch, now)
	if !ok {
		return ErrInvalidInput
	}
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// UpdateEnrichment rewrites the pipeline-derived columns only.
func (r *SQLiteRepo) UpdateEnrichment(ctx context.Context, id string, result enrich.Result, now time.Time) error {
	if err := r.ready(); err != nil {
		return err
	}
	const query = `
UPDATE documents
SET extracted_text = ?, summary = ?, auto_category = ?, keywords = ?, updated_at = ?
WHERE id = ?`
	res, err := r.DB.ExecContext(ctx, query,
		result.ExtractedText,
		result.Summary,
		result.AutoCategory,
		keywordsToJSON(result.Keywords),
		now,
		id,
	)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// Delete removes the row; a second delete of the same id yields
// ErrNotFound.
func (r *SQLiteRepo) Delete(ctx context.Context, id string) error {
	if err := r.ready(); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// Search matches the query as a substring across the searchable
// columns, newest first, capped rows.
func (r *SQLiteRepo) Search(ctx context.Context, query string, filter Filter) ([]Document, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	q, args := buildSearchQuery(query, filter)
	return r.queryDocuments(ctx, q, args)
}

// Statistics aggregates document counts. TotalUsers stays zero here.
func (r *SQLiteRepo) Statistics(ctx context.Context) (Statistics, error) {
	if err := r.ready(); err != nil {
		return Statistics{}, err
	}
	stats := Statistics{ByCategory: map[string]int{}}

	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&stats.TotalDocuments); err != nil {
		return Statistics{}, err
	}

	rows, err := r.DB.QueryContext(ctx, `
SELECT auto_category, COUNT(*)
FROM documents
WHERE auto_category != ''
GROUP BY auto_category`)
	if err != nil {
		return Statistics{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return Statistics{}, err
		}
		stats.ByCategory[category] = count
	}
	if err := rows.Err(); err != nil {
		return Statistics{}, err
	}

	recent, err := r.DB.QueryContext(ctx, `
SELECT id, title, created_at
FROM documents
ORDER BY created_at DESC
LIMIT `+strconv.Itoa(recentCount))
	if err != nil {
		return Statistics{}, err
	}
	defer recent.Close()
	for recent.Next() {
		var doc RecentDocument
		if err := recent.Scan(&doc.ID, &doc.Title, &doc.CreatedAt); err != nil {
			return Statistics{}, err
		}
		stats.RecentDocuments = append(stats.RecentDocuments, doc)
	}
	return stats, recent.Err()
}

func (r *SQLiteRepo) queryDocuments(ctx context.Context, query string, args []any) ([]Document, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var keywords string
	err := row.Scan(
		&doc.ID,
		&doc.Title,
		&doc.Description,
		&doc.FileType,
		&doc.FileData,
		&doc.Category,
		&doc.OwnerName,
		&doc.LandType,
		&doc.Location,
		&doc.ExtractedText,
		&doc.Summary,
		&doc.AutoCategory,
		&keywords,
		&doc.Notes,
		&doc.UploadedBy,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return Document{}, err
	}
	doc.Keywords = keywordsFromJSON(doc.ID, keywords)
	return doc, nil
}

func checkAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func keywordsToJSON(keywords []string) string {
	if len(keywords) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(keywords)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func keywordsFromJSON(docID, raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		telemetry.Warn("documents.keywords_decode_failed", map[string]any{
			"document_id": docID,
			"error":       err.Error(),
		})
		return nil
	}
	return out
}

var _ Repo = (*SQLiteRepo)(nil)
