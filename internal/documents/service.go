package documents

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"archive-backend/internal/enrich"
	"archive-backend/internal/shared/telemetry"
)

// UserCounter supplies the user total for statistics.
type UserCounter interface {
	Count(ctx context.Context) (int, error)
}

// CreateInput carries the fields for archiving a new document.
type CreateInput struct {
	Title       string
	Description string
	FileType    string
	FileData    string
	Category    string
	OwnerName   string
	LandType    string
	Location    string
	Notes       string
	UploadedBy  string
}

func (in CreateInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&in.FileType, validation.Required,
			validation.In(FileTypeImage, FileTypePDF, FileTypeWord)),
		validation.Field(&in.FileData, validation.Required),
	)
}

type Service struct {
	Repo     Repo
	Users    UserCounter
	Pipeline *enrich.Pipeline
}

func NewService(repo Repo, users UserCounter, pipeline *enrich.Pipeline) *Service {
	return &Service{Repo: repo, Users: users, Pipeline: pipeline}
}

// Create runs the enrichment pipeline over the artifact and persists
// the document with its derived fields in one step. Entity extraction
// fills owner, location and land type only when the uploader left them
// blank.
func (s *Service) Create(ctx context.Context, in CreateInput) (Document, error) {
	if s == nil || s.Repo == nil || s.Pipeline == nil {
		return Document{}, errors.New("documents service not configured")
	}
	in.Title = strings.TrimSpace(in.Title)
	if err := in.validate(); err != nil {
		return Document{}, errors.Join(ErrInvalidInput, err)
	}

	res := s.Pipeline.Process(ctx, in.FileData, in.FileType, in.Title)

	now := time.Now().UTC()
	doc := Document{
		ID:            uuid.NewString(),
		Title:         in.Title,
		Description:   in.Description,
		FileType:      in.FileType,
		FileData:      in.FileData,
		Category:      in.Category,
		OwnerName:     in.OwnerName,
		LandType:      in.LandType,
		Location:      in.Location,
		ExtractedText: res.ExtractedText,
		Summary:       res.Summary,
		AutoCategory:  res.AutoCategory,
		Keywords:      res.Keywords,
		Notes:         in.Notes,
		UploadedBy:    in.UploadedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if doc.OwnerName == "" {
		doc.OwnerName = res.OwnerName
	}
	if doc.Location == "" {
		doc.Location = res.Location
	}
	if doc.LandType == "" {
		doc.LandType = res.LandType
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}
	telemetry.Info("documents.created", map[string]any{
		"document_id":   doc.ID,
		"file_type":     doc.FileType,
		"auto_category": doc.AutoCategory,
	})
	return doc, nil
}

// GetByID returns one document.
func (s *Service) GetByID(ctx context.Context, id string) (Document, error) {
	if s == nil || s.Repo == nil {
		return Document{}, errors.New("documents service not configured")
	}
	if strings.TrimSpace(id) == "" {
		return Document{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns documents matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter Filter) ([]Document, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("documents service not configured")
	}
	return s.Repo.List(ctx, filter)
}

// Update applies a partial update and returns the stored document.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Document, error) {
	if s == nil || s.Repo == nil {
		return Document{}, errors.New("documents service not configured")
	}
	if patch.IsZero() {
		return Document{}, errors.Join(ErrInvalidInput, errors.New("empty update"))
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return Document{}, errors.Join(ErrInvalidInput, errors.New("title cannot be empty"))
	}
	if err := s.Repo.Update(ctx, id, patch, time.Now().UTC()); err != nil {
		return Document{}, err
	}
	return s.Repo.GetByID(ctx, id)
}

// Delete removes the document. Deleting a missing id is an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s == nil || s.Repo == nil {
		return errors.New("documents service not configured")
	}
	return s.Repo.Delete(ctx, id)
}

// Search matches the query across the searchable fields. An empty
// query matches every document, subject to the result cap.
func (s *Service) Search(ctx context.Context, query string, filter Filter) ([]Document, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("documents service not configured")
	}
	return s.Repo.Search(ctx, strings.TrimSpace(query), filter)
}

// Statistics aggregates archive-wide counts, including the user total.
func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	if s == nil || s.Repo == nil {
		return Statistics{}, errors.New("documents service not configured")
	}
	stats, err := s.Repo.Statistics(ctx)
	if err != nil {
		return Statistics{}, err
	}
	if s.Users != nil {
		total, err := s.Users.Count(ctx)
		if err != nil {
			return Statistics{}, err
		}
		stats.TotalUsers = total
	}
	return stats, nil
}

// Reprocess re-runs the enrichment pipeline over the stored artifact
// and rewrites the derived fields. User-edited fields are untouched.
func (s *Service) Reprocess(ctx context.Context, id string) (Document, error) {
	if s == nil || s.Repo == nil || s.Pipeline == nil {
		return Document{}, errors.New("documents service not configured")
	}
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Document{}, err
	}
	res := s.Pipeline.Process(ctx, doc.FileData, doc.FileType, doc.Title)
	if err := s.Repo.UpdateEnrichment(ctx, id, res, time.Now().UTC()); err != nil {
		return Document{}, err
	}
	telemetry.Info("documents.reprocessed", map[string]any{
		"document_id":   id,
		"auto_category": res.AutoCategory,
	})
	return s.Repo.GetByID(ctx, id)
}
