package documents

import (
	"context"
	"time"

	"archive-backend/internal/enrich"
)

// Repo defines persistence operations for documents. Statistics leaves
// TotalUsers at zero; the service fills it from the users store.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, id string) (Document, error)
	List(ctx context.Context, filter Filter) ([]Document, error)
	Update(ctx context.Context, id string, patch Patch, now time.Time) error
	UpdateEnrichment(ctx context.Context, id string, res enrich.Result, now time.Time) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string, filter Filter) ([]Document, error)
	Statistics(ctx context.Context) (Statistics, error)
}
