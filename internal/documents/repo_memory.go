package documents

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"archive-backend/internal/enrich"
)

// MemoryRepo is an in-memory implementation of Repo. It mirrors the
// store semantics closely enough for tests and degraded startup.
type MemoryRepo struct {
	mu   sync.RWMutex
	docs []Document
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc.Keywords = append([]string(nil), doc.Keywords...)
	r.docs = append(r.docs, doc)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.docs {
		if r.docs[i].ID == id {
			return r.docs[i], nil
		}
	}
	return Document{}, ErrNotFound
}

func (r *MemoryRepo) List(ctx context.Context, filter Filter) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Document
	for i := range r.docs {
		if matchesFilter(r.docs[i], filter) {
			out = append(out, r.docs[i])
		}
	}
	sortNewestFirst(out)
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, id string, patch Patch, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if patch.IsZero() {
		return ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.docs {
		if r.docs[i].ID != id {
			continue
		}
		applyPatch(&r.docs[i], patch)
		r.docs[i].UpdatedAt = now
		return nil
	}
	return ErrNotFound
}

func (r *MemoryRepo) UpdateEnrichment(ctx context.Context, id string, result enrich.Result, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.docs {
		if r.docs[i].ID != id {
			continue
		}
		r.docs[i].ExtractedText = result.ExtractedText
		r.docs[i].Summary = result.Summary
		r.docs[i].AutoCategory = result.AutoCategory
		r.docs[i].Keywords = append([]string(nil), result.Keywords...)
		r.docs[i].UpdatedAt = now
		return nil
	}
	return ErrNotFound
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.docs {
		if r.docs[i].ID == id {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) Search(ctx context.Context, query string, filter Filter) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(query)
	var out []Document
	for i := range r.docs {
		doc := r.docs[i]
		if !matchesFilter(doc, filter) {
			continue
		}
		haystacks := []string{
			doc.Title, doc.Description, doc.ExtractedText,
			doc.OwnerName, doc.Location, strings.Join(doc.Keywords, " "),
		}
		for _, field := range haystacks {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, doc)
				break
			}
		}
	}
	sortNewestFirst(out)
	if len(out) > searchMaxRows {
		out = out[:searchMaxRows]
	}
	return out, nil
}

func (r *MemoryRepo) Statistics(ctx context.Context) (Statistics, error) {
	if err := ctx.Err(); err != nil {
		return Statistics{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Statistics{
		TotalDocuments: len(r.docs),
		ByCategory:     map[string]int{},
	}
	sorted := make([]Document, len(r.docs))
	copy(sorted, r.docs)
	sortNewestFirst(sorted)
	for i := range sorted {
		if sorted[i].AutoCategory != "" {
			stats.ByCategory[sorted[i].AutoCategory]++
		}
		if i < recentCount {
			stats.RecentDocuments = append(stats.RecentDocuments, RecentDocument{
				ID:        sorted[i].ID,
				Title:     sorted[i].Title,
				CreatedAt: sorted[i].CreatedAt,
			})
		}
	}
	return stats, nil
}

func matchesFilter(doc Document, filter Filter) bool {
	if filter.Category != "" && doc.Category != filter.Category {
		return false
	}
	if filter.LandType != "" && doc.LandType != filter.LandType {
		return false
	}
	return true
}

func applyPatch(doc *Document, patch Patch) {
	if patch.Title != nil {
		doc.Title = *patch.Title
	}
	if patch.Description != nil {
		doc.Description = *patch.Description
	}
	if patch.Category != nil {
		doc.Category = *patch.Category
	}
	if patch.OwnerName != nil {
		doc.OwnerName = *patch.OwnerName
	}
	if patch.LandType != nil {
		doc.LandType = *patch.LandType
	}
	if patch.Location != nil {
		doc.Location = *patch.Location
	}
	if patch.Notes != nil {
		doc.Notes = *patch.Notes
	}
}

func sortNewestFirst(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
}

var _ Repo = (*MemoryRepo)(nil)
