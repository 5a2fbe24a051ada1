package documents

import "time"

// File types accepted for an archived artifact.
const (
	FileTypeImage = "image"
	FileTypePDF   = "pdf"
	FileTypeWord  = "word"
)

// Document is an archived artifact with its user metadata and the
// fields derived by the enrichment pipeline.
type Document struct {
	ID          string
	Title       string
	Description string
	FileType    string
	FileData    string
	Category    string
	OwnerName   string
	LandType    string
	Location    string

	// Derived by the pipeline; only reprocessing rewrites them.
	ExtractedText string
	Summary       string
	AutoCategory  string
	Keywords      []string

	Notes      string
	UploadedBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Patch enumerates the user-editable fields. A nil field is left
// untouched; enrichment outputs are not reachable through a Patch.
type Patch struct {
	Title       *string
	Description *string
	Category    *string
	OwnerName   *string
	LandType    *string
	Location    *string
	Notes       *string
}

// IsZero reports whether the patch carries no fields.
func (p Patch) IsZero() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.Category == nil &&
		p.OwnerName == nil &&
		p.LandType == nil &&
		p.Location == nil &&
		p.Notes == nil
}

// Filter restricts list and search results. Zero values mean no
// restriction; Limit 0 means unbounded for listings.
type Filter struct {
	Category string
	LandType string
	Limit    int
}

// RecentDocument is the trimmed view used in statistics.
type RecentDocument struct {
	ID        string
	Title     string
	CreatedAt time.Time
}

// Statistics aggregates archive-wide counts.
type Statistics struct {
	TotalDocuments  int
	TotalUsers      int
	ByCategory      map[string]int
	RecentDocuments []RecentDocument
}
