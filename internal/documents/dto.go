package documents

import "time"

type createDocumentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	FileType    string `json:"file_type"`
	FileData    string `json:"file_data"`
	Category    string `json:"category"`
	OwnerName   string `json:"owner_name"`
	LandType    string `json:"land_type"`
	Location    string `json:"location"`
	Notes       string `json:"notes"`
}

type updateDocumentRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	OwnerName   *string `json:"owner_name"`
	LandType    *string `json:"land_type"`
	Location    *string `json:"location"`
	Notes       *string `json:"notes"`
}

func (req updateDocumentRequest) patch() Patch {
	return Patch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		OwnerName:   req.OwnerName,
		LandType:    req.LandType,
		Location:    req.Location,
		Notes:       req.Notes,
	}
}

type searchRequest struct {
	Query    string `json:"query"`
	Category string `json:"category"`
	LandType string `json:"land_type"`
}

// documentResponse is the full document view, returned when fetching
// or mutating a single document.
type documentResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	FileType      string    `json:"file_type"`
	FileData      string    `json:"file_data"`
	Category      string    `json:"category"`
	OwnerName     string    `json:"owner_name"`
	LandType      string    `json:"land_type"`
	Location      string    `json:"location"`
	ExtractedText string    `json:"extracted_text"`
	Summary       string    `json:"summary"`
	AutoCategory  string    `json:"auto_category"`
	Keywords      []string  `json:"keywords"`
	Notes         string    `json:"notes"`
	UploadedBy    string    `json:"uploaded_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// documentListItem omits file_data to keep listings and search results
// small; the payload is fetched per document.
type documentListItem struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	FileType      string    `json:"file_type"`
	Category      string    `json:"category"`
	OwnerName     string    `json:"owner_name"`
	LandType      string    `json:"land_type"`
	Location      string    `json:"location"`
	ExtractedText string    `json:"extracted_text"`
	Summary       string    `json:"summary"`
	AutoCategory  string    `json:"auto_category"`
	Keywords      []string  `json:"keywords"`
	Notes         string    `json:"notes"`
	UploadedBy    string    `json:"uploaded_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type recentDocumentResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type statisticsResponse struct {
	TotalDocuments  int                      `json:"total_documents"`
	TotalUsers      int                      `json:"total_users"`
	ByCategory      map[string]int           `json:"by_category"`
	RecentDocuments []recentDocumentResponse `json:"recent_documents"`
}

func toDocumentResponse(doc Document) documentResponse {
	return documentResponse{
		ID:            doc.ID,
		Title:         doc.Title,
		Description:   doc.Description,
		FileType:      doc.FileType,
		FileData:      doc.FileData,
		Category:      doc.Category,
		OwnerName:     doc.OwnerName,
		LandType:      doc.LandType,
		Location:      doc.Location,
		ExtractedText: doc.ExtractedText,
		Summary:       doc.Summary,
		AutoCategory:  doc.AutoCategory,
		Keywords:      keywordsOrEmpty(doc.Keywords),
		Notes:         doc.Notes,
		UploadedBy:    doc.UploadedBy,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

func toDocumentListItem(doc Document) documentListItem {
	return documentListItem{
		ID:            doc.ID,
		Title:         doc.Title,
		Description:   doc.Description,
		FileType:      doc.FileType,
		Category:      doc.Category,
		OwnerName:     doc.OwnerName,
		LandType:      doc.LandType,
		Location:      doc.Location,
		ExtractedText: doc.ExtractedText,
		Summary:       doc.Summary,
		AutoCategory:  doc.AutoCategory,
		Keywords:      keywordsOrEmpty(doc.Keywords),
		Notes:         doc.Notes,
		UploadedBy:    doc.UploadedBy,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

func toStatisticsResponse(stats Statistics) statisticsResponse {
	out := statisticsResponse{
		TotalDocuments:  stats.TotalDocuments,
		TotalUsers:      stats.TotalUsers,
		ByCategory:      stats.ByCategory,
		RecentDocuments: make([]recentDocumentResponse, 0, len(stats.RecentDocuments)),
	}
	if out.ByCategory == nil {
		out.ByCategory = map[string]int{}
	}
	for _, doc := range stats.RecentDocuments {
		out.RecentDocuments = append(out.RecentDocuments, recentDocumentResponse{
			ID:        doc.ID,
			Title:     doc.Title,
			CreatedAt: doc.CreatedAt,
		})
	}
	return out
}

func keywordsOrEmpty(keywords []string) []string {
	if keywords == nil {
		return []string{}
	}
	return keywords
}
