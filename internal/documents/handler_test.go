package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"archive-backend/internal/enrich"
	"archive-backend/internal/extract"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pipeline := &enrich.Pipeline{Extractor: &extract.Adapter{OCR: stubOCR{text: "سند ملكية أرض في بغداد"}}}
	svc := NewService(NewMemoryRepo(), staticUserCount(1), pipeline)

	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router, svc
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateDocumentEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/documents", map[string]any{
		"title":     "سند الدار",
		"file_type": "image",
		"file_data": imagePayload(),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success  bool `json:"success"`
		Document struct {
			ID           string   `json:"id"`
			Title        string   `json:"title"`
			AutoCategory string   `json:"auto_category"`
			Keywords     []string `json:"keywords"`
		} `json:"document"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Document.ID == "" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if body.Document.AutoCategory != "سند ملكية" {
		t.Fatalf("unexpected auto category %q", body.Document.AutoCategory)
	}
	if body.Document.Keywords == nil {
		t.Fatal("keywords must serialize as an array, not null")
	}
}

func TestCreateDocumentEndpointRejectsBadInput(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/documents", map[string]any{
		"title":     "",
		"file_type": "image",
		"file_data": imagePayload(),
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetDocumentEndpointNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/documents/ghost", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListOmitsFileData(t *testing.T) {
	router, svc := newTestRouter(t)
	if _, err := svc.Create(context.Background(), CreateInput{
		Title:    "سند",
		FileType: FileTypeImage,
		FileData: imagePayload(),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/documents", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Documents []map[string]any `json:"documents"`
		Count     int              `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 1 || len(body.Documents) != 1 {
		t.Fatalf("unexpected listing %s", rec.Body.String())
	}
	if _, ok := body.Documents[0]["file_data"]; ok {
		t.Fatal("listing must not carry file_data")
	}
}

func TestDeleteDocumentEndpoint(t *testing.T) {
	router, svc := newTestRouter(t)
	doc, err := svc.Create(context.Background(), CreateInput{
		Title:    "سند",
		FileType: FileTypeImage,
		FileData: imagePayload(),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/documents/"+doc.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Message != "تم حذف الوثيقة بنجاح" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/documents/"+doc.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
}

func TestSearchEndpoint(t *testing.T) {
	router, svc := newTestRouter(t)
	if _, err := svc.Create(context.Background(), CreateInput{
		Title:    "سند الدار",
		FileType: FileTypeImage,
		FileData: imagePayload(),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := doJSON(t, router, http.MethodPost, "/api/v1/documents/search", map[string]any{
		"query": "بغداد",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Success bool             `json:"success"`
		Results []map[string]any `json:"results"`
		Count   int              `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Count != 1 {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestStatsEndpoint(t *testing.T) {
	router, svc := newTestRouter(t)
	if _, err := svc.Create(context.Background(), CreateInput{
		Title:    "سند",
		FileType: FileTypeImage,
		FileData: imagePayload(),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Statistics struct {
			TotalDocuments int            `json:"total_documents"`
			TotalUsers     int            `json:"total_users"`
			ByCategory     map[string]int `json:"by_category"`
		} `json:"statistics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Statistics.TotalDocuments != 1 || body.Statistics.TotalUsers != 1 {
		t.Fatalf("unexpected stats %s", rec.Body.String())
	}
	if body.Statistics.ByCategory["سند ملكية"] != 1 {
		t.Fatalf("unexpected categories %v", body.Statistics.ByCategory)
	}
}
