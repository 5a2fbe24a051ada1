package documents

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"archive-backend/internal/shared/server/middleware"
	"archive-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes mounts the document routes onto an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/documents", h.list)
	rg.POST("/documents", h.create)
	rg.GET("/documents/:id", h.get)
	rg.PUT("/documents/:id", h.update)
	rg.DELETE("/documents/:id", h.remove)
	rg.POST("/documents/search", h.search)
	rg.GET("/stats", h.stats)
}

func (h *Handler) create(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}
	doc, err := h.Svc.Create(c.Request.Context(), CreateInput{
		Title:       req.Title,
		Description: req.Description,
		FileType:    req.FileType,
		FileData:    req.FileData,
		Category:    req.Category,
		OwnerName:   req.OwnerName,
		LandType:    req.LandType,
		Location:    req.Location,
		Notes:       req.Notes,
		UploadedBy:  middleware.UserIDFromContext(c),
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create document", nil)
		return
	}
	c.Set("documentId", doc.ID)
	respond.Created(c, gin.H{
		"success":  true,
		"document": toDocumentResponse(doc),
	})
}

func (h *Handler) list(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	filter := Filter{
		Category: c.Query("category"),
		LandType: c.Query("land_type"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer", nil)
			return
		}
		filter.Limit = limit
	}
	docs, err := h.Svc.List(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents", nil)
		return
	}
	items := make([]documentListItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, toDocumentListItem(doc))
	}
	respond.OK(c, gin.H{
		"success":   true,
		"documents": items,
		"count":     len(items),
	})
}

func (h *Handler) get(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	doc, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load document", nil)
		return
	}
	respond.OK(c, gin.H{
		"success":  true,
		"document": toDocumentResponse(doc),
	})
}

func (h *Handler) update(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	var req updateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}
	doc, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.patch())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update document", nil)
		}
		return
	}
	respond.OK(c, gin.H{
		"success":  true,
		"document": toDocumentResponse(doc),
	})
}

func (h *Handler) remove(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete document", nil)
		return
	}
	respond.OK(c, gin.H{
		"success": true,
		"message": "تم حذف الوثيقة بنجاح",
	})
}

func (h *Handler) search(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}
	docs, err := h.Svc.Search(c.Request.Context(), req.Query, Filter{
		Category: req.Category,
		LandType: req.LandType,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "search failed", nil)
		return
	}
	items := make([]documentListItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, toDocumentListItem(doc))
	}
	respond.OK(c, gin.H{
		"success": true,
		"results": items,
		"count":   len(items),
	})
}

func (h *Handler) stats(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	stats, err := h.Svc.Statistics(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute statistics", nil)
		return
	}
	respond.OK(c, gin.H{
		"success":    true,
		"statistics": toStatisticsResponse(stats),
	})
}
