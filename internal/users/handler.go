package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"archive-backend/internal/shared/auth"
	"archive-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc    *Service
	Signer *auth.Signer
}

func NewHandler(svc *Service, signer *auth.Signer) *Handler {
	return &Handler{Svc: svc, Signer: signer}
}

// RegisterPublicRoutes mounts the routes that do not require a token.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
}

// RegisterRoutes mounts the authenticated routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.list)
}

func (h *Handler) register(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}
	user, err := h.Svc.Create(c.Request.Context(), CreateInput{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		case errors.Is(err, ErrUsernameTaken):
			respond.Error(c, http.StatusConflict, "username_taken", "username already taken", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create user", nil)
		}
		return
	}
	respond.Created(c, gin.H{
		"success": true,
		"user":    toUserResponse(user),
	})
}

func (h *Handler) login(c *gin.Context) {
	if h.Svc == nil || h.Signer == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}
	user, err := h.Svc.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to authenticate", nil)
		return
	}
	token, err := h.Signer.Sign(user.ID, user.Username, user.Role)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}
	respond.OK(c, gin.H{
		"success": true,
		"token":   token,
		"user":    toUserResponse(user),
	})
}

func (h *Handler) list(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	all, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list users", nil)
		return
	}
	out := make([]userResponse, 0, len(all))
	for _, u := range all {
		out = append(out, toUserResponse(u))
	}
	respond.OK(c, gin.H{
		"success": true,
		"users":   out,
		"count":   len(out),
	})
}
