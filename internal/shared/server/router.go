package server

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"archive-backend/internal/documents"
	"archive-backend/internal/enrich"
	"archive-backend/internal/extract"
	"archive-backend/internal/ocr"
	"archive-backend/internal/shared/auth"
	"archive-backend/internal/shared/config"
	"archive-backend/internal/shared/metrics"
	"archive-backend/internal/shared/server/middleware"
	"archive-backend/internal/shared/server/respond"
	"archive-backend/internal/shared/storage/db"
	"archive-backend/internal/shared/telemetry"
	"archive-backend/internal/users"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	var sqlDB *sql.DB
	dbConn, err := db.Connect(context.Background(), cfg.DBPath, db.DefaultOptions())
	if err != nil {
		telemetry.Error("db.connect_failed", map[string]any{"error": err.Error(), "path": cfg.DBPath})
	} else {
		if err := db.RunMigrations(context.Background(), dbConn); err != nil {
			telemetry.Error("db.migrate_failed", map[string]any{"error": err.Error()})
			dbConn = nil
		}
		sqlDB = dbConn
	}

	var recognizer ocr.Recognizer = ocr.Noop{}
	if cfg.OCRBaseURL != "" {
		client, err := ocr.NewClient(cfg.OCRBaseURL, cfg.OCRTimeout)
		if err != nil {
			telemetry.Warn("ocr.client_unavailable", map[string]any{"error": err.Error()})
		} else {
			recognizer = client
		}
	}
	pipeline := &enrich.Pipeline{Extractor: &extract.Adapter{OCR: recognizer}}

	var userRepo users.Repo
	var docRepo documents.Repo
	if sqlDB != nil {
		userRepo = &users.SQLiteRepo{DB: sqlDB}
		docRepo = &documents.SQLiteRepo{DB: sqlDB}
	} else {
		telemetry.Warn("storage.memory_fallback", nil)
		userRepo = users.NewMemoryRepo()
		docRepo = documents.NewMemoryRepo()
	}

	signer := auth.NewSigner(cfg.JWTSecret)
	userSvc := users.NewService(userRepo, cfg.DefaultRole)
	userHandler := users.NewHandler(userSvc, signer)
	docSvc := documents.NewService(docRepo, userSvc, pipeline)
	docHandler := documents.NewHandler(docSvc)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())
	userHandler.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(
		middleware.Auth(signer),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"ENRICH": {Rate: 0.5, Burst: 5},
			},
			GroupFor: enrichGroupFor,
		}),
	)
	userHandler.RegisterRoutes(protected)
	docHandler.RegisterRoutes(protected)

	return r
}

// enrichGroupFor throttles only document ingestion, where every request
// runs the full enrichment pipeline.
func enrichGroupFor(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/documents" {
		return "ENRICH"
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
