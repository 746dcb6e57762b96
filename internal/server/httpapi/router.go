// Package httpapi serves the document API over HTTP/JSON with gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/dealdocs/internal/logging"
	"github.com/dmitrijs2005/dealdocs/internal/server/models"
	"github.com/dmitrijs2005/dealdocs/internal/server/services"
	"github.com/gin-gonic/gin"
)

// DocumentService is the document API the router exposes.
type DocumentService interface {
	CreateDocument(ctx context.Context, in services.CreateDocumentInput, user models.User) (*models.Document, error)
	ListDocuments(ctx context.Context, user models.User) ([]*models.Document, error)
	GetDocument(ctx context.Context, id string, user models.User) (*models.Document, error)
	TransitionStatus(ctx context.Context, id string, target string, user models.User) (*models.Document, error)
	ShareDocument(ctx context.Context, id string, in services.ShareInput, user models.User) (*models.AccessGrant, error)
	PresignUpload(ctx context.Context, user models.User) (string, string, error)
	DownloadURL(ctx context.Context, id string, user models.User) (string, error)
}

// CatalogService is the catalog and completeness API the router exposes.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]string, error)
	ListSubcategories(ctx context.Context, category string) ([]string, error)
	StatusReport(ctx context.Context, user models.User) ([]models.CategoryStatus, error)
}

const shutdownTimeout = 5 * time.Second

type Router struct {
	engine       *gin.Engine
	address      string
	logger       logging.Logger
	documents    DocumentService
	catalog      CatalogService
	jwtSecret    []byte
	storeTimeout time.Duration
}

func NewRouter(a string, l logging.Logger, ds DocumentService, cs CatalogService, secretKey string, storeTimeout time.Duration) *Router {
	gin.SetMode(gin.ReleaseMode)

	r := &Router{
		engine:       gin.New(),
		address:      a,
		logger:       l.With("module", "http_server"),
		documents:    ds,
		catalog:      cs,
		jwtSecret:    []byte(secretKey),
		storeTimeout: storeTimeout,
	}

	r.engine.Use(gin.Recovery(), r.requestLogger(), r.deadline())
	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	r.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	api := r.engine.Group("/api")
	api.Use(r.requireAuth())
	{
		api.POST("/documents", r.createDocument)
		api.GET("/documents", r.listDocuments)
		api.GET("/documents/status", r.statusReport)
		api.GET("/documents/:id", r.getDocument)
		api.PATCH("/documents/:id/status", r.transitionStatus)
		api.POST("/documents/:id/access", r.shareDocument)
		api.GET("/documents/:id/download", r.downloadURL)
		api.POST("/uploads", r.presignUpload)
		api.GET("/upload-docs/categories", r.listCategories)
		api.GET("/upload-docs/types/:category", r.listSubcategories)
	}
}

// Handler returns the router as an http.Handler.
func (r *Router) Handler() http.Handler {
	return r.engine
}

// Run serves HTTP on the configured address until ctx is done, then shuts
// the server down gracefully.
func (r *Router) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              r.address,
		Handler:           r.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		r.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			r.logger.Error(ctx, "HTTP shutdown error", "error", err.Error())
		}
	}()

	r.logger.Info(ctx, "Starting HTTP server", "address", r.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
