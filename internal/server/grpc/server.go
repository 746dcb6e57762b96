package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/dealdocs/internal/logging"
	"github.com/dmitrijs2005/dealdocs/internal/server/models"
	"github.com/dmitrijs2005/dealdocs/internal/server/services"
	"google.golang.org/grpc"
)

// DocumentService is the document API the server exposes.
type DocumentService interface {
	CreateDocument(ctx context.Context, in services.CreateDocumentInput, user models.User) (*models.Document, error)
	ListDocuments(ctx context.Context, user models.User) ([]*models.Document, error)
	GetDocument(ctx context.Context, id string, user models.User) (*models.Document, error)
	TransitionStatus(ctx context.Context, id string, target string, user models.User) (*models.Document, error)
	ShareDocument(ctx context.Context, id string, in services.ShareInput, user models.User) (*models.AccessGrant, error)
	PresignUpload(ctx context.Context, user models.User) (string, string, error)
	DownloadURL(ctx context.Context, id string, user models.User) (string, error)
}

// CatalogService is the catalog and completeness API the server exposes.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]string, error)
	ListSubcategories(ctx context.Context, category string) ([]string, error)
	StatusReport(ctx context.Context, user models.User) ([]models.CategoryStatus, error)
}

type GRPCServer struct {
	address      string
	documents    DocumentService
	catalog      CatalogService
	logger       logging.Logger
	jwtSecret    []byte
	storeTimeout time.Duration
}

func NewGRPCServer(a string, l logging.Logger, ds DocumentService, cs CatalogService, secretKey string, storeTimeout time.Duration) *GRPCServer {
	return &GRPCServer{
		address:      a,
		logger:       l.With("module", "grpc_server"),
		documents:    ds,
		catalog:      cs,
		jwtSecret:    []byte(secretKey),
		storeTimeout: storeTimeout,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.loggingInterceptor,
		s.deadlineInterceptor,
		s.accessTokenInterceptor,
	))
	RegisterDocumentServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
