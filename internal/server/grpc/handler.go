package grpc

import (
	"context"

	"github.com/dmitrijs2005/dealdocs/internal/server/auth"
	"github.com/dmitrijs2005/dealdocs/internal/server/models"
	"github.com/dmitrijs2005/dealdocs/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) user(ctx context.Context) (models.User, error) {
	u, ok := auth.UserFromContext(ctx)
	if !ok {
		return models.User{}, status.Error(codes.Unauthenticated, "unauthenticated")
	}
	return u, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *PingRequest) (*PingResponse, error) {
	return &PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*DocumentResponse, error) {
	user, err := s.user(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.documents.CreateDocument(ctx, services.CreateDocumentInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Type:        req.Type,
		Metadata:    req.Metadata,
		FileRef:     req.FileRef,
	}, user)
	if err != nil {
		return nil, s.toStatus(ctx, CreateDocumentFullMethodName, err)
	}

	s.logger.Info(ctx, "Document created", "id", doc.ID, "user", user.ID, "category", doc.Category, "type", doc.Type)
	return &DocumentResponse{Document: doc}, nil
}

func (s *GRPCServer) ListDocuments(ctx context.Context, req *ListDocumentsRequest) (*ListDocumentsResponse, error) {
	user, err := s.user(ctx)
	if err != nil {
		return nil, err
	}

	docs, err := s.documents.ListDocuments(ctx, user)
	if err != nil {
		return nil, s.toStatus(ctx, ListDocumentsFullMethodName, err)
	}
	return &ListDocumentsResponse{Documents: docs}, nil
}

func (s *GRPCServer) GetDocument(ctx context.Context, req *GetDocumentRequest) (*DocumentResponse, error) {
	user, err := s.user(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.documents.GetDocument(ctx, req.ID, user)
	if err != nil {
		return nil, s.toStatus(ctx, GetDocumentFullMethodName, err)
	}
	return &DocumentResponse{Document: doc}, nil
}

func (s *GRPCServer) TransitionStatus(ctx context.Context, req *TransitionStatusRequest) (*DocumentResponse, error) {
	user, err := s.user(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.documents.TransitionStatus(ctx, req.ID, req.Status, user)
	if err != nil {
		return nil, s.toStatus(ctx, TransitionStatusFullMethodName, err)
	}

	s.logger.Info(ctx, "Status changed", "id", doc.ID, "user", user.ID, "status", doc.Status)
	return &DocumentResponse{Document: doc}, nil
}

func (s *GRPCServer) ShareDocument(ctx context.Context, req *ShareDocumentRequest) (*ShareDocumentResponse, error) {
	user, err := s.user(ctx)
	if err != nil {
		return nil, err
	}

	grant, err := s.documents.ShareDocument(ctx, req.ID, services.ShareInput{
		UserID:  req.UserID,
		CanView: req.CanView,
		CanEdit: req.CanEdit,
	}, user)
	if err != nil {
		return nil, s.toStatus(ctx, ShareDocumentFullMethodName, err)
	}
	return &ShareDocumentResponse{Grant: grant}, nil
}

func (s *GRPCServer) PresignUpload(ctx context.Context, req *PresignUploadRequest) (*PresignUploadResponse, error) {
	user, err := s.user(ctx)
	if err != nil {
		return nil, err
	}

	key, url, err := s.documents.PresignUpload(ctx, user)
	if err != nil {
		return nil, s.toStatus(ctx, PresignUploadFullMethodName, err)
	}
	return &PresignUploadResponse{Key: key, URL: url}, nil
}

func (s *GRPCServer) DownloadURL(ctx context.Context, req *DownloadURLRequest) (*DownloadURLResponse, error) {
	user, err := s.user(ctx)
	if err != nil {
		return nil, err
	}

	url, err := s.documents.DownloadURL(ctx, req.ID, user)
	if err != nil {
		return nil, s.toStatus(ctx, DownloadURLFullMethodName, err)
	}
	return &DownloadURLResponse{URL: url}, nil
}

func (s *GRPCServer) ListCategories(ctx context.Context, req *ListCategoriesRequest) (*ListCategoriesResponse, error) {
	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, ListCategoriesFullMethodName, err)
	}
	return &ListCategoriesResponse{Categories: categories}, nil
}

func (s *GRPCServer) ListSubcategories(ctx context.Context, req *ListSubcategoriesRequest) (*ListSubcategoriesResponse, error) {
	subs, err := s.catalog.ListSubcategories(ctx, req.Category)
	if err != nil {
		return nil, s.toStatus(ctx, ListSubcategoriesFullMethodName, err)
	}
	return &ListSubcategoriesResponse{Category: req.Category, Subcategories: subs}, nil
}

func (s *GRPCServer) StatusReport(ctx context.Context, req *StatusReportRequest) (*StatusReportResponse, error) {
	user, err := s.user(ctx)
	if err != nil {
		return nil, err
	}

	report, err := s.catalog.StatusReport(ctx, user)
	if err != nil {
		return nil, s.toStatus(ctx, StatusReportFullMethodName, err)
	}
	return &StatusReportResponse{Categories: toCategoryReports(report)}, nil
}
