// Package services implements the document and catalog operations on top of
// the repositories, the access evaluator, the workflow machine and the
// completeness aggregator.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/dealdocs/internal/common"
	"github.com/dmitrijs2005/dealdocs/internal/dbx"
	"github.com/dmitrijs2005/dealdocs/internal/server/access"
	"github.com/dmitrijs2005/dealdocs/internal/server/models"
	"github.com/dmitrijs2005/dealdocs/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/dealdocs/internal/server/storage"
	"github.com/dmitrijs2005/dealdocs/internal/server/workflow"
	"github.com/google/uuid"
)

// Presigner issues object-storage URLs for document payloads.
type Presigner interface {
	PresignUpload(ctx context.Context, userID string) (key string, url string, err error)
	PresignDownload(ctx context.Context, key string) (string, error)
}

// CreateDocumentInput is the caller-supplied part of a new document.
type CreateDocumentInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Metadata    models.Metadata `json:"metadata"`
	FileRef     string          `json:"fileRef"`
}

// ShareInput names the grantee and the rights to give them.
type ShareInput struct {
	UserID  string `json:"userId"`
	CanView bool   `json:"canView"`
	CanEdit bool   `json:"canEdit"`
}

type DocumentService struct {
	db          *sql.DB
	catalogDB   *sql.DB
	repomanager repomanager.RepositoryManager
	presigner   Presigner
	access      *access.Evaluator
	machine     *workflow.Machine
}

func NewDocumentService(db, catalogDB *sql.DB, rm repomanager.RepositoryManager, presigner Presigner) *DocumentService {
	evaluator := access.NewEvaluator(rm.Grants(db))
	return &DocumentService{
		db:          db,
		catalogDB:   catalogDB,
		repomanager: rm,
		presigner:   presigner,
		access:      evaluator,
		machine:     workflow.NewMachine(rm.Documents(db), evaluator),
	}
}

// CreateDocument validates the (category, type) pair against the catalog
// and stores a draft document together with the uploader's full grant.
// Nothing is written when validation fails.
func (s *DocumentService) CreateDocument(ctx context.Context, in CreateDocumentInput, user models.User) (*models.Document, error) {
	if user.ID == "" {
		return nil, common.ErrorUnauthorized
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	in.Type = strings.TrimSpace(in.Type)
	in.FileRef = strings.TrimSpace(in.FileRef)

	switch {
	case in.Title == "":
		return nil, validationError("title is required")
	case in.Category == "":
		return nil, validationError("category is required")
	case in.Type == "":
		return nil, validationError("type is required")
	case in.FileRef == "":
		return nil, validationError("file reference is required")
	case !storage.OwnsKey(user.ID, in.FileRef):
		return nil, validationError("file reference must be a key issued to the uploader")
	}

	if err := s.checkPair(ctx, in.Category, in.Type); err != nil {
		return nil, err
	}

	doc := &models.Document{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Type:        in.Type,
		Status:      models.StatusDraft,
		UploadedBy:  user.ID,
		Metadata:    in.Metadata,
		FileRef:     in.FileRef,
	}

	var created *models.Document
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		created, err = s.repomanager.Documents(tx).Create(ctx, doc)
		if err != nil {
			return err
		}
		return s.repomanager.Grants(tx).Set(ctx, &models.AccessGrant{
			DocumentID: created.ID,
			UserID:     user.ID,
			CanView:    true,
			CanEdit:    true,
		})
	})
	if err != nil {
		return nil, storeFailure("create document", err)
	}

	return created, nil
}

func (s *DocumentService) checkPair(ctx context.Context, category, docType string) error {
	subs, err := s.repomanager.Catalog(s.catalogDB).ListSubcategories(ctx, category)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		return fmt.Errorf("%w: %w: unknown category %q", common.ErrorValidation, common.ErrorCatalogNotFound, category)
	}
	if !slices.Contains(subs, docType) {
		return validationError("type %q is not defined for category %q", docType, category)
	}
	return nil
}

// ListDocuments returns the documents the user uploaded or holds a grant on.
func (s *DocumentService) ListDocuments(ctx context.Context, user models.User) ([]*models.Document, error) {
	docs, err := s.repomanager.Documents(s.db).SelectForUser(ctx, user.ID)
	if err != nil {
		return nil, storeFailure("list documents", err)
	}
	if docs == nil {
		docs = []*models.Document{}
	}
	return docs, nil
}

// GetDocument returns the document if the user may view it.
func (s *DocumentService) GetDocument(ctx context.Context, id string, user models.User) (*models.Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	doc, err := s.repomanager.Documents(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure("get document", err)
	}

	if err := s.access.RequireView(ctx, doc, user); err != nil {
		return nil, storeFailure("check access", err)
	}
	return doc, nil
}

// TransitionStatus moves the document to target along the workflow graph.
func (s *DocumentService) TransitionStatus(ctx context.Context, id string, target string, user models.User) (*models.Document, error) {
	status, err := models.ParseStatus(strings.TrimSpace(target))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	doc, err := s.machine.Transition(ctx, id, status, user)
	if err != nil {
		return nil, storeFailure("transition", err)
	}
	return doc, nil
}

// ShareDocument sets the grantee's rights on a document. Only the uploader
// may share, and the uploader's own access cannot be changed.
func (s *DocumentService) ShareDocument(ctx context.Context, id string, in ShareInput, user models.User) (*models.AccessGrant, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	if in.UserID == "" {
		return nil, validationError("grantee is required")
	}
	if in.CanEdit && !in.CanView {
		return nil, validationError("edit access requires view access")
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	docs := s.repomanager.Documents(s.db)
	doc, err := docs.GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure("get document", err)
	}

	if user.ID == "" || doc.UploadedBy != user.ID {
		return nil, common.ErrorAccessDenied
	}
	if in.UserID == doc.UploadedBy {
		return nil, validationError("uploader access cannot be changed")
	}

	grant := &models.AccessGrant{
		DocumentID: doc.ID,
		UserID:     in.UserID,
		CanView:    in.CanView,
		CanEdit:    in.CanEdit,
	}
	if err := s.repomanager.Grants(s.db).Set(ctx, grant); err != nil {
		return nil, storeFailure("set grant", err)
	}
	return grant, nil
}

// PresignUpload allocates a storage key for a new payload and returns it
// with a presigned PUT URL. The key is then passed as the file reference
// of CreateDocument.
func (s *DocumentService) PresignUpload(ctx context.Context, user models.User) (string, string, error) {
	if user.ID == "" {
		return "", "", common.ErrorUnauthorized
	}
	key, url, err := s.presigner.PresignUpload(ctx, user.ID)
	if err != nil {
		return "", "", storeFailure("presign upload", err)
	}
	return key, url, nil
}

// DownloadURL returns a presigned GET URL for the document's payload if the
// user may view the document.
func (s *DocumentService) DownloadURL(ctx context.Context, id string, user models.User) (string, error) {
	doc, err := s.GetDocument(ctx, id, user)
	if err != nil {
		return "", err
	}

	url, err := s.presigner.PresignDownload(ctx, doc.FileRef)
	if err != nil {
		return "", storeFailure("presign download", err)
	}
	return url, nil
}
