package grpc

import "github.com/dmitrijs2005/dealdocs/internal/server/models"

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type CreateDocumentRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Metadata    models.Metadata `json:"metadata"`
	FileRef     string          `json:"fileRef"`
}

type DocumentResponse struct {
	Document *models.Document `json:"document"`
}

type ListDocumentsRequest struct{}

type ListDocumentsResponse struct {
	Documents []*models.Document `json:"documents"`
}

type GetDocumentRequest struct {
	ID string `json:"id"`
}

type TransitionStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ShareDocumentRequest struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	CanView bool   `json:"canView"`
	CanEdit bool   `json:"canEdit"`
}

type ShareDocumentResponse struct {
	Grant *models.AccessGrant `json:"grant"`
}

type PresignUploadRequest struct{}

type PresignUploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type DownloadURLRequest struct {
	ID string `json:"id"`
}

type DownloadURLResponse struct {
	URL string `json:"url"`
}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []string `json:"categories"`
}

type ListSubcategoriesRequest struct {
	Category string `json:"category"`
}

type ListSubcategoriesResponse struct {
	Category      string   `json:"category"`
	Subcategories []string `json:"subcategories"`
}

type StatusReportRequest struct{}

// CategoryReport is one category of the completeness report with its
// derived label.
type CategoryReport struct {
	Category      string                     `json:"category"`
	Status        string                     `json:"status"`
	Subcategories []models.SubcategoryStatus `json:"subcategories"`
}

type StatusReportResponse struct {
	Categories []CategoryReport `json:"categories"`
}

func toCategoryReports(in []models.CategoryStatus) []CategoryReport {
	out := make([]CategoryReport, 0, len(in))
	for _, c := range in {
		out = append(out, CategoryReport{
			Category:      c.Category,
			Status:        c.Label(),
			Subcategories: c.Subcategories,
		})
	}
	return out
}
