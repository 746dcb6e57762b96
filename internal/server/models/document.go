package models

import (
	"fmt"
	"time"
)

// Status is the workflow state of a document.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus converts s into a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return st, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

// Metadata holds the optional free-form attributes attached at upload.
type Metadata struct {
	Region     string   `json:"region,omitempty"`
	Template   string   `json:"template,omitempty"`
	Signatures []string `json:"signatures,omitempty"`
	Workflow   string   `json:"workflow,omitempty"`
}

// Document is one uploaded file plus its metadata. FileRef is the
// object-storage key of the payload and is opaque to the engine.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	Status      Status    `json:"status"`
	UploadedBy  string    `json:"uploadedBy"`
	CreatedAt   time.Time `json:"createdAt"`
	Metadata    Metadata  `json:"metadata"`
	FileRef     string    `json:"fileRef"`
}

// AccessGrant gives a non-owner user view and/or edit rights on a document.
type AccessGrant struct {
	DocumentID string `json:"documentId"`
	UserID     string `json:"userId"`
	CanView    bool   `json:"canView"`
	CanEdit    bool   `json:"canEdit"`
}
