package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/dealdocs/internal/common"
	"github.com/dmitrijs2005/dealdocs/internal/logging"
	"github.com/dmitrijs2005/dealdocs/internal/server/auth"
	"github.com/dmitrijs2005/dealdocs/internal/server/models"
	"github.com/dmitrijs2005/dealdocs/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// -------- fakes --------

type fakeDocuments struct {
	DocumentService
	gotUser   models.User
	gotInput  services.CreateDocumentInput
	gotID     string
	gotTarget string
	gotShare  services.ShareInput
	deadline  bool
	err       error
}

var testDoc = &models.Document{ID: "d1", Title: "Passport", Category: "kyc", Type: "passport", Status: models.StatusDraft, UploadedBy: "u1"}

func (f *fakeDocuments) CreateDocument(ctx context.Context, in services.CreateDocumentInput, user models.User) (*models.Document, error) {
	f.gotUser, f.gotInput = user, in
	_, f.deadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	return testDoc, nil
}

func (f *fakeDocuments) ListDocuments(ctx context.Context, user models.User) ([]*models.Document, error) {
	f.gotUser = user
	if f.err != nil {
		return nil, f.err
	}
	return []*models.Document{testDoc}, nil
}

func (f *fakeDocuments) GetDocument(ctx context.Context, id string, user models.User) (*models.Document, error) {
	f.gotUser, f.gotID = user, id
	if f.err != nil {
		return nil, f.err
	}
	return testDoc, nil
}

func (f *fakeDocuments) TransitionStatus(ctx context.Context, id string, target string, user models.User) (*models.Document, error) {
	f.gotUser, f.gotID, f.gotTarget = user, id, target
	if f.err != nil {
		return nil, f.err
	}
	d := *testDoc
	d.Status = models.Status(target)
	return &d, nil
}

func (f *fakeDocuments) ShareDocument(ctx context.Context, id string, in services.ShareInput, user models.User) (*models.AccessGrant, error) {
	f.gotUser, f.gotID, f.gotShare = user, id, in
	if f.err != nil {
		return nil, f.err
	}
	return &models.AccessGrant{DocumentID: id, UserID: in.UserID, CanView: in.CanView, CanEdit: in.CanEdit}, nil
}

func (f *fakeDocuments) PresignUpload(ctx context.Context, user models.User) (string, string, error) {
	f.gotUser = user
	if f.err != nil {
		return "", "", f.err
	}
	return "documents/u1/k", "https://s3/put", nil
}

func (f *fakeDocuments) DownloadURL(ctx context.Context, id string, user models.User) (string, error) {
	f.gotUser, f.gotID = user, id
	if f.err != nil {
		return "", f.err
	}
	return "https://s3/get/" + id, nil
}

type fakeCatalog struct {
	CatalogService
	gotCategory string
	report      []models.CategoryStatus
	err         error
}

func (f *fakeCatalog) ListCategories(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []string{"contract", "kyc"}, nil
}

func (f *fakeCatalog) ListSubcategories(ctx context.Context, category string) ([]string, error) {
	f.gotCategory = category
	if f.err != nil {
		return nil, f.err
	}
	return []string{"passport", "proof_of_address"}, nil
}

func (f *fakeCatalog) StatusReport(ctx context.Context, user models.User) ([]models.CategoryStatus, error) {
	return f.report, f.err
}

// -------- helpers --------

const testSecret = "test-secret"

func setupTestRouter(t *testing.T) (*Router, *fakeDocuments, *fakeCatalog) {
	t.Helper()
	docs := &fakeDocuments{}
	cat := &fakeCatalog{}
	r := NewRouter(":0", nopLogger{}, docs, cat, testSecret, time.Second)
	gin.SetMode(gin.TestMode)
	return r, docs, cat
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, models.RoleSeller, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func do(t *testing.T, r *Router, method, path, authz string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	return w
}

// -------- tests --------

func TestHealthz_IsPublic(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	w := do(t, r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK"}`, w.Body.String())
}

func TestAuth(t *testing.T) {
	r, docs, _ := setupTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/documents", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"missing token"}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/documents", "Bearer nope", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid token"}`, w.Body.String())

	expired, err := auth.GenerateToken("u1", models.RoleAdmin, []byte(testSecret), -time.Second)
	require.NoError(t, err)
	w = do(t, r, http.MethodGet, "/api/documents", "Bearer "+expired, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"token expired"}`, w.Body.String())

	tok, err := auth.GenerateToken("u7", models.RoleLegal, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	req.Header.Set(common.AccessTokenHeaderName, tok)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.User{ID: "u7", Role: models.RoleLegal}, docs.gotUser)
}

func TestCreateDocument(t *testing.T) {
	r, docs, _ := setupTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/documents", bearer(t, "u1"), map[string]any{
		"title": "Passport", "category": "kyc", "type": "passport",
		"fileRef": "documents/u1/k", "metadata": map[string]any{"region": "EU"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var got models.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "d1", got.ID)
	assert.Equal(t, models.StatusDraft, got.Status)

	assert.Equal(t, services.CreateDocumentInput{
		Title: "Passport", Category: "kyc", Type: "passport",
		FileRef: "documents/u1/k", Metadata: models.Metadata{Region: "EU"},
	}, docs.gotInput)
	assert.Equal(t, "u1", docs.gotUser.ID)
	assert.True(t, docs.deadline)
}

func TestCreateDocument_BadBody(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/documents", bytes.NewBufferString("{"))
	req.Header.Set("Authorization", bearer(t, "u1"))
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentRoutes(t *testing.T) {
	r, docs, _ := setupTestRouter(t)
	authz := bearer(t, "u2")

	w := do(t, r, http.MethodGet, "/api/documents", authz, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = do(t, r, http.MethodGet, "/api/documents/d1", authz, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "d1", docs.gotID)

	w = do(t, r, http.MethodPatch, "/api/documents/d1/status", authz, map[string]string{"status": "pending"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pending", docs.gotTarget)

	w = do(t, r, http.MethodPost, "/api/documents/d1/access", authz, map[string]any{"userId": "u3", "canView": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.ShareInput{UserID: "u3", CanView: true}, docs.gotShare)

	w = do(t, r, http.MethodGet, "/api/documents/d1/download", authz, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"url":"https://s3/get/d1"}`, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/uploads", authz, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"key":"documents/u1/k","url":"https://s3/put"}`, w.Body.String())
}

func TestCatalogRoutes(t *testing.T) {
	r, _, cat := setupTestRouter(t)
	authz := bearer(t, "u1")
	cat.report = []models.CategoryStatus{
		{Category: "A", Subcategories: []models.SubcategoryStatus{{Name: "x", Uploaded: true}, {Name: "y"}}},
		{Category: "B", Subcategories: []models.SubcategoryStatus{{Name: "z", Uploaded: true}}},
	}

	w := do(t, r, http.MethodGet, "/api/upload-docs/categories", authz, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["contract","kyc"]`, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/upload-docs/types/kyc", authz, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["passport","proof_of_address"]`, w.Body.String())
	assert.Equal(t, "kyc", cat.gotCategory)

	w = do(t, r, http.MethodGet, "/api/documents/status", authz, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"category":"A","status":"Submitted","subcategories":[{"name":"x","uploaded":true},{"name":"y","uploaded":false}]},
		{"category":"B","status":"Approved","subcategories":[{"name":"z","uploaded":true}]}
	]`, w.Body.String())
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{common.ErrorNotFound, http.StatusNotFound},
		{common.ErrorCatalogNotFound, http.StatusNotFound},
		{common.ErrorAccessDenied, http.StatusForbidden},
		{common.ErrorValidation, http.StatusBadRequest},
		{fmt.Errorf("%w: %w", common.ErrorValidation, common.ErrorCatalogNotFound), http.StatusBadRequest},
		{common.ErrorInvalidTransition, http.StatusConflict},
		{common.ErrorStoreUnavailable, http.StatusServiceUnavailable},
		{common.ErrorCatalogUnavailable, http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusServiceUnavailable},
		{common.ErrorUnauthorized, http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			r, docs, _ := setupTestRouter(t)
			docs.err = tt.err

			w := do(t, r, http.MethodGet, "/api/documents/d1", bearer(t, "u1"), nil)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestErrorMapping_HidesStoreDetail(t *testing.T) {
	r, _, cat := setupTestRouter(t)
	cat.err = fmt.Errorf("list: %w: dial tcp 10.0.0.1:5432", common.ErrorCatalogUnavailable)

	w := do(t, r, http.MethodGet, "/api/upload-docs/categories", bearer(t, "u1"), nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"store unavailable"}`, w.Body.String())
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	r := NewRouter("127.0.0.1:0", nopLogger{}, &fakeDocuments{}, &fakeCatalog{}, testSecret, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after context cancel")
	}
}

func TestRun_BadAddress(t *testing.T) {
	r := NewRouter("127.0.0.1:99999", nopLogger{}, &fakeDocuments{}, &fakeCatalog{}, testSecret, 0)
	assert.Error(t, r.Run(context.Background()))
}
