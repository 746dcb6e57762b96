package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/dealdocs/internal/common"
	"github.com/dmitrijs2005/dealdocs/internal/dbx"
	"github.com/dmitrijs2005/dealdocs/internal/server/models"
	"github.com/dmitrijs2005/dealdocs/internal/server/repositories/catalog"
	"github.com/dmitrijs2005/dealdocs/internal/server/repositories/documents"
	"github.com/dmitrijs2005/dealdocs/internal/server/repositories/grants"
	"github.com/dmitrijs2005/dealdocs/internal/server/repositories/repomanager"
)

// -------- test fakes --------

type memDocs struct {
	documents.Repository
	mu        sync.Mutex
	byID      map[string]*models.Document
	grants    *memGrants
	createErr error
	selectErr error
}

func (m *memDocs) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	cp := *doc
	cp.CreatedAt = time.Date(2026, 1, 1, 0, 0, len(m.byID), 0, time.UTC)
	m.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memDocs) GetByID(ctx context.Context, id string) (*models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memDocs) SelectForUser(ctx context.Context, userID string) ([]*models.Document, error) {
	if m.selectErr != nil {
		return nil, m.selectErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Document
	for _, d := range m.byID {
		if d.UploadedBy == userID || m.grants.has(d.ID, userID) {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memDocs) UpdateStatus(ctx context.Context, id string, from, to models.Status) (*models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[id]
	if !ok || d.Status != from {
		return nil, common.ErrorNotFound
	}
	d.Status = to
	cp := *d
	return &cp, nil
}

type grantKey struct{ doc, user string }

type memGrants struct {
	grants.Repository
	mu     sync.Mutex
	byKey  map[grantKey]models.AccessGrant
	setErr error
}

func (m *memGrants) Set(ctx context.Context, g *models.AccessGrant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.byKey[grantKey{g.DocumentID, g.UserID}] = *g
	return nil
}

func (m *memGrants) Get(ctx context.Context, documentID, userID string) (*models.AccessGrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.byKey[grantKey{documentID, userID}]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &g, nil
}

func (m *memGrants) has(documentID, userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byKey[grantKey{documentID, userID}]
	return ok
}

type fakeCatalog struct {
	catalog.Reader
	rules map[string][]string
	err   error
}

func (f *fakeCatalog) ListCategories(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []string{}
	for c := range f.rules {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeCatalog) ListSubcategories(ctx context.Context, category string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	subs := append([]string{}, f.rules[category]...)
	sort.Strings(subs)
	return subs, nil
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	d *memDocs
	g *memGrants
	c *fakeCatalog

	mu       sync.Mutex
	docsSeen []dbx.DBTX
}

func (m *fakeRepoManager) Documents(db dbx.DBTX) documents.Repository {
	m.mu.Lock()
	m.docsSeen = append(m.docsSeen, db)
	m.mu.Unlock()
	return m.d
}
func (m *fakeRepoManager) Grants(db dbx.DBTX) grants.Repository { return m.g }
func (m *fakeRepoManager) Catalog(db dbx.DBTX) catalog.Reader   { return m.c }

func (m *fakeRepoManager) sawTx() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, db := range m.docsSeen {
		if _, ok := db.(*sql.Tx); ok {
			return true
		}
	}
	return false
}

type fakePresigner struct {
	putErr, getErr error
	gotUser        string
	gotKey         string
}

func (f *fakePresigner) PresignUpload(ctx context.Context, userID string) (string, string, error) {
	f.gotUser = userID
	if f.putErr != nil {
		return "", "", f.putErr
	}
	return "documents/" + userID + "/k1", "https://s3.local/put?sig", nil
}

func (f *fakePresigner) PresignDownload(ctx context.Context, key string) (string, error) {
	f.gotKey = key
	if f.getErr != nil {
		return "", f.getErr
	}
	return "https://s3.local/" + key + "?sig", nil
}

// -------- helpers --------

var errBoom = errors.New("boom")

func defaultRules() map[string][]string {
	return map[string][]string{
		"kyc":      {"passport", "proof_of_address"},
		"contract": {"purchase_agreement"},
	}
}

func newFakeManager() *fakeRepoManager {
	g := &memGrants{byKey: map[grantKey]models.AccessGrant{}}
	return &fakeRepoManager{
		d: &memDocs{byID: map[string]*models.Document{}, grants: g},
		g: g,
		c: &fakeCatalog{rules: defaultRules()},
	}
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}
