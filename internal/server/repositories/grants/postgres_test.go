package grants

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/dealdocs/internal/common"
	"github.com/dmitrijs2005/dealdocs/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

const upsert = `INSERT INTO document_access .* ON CONFLICT \(document_id, user_id\)\s+DO UPDATE SET can_view = EXCLUDED.can_view, can_edit = EXCLUDED.can_edit`

func TestSet_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(upsert).
		WithArgs("d1", "u2", true, false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Set(context.Background(), &models.AccessGrant{DocumentID: "d1", UserID: "u2", CanView: true})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_ExecError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(upsert).WillReturnError(errors.New("db is down"))

	err := repo.Set(context.Background(), &models.AccessGrant{DocumentID: "d1", UserID: "u2"})
	assert.ErrorIs(t, err, common.ErrorStoreUnavailable)
	assert.Regexp(t, `db error: .*db is down`, err.Error())
}

func TestSet_RowsAffectedError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(upsert).WillReturnResult(sqlmock.NewErrorResult(errors.New("rows-err")))

	err := repo.Set(context.Background(), &models.AccessGrant{DocumentID: "d1", UserID: "u2"})
	assert.Regexp(t, `rows affected error: .*rows-err`, err.Error())
}

func TestSet_UnexpectedRowsAffected(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(upsert).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Set(context.Background(), &models.AccessGrant{DocumentID: "d1", UserID: "u2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected rows affected: 0")
}

func TestGet_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT document_id, user_id, can_view, can_edit FROM document_access`).
		WithArgs("d1", "u2").
		WillReturnRows(sqlmock.NewRows([]string{"document_id", "user_id", "can_view", "can_edit"}).
			AddRow("d1", "u2", true, false))

	g, err := repo.Get(context.Background(), "d1", "u2")
	require.NoError(t, err)
	assert.Equal(t, &models.AccessGrant{DocumentID: "d1", UserID: "u2", CanView: true, CanEdit: false}, g)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM document_access`).
		WithArgs("d1", "u3").
		WillReturnRows(sqlmock.NewRows([]string{"document_id", "user_id", "can_view", "can_edit"}))

	_, err := repo.Get(context.Background(), "d1", "u3")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGet_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM document_access`).WillReturnError(errors.New("boom"))

	_, err := repo.Get(context.Background(), "d1", "u3")
	assert.ErrorIs(t, err, common.ErrorStoreUnavailable)
}
