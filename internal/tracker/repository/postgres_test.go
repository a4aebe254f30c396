package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPostgres(t *testing.T) (*PostgresCollection[domain.Project, *domain.Project], sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgresCollection[domain.Project](db, ProjectsCollection, domain.ErrProjectNotFound), mock
}

const siteBody = `{"id":"","name":"Site","description":"Build site","status":"NotStarted","clientId":"c1"}`

func TestPostgresCollection_List(t *testing.T) {
	col, mock := setupPostgres(t)

	mock.ExpectQuery(`SELECT id, body\s+FROM documents`).
		WithArgs("projects").
		WillReturnRows(sqlmock.NewRows([]string{"id", "body"}).
			AddRow("p1", siteBody).
			AddRow("p2", `{"name":"Other","status":"Completed","clientId":"c2"}`))

	projects, err := col.List(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "p1", projects[0].ID)
	assert.Equal(t, "Site", domain.Deref(projects[0].Name))
	assert.Equal(t, domain.StatusCompleted, projects[1].Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCollection_ListEmpty(t *testing.T) {
	col, mock := setupPostgres(t)

	mock.ExpectQuery(`SELECT id, body\s+FROM documents`).
		WithArgs("projects").
		WillReturnRows(sqlmock.NewRows([]string{"id", "body"}))

	projects, err := col.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestPostgresCollection_GetByID(t *testing.T) {
	col, mock := setupPostgres(t)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, body\s+FROM documents\s+WHERE collection = \$1 AND id = \$2`).
			WithArgs("projects", "p1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "body"}).AddRow("p1", siteBody))

		p, err := col.GetByID(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, "p1", p.ID)
		assert.Equal(t, "c1", p.ClientID)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, body\s+FROM documents`).
			WithArgs("projects", "nope").
			WillReturnError(sql.ErrNoRows)

		_, err := col.GetByID(context.Background(), "nope")
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})

	t.Run("driver failure is not a not-found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, body\s+FROM documents`).
			WithArgs("projects", "p1").
			WillReturnError(errors.New("connection reset"))

		_, err := col.GetByID(context.Background(), "p1")
		require.Error(t, err)
		assert.False(t, domain.IsNotFound(err))
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCollection_Create(t *testing.T) {
	col, mock := setupPostgres(t)
	in := &domain.Project{Name: domain.Ptr("Site"), Description: domain.Ptr("Build site"), Status: domain.StatusNotStarted, ClientID: "c1"}

	t.Run("retries on id collision", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO documents`).
			WithArgs("projects", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectQuery(`INSERT INTO documents`).
			WithArgs("projects", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "body"}).AddRow("p9", siteBody))

		p, err := col.Create(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, "p9", p.ID)
		assert.Equal(t, "Site", domain.Deref(p.Name))
	})

	t.Run("validation runs before the insert", func(t *testing.T) {
		_, err := col.Create(context.Background(), &domain.Project{Name: domain.Ptr("Orphan")})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestPostgresCollection_Update(t *testing.T) {
	col, mock := setupPostgres(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SET body = jsonb_strip_nulls(body || $3::jsonb)`)).
		WithArgs("projects", "p1", `{"status":"Completed"}`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "body"}).
			AddRow("p1", `{"name":"Site","description":"Build site","status":"Completed","clientId":"c1"}`))

	p, err := col.Update(context.Background(), "p1", domain.ProjectPatch{Status: domain.Some(domain.StatusCompleted)})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, p.Status)
	assert.Equal(t, "Build site", domain.Deref(p.Description))

	// a cleared field is sent as null and stripped from the body
	mock.ExpectQuery(`UPDATE documents`).
		WithArgs("projects", "p1", `{"description":null,"name":""}`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "body"}).
			AddRow("p1", `{"name":"","status":"Completed","clientId":"c1"}`))

	p, err = col.Update(context.Background(), "p1", domain.ProjectPatch{Name: domain.Some(""), Description: domain.Null[string]()})
	require.NoError(t, err)
	require.NotNil(t, p.Name)
	assert.Equal(t, "", *p.Name)
	assert.Nil(t, p.Description)

	mock.ExpectQuery(`UPDATE documents`).
		WithArgs("projects", "nope", `{"name":"x"}`).
		WillReturnError(sql.ErrNoRows)

	_, err = col.Update(context.Background(), "nope", domain.ProjectPatch{Name: domain.Some("x")})
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCollection_Delete(t *testing.T) {
	col, mock := setupPostgres(t)

	mock.ExpectQuery(`DELETE FROM documents`).
		WithArgs("projects", "p1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "body"}).AddRow("p1", siteBody))

	p, err := col.Delete(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Site", domain.Deref(p.Name))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS documents`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureSchema(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}
