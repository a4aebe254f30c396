package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const documentsSchema = `
CREATE TABLE IF NOT EXISTS documents (
    collection TEXT        NOT NULL,
    id         TEXT        NOT NULL,
    seq        BIGSERIAL,
    body       JSONB       NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS documents_collection_seq_idx ON documents (collection, seq);
`

// EnsureSchema creates the documents table when it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, documentsSchema); err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}
	return nil
}

// PostgresCollection stores documents as JSONB rows of a shared documents
// table, partitioned by collection name.
type PostgresCollection[T any, P document[T]] struct {
	db         *sql.DB
	collection string
	notFound   error
}

func NewPostgresCollection[T any, P document[T]](db *sql.DB, collection string, notFound error) *PostgresCollection[T, P] {
	return &PostgresCollection[T, P]{
		db:         db,
		collection: collection,
		notFound:   notFound,
	}
}

func (r *PostgresCollection[T, P]) List(ctx context.Context) ([]T, error) {
	const q = `
SELECT id, body
FROM documents
WHERE collection = $1
ORDER BY seq ASC;
`
	rows, err := r.db.QueryContext(ctx, q, r.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.collection, err)
	}
	defer rows.Close()

	out := make([]T, 0, 16)
	for rows.Next() {
		var (
			id   string
			body []byte
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, err
		}
		doc, err := r.decode(id, body)
		if err != nil {
			return nil, err
		}
		out = append(out, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCollection[T, P]) GetByID(ctx context.Context, id string) (*T, error) {
	const q = `
SELECT id, body
FROM documents
WHERE collection = $1 AND id = $2;
`
	return r.queryOne(ctx, q, r.collection, id)
}

func (r *PostgresCollection[T, P]) Create(ctx context.Context, doc *T) (*T, error) {
	if err := prepare[T, P](doc); err != nil {
		return nil, err
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s document: %w", r.collection, err)
	}

	const q = `
INSERT INTO documents (collection, id, body)
VALUES ($1, $2, $3::jsonb)
RETURNING id, body;
`
	for i := 0; i < 5; i++ {
		created, err := r.queryOne(ctx, q, r.collection, uuid.New().String(), string(body))
		if err == nil {
			return created, nil
		}

		// unique violation on id → retry
		if isUniqueViolation(err) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("failed to generate unique %s id", r.collection)
}

func (r *PostgresCollection[T, P]) Delete(ctx context.Context, id string) (*T, error) {
	const q = `
DELETE FROM documents
WHERE collection = $1 AND id = $2
RETURNING id, body;
`
	return r.queryOne(ctx, q, r.collection, id)
}

func (r *PostgresCollection[T, P]) Update(ctx context.Context, id string, patch Patch[T]) (*T, error) {
	fields, err := json.Marshal(patch.Fields())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s patch: %w", r.collection, err)
	}

	// null patch values remove the key; stored bodies never hold nulls
	const q = `
UPDATE documents
SET body = jsonb_strip_nulls(body || $3::jsonb), updated_at = now()
WHERE collection = $1 AND id = $2
RETURNING id, body;
`
	return r.queryOne(ctx, q, r.collection, id, string(fields))
}

// isUniqueViolation recognises SQLSTATE 23505 from either supported driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func (r *PostgresCollection[T, P]) queryOne(ctx context.Context, q string, args ...any) (*T, error) {
	var (
		id   string
		body []byte
	)
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&id, &body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.notFound
		}
		return nil, fmt.Errorf("%s query: %w", r.collection, err)
	}
	return r.decode(id, body)
}

func (r *PostgresCollection[T, P]) decode(id string, body []byte) (*T, error) {
	var doc T
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s document: %w", r.collection, err)
	}
	P(&doc).SetID(id)
	return &doc, nil
}

// NewPostgresStore returns a Store keeping both collections in one postgres
// documents table. The store owns db and closes it.
func NewPostgresStore(db *sql.DB) *Store {
	return NewStore(
		"postgres",
		NewPostgresCollection[domain.Client](db, ClientsCollection, domain.ErrClientNotFound),
		NewPostgresCollection[domain.Project](db, ProjectsCollection, domain.ErrProjectNotFound),
		db.PingContext,
		db.Close,
	)
}
