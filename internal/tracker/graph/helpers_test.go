package graph

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/domain"
	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/repository"
	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/require"
)

func newTestSchema(t *testing.T, clients repository.ClientRepository, projects repository.ProjectRepository, opts Options) (graphql.Schema, *Resolver) {
	t.Helper()
	r := NewResolver(clients, projects, opts)
	schema, err := NewSchema(r)
	require.NoError(t, err)
	return schema, r
}

func newMemorySchema(t *testing.T, opts Options) graphql.Schema {
	t.Helper()
	store := repository.NewMemoryStore()
	schema, _ := newTestSchema(t, store.Clients, store.Projects, opts)
	return schema
}

// run executes query and returns its data re-decoded from JSON, failing the
// test on any request error.
func run(t *testing.T, schema graphql.Schema, query string, vars map[string]interface{}) map[string]interface{} {
	t.Helper()
	res := Execute(context.Background(), schema, Request{Query: query, Variables: vars})
	require.False(t, res.HasErrors(), "unexpected errors: %v", res.Errors)
	return decode(t, res.Data)
}

func decode(t *testing.T, data interface{}) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func field(data map[string]interface{}, name string) map[string]interface{} {
	m, _ := data[name].(map[string]interface{})
	return m
}

var errBackend = errors.New("connection refused")

// brokenStore fails every call with errBackend.
type brokenStore[T any] struct{}

func (brokenStore[T]) List(context.Context) ([]T, error) { return nil, errBackend }
func (brokenStore[T]) GetByID(context.Context, string) (*T, error) { return nil, errBackend }
func (brokenStore[T]) Create(context.Context, *T) (*T, error) { return nil, errBackend }
func (brokenStore[T]) Delete(context.Context, string) (*T, error) { return nil, errBackend }
func (brokenStore[T]) Update(context.Context, string, repository.Patch[T]) (*T, error) {
	return nil, errBackend
}

// stalledStore blocks every call until the context is done.
type stalledStore[T any] struct{}

func (stalledStore[T]) List(ctx context.Context) ([]T, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (stalledStore[T]) GetByID(ctx context.Context, _ string) (*T, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (stalledStore[T]) Create(ctx context.Context, _ *T) (*T, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (stalledStore[T]) Delete(ctx context.Context, _ string) (*T, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (stalledStore[T]) Update(ctx context.Context, _ string, _ repository.Patch[T]) (*T, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

var (
	_ repository.ClientRepository  = brokenStore[domain.Client]{}
	_ repository.ProjectRepository = brokenStore[domain.Project]{}
	_ repository.ClientRepository  = stalledStore[domain.Client]{}
	_ repository.ProjectRepository = stalledStore[domain.Project]{}
)
