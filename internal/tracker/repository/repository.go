package repository

import (
	"context"
	"errors"

	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/domain"
)

const (
	ClientsCollection  = "clients"
	ProjectsCollection = "projects"
)

// Patch is a partial update applied to a stored document. Apply is used by
// backends that rewrite the whole document, Fields by backends that can set
// individual fields server side. A nil field value removes the key.
type Patch[T any] interface {
	Apply(doc *T)
	Fields() map[string]any
}

// document constrains the pointer type of a stored entity.
type document[T any] interface {
	*T
	SetID(id string)
	Validate() error
}

// Collection is the CRUD contract every backend offers for one collection.
// Lookups of a missing id return the collection's not-found error.
type Collection[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, doc *T) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, id string, patch Patch[T]) (*T, error)
}

// ClientRepository provides persistence operations for clients.
type ClientRepository interface {
	List(ctx context.Context) ([]domain.Client, error)
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	Delete(ctx context.Context, id string) (*domain.Client, error)
}

// ProjectRepository provides persistence operations for projects.
type ProjectRepository interface {
	Collection[domain.Project]
}

// Store is the process-wide persistence handle. It is opened once before the
// server starts, shared by all requests and closed on shutdown.
type Store struct {
	Clients  ClientRepository
	Projects ProjectRepository

	driver string
	ping   func(ctx context.Context) error
	close  func() error
}

// NewStore assembles a Store. ping and closeFn may be nil.
func NewStore(driver string, clients ClientRepository, projects ProjectRepository, ping func(ctx context.Context) error, closeFn func() error) *Store {
	return &Store{
		Clients:  clients,
		Projects: projects,
		driver:   driver,
		ping:     ping,
		close:    closeFn,
	}
}

// Driver names the backend, e.g. "redis".
func (s *Store) Driver() string {
	if s == nil {
		return ""
	}
	return s.driver
}

func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Store) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

var errNilDocument = errors.New("document is nil")

func prepare[T any, P document[T]](doc *T) error {
	if doc == nil {
		return errNilDocument
	}
	return P(doc).Validate()
}
