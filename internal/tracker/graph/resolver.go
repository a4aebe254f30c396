package graph

import (
	"context"
	"time"

	"github.com/GoSim-25-26J-441/tracker-gateway/internal/logging"
	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/domain"
	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/repository"
	"github.com/graphql-go/graphql"
)

const DefaultTimeout = 5 * time.Second

// Options tune resolver behavior.
type Options struct {
	// Timeout bounds every persistence call made by a resolver.
	Timeout time.Duration
	// LegacyStatusDefault makes addProject store "Not Started" when no status
	// is given, as the first version of the API did. Off by default: the
	// documented default is the NotStarted enum member.
	LegacyStatusDefault bool
}

// Resolver holds the persistence handles every resolver needs. It carries no
// per-request state and is safe for concurrent use.
type Resolver struct {
	clients  repository.ClientRepository
	projects repository.ProjectRepository
	opts     Options
	metrics  *Metrics
}

func NewResolver(clients repository.ClientRepository, projects repository.ProjectRepository, opts Options) *Resolver {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Resolver{
		clients:  clients,
		projects: projects,
		opts:     opts,
		metrics:  &Metrics{},
	}
}

// Metrics returns the resolver call counters.
func (r *Resolver) Metrics() *Metrics { return r.metrics }

// defaultStatus is the status stored by addProject when none is supplied.
func (r *Resolver) defaultStatus() domain.Status {
	if r.opts.LegacyStatusDefault {
		return domain.StatusLegacyNotStarted
	}
	return domain.StatusNotStarted
}

// attempt runs one persistence call under the resolver timeout. Any failure
// is logged and reported as ok=false so the field resolves to null instead of
// a request error. Not-found is logged at info level only.
func attempt[T any](r *Resolver, p graphql.ResolveParams, operation string, call func(ctx context.Context) (T, error)) (T, bool) {
	ctx := p.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	start := time.Now()
	v, err := call(ctx)
	r.metrics.record(time.Since(start), err)
	if err != nil {
		logger := logging.New(ctx)
		if domain.IsNotFound(err) {
			logger.Infof(operation, "result=absent reason=%q", err.Error())
		} else {
			logger.Error(operation, err)
		}
		var zero T
		return zero, false
	}
	return v, true
}
