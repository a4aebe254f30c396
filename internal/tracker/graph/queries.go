package graph

import (
	"context"

	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/domain"
	"github.com/graphql-go/graphql"
)

func (r *Resolver) queryFields(t *types) graphql.Fields {
	return graphql.Fields{
		"projects": &graphql.Field{
			Type:    graphql.NewList(t.project),
			Resolve: r.resolveProjects,
		},
		"project": &graphql.Field{
			Type:    t.project,
			Args:    graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: graphql.ID}},
			Resolve: r.resolveProject,
		},
		"clients": &graphql.Field{
			Type:    graphql.NewList(t.client),
			Resolve: r.resolveClients,
		},
		"client": &graphql.Field{
			Type:    t.client,
			Args:    graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: graphql.ID}},
			Resolve: r.resolveClient,
		},
	}
}

func (r *Resolver) resolveProjects(p graphql.ResolveParams) (interface{}, error) {
	items, ok := attempt(r, p, "query.projects", r.projects.List)
	if !ok {
		return nil, nil
	}
	out := make([]*domain.Project, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out, nil
}

func (r *Resolver) resolveProject(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)
	if id == "" {
		return nil, nil
	}
	proj, ok := attempt(r, p, "query.project", func(ctx context.Context) (*domain.Project, error) {
		return r.projects.GetByID(ctx, id)
	})
	if !ok {
		return nil, nil
	}
	return proj, nil
}

func (r *Resolver) resolveClients(p graphql.ResolveParams) (interface{}, error) {
	items, ok := attempt(r, p, "query.clients", r.clients.List)
	if !ok {
		return nil, nil
	}
	out := make([]*domain.Client, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out, nil
}

func (r *Resolver) resolveClient(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)
	if id == "" {
		return nil, nil
	}
	c, ok := attempt(r, p, "query.client", func(ctx context.Context) (*domain.Client, error) {
		return r.clients.GetByID(ctx, id)
	})
	if !ok {
		return nil, nil
	}
	return c, nil
}

// resolveProjectClient resolves the Project.clientId relationship with one
// client lookup per project. A project whose client was deleted resolves to
// null.
func (r *Resolver) resolveProjectClient(p graphql.ResolveParams) (interface{}, error) {
	proj, ok := p.Source.(*domain.Project)
	if !ok || proj == nil || proj.ClientID == "" {
		return nil, nil
	}
	c, ok := attempt(r, p, "project.clientId", func(ctx context.Context) (*domain.Client, error) {
		return r.clients.GetByID(ctx, proj.ClientID)
	})
	if !ok {
		return nil, nil
	}
	return c, nil
}
