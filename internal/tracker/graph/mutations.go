package graph

import (
	"context"

	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/domain"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

func (r *Resolver) mutationFields(t *types) graphql.Fields {
	return graphql.Fields{
		"addClient": &graphql.Field{
			Type: t.client,
			Args: graphql.FieldConfigArgument{
				"name":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"phone": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: r.addClient,
		},
		"deleteClient": &graphql.Field{
			Type: t.client,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: r.deleteClient,
		},
		"addProject": &graphql.Field{
			Type: t.project,
			Args: graphql.FieldConfigArgument{
				"name":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"description": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"status": &graphql.ArgumentConfig{
					Type:         t.status,
					DefaultValue: domain.StatusNotStarted.String(),
				},
				"clientId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: r.addProject,
		},
		"deleteProject": &graphql.Field{
			Type: t.project,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: r.deleteProject,
		},
		"updateProject": &graphql.Field{
			Type: t.project,
			Args: graphql.FieldConfigArgument{
				"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				"name":        &graphql.ArgumentConfig{Type: graphql.String},
				"description": &graphql.ArgumentConfig{Type: graphql.String},
				"status":      &graphql.ArgumentConfig{Type: t.status},
			},
			Resolve: r.updateProject,
		},
	}
}

func (r *Resolver) addClient(p graphql.ResolveParams) (interface{}, error) {
	in := &domain.Client{
		Name:  stringArg(p, "name"),
		Email: stringArg(p, "email"),
		Phone: stringArg(p, "phone"),
	}
	c, ok := attempt(r, p, "mutation.addClient", func(ctx context.Context) (*domain.Client, error) {
		return r.clients.Create(ctx, in)
	})
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *Resolver) deleteClient(p graphql.ResolveParams) (interface{}, error) {
	id := stringArg(p, "id")
	c, ok := attempt(r, p, "mutation.deleteClient", func(ctx context.Context) (*domain.Client, error) {
		return r.clients.Delete(ctx, id)
	})
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *Resolver) addProject(p graphql.ResolveParams) (interface{}, error) {
	in := &domain.Project{
		Name:        domain.Ptr(stringArg(p, "name")),
		Description: domain.Ptr(stringArg(p, "description")),
		Status:      r.defaultStatus(),
		ClientID:    stringArg(p, "clientId"),
	}
	// The executor fills in the declared default, so only an explicitly
	// supplied status overrides the configured one.
	if s := stringArg(p, "status"); s != "" && argGiven(p, "status") {
		in.Status = domain.Status(s)
	}

	proj, ok := attempt(r, p, "mutation.addProject", func(ctx context.Context) (*domain.Project, error) {
		return r.projects.Create(ctx, in)
	})
	if !ok {
		return nil, nil
	}
	return proj, nil
}

func (r *Resolver) deleteProject(p graphql.ResolveParams) (interface{}, error) {
	id := stringArg(p, "id")
	proj, ok := attempt(r, p, "mutation.deleteProject", func(ctx context.Context) (*domain.Project, error) {
		return r.projects.Delete(ctx, id)
	})
	if !ok {
		return nil, nil
	}
	return proj, nil
}

// updateProject applies a partial update: omitted arguments keep the stored
// value, a variable sent as null clears name or description, and the
// post-update record is returned. With nothing to change it reads the record.
func (r *Resolver) updateProject(p graphql.ResolveParams) (interface{}, error) {
	id := stringArg(p, "id")
	patch := domain.ProjectPatch{
		Name:        optionalString(p, "name"),
		Description: optionalString(p, "description"),
	}
	if s, ok := p.Args["status"].(string); ok {
		patch.Status = domain.Some(domain.Status(s))
	}

	proj, ok := attempt(r, p, "mutation.updateProject", func(ctx context.Context) (*domain.Project, error) {
		if patch.Empty() {
			return r.projects.GetByID(ctx, id)
		}
		return r.projects.Update(ctx, id, patch)
	})
	if !ok {
		return nil, nil
	}
	return proj, nil
}

func stringArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

// optionalString maps an argument onto the tri-state update field. The
// executor drops null arguments from p.Args, so a variable explicitly bound
// to null in the request is detected from the raw request variables.
func optionalString(p graphql.ResolveParams, name string) domain.Optional[string] {
	if s, ok := p.Args[name].(string); ok {
		return domain.Some(s)
	}
	arg := fieldArgument(p, name)
	if arg == nil {
		return domain.Unset[string]()
	}
	v, isVar := arg.Value.(*ast.Variable)
	if !isVar || v.Name == nil {
		return domain.Unset[string]()
	}
	raw, present := rawVariables(p.Context)[v.Name.Value]
	if present && raw == nil {
		return domain.Null[string]()
	}
	return domain.Unset[string]()
}

// argGiven reports whether the caller wrote the argument in the query, as
// opposed to the executor filling in a default.
func argGiven(p graphql.ResolveParams, name string) bool {
	arg := fieldArgument(p, name)
	if arg == nil {
		return false
	}
	if v, isVar := arg.Value.(*ast.Variable); isVar && v.Name != nil {
		val, ok := p.Info.VariableValues[v.Name.Value]
		return ok && val != nil
	}
	return true
}

func fieldArgument(p graphql.ResolveParams, name string) *ast.Argument {
	for _, field := range p.Info.FieldASTs {
		if field == nil {
			continue
		}
		for _, arg := range field.Arguments {
			if arg != nil && arg.Name != nil && arg.Name.Value == name {
				return arg
			}
		}
	}
	return nil
}
