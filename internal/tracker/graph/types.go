package graph

import (
	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/domain"
	"github.com/graphql-go/graphql"
)

// types are the object and enum definitions shared by queries and mutations.
type types struct {
	client  *graphql.Object
	project *graphql.Object
	status  *graphql.Enum
}

func (r *Resolver) buildTypes() *types {
	t := &types{}

	values := graphql.EnumValueConfigMap{}
	for _, s := range domain.Statuses {
		values[s.String()] = &graphql.EnumValueConfig{Value: s.String()}
	}
	t.status = graphql.NewEnum(graphql.EnumConfig{
		Name:   "Status",
		Values: values,
	})

	// Output fields are nullable; only the store guarantees values. A stored
	// empty string renders as "", a missing value as null.
	t.client = graphql.NewObject(graphql.ObjectConfig{
		Name: "Client",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.ID, Resolve: clientField(func(c *domain.Client) string { return c.ID })},
			"name":  &graphql.Field{Type: graphql.String, Resolve: clientField(func(c *domain.Client) string { return c.Name })},
			"email": &graphql.Field{Type: graphql.String, Resolve: clientField(func(c *domain.Client) string { return c.Email })},
			"phone": &graphql.Field{Type: graphql.String, Resolve: clientField(func(c *domain.Client) string { return c.Phone })},
		},
	})

	// status stays a String on output so values stored with the legacy
	// "Not Started" default still render.
	t.project = graphql.NewObject(graphql.ObjectConfig{
		Name: "Project",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.ID, Resolve: projectField(func(p *domain.Project) *string { return &p.ID })},
			"name":        &graphql.Field{Type: graphql.String, Resolve: projectField(func(p *domain.Project) *string { return p.Name })},
			"description": &graphql.Field{Type: graphql.String, Resolve: projectField(func(p *domain.Project) *string { return p.Description })},
			"status":      &graphql.Field{Type: graphql.String, Resolve: projectField(projectStatus)},
			// clientId is the relationship to the owning client, not the
			// stored scalar; see resolveProjectClient.
			"clientId": &graphql.Field{Type: t.client, Resolve: r.resolveProjectClient},
		},
	})

	return t
}

func clientField(get func(*domain.Client) string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		c, ok := p.Source.(*domain.Client)
		if !ok || c == nil {
			return nil, nil
		}
		return get(c), nil
	}
}

func projectField(get func(*domain.Project) *string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		proj, ok := p.Source.(*domain.Project)
		if !ok || proj == nil {
			return nil, nil
		}
		if v := get(proj); v != nil {
			return *v, nil
		}
		return nil, nil
	}
}

// projectStatus is absent only for documents written without a status.
func projectStatus(p *domain.Project) *string {
	if p.Status == "" {
		return nil
	}
	s := p.Status.String()
	return &s
}
