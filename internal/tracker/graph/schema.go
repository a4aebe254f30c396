package graph

import (
	"context"
	"fmt"

	"github.com/graphql-go/graphql"
)

// NewSchema binds the query and mutation resolvers of r into one executable
// schema. Build it once at startup and share it between requests.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	t := r.buildTypes()

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "RootQueryType",
			Fields: r.queryFields(t),
		}),
		Mutation: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Mutation",
			Fields: r.mutationFields(t),
		}),
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("build schema: %w", err)
	}
	return schema, nil
}

// Request is one GraphQL operation as received from a client.
type Request struct {
	Query         string                 `json:"query" form:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName" form:"operationName"`
}

// Execute runs req against schema. Argument contract violations come back in
// Result.Errors with no data; persistence failures never do.
func Execute(ctx context.Context, schema graphql.Schema, req Request) *graphql.Result {
	if ctx == nil {
		ctx = context.Background()
	}
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        context.WithValue(ctx, rawVariablesKey{}, req.Variables),
	})
}

type rawVariablesKey struct{}

// rawVariables returns the variables exactly as the client sent them. Unlike
// the executor's coerced copy, a key present with a nil value means the
// client sent an explicit null.
func rawVariables(ctx context.Context) map[string]interface{} {
	if ctx == nil {
		return nil
	}
	vars, _ := ctx.Value(rawVariablesKey{}).(map[string]interface{})
	return vars
}
