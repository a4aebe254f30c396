package http

import "github.com/graphql-go/graphql"

// Handler serves the GraphQL endpoint for clients and projects.
type Handler struct {
	schema     graphql.Schema
	playground bool
}

func New(schema graphql.Schema, playground bool) *Handler {
	return &Handler{schema: schema, playground: playground}
}

type errorBody struct {
	Errors []errorItem `json:"errors"`
}

type errorItem struct {
	Message string `json:"message"`
}

func errorResponse(msg string) errorBody {
	return errorBody{Errors: []errorItem{{Message: msg}}}
}
