package http

import (
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gin-gonic/gin"
)

const Endpoint = "/graphql"

// Register attaches the GraphQL endpoint and, when enabled, the playground.
func (h *Handler) Register(r gin.IRouter) {
	r.POST(Endpoint, h.query)
	r.GET(Endpoint, h.query)

	if h.playground {
		page := gin.WrapF(playground.Handler("Project Tracker", Endpoint))
		r.GET("/", page)
		r.GET("/playground", page)
	}
}
