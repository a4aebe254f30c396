package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/graph"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
)

func (h *Handler) query(c *gin.Context) {
	var req graph.Request
	switch c.Request.Method {
	case http.MethodPost:
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid body"))
			return
		}
	case http.MethodGet:
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
		if raw := c.Query("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				c.JSON(http.StatusBadRequest, errorResponse("variables are invalid JSON"))
				return
			}
		}
		if isMutation(req.Query, req.OperationName) {
			c.Header("Allow", http.MethodPost)
			c.JSON(http.StatusMethodNotAllowed, errorResponse("can only perform a mutation operation from a POST request"))
			return
		}
	}

	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, errorResponse("must provide query string"))
		return
	}

	result := graph.Execute(c.Request.Context(), h.schema, req)

	// parse and validation errors produce no data at all
	status := http.StatusOK
	if result.HasErrors() && result.Data == nil {
		status = http.StatusBadRequest
	}
	c.JSON(status, result)
}

// isMutation reports whether the selected operation of query is a mutation.
// Unparseable queries report false and are rejected by the executor.
func isMutation(query, operationName string) bool {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return false
	}
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if operationName != "" && (op.Name == nil || op.Name.Value != operationName) {
			continue
		}
		return op.Operation == ast.OperationTypeMutation
	}
	return false
}
