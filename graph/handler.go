package graph

import (
	"net/http"

	"sick-fits/dto"
	"sick-fits/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
)

type Request struct {
	Query         string                 `json:"query" binding:"required"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

type Handler struct {
	schema graphql.Schema
}

func NewHandler(r *Resolver) (*Handler, error) {
	schema, err := NewSchema(r)
	if err != nil {
		return nil, err
	}
	return &Handler{schema: schema}, nil
}

// Serve executes one GraphQL request. Resolvers see the user resolved by
// middlewares.CurrentUser and may set or clear the session cookie.
func (h *Handler) Serve(ctx *gin.Context) {
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"message": dto.Describe(err)}}})
		return
	}

	state := &requestState{
		writer: ctx.Writer,
		user:   middlewares.UserFrom(ctx),
		token:  middlewares.TokenFrom(ctx),
	}
	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        withState(ctx.Request.Context(), state),
	})
	ctx.JSON(http.StatusOK, result)
}
