package graph

import (
	"context"
	"net/http"

	"sick-fits/models"
)

// requestState is what resolvers know about the HTTP exchange they run in.
type requestState struct {
	writer http.ResponseWriter
	user   *models.User
	token  string
}

type stateKey struct{}

func withState(ctx context.Context, st *requestState) context.Context {
	return context.WithValue(ctx, stateKey{}, st)
}

func stateFrom(ctx context.Context) *requestState {
	if st, ok := ctx.Value(stateKey{}).(*requestState); ok {
		return st
	}
	return &requestState{}
}
