package mocks

import (
	"context"
	"sitterhub/infras/otel"
)

type noopOtel struct{}

func (noopOtel) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

// NewOtel returns a tracer for tests that opens scopes without spans.
func NewOtel() otel.Otel {
	return noopOtel{}
}
