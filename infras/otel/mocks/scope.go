package mocks

import "sitterhub/infras/otel"

// noopScope records nothing.
type noopScope struct{}

func (noopScope) AddEvent(_ string) {}
func (noopScope) End() {}
func (noopScope) SetAttribute(_ string, _ any) {}
func (noopScope) SetAttributes(_ map[string]any) {}
func (noopScope) TraceError(_ error) {}
func (noopScope) TraceIfError(_ error) {}

func NewScope() otel.Scope {
	return noopScope{}
}
