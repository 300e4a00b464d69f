// Copyright © 2025 The srcscope authors

// Package profiler annotates analysis passes with trace spans.  Annotators
// are optional; a run without one pays nothing.
package profiler

import "context"

// Annotator opens a span around one unit of analysis work.  The returned
// context carries the span and the returned func closes it.
type Annotator interface {
	Start(ctx context.Context, name string, file string) (context.Context, func())
}

// Noop is an Annotator that does nothing.
type Noop struct{}

func (Noop) Start(ctx context.Context, name, file string) (context.Context, func()) {
	return ctx, func() {}
}
