// Copyright © 2025 The srcscope authors

package profiler

import (
	"context"

	"github.com/golang-collections/collections/stack"
	"go.opencensus.io/trace"
)

type ocAnnotator struct {
	contexts *stack.Stack
}

// NewOpenCensusAnnotator annotates analysis with opencensus spans.  Spans
// nest: a Start before the previous span's close func runs opens a child.
func NewOpenCensusAnnotator() Annotator {
	return &ocAnnotator{contexts: stack.New()}
}

func (p *ocAnnotator) Start(ctx context.Context, name, file string) (context.Context, func()) {
	p.contexts.Push(ctx)
	ctx, span := trace.StartSpan(ctx, name)
	if file != "" {
		span.AddAttributes(trace.StringAttribute("code.filepath", file))
	}
	return ctx, func() {
		span.End()
		p.contexts.Pop()
	}
}
