package mocks

import (
	"agenda/infras/otel"
	"context"
	"sync"
)

// Span is what a Recorder keeps of one scope.
type Span struct {
	Scope      string
	Name       string
	Events     []string
	Attributes map[string]any
	Err        error
	Ended      bool
}

// Recorder is an otel.Otel that keeps every span in memory instead of
// exporting it.
type Recorder struct {
	mu    sync.Mutex
	spans []*Span
}

func (r *Recorder) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, otel.Scope) {
	span := &Span{Scope: scopeName, Name: spanName, Attributes: map[string]any{}}

	r.mu.Lock()
	r.spans = append(r.spans, span)
	r.mu.Unlock()

	return ctx, &recordingScope{recorder: r, span: span}
}

// Spans returns copies of the spans recorded so far, in start order.
func (r *Recorder) Spans() []Span {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Span, 0, len(r.spans))
	for _, span := range r.spans {
		cp := *span
		cp.Events = append([]string(nil), span.Events...)

		cp.Attributes = make(map[string]any, len(span.Attributes))
		for k, v := range span.Attributes {
			cp.Attributes[k] = v
		}

		out = append(out, cp)
	}

	return out
}

// Span returns the first recorded span with the given name.
func (r *Recorder) Span(name string) (Span, bool) {
	for _, span := range r.Spans() {
		if span.Name == name {
			return span, true
		}
	}

	return Span{}, false
}

// NewOtel returns an empty Recorder.
func NewOtel() *Recorder {
	return &Recorder{}
}

type recordingScope struct {
	recorder *Recorder
	span     *Span
}

func (s *recordingScope) End() {
	s.recorder.mu.Lock()
	s.span.Ended = true
	s.recorder.mu.Unlock()
}

func (s *recordingScope) TraceError(err error) {
	s.recorder.mu.Lock()
	s.span.Err = err
	s.recorder.mu.Unlock()
}

func (s *recordingScope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *recordingScope) AddEvent(name string) {
	s.recorder.mu.Lock()
	s.span.Events = append(s.span.Events, name)
	s.recorder.mu.Unlock()
}

func (s *recordingScope) SetAttribute(key string, value any) {
	s.recorder.mu.Lock()
	s.span.Attributes[key] = value
	s.recorder.mu.Unlock()
}

func (s *recordingScope) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.SetAttribute(key, value)
	}
}
