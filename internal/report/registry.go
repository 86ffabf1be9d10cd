package report

import (
	"context"
	"time"
)

// Producer computes the replacement text for one tag. Producers only read
// from the store; they never write.
type Producer func(ctx context.Context, now time.Time) (string, error)

// Tag is a named placeholder available to report templates.
type Tag struct {
	Name        string
	Description string
	Produce     Producer
}

// Registry holds the set of registered tags in registration order.
type Registry struct {
	order []string
	tags  map[string]Tag
}

func NewRegistry() *Registry {
	return &Registry{tags: make(map[string]Tag)}
}

func (r *Registry) Register(t Tag) error {
	if _, exists := r.tags[t.Name]; exists {
		return &DuplicateTagError{Tag: t.Name}
	}
	r.tags[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// Resolve invokes the named tag's producer. A missing tag yields
// UnknownTagError; a failing producer yields TagResolutionError wrapping
// the cause.
func (r *Registry) Resolve(ctx context.Context, name string, now time.Time) (string, error) {
	t, ok := r.tags[name]
	if !ok {
		return "", &UnknownTagError{Tag: name}
	}
	out, err := t.Produce(ctx, now)
	if err != nil {
		return "", &TagResolutionError{Tag: name, Err: err}
	}
	return out, nil
}

// Tags returns the registered tags in registration order.
func (r *Registry) Tags() []Tag {
	out := make([]Tag, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tags[name])
	}
	return out
}
