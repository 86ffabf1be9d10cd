package report

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Placeholders are literal {tag_name} substrings: no nesting, no escaping.
var tagPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

type Renderer struct {
	registry *Registry
}

func NewRenderer(registry *Registry) *Renderer {
	return &Renderer{registry: registry}
}

// Render substitutes every placeholder in template. Each distinct tag is
// resolved exactly once per call, since producers run statistics queries.
// Any unknown tag or producer failure aborts the render; no partial
// output is returned. Substitution is a single pass over the template,
// so produced text is never rescanned for further placeholders.
func (r *Renderer) Render(ctx context.Context, template string, now time.Time) (string, error) {
	resolved := make(map[string]string)

	for _, m := range tagPattern.FindAllStringSubmatch(template, -1) {
		name := m[1]
		if _, done := resolved[name]; done {
			continue
		}
		out, err := r.registry.Resolve(ctx, name, now)
		if err != nil {
			return "", err
		}
		resolved[name] = out
	}

	rendered := tagPattern.ReplaceAllStringFunc(template, func(match string) string {
		return resolved[strings.Trim(match, "{}")]
	})
	return rendered, nil
}
