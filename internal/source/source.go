// Package source defines the publisher adapter contract and the registry
// that resolves adapters by key or by article domain.
package source

import (
	"context"
	"net/url"
	"strings"

	"newschomp/internal/domain"
)

// Source is the capability contract every publisher adapter satisfies.
type Source interface {
	// Name returns the human-readable publisher name.
	Name() string
	// Key returns the stable registry identifier.
	Key() string
	// Discover returns candidate article URLs, most relevant first. It may
	// ignore query (browsing-only publishers). Transport failures translate
	// into an empty slice, never an error: the pipeline treats "nothing
	// right now" uniformly regardless of cause.
	Discover(ctx context.Context, query string) []string
	// Fetch retrieves the raw document behind one candidate URL.
	Fetch(ctx context.Context, url string) (string, error)
	// Extract parses a raw document into a structured record. A missing
	// title or URL in the result is the extraction-failure marker.
	Extract(html string) domain.Extracted
}

// Located is implemented by sources tied to a physical place, making them
// eligible for nearest-source queries.
type Located interface {
	Location() domain.Location
}

// Descriptor describes a registered, location-tagged source.
type Descriptor struct {
	Key      string          `json:"source_key"`
	Name     string          `json:"name"`
	Location domain.Location `json:"location"`
}

type entry struct {
	src     Source
	domains []string
}

// Registry maps source keys to adapter instances and article domains to
// their owning source.
type Registry struct {
	byKey map[string]Source
	order []entry
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: map[string]Source{}}
}

// Register adds a source with the exact hostnames its article URLs use.
// Domains are matched by string equality (plus an implicit www. variant);
// subdomains must be listed explicitly.
func (r *Registry) Register(src Source, domains ...string) {
	key := strings.ToLower(src.Key())
	if _, ok := r.byKey[key]; ok {
		return
	}
	r.byKey[key] = src
	r.order = append(r.order, entry{src: src, domains: domains})
}

// Get resolves a source by key, case-insensitively. Returns nil when the
// key is unknown.
func (r *Registry) Get(key string) Source {
	return r.byKey[strings.ToLower(strings.TrimSpace(key))]
}

// GetByURL resolves the source owning an article URL by matching its host
// against the registered domain table, tolerating a leading www. either
// way. Returns nil when no source claims the host.
func (r *Registry) GetByURL(raw string) Source {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return nil
	}
	bare := strings.TrimPrefix(host, "www.")

	for _, e := range r.order {
		for _, d := range e.domains {
			d = strings.ToLower(d)
			if host == d || bare == strings.TrimPrefix(d, "www.") {
				return e.src
			}
		}
	}
	return nil
}

// Keys returns the registered source keys in registration order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.order))
	for _, e := range r.order {
		keys = append(keys, strings.ToLower(e.src.Key()))
	}
	return keys
}

// WithLocation returns descriptors for every source that declares a
// physical location, in registration order.
func (r *Registry) WithLocation() []Descriptor {
	var out []Descriptor
	for _, e := range r.order {
		loc, ok := e.src.(Located)
		if !ok {
			continue
		}
		out = append(out, Descriptor{
			Key:      strings.ToLower(e.src.Key()),
			Name:     e.src.Name(),
			Location: loc.Location(),
		})
	}
	return out
}
