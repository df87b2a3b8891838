package pricescout

import (
	"bufio"
	"context"
	"io"
	"slices"
	"sort"
	"strings"
	"time"
)

// Strategy identifies the field-extraction algorithm for one site template.
type Strategy string

// Supported site templates.
const (
	StrategyTitleBlock    Strategy = "title-block"
	StrategyProductCard   Strategy = "product-card"
	StrategyCatalogDetail Strategy = "catalog-detail"
)

// Strategies returns the closed set of supported strategies.
func Strategies() []Strategy {
	return []Strategy{StrategyTitleBlock, StrategyProductCard, StrategyCatalogDetail}
}

// Valid reports whether s is one of the supported strategies.
func (s Strategy) Valid() bool {
	return slices.Contains(Strategies(), s)
}

// Source bundles the URL list of one site with the strategy used to read it.
type Source struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Strategy  Strategy  `json:"strategy"`
	URLs      []string  `json:"urls"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the source contains invalid fields.
// A source with zero URLs is valid.
func (s *Source) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "source name required")
	}
	if strings.ContainsAny(s.Name, " \t\n/") {
		return Errorf(EINVALID, "source name %q must not contain whitespace or slashes", s.Name)
	}
	if !s.Strategy.Valid() {
		return Errorf(EINVALID, "unknown strategy %q", s.Strategy)
	}
	for _, u := range s.URLs {
		if strings.TrimSpace(u) == "" {
			return Errorf(EINVALID, "source %q has an empty URL", s.Name)
		}
	}
	return nil
}

// Clone returns a deep copy of the source.
func (s *Source) Clone() *Source {
	other := *s
	other.URLs = slices.Clone(s.URLs)
	return &other
}

// SourceService represents a service for managing persisted sources.
type SourceService interface {
	// CreateSource creates a new source.
	// Returns EINVALID if a source with the same name already exists.
	CreateSource(ctx context.Context, source *Source) error

	// FindSourceByName retrieves a source by name.
	// Returns ENOTFOUND if source does not exist.
	FindSourceByName(ctx context.Context, name string) (*Source, error)

	// FindSources retrieves all sources ordered by name.
	FindSources(ctx context.Context) ([]*Source, error)

	// UpdateSource replaces the strategy and URL list of an existing source.
	// Returns ENOTFOUND if source does not exist.
	UpdateSource(ctx context.Context, name string, upd SourceUpdate) (*Source, error)

	// DeleteSource permanently removes a source.
	// Returns ENOTFOUND if source does not exist.
	DeleteSource(ctx context.Context, name string) error
}

// SourceUpdate represents fields that can be updated on a source.
type SourceUpdate struct {
	Strategy *Strategy `json:"strategy"`
	URLs     []string  `json:"urls"`
}

// Registry maps a source name to its descriptor. It is read-only after
// construction and safe for concurrent use.
type Registry struct {
	sources map[string]*Source
}

// NewRegistry builds a registry snapshot from the given sources.
// Sources are validated and copied; duplicate names are rejected.
func NewRegistry(sources ...*Source) (*Registry, error) {
	r := &Registry{sources: make(map[string]*Source, len(sources))}
	for _, s := range sources {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, ok := r.sources[s.Name]; ok {
			return nil, Errorf(EINVALID, "duplicate source %q", s.Name)
		}
		r.sources[s.Name] = s.Clone()
	}
	return r, nil
}

// LoadRegistry takes a registry snapshot of every stored source.
func LoadRegistry(ctx context.Context, svc SourceService) (*Registry, error) {
	sources, err := svc.FindSources(ctx)
	if err != nil {
		return nil, err
	}
	return NewRegistry(sources...)
}

// Resolve returns the source registered under name.
// Returns ENOTFOUND if no such source exists, which callers must treat
// differently from a source with zero URLs.
func (r *Registry) Resolve(name string) (*Source, error) {
	s, ok := r.sources[name]
	if !ok {
		return nil, Errorf(ENOTFOUND, "unknown source %q", name)
	}
	return s.Clone(), nil
}

// Names returns the registered source names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseURLList reads newline-delimited URLs, one per non-empty line.
// Lines are trimmed; lines starting with '#' are comments.
func ParseURLList(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}
