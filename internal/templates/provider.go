package templates

import (
	"sort"
	"sync"
)

// DefaultTemplate is used when no template name is given
const DefaultTemplate = "basic"

// builtinMetadata lists the templates every Provider starts with
var builtinMetadata = []Metadata{
	{
		ID:          "basic",
		DisplayName: "Basic CV",
		Description: "Clean and professional layout suitable for most industries",
		SuitableFor: []string{"Industry", "General"},
	},
	{
		ID:          "federal",
		DisplayName: "Federal Resume",
		Description: "Detailed format following US government guidelines",
		SuitableFor: []string{"Government", "Federal Positions", "Military"},
	},
	{
		ID:          "state",
		DisplayName: "State Government Resume",
		Description: "Structured work history for state and local government applications",
		SuitableFor: []string{"State Government", "Local Government", "Public Sector"},
	},
	{
		ID:          "academic",
		DisplayName: "Academic CV",
		Description: "Comprehensive academic curriculum vitae",
		SuitableFor: []string{"Academia", "Research", "Higher Education"},
	},
	{
		ID:          "modern",
		DisplayName: "Modern",
		Description: "Contemporary layout with an accent color for private sector roles",
		SuitableFor: []string{"Private Sector", "Technology", "Consulting"},
	},
	{
		ID:          "minimal",
		DisplayName: "Minimal",
		Description: "Modern, minimalist design focusing on essential information",
		SuitableFor: []string{"Technology", "Creative", "Startups"},
	},
}

// Provider is a registry of templates keyed by name.
// It is safe for concurrent use.
type Provider struct {
	mu        sync.RWMutex
	templates map[string]Template
	metadata  map[string]Metadata
}

// NewProvider returns a Provider with the built-in templates registered.
// The built-in files are embedded, so a failure here is a build defect.
func NewProvider() *Provider {
	p := &Provider{
		templates: make(map[string]Template),
		metadata:  make(map[string]Metadata),
	}
	for _, meta := range builtinMetadata {
		b, err := newBuiltin(meta)
		if err != nil {
			panic(err)
		}
		p.Register(b)
	}
	return p
}

// Get returns the template registered under name. An empty name selects
// the basic template.
func (p *Provider) Get(name string) (Template, error) {
	if name == "" {
		name = DefaultTemplate
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	t, ok := p.templates[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return t, nil
}

// Register adds or replaces a template. The last registration for a name wins.
func (p *Provider) Register(t Template) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.templates[t.Name()] = t
	if m, ok := t.(interface{ Metadata() Metadata }); ok {
		p.metadata[t.Name()] = m.Metadata()
	} else {
		delete(p.metadata, t.Name())
	}
}

// List returns the registered template names in sorted order
func (p *Provider) List() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.templates))
	for name := range p.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Metadata returns listing information for every registered template, sorted
// by name. Templates registered without metadata get an entry with only an ID.
func (p *Provider) Metadata() []Metadata {
	names := p.List()

	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]Metadata, 0, len(names))
	for _, name := range names {
		if m, ok := p.metadata[name]; ok {
			out = append(out, m)
		} else {
			out = append(out, Metadata{ID: name, DisplayName: name})
		}
	}
	return out
}

// Lookup returns metadata for a single template
func (p *Provider) Lookup(name string) (Metadata, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	m, ok := p.metadata[name]
	return m, ok
}
