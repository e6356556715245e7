// Package catalog loads the read-only reference data of node templates that
// new nodes are instantiated from. The editor core never writes to it.
package catalog

import (
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/jverdier/coursemap/pkg/errors"
)

// Template describes one selectable node template (a course module family
// entry in the Formation Builder, a blueprint element in the Blueprint
// Builder).
type Template struct {
	ID                   string `toml:"id"`
	Title                string `toml:"title"`
	Description          string `toml:"description"`
	DefaultDurationUnits int    `toml:"default_duration_units"`
	Family               string `toml:"family"`
	Subfamily            string `toml:"subfamily"`
}

// Catalog is an immutable set of templates with id lookup.
type Catalog struct {
	templates []Template
	byID      map[string]Template
}

// catalogFile is the TOML document shape:
//
//	[[template]]
//	id = "mod-safety-intro"
//	title = "Safety introduction"
//	family = "theory"
//	default_duration_units = 1
type catalogFile struct {
	Templates []Template `toml:"template"`
}

// Load reads a catalog from a TOML file.
func Load(path string) (*Catalog, error) {
	var file catalogFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "load catalog %s", path)
	}
	return build(file.Templates)
}

// Parse reads a catalog from TOML bytes.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "parse catalog")
	}
	return build(file.Templates)
}

// New creates a catalog from templates directly, for tests and defaults.
func New(templates []Template) (*Catalog, error) {
	return build(templates)
}

func build(templates []Template) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]Template, len(templates))}
	for _, t := range templates {
		if t.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidTemplate, "template without id")
		}
		if t.Title == "" {
			return nil, errors.New(errors.ErrCodeInvalidTemplate, "template %s without title", t.ID)
		}
		if t.DefaultDurationUnits < 0 {
			return nil, errors.New(errors.ErrCodeInvalidTemplate, "template %s has negative duration", t.ID)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidTemplate, "duplicate template id %s", t.ID)
		}
		c.byID[t.ID] = t
		c.templates = append(c.templates, t)
	}
	sort.Slice(c.templates, func(i, j int) bool { return c.templates[i].ID < c.templates[j].ID })
	return c, nil
}

// Get returns the template with the given id.
func (c *Catalog) Get(id string) (Template, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// List returns all templates sorted by id. The returned slice is a copy.
func (c *Catalog) List() []Template {
	return append([]Template(nil), c.templates...)
}

// Len returns the number of templates.
func (c *Catalog) Len() int { return len(c.templates) }

// Default returns a small built-in catalog used when no catalog file is
// configured, so the CLI works out of the box.
func Default() *Catalog {
	c, err := New([]Template{
		{ID: "module-theory", Title: "Theory module", Description: "Classroom or e-learning session", DefaultDurationUnits: 1, Family: "theory"},
		{ID: "module-practice", Title: "Practice module", Description: "Hands-on exercise", DefaultDurationUnits: 2, Family: "practice"},
		{ID: "module-assessment", Title: "Assessment", Description: "Knowledge check", DefaultDurationUnits: 1, Family: "theory", Subfamily: "assessment"},
	})
	if err != nil {
		panic(err) // built-in data, cannot fail
	}
	return c
}
