package promptgen

import (
	"github.com/google/uuid"
)

// Group is a named pool of option texts. Tags are free-form labels that
// tag expressions match against, in the same namespace as group names.
type Group struct {
	Name    string   `yaml:"name" json:"name"`
	Tags    []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Options []string `yaml:"options" json:"options"`
}

// NewGroup creates a group. The tag and option slices are copied, so the
// caller keeps no handle into the group's state.
func NewGroup(name string, tags []string, options []string) *Group {
	g := &Group{
		Name:    name,
		Tags:    make([]string, len(tags)),
		Options: make([]string, len(options)),
	}
	copy(g.Tags, tags)
	copy(g.Options, options)
	return g
}

// HasTag reports whether the group carries the tag. Matching is exact
// and case-sensitive.
func (g *Group) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// MatchesTerm reports whether the group answers to the name, either as
// its group name or as one of its tags.
func (g *Group) MatchesTerm(name string) bool {
	return g.Name == name || g.HasTag(name)
}

// clone returns a deep copy of the group.
func (g *Group) clone() *Group {
	return NewGroup(g.Name, g.Tags, g.Options)
}

// SavedTemplate is a reusable template source stored inside a library.
type SavedTemplate struct {
	ID          string `yaml:"id,omitempty" json:"id,omitempty"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Source      string `yaml:"source" json:"source"`
}

// NewSavedTemplate creates a saved template with a generated ID.
func NewSavedTemplate(name, description, source string) *SavedTemplate {
	return &SavedTemplate{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Source:      source,
	}
}

// clone returns a copy of the saved template.
func (t *SavedTemplate) clone() *SavedTemplate {
	c := *t
	return &c
}

// Library is a named collection of groups and saved templates. Group
// order is significant: candidate pools preserve it.
type Library struct {
	ID          string           `yaml:"id,omitempty" json:"id,omitempty"`
	Name        string           `yaml:"name" json:"name"`
	Description string           `yaml:"description,omitempty" json:"description,omitempty"`
	Groups      []*Group         `yaml:"groups,omitempty" json:"groups,omitempty"`
	Templates   []*SavedTemplate `yaml:"templates,omitempty" json:"templates,omitempty"`
}

// LibraryOption is a functional option for configuring a Library.
type LibraryOption func(*Library)

// WithLibraryID sets an explicit library ID instead of a generated one.
func WithLibraryID(id string) LibraryOption {
	return func(l *Library) {
		if id != "" {
			l.ID = id
		}
	}
}

// WithLibraryDescription sets the library description.
func WithLibraryDescription(description string) LibraryOption {
	return func(l *Library) {
		l.Description = description
	}
}

// WithGroups appends groups to the library, copying each.
func WithGroups(groups ...*Group) LibraryOption {
	return func(l *Library) {
		for _, g := range groups {
			if g == nil {
				continue
			}
			l.Groups = append(l.Groups, g.clone())
		}
	}
}

// WithTemplates appends saved templates to the library, copying each.
// Templates without an ID get a generated one.
func WithTemplates(templates ...*SavedTemplate) LibraryOption {
	return func(l *Library) {
		for _, t := range templates {
			if t == nil {
				continue
			}
			c := t.clone()
			if c.ID == "" {
				c.ID = uuid.New().String()
			}
			l.Templates = append(l.Templates, c)
		}
	}
}

// NewLibrary creates a library with a generated ID unless WithLibraryID
// overrides it.
func NewLibrary(name string, opts ...LibraryOption) *Library {
	l := &Library{
		ID:   uuid.New().String(),
		Name: name,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FindGroup returns the group with the exact name.
func (l *Library) FindGroup(name string) (*Group, bool) {
	for _, g := range l.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}

// GroupsMatching returns the groups whose name or tags equal the term,
// in library order.
func (l *Library) GroupsMatching(term string) []*Group {
	var matched []*Group
	for _, g := range l.Groups {
		if g.MatchesTerm(term) {
			matched = append(matched, g)
		}
	}
	return matched
}

// FindTemplate returns the saved template with the exact name.
func (l *Library) FindTemplate(name string) (*SavedTemplate, bool) {
	for _, t := range l.Templates {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// GroupNames returns the library's group names in library order.
func (l *Library) GroupNames() []string {
	names := make([]string, 0, len(l.Groups))
	for _, g := range l.Groups {
		names = append(names, g.Name)
	}
	return names
}

// clone returns a deep copy of the library.
func (l *Library) clone() *Library {
	c := &Library{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
	}
	if len(l.Groups) > 0 {
		c.Groups = make([]*Group, 0, len(l.Groups))
		for _, g := range l.Groups {
			c.Groups = append(c.Groups, g.clone())
		}
	}
	if len(l.Templates) > 0 {
		c.Templates = make([]*SavedTemplate, 0, len(l.Templates))
		for _, t := range l.Templates {
			c.Templates = append(c.Templates, t.clone())
		}
	}
	return c
}
