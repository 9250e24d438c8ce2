package promptgen

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Workspace is an immutable snapshot of libraries. Updates return a new
// Workspace and never touch the receiver, so any previously obtained
// Workspace value stays valid and observes its old state. A Workspace
// may be shared across goroutines without coordination.
type Workspace struct {
	libraries map[string]*Library
	order     []string
	config    *workspaceConfig
	logger    *zap.Logger
}

// groupEntry couples a group with its owning library. Resolution, search
// and rendering iterate entries in workspace order: library insertion
// order, then group order within each library.
type groupEntry struct {
	LibraryID   string
	LibraryName string
	Group       *Group
}

// NewWorkspace creates an empty workspace.
func NewWorkspace(opts ...Option) *Workspace {
	config := defaultWorkspaceConfig()
	for _, opt := range opts {
		opt(config)
	}
	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workspace{
		libraries: make(map[string]*Library),
		config:    config,
		logger:    logger,
	}
}

// WorkspaceBuilder accumulates libraries before constructing a Workspace.
// It is a bulk-construction convenience over repeated WithLibrary calls.
type WorkspaceBuilder struct {
	workspace *Workspace
}

// NewWorkspaceBuilder creates a builder with the given workspace options.
func NewWorkspaceBuilder(opts ...Option) *WorkspaceBuilder {
	return &WorkspaceBuilder{workspace: NewWorkspace(opts...)}
}

// AddLibrary adds a library to the builder. Returns the builder for chaining.
func (b *WorkspaceBuilder) AddLibrary(library *Library) *WorkspaceBuilder {
	b.workspace = b.workspace.WithLibrary(library)
	return b
}

// Build returns the accumulated workspace. The builder remains usable;
// later AddLibrary calls do not affect workspaces already built.
func (b *WorkspaceBuilder) Build() *Workspace {
	w := b.workspace
	w.logger.Debug(LogMsgWorkspaceBuilt, zap.Int(LogFieldLibraries, len(w.order)))
	return w
}

// WithLibrary returns a new Workspace containing the library. A library
// with the same ID is replaced in place, keeping its position in the
// listing order; a new ID is appended. The library is deep-copied, so
// mutating it afterwards cannot reach the workspace.
func (w *Workspace) WithLibrary(library *Library) *Workspace {
	if library == nil {
		return w
	}
	c := library.clone()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	next := w.copyShell()
	if _, exists := w.libraries[c.ID]; !exists {
		next.order = append(next.order, c.ID)
	}
	next.libraries[c.ID] = c
	next.logger.Debug(LogMsgLibraryAdded,
		zap.String(LogFieldLibraryID, c.ID),
		zap.String(LogFieldLibraryName, c.Name),
		zap.Int(LogFieldGroups, len(c.Groups)))
	return next
}

// WithoutLibrary returns a new Workspace without the library. Removing
// an absent ID is a no-op and returns the receiver.
func (w *Workspace) WithoutLibrary(id string) *Workspace {
	if _, exists := w.libraries[id]; !exists {
		return w
	}
	next := w.copyShell()
	delete(next.libraries, id)
	order := make([]string, 0, len(next.order))
	for _, existing := range next.order {
		if existing != id {
			order = append(order, existing)
		}
	}
	next.order = order
	next.logger.Debug(LogMsgLibraryRemoved, zap.String(LogFieldLibraryID, id))
	return next
}

// GetLibraryIDs returns the library IDs in insertion order.
func (w *Workspace) GetLibraryIDs() []string {
	ids := make([]string, len(w.order))
	copy(ids, w.order)
	return ids
}

// GetLibrary returns a copy of the library with the given ID. Mutating
// the copy cannot reach the workspace.
func (w *Workspace) GetLibrary(id string) (*Library, bool) {
	l, ok := w.libraries[id]
	if !ok {
		return nil, false
	}
	return l.clone(), true
}

// GetGroupNames returns group names in workspace order. With a library
// ID it is restricted to that library; with an empty ID it spans all
// libraries, keeping duplicates since qualification disambiguates them.
// An unknown library ID yields an empty list.
func (w *Workspace) GetGroupNames(libraryID string) []string {
	if libraryID != "" {
		l, ok := w.libraries[libraryID]
		if !ok {
			return nil
		}
		return l.GroupNames()
	}
	var names []string
	for _, id := range w.order {
		names = append(names, w.libraries[id].GroupNames()...)
	}
	return names
}

// copyShell clones the library map and order slice. Library values are
// shared: they are never mutated after registration.
func (w *Workspace) copyShell() *Workspace {
	next := &Workspace{
		libraries: make(map[string]*Library, len(w.libraries)+1),
		order:     make([]string, len(w.order), len(w.order)+1),
		config:    w.config,
		logger:    w.logger,
	}
	for id, l := range w.libraries {
		next.libraries[id] = l
	}
	copy(next.order, w.order)
	return next
}

// libraryByID returns the shared library value, for internal read paths.
func (w *Workspace) libraryByID(id string) (*Library, bool) {
	l, ok := w.libraries[id]
	return l, ok
}

// allGroups returns every group entry in workspace order.
func (w *Workspace) allGroups() []groupEntry {
	var entries []groupEntry
	for _, id := range w.order {
		l := w.libraries[id]
		for _, g := range l.Groups {
			entries = append(entries, groupEntry{LibraryID: l.ID, LibraryName: l.Name, Group: g})
		}
	}
	return entries
}

// groupsMatchingTerm returns the entries whose group name or tags equal
// the term, in workspace order.
func (w *Workspace) groupsMatchingTerm(term string) []groupEntry {
	var entries []groupEntry
	for _, id := range w.order {
		l := w.libraries[id]
		for _, g := range l.Groups {
			if g.MatchesTerm(term) {
				entries = append(entries, groupEntry{LibraryID: l.ID, LibraryName: l.Name, Group: g})
			}
		}
	}
	return entries
}

// allNameCandidates returns every distinct group name and tag across the
// workspace, used for suggestion generation and completion. Names come
// first in workspace order, then tags, each deduplicated.
func (w *Workspace) allNameCandidates() []string {
	seen := make(map[string]struct{})
	var names []string
	appendName := func(name string) {
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for _, id := range w.order {
		for _, g := range w.libraries[id].Groups {
			appendName(g.Name)
		}
	}
	for _, id := range w.order {
		for _, g := range w.libraries[id].Groups {
			for _, t := range g.Tags {
				appendName(t)
			}
		}
	}
	return names
}
