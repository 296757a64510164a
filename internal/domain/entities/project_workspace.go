package entities

import (
	"sort"
	"sync"
)

// ProjectFileSet maps a file path to its content. It is always handled as a
// whole snapshot and never merged field by field.
type ProjectFileSet map[string]string

// Clone returns an independent copy of the file set.
func (f ProjectFileSet) Clone() ProjectFileSet {
	clone := make(ProjectFileSet, len(f))
	for path, content := range f {
		clone[path] = content
	}
	return clone
}

// Paths returns the file paths in lexical order.
func (f ProjectFileSet) Paths() []string {
	paths := make([]string, 0, len(f))
	for path := range f {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// ProjectWorkspace holds the current file set and the advisory busy flag of a session.
type ProjectWorkspace struct {
	mu    sync.RWMutex
	files ProjectFileSet
	busy  bool
}

// NewProjectWorkspace creates an empty workspace.
func NewProjectWorkspace() *ProjectWorkspace {
	return &ProjectWorkspace{files: ProjectFileSet{}}
}

// ReplaceFiles swaps in a new snapshot. Empty snapshots are ignored so the
// workspace never loses all of its files to a stale upstream push.
// It reports whether the snapshot was applied.
func (w *ProjectWorkspace) ReplaceFiles(snapshot ProjectFileSet) bool {
	if len(snapshot) == 0 {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files = snapshot.Clone()
	return true
}

// Files returns a copy of the current snapshot.
func (w *ProjectWorkspace) Files() ProjectFileSet {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files.Clone()
}

// SetBusy sets the busy indicator. It is advisory and does not lock anything.
func (w *ProjectWorkspace) SetBusy(busy bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.busy = busy
}

func (w *ProjectWorkspace) Busy() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.busy
}
