package state

import (
	"path/filepath"
	"strings"
)

func (r *StateReducer) goUp(state *AppState) {
	parent, ok := r.parentTarget(state)
	if !ok {
		return
	}
	state.CurrentDir = parent
	state.resetViewport()
}

// parentTarget applies the boundary policy. With a workspace root, the
// parent must stay inside the root unless it is the filesystem root itself;
// without one, any parent is allowed.
func (r *StateReducer) parentTarget(state *AppState) (string, bool) {
	current := r.navigationDir(state)
	if current == "" {
		return "", false
	}

	parent := filepath.Dir(current)
	if parent == current {
		return "", false
	}

	root := r.workspaceRoot()
	if root == "" || isFilesystemRoot(parent) || isWithin(root, parent) {
		return parent, true
	}
	return "", false
}

// navigationDir is the directory the listing shows: the current directory,
// or the workspace root when none was chosen.
func (r *StateReducer) navigationDir(state *AppState) string {
	if state.CurrentDir != "" {
		return filepath.Clean(state.CurrentDir)
	}
	return r.workspaceRoot()
}

func (r *StateReducer) showUp(state *AppState) bool {
	if state.CurrentDir == "" {
		return false
	}
	current := filepath.Clean(state.CurrentDir)
	return current != r.workspaceRoot() && !isFilesystemRoot(current)
}

func isFilesystemRoot(path string) bool {
	return filepath.Dir(path) == path
}

func isWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
