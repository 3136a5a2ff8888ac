package state

// Action is a state mutation. The set is closed: only this package can
// implement it.
type Action interface {
	isAction()
}

// ===== NAVIGATOR COMMANDS =====

// SortAction sorts by By, flipping the direction when By is already active.
type SortAction struct {
	By SortKey
}

// SearchAction replaces the filter text verbatim.
type SearchAction struct {
	Value string
}

// OpenFolderAction makes Path the current directory.
type OpenFolderAction struct {
	Path string
}

// OpenFileAction asks the document opener to open Path.
type OpenFileAction struct {
	Path string
}

// GoUpAction moves to the parent directory when the workspace boundary allows it.
type GoUpAction struct{}

// ===== PANEL ACTIONS =====

type MoveSelectionAction struct {
	Delta int
}

// SelectIndexAction selects a row by index; out-of-range values clamp.
type SelectIndexAction struct {
	Index int
}

// ActivateSelectionAction opens the selected folder or file.
type ActivateSelectionAction struct{}

type SearchModeAction struct {
	Active bool
}

// SearchEditAction updates the visible search input without re-listing.
type SearchEditAction struct {
	Value string
}

type ResizeAction struct {
	Width  int
	Height int
}

type DismissNoticeAction struct{}

// RefreshAction re-lists the current directory on demand.
type RefreshAction struct{}

type QuitAction struct{}

// SuspendAction hands the terminal back to the shell (Ctrl-Z).
type SuspendAction struct{}

func (SortAction) isAction()              {}
func (SearchAction) isAction()            {}
func (OpenFolderAction) isAction()        {}
func (OpenFileAction) isAction()          {}
func (GoUpAction) isAction()              {}
func (MoveSelectionAction) isAction()     {}
func (SelectIndexAction) isAction()       {}
func (ActivateSelectionAction) isAction() {}
func (SearchModeAction) isAction()        {}
func (SearchEditAction) isAction()        {}
func (ResizeAction) isAction()            {}
func (DismissNoticeAction) isAction()     {}
func (RefreshAction) isAction()           {}
func (QuitAction) isAction()              {}
func (SuspendAction) isAction()           {}
