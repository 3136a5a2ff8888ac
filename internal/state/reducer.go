package state

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// WorkspaceProvider returns the base directory of the project, or "" when
// there is none.
type WorkspaceProvider interface {
	WorkspaceRoot() string
}

// DocumentOpener opens a file for editing and fails with a descriptive error
// when it cannot.
type DocumentOpener interface {
	Open(path string) error
}

// StaticWorkspace is a WorkspaceProvider with a fixed root.
type StaticWorkspace string

// WorkspaceRoot implements WorkspaceProvider.
func (w StaticWorkspace) WorkspaceRoot() string {
	return string(w)
}

// Options wires the reducer's collaborators. Every field is optional.
type Options struct {
	Workspace WorkspaceProvider
	Opener    DocumentOpener
	Logger    *zap.Logger
}

// ErrNoOpener is reported when a file is opened without a DocumentOpener.
var ErrNoOpener = errors.New("no document opener configured")

// StateReducer applies actions to state. It is not safe for concurrent use;
// one reducer serves one panel.
type StateReducer struct {
	workspace WorkspaceProvider
	opener    DocumentOpener
	logger    *zap.Logger
	collator  *collate.Collator
	now       func() time.Time
}

// NewStateReducer creates a reducer with the given collaborators.
func NewStateReducer(opts Options) *StateReducer {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StateReducer{
		workspace: opts.Workspace,
		opener:    opts.Opener,
		logger:    logger,
		collator:  collate.New(language.Und),
		now:       time.Now,
	}
}

func (r *StateReducer) workspaceRoot() string {
	if r.workspace == nil {
		return ""
	}
	root := r.workspace.WorkspaceRoot()
	if root == "" {
		return ""
	}
	return filepath.Clean(root)
}

// Reduce applies an action to state. Navigator commands always finish with a
// full re-list of the current directory; listing failures end up in
// state.View, so the returned error only reports actions this reducer does
// not know.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== NAVIGATOR COMMANDS =====

	case SortAction:
		if !a.By.Valid() {
			return state, fmt.Errorf("unknown sort key %q", a.By)
		}
		state.applySort(a.By)
		r.Refresh(state)

	case SearchAction:
		state.SearchText = a.Value
		state.SearchInput = a.Value
		state.SelectedIndex = 0
		r.Refresh(state)

	case OpenFolderAction:
		state.CurrentDir = a.Path
		state.resetViewport()
		r.Refresh(state)

	case OpenFileAction:
		r.openFile(state, a.Path)
		r.Refresh(state)

	case GoUpAction:
		r.goUp(state)
		r.Refresh(state)

	// ===== PANEL =====

	case ActivateSelectionAction:
		row := state.SelectedRow()
		if row == nil {
			return state, nil
		}
		if row.IsDir() {
			return r.Reduce(state, OpenFolderAction{Path: row.FullPath})
		}
		return r.Reduce(state, OpenFileAction{Path: row.FullPath})

	case MoveSelectionAction:
		if len(state.View.Rows) == 0 {
			return state, nil
		}
		state.SelectedIndex += a.Delta
		state.clampSelection()

	case SelectIndexAction:
		if len(state.View.Rows) == 0 {
			return state, nil
		}
		state.SelectedIndex = a.Index
		state.clampSelection()

	case SearchModeAction:
		state.SearchEditing = a.Active
		if a.Active {
			state.SearchInput = state.SearchText
		}

	case SearchEditAction:
		state.SearchInput = a.Value

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.clampSelection()

	case DismissNoticeAction:
		state.Notice = ""
		state.NoticeTime = time.Time{}

	case RefreshAction:
		r.Refresh(state)

	case QuitAction, SuspendAction:
		// handled by the application loop

	default:
		return state, fmt.Errorf("unhandled action %T", action)
	}

	return state, nil
}

func (r *StateReducer) openFile(state *AppState, path string) {
	var err error
	if r.opener == nil {
		err = ErrNoOpener
	} else {
		err = r.opener.Open(path)
	}
	if err == nil {
		return
	}

	r.logger.Warn("open file failed", zap.String("path", path), zap.Error(err))
	state.Notice = fmt.Sprintf("Could not open file: %v", err)
	state.NoticeTime = r.now()
}
