package state

import (
	"errors"
	"strings"

	fsutil "github.com/kk-code-lab/dirpanel/internal/fs"
	"github.com/kk-code-lab/dirpanel/internal/textutil"
	"go.uber.org/zap"
)

// ErrNoWorkspace is the listing error when neither a current directory nor a
// workspace root is known.
var ErrNoWorkspace = errors.New("no workspace folder open")

// Refresh runs the listing pipeline for the current state and stores the
// result in state.View. CurrentDir is never changed here, so a failed read
// leaves the user where they were.
func (r *StateReducer) Refresh(state *AppState) {
	state.View = r.buildView(state)
	state.clampSelection()
}

func (r *StateReducer) buildView(state *AppState) ViewModel {
	view := ViewModel{
		Columns: r.columns(state),
	}

	dir := r.navigationDir(state)
	if dir == "" {
		view.Err = ErrNoWorkspace
		view.Message = "No workspace folder open."
		return view
	}
	view.Directory = dir
	view.ShowUp = r.showUp(state)

	entries, err := fsutil.ReadEntries(dir, r.logStatError)
	if err != nil {
		r.logger.Warn("directory listing failed", zap.String("dir", dir), zap.Error(err))
		view.Err = err
		view.Message = "Unable to read directory: " + readErrorCause(err).Error()
		return view
	}

	entries = filterEntries(entries, state.SearchText)
	for i := range entries {
		if entries[i].IsDir {
			entries[i].Size = fsutil.DirSize(entries[i].FullPath)
		}
	}
	r.sortEntries(entries, state.SortKey, state.SortDir)

	view.Rows = make([]Row, 0, len(entries))
	for _, e := range entries {
		view.Rows = append(view.Rows, newRow(e))
	}
	return view
}

func (r *StateReducer) columns(state *AppState) []Column {
	columns := make([]Column, 0, len(SortKeys))
	for _, key := range SortKeys {
		columns = append(columns, Column{
			Key:       key,
			Label:     key.Label(),
			Active:    key == state.SortKey,
			Direction: state.SortDir,
		})
	}
	return columns
}

func (r *StateReducer) logStatError(path string, err error) {
	r.logger.Debug("stat failed, listing entry without metadata", zap.String("path", path), zap.Error(err))
}

func readErrorCause(err error) error {
	if cause := errors.Unwrap(err); cause != nil {
		return cause
	}
	return err
}

// filterEntries keeps entries whose name contains query, ignoring case.
func filterEntries(entries []fsutil.Entry, query string) []fsutil.Entry {
	if query == "" {
		return entries
	}
	needle := strings.ToLower(query)
	kept := entries[:0]
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			kept = append(kept, e)
		}
	}
	return kept
}

func newRow(e fsutil.Entry) Row {
	row := Row{
		Kind:     RowFile,
		Name:     e.Name,
		Size:     "-",
		Created:  textutil.FormatTimestamp(e.Created),
		Modified: textutil.FormatTimestamp(e.Modified),
		FullPath: e.FullPath,
		Entry:    e,
	}
	if e.IsDir {
		row.Kind = RowFolder
	}
	if e.Size > 0 {
		row.Size = textutil.FormatSize(e.Size)
	}
	return row
}
