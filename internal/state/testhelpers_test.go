package state

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingOpener struct {
	opened []string
	err    error
}

func (o *recordingOpener) Open(path string) error {
	o.opened = append(o.opened, path)
	return o.err
}

var errOpenFailed = errors.New("file is gone")

func writeSizedFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func setModTime(t *testing.T, path string, ts time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, ts, ts))
}

func newTestPanel(t *testing.T, workspace string) (*AppState, *StateReducer, *recordingOpener) {
	t.Helper()
	opener := &recordingOpener{}
	reducer := NewStateReducer(Options{
		Workspace: StaticWorkspace(workspace),
		Opener:    opener,
	})
	state := NewAppState(workspace, "")
	state.ScreenWidth = 120
	state.ScreenHeight = 30
	reducer.Refresh(state)
	return state, reducer, opener
}

func rowNames(view ViewModel) []string {
	names := make([]string, 0, len(view.Rows))
	for _, row := range view.Rows {
		names = append(names, row.Name)
	}
	return names
}

func mustReduce(t *testing.T, r *StateReducer, s *AppState, actions ...Action) {
	t.Helper()
	for _, action := range actions {
		_, err := r.Reduce(s, action)
		require.NoError(t, err, "reduce %T", action)
	}
}
