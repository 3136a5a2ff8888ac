package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/dirpanel/internal/state"
)

type stubOpener struct {
	opened []string
	err    error
}

func (o *stubOpener) Open(path string) error {
	o.opened = append(o.opened, path)
	return o.err
}

// newTestWorkspace creates ws/{alpha/, beta.txt, .hidden}.
func newTestWorkspace(t *testing.T) string {
	t.Helper()
	ws := t.TempDir()
	if err := os.Mkdir(filepath.Join(ws, "alpha"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"beta.txt", ".hidden", filepath.Join("alpha", "inner.txt")} {
		if err := os.WriteFile(filepath.Join(ws, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return ws
}

func newTestApplication(t *testing.T, opts Options, opener statepkg.DocumentOpener) (*Application, tcell.SimulationScreen) {
	t.Helper()
	screen := newTestScreen(t)
	screen.SetSize(100, 20)
	app := newApplication(screen, opts, opener)
	app.renderer.Render(app.state)
	return app, screen
}

func rowNames(state *statepkg.AppState) []string {
	names := make([]string, 0, len(state.View.Rows))
	for _, row := range state.View.Rows {
		names = append(names, row.Name)
	}
	return names
}

func drainActions(ch chan statepkg.Action) []statepkg.Action {
	var actions []statepkg.Action
	for {
		select {
		case a := <-ch:
			actions = append(actions, a)
		default:
			return actions
		}
	}
}

func click(app *Application, x, y int) {
	app.handleMouse(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	app.handleMouse(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func TestNewApplicationListsWorkspace(t *testing.T) {
	ws := newTestWorkspace(t)
	app, _ := newTestApplication(t, Options{WorkspaceRoot: ws}, &stubOpener{})

	if got := rowNames(app.state); strings.Join(got, ",") != "alpha,beta.txt" {
		t.Fatalf("expected [alpha beta.txt], got %v", got)
	}
	if app.state.ScreenWidth != 100 || app.state.ScreenHeight != 20 {
		t.Fatalf("expected screen size to seed state, got %dx%d", app.state.ScreenWidth, app.state.ScreenHeight)
	}
	if app.CurrentDir() != ws {
		t.Fatalf("expected %q, got %q", ws, app.CurrentDir())
	}
}

func TestHandleMouseUpButton(t *testing.T) {
	ws := newTestWorkspace(t)
	app, _ := newTestApplication(t, Options{WorkspaceRoot: ws, StartDir: filepath.Join(ws, "alpha")}, &stubOpener{})

	button := app.renderer.LastLayout().UpButton
	if button.Width == 0 {
		t.Fatalf("expected up button inside a subfolder")
	}
	click(app, button.X, button.Y)

	got := drainActions(app.actionCh)
	if len(got) != 1 || got[0] != (statepkg.GoUpAction{}) {
		t.Fatalf("expected GoUpAction, got %#v", got)
	}

	app.handleAction(got[0])
	if app.state.CurrentDir != ws {
		t.Fatalf("expected to be back at %q, got %q", ws, app.state.CurrentDir)
	}
}

func TestHandleMouseHeaderSorts(t *testing.T) {
	ws := newTestWorkspace(t)
	app, _ := newTestApplication(t, Options{WorkspaceRoot: ws}, &stubOpener{})

	var sizeHeader *statepkg.SortKey
	for _, cell := range app.renderer.LastLayout().Headers {
		if cell.Key == statepkg.SortBySize {
			key := cell.Key
			sizeHeader = &key
			click(app, cell.Region.X, cell.Region.Y)
			break
		}
	}
	if sizeHeader == nil {
		t.Fatalf("size header not laid out")
	}

	got := drainActions(app.actionCh)
	if len(got) != 1 || got[0] != (statepkg.SortAction{By: statepkg.SortBySize}) {
		t.Fatalf("expected SortAction{size}, got %#v", got)
	}
}

func TestHandleMouseSelectAndDoubleClick(t *testing.T) {
	ws := newTestWorkspace(t)
	app, _ := newTestApplication(t, Options{WorkspaceRoot: ws}, &stubOpener{})
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	app.now = func() time.Time { return base }

	layout := app.renderer.LastLayout()
	click(app, 5, layout.ListTop+1)
	got := drainActions(app.actionCh)
	if len(got) != 1 || got[0] != (statepkg.SelectIndexAction{Index: 1}) {
		t.Fatalf("expected single select, got %#v", got)
	}

	app.now = func() time.Time { return base.Add(doubleClickThreshold / 2) }
	click(app, 5, layout.ListTop)
	got = drainActions(app.actionCh)
	if len(got) != 1 {
		t.Fatalf("click on another row must not activate, got %#v", got)
	}

	app.now = func() time.Time { return base.Add(doubleClickThreshold) }
	click(app, 5, layout.ListTop)
	got = drainActions(app.actionCh)
	if len(got) != 2 || got[1] != (statepkg.ActivateSelectionAction{}) {
		t.Fatalf("expected select + activate on double click, got %#v", got)
	}

	for _, a := range got {
		app.apply(a)
	}
	if want := filepath.Join(ws, "alpha"); app.state.CurrentDir != want {
		t.Fatalf("double click on folder should enter it, got %q", app.state.CurrentDir)
	}
}

func TestHandleMouseIgnoresDragAndEmptyRows(t *testing.T) {
	ws := newTestWorkspace(t)
	app, _ := newTestApplication(t, Options{WorkspaceRoot: ws}, &stubOpener{})
	layout := app.renderer.LastLayout()

	app.handleMouse(tcell.NewEventMouse(5, layout.ListTop, tcell.Button1, tcell.ModNone))
	app.handleMouse(tcell.NewEventMouse(6, layout.ListTop, tcell.Button1, tcell.ModNone))
	if got := drainActions(app.actionCh); len(got) != 1 {
		t.Fatalf("held button should select once, got %#v", got)
	}
	app.handleMouse(tcell.NewEventMouse(6, layout.ListTop, tcell.ButtonNone, tcell.ModNone))

	click(app, 5, layout.ListTop+5)
	if got := drainActions(app.actionCh); len(got) != 0 {
		t.Fatalf("click below the last row should do nothing, got %#v", got)
	}
}

func TestHandleMouseWheel(t *testing.T) {
	ws := newTestWorkspace(t)
	app, _ := newTestApplication(t, Options{WorkspaceRoot: ws}, &stubOpener{})

	app.handleMouse(tcell.NewEventMouse(5, 5, tcell.WheelDown, tcell.ModNone))
	app.handleMouse(tcell.NewEventMouse(5, 5, tcell.WheelUp, tcell.ModNone))

	got := drainActions(app.actionCh)
	if len(got) != 2 ||
		got[0] != (statepkg.MoveSelectionAction{Delta: 1}) ||
		got[1] != (statepkg.MoveSelectionAction{Delta: -1}) {
		t.Fatalf("unexpected wheel actions %#v", got)
	}
}

func TestOpenFailureShowsNoticeUntilExpired(t *testing.T) {
	ws := newTestWorkspace(t)
	opener := &stubOpener{err: errors.New("beta.txt: binary file")}
	app, _ := newTestApplication(t, Options{WorkspaceRoot: ws}, opener)

	app.apply(statepkg.OpenFileAction{Path: filepath.Join(ws, "beta.txt")})
	if !strings.HasPrefix(app.state.Notice, "Could not open file:") {
		t.Fatalf("expected notice, got %q", app.state.Notice)
	}
	if app.noticeCh == nil {
		t.Fatalf("expected notice timer to be armed")
	}
	if got := rowNames(app.state); len(got) != 2 {
		t.Fatalf("listing should survive a failed open, got %v", got)
	}

	app.expireNotice()
	if app.state.Notice != "" {
		t.Fatalf("expected notice to be dismissed, got %q", app.state.Notice)
	}
	if app.noticeCh != nil {
		t.Fatalf("expected timer to be disarmed")
	}
}

func TestHandleActionQuit(t *testing.T) {
	ws := newTestWorkspace(t)
	app, _ := newTestApplication(t, Options{WorkspaceRoot: ws}, &stubOpener{})

	if app.handleAction(statepkg.QuitAction{}) {
		t.Fatalf("quit should not request a render")
	}
	if !app.shouldQuit {
		t.Fatalf("expected shouldQuit")
	}
}

func TestRunProcessesKeysUntilQuit(t *testing.T) {
	ws := newTestWorkspace(t)
	opener := &stubOpener{}
	app, screen := newTestApplication(t, Options{WorkspaceRoot: ws}, opener)

	done := make(chan struct{})
	go func() {
		app.Run()
		close(done)
	}()

	screen.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after q")
	}

	if len(opener.opened) != 1 || opener.opened[0] != filepath.Join(ws, "beta.txt") {
		t.Fatalf("expected beta.txt to be opened, got %v", opener.opened)
	}
}
