package app

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/dirpanel/internal/state"
	inputui "github.com/kk-code-lab/dirpanel/internal/ui/input"
	renderui "github.com/kk-code-lab/dirpanel/internal/ui/render"
	"go.uber.org/zap"
)

// Options configures a panel.
type Options struct {
	// WorkspaceRoot bounds upward navigation; empty means unrestricted.
	WorkspaceRoot string
	// StartDir is the first directory shown; defaults to WorkspaceRoot.
	StartDir       string
	Editor         string
	SearchDebounce time.Duration
	Logger         *zap.Logger
}

// Application represents the running app.
type Application struct {
	screen   tcell.Screen
	state    *statepkg.AppState
	reducer  *statepkg.StateReducer
	renderer *renderui.Renderer
	input    *inputui.InputHandler
	actionCh chan statepkg.Action
	logger   *zap.Logger
	now      func() time.Time

	shouldQuit bool

	lastButtons    tcell.ButtonMask
	lastClickIndex int
	lastClickTime  time.Time

	noticeTimer *time.Timer
	noticeCh    <-chan time.Time
	noticeStamp time.Time
}

// NewApplication opens the terminal and lists the start directory.
func NewApplication(opts Options) (*Application, error) {
	// UTF-8 fallback keeps non-ASCII names readable on minimal terminals.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("cannot create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("cannot initialize screen: %w", err)
	}
	screen.EnableMouse()

	opener := NewEditorOpener(screen, opts.Editor, opts.Logger)
	return newApplication(screen, opts, opener), nil
}

func newApplication(screen tcell.Screen, opts Options, opener statepkg.DocumentOpener) *Application {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	state := statepkg.NewAppState(opts.WorkspaceRoot, opts.StartDir)
	state.ScreenWidth, state.ScreenHeight = screen.Size()

	actionCh := make(chan statepkg.Action, 32)
	reducer := statepkg.NewStateReducer(statepkg.Options{
		Workspace: statepkg.StaticWorkspace(opts.WorkspaceRoot),
		Opener:    opener,
		Logger:    logger,
	})
	reducer.Refresh(state)

	inputHandler := inputui.NewInputHandler(actionCh, opts.SearchDebounce)
	inputHandler.SetState(state)

	logger.Info("panel started",
		zap.String("workspace", opts.WorkspaceRoot),
		zap.String("dir", state.CurrentDir))

	return &Application{
		screen:         screen,
		state:          state,
		reducer:        reducer,
		renderer:       renderui.NewRenderer(screen),
		input:          inputHandler,
		actionCh:       actionCh,
		logger:         logger,
		now:            time.Now,
		lastClickIndex: -1,
	}
}

// Close cleans up resources.
func (app *Application) Close() error {
	app.input.Stop()
	if app.noticeTimer != nil {
		app.noticeTimer.Stop()
	}
	app.screen.Fini()
	_ = app.logger.Sync()
	return nil
}

// CurrentDir returns the directory shown when the panel closed.
func (app *Application) CurrentDir() string {
	return app.state.View.Directory
}
