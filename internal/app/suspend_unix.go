//go:build !windows

package app

import (
	"syscall"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/dirpanel/internal/state"
	"go.uber.org/zap"
)

func (app *Application) suspendToShell() {
	_ = app.screen.Suspend()
	// Stop only this process so the shell's job control keeps working.
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		app.logger.Warn("resume after stop failed", zap.Error(err))
		return false
	}
	app.screen.EnableMouse()
	app.screen.Sync()
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		app.apply(statepkg.ResizeAction{Width: w, Height: h})
	}
	return true
}
