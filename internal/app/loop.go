package app

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/dirpanel/internal/state"
	renderui "github.com/kk-code-lab/dirpanel/internal/ui/render"
	"go.uber.org/zap"
)

const doubleClickThreshold = 300 * time.Millisecond

// Run processes input until the user quits. Actions are reduced one at a
// time on this goroutine, each including its full re-list.
func (app *Application) Run() {
	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-app.noticeCh:
			app.expireNotice()
			renderPending = true
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventMouse:
		app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse maps wheel scrolling and primary-button presses on the up
// button, a column header or a row. Drags and releases are ignored.
func (app *Application) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && app.lastButtons&tcell.Button1 == 0
	app.lastButtons = buttons

	switch {
	case buttons&tcell.WheelUp != 0:
		app.actionCh <- statepkg.MoveSelectionAction{Delta: -1}
		return
	case buttons&tcell.WheelDown != 0:
		app.actionCh <- statepkg.MoveSelectionAction{Delta: 1}
		return
	case !pressed:
		return
	}

	x, y := ev.Position()
	layout := app.renderer.LastLayout()

	if layout.UpButton.Contains(x, y) {
		app.actionCh <- statepkg.GoUpAction{}
		return
	}
	if key, ok := layout.HeaderAt(x, y); ok {
		app.actionCh <- statepkg.SortAction{By: key}
		return
	}

	idx, ok := layout.RowAt(y, app.state.ScrollOffset)
	if !ok || idx >= len(app.state.View.Rows) {
		return
	}

	now := app.now()
	doubleClick := idx == app.lastClickIndex && now.Sub(app.lastClickTime) <= doubleClickThreshold
	app.actionCh <- statepkg.SelectIndexAction{Index: idx}
	if doubleClick {
		app.actionCh <- statepkg.ActivateSelectionAction{}
		app.lastClickIndex = -1
		app.lastClickTime = time.Time{}
		return
	}
	app.lastClickIndex = idx
	app.lastClickTime = now
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	}

	app.apply(action)
	return true
}

// apply reduces one action and re-arms the notice timer when the action
// produced a new notice.
func (app *Application) apply(action statepkg.Action) {
	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.logger.Error("action failed",
			zap.String("action", fmt.Sprintf("%T", action)),
			zap.Error(err))
	}
	app.syncNoticeTimer()
}

func (app *Application) syncNoticeTimer() {
	if app.state.Notice == "" {
		app.stopNoticeTimer()
		app.noticeStamp = time.Time{}
		return
	}
	if app.state.NoticeTime.Equal(app.noticeStamp) {
		return
	}

	app.stopNoticeTimer()
	app.noticeStamp = app.state.NoticeTime
	app.noticeTimer = time.NewTimer(renderui.NoticeDuration)
	app.noticeCh = app.noticeTimer.C
}

func (app *Application) stopNoticeTimer() {
	if app.noticeTimer != nil {
		app.noticeTimer.Stop()
		app.noticeTimer = nil
	}
	app.noticeCh = nil
}

// expireNotice clears the notice the timer was armed for; a newer notice
// keeps its own timer.
func (app *Application) expireNotice() {
	app.noticeTimer = nil
	app.noticeCh = nil
	if app.state.Notice != "" && app.state.NoticeTime.Equal(app.noticeStamp) {
		app.apply(statepkg.DismissNoticeAction{})
	}
}
