package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/dirpanel/internal/state"
)

// lastRow selects the final row; SelectIndexAction clamps it.
const lastRow = int(^uint(0) >> 1)

// defaultPageSize is used for PgUp/PgDn before the first resize.
const defaultPageSize = 10

var sortKeyRunes = map[rune]statepkg.SortKey{
	'1': statepkg.SortByName,
	'2': statepkg.SortBySize,
	'3': statepkg.SortByCreated,
	'4': statepkg.SortByModified,
	'n': statepkg.SortByName,
	's': statepkg.SortBySize,
	'c': statepkg.SortByCreated,
	'm': statepkg.SortByModified,
}

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
	search     *Debouncer
	query      []rune
}

// NewInputHandler creates a new input handler. Search keystrokes are
// coalesced into one SearchAction per debounce window.
func NewInputHandler(actionChan chan statepkg.Action, debounce time.Duration) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
		search:     NewDebouncer(debounce),
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// Stop cancels a pending debounced search.
func (ih *InputHandler) Stop() {
	ih.search.Cancel()
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the user asked to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) searchEditing() bool {
	return ih.state != nil && ih.state.SearchEditing
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		ih.search.Cancel()
		ih.actionChan <- statepkg.QuitAction{}
		return false
	}

	if ev.Key() == tcell.KeyCtrlZ {
		ih.actionChan <- statepkg.SuspendAction{}
		return true
	}

	if ih.searchEditing() {
		ih.processSearchKey(ev)
		return true
	}
	return ih.processNormalKey(ev)
}

// processSearchKey edits the query. The visible input follows every
// keystroke; the listing only follows the debounced SearchAction.
func (ih *InputHandler) processSearchKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		ih.search.Cancel()
		ih.actionChan <- statepkg.SearchAction{Value: string(ih.query)}
		ih.actionChan <- statepkg.SearchModeAction{Active: false}

	case tcell.KeyEscape:
		ih.search.Cancel()
		ih.query = ih.query[:0]
		ih.actionChan <- statepkg.SearchAction{Value: ""}
		ih.actionChan <- statepkg.SearchModeAction{Active: false}

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(ih.query) == 0 {
			return
		}
		ih.query = ih.query[:len(ih.query)-1]
		ih.queryChanged()

	case tcell.KeyCtrlU:
		if len(ih.query) == 0 {
			return
		}
		ih.query = ih.query[:0]
		ih.queryChanged()

	case tcell.KeyUp:
		ih.actionChan <- statepkg.MoveSelectionAction{Delta: -1}

	case tcell.KeyDown:
		ih.actionChan <- statepkg.MoveSelectionAction{Delta: 1}

	case tcell.KeyRune:
		ih.query = append(ih.query, ev.Rune())
		ih.queryChanged()
	}
}

func (ih *InputHandler) queryChanged() {
	value := string(ih.query)
	ih.actionChan <- statepkg.SearchEditAction{Value: value}
	ih.search.Trigger(func() {
		ih.actionChan <- statepkg.SearchAction{Value: value}
	})
}

func (ih *InputHandler) processNormalKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		ih.actionChan <- statepkg.MoveSelectionAction{Delta: -1}
	case tcell.KeyDown:
		ih.actionChan <- statepkg.MoveSelectionAction{Delta: 1}
	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.MoveSelectionAction{Delta: -ih.pageSize()}
	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.MoveSelectionAction{Delta: ih.pageSize()}
	case tcell.KeyHome:
		ih.actionChan <- statepkg.SelectIndexAction{Index: 0}
	case tcell.KeyEnd:
		ih.actionChan <- statepkg.SelectIndexAction{Index: lastRow}
	case tcell.KeyEnter, tcell.KeyRight:
		ih.actionChan <- statepkg.ActivateSelectionAction{}
	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.GoUpAction{}
	case tcell.KeyEscape:
		ih.processEscape()
	case tcell.KeyRune:
		return ih.processNormalRune(ev.Rune())
	}
	return true
}

func (ih *InputHandler) processNormalRune(r rune) bool {
	if key, ok := sortKeyRunes[r]; ok {
		ih.actionChan <- statepkg.SortAction{By: key}
		return true
	}

	switch r {
	case 'k':
		ih.actionChan <- statepkg.MoveSelectionAction{Delta: -1}
	case 'j':
		ih.actionChan <- statepkg.MoveSelectionAction{Delta: 1}
	case 'l':
		ih.actionChan <- statepkg.ActivateSelectionAction{}
	case 'h':
		ih.actionChan <- statepkg.GoUpAction{}
	case 'g':
		ih.actionChan <- statepkg.SelectIndexAction{Index: 0}
	case 'G':
		ih.actionChan <- statepkg.SelectIndexAction{Index: lastRow}
	case '/':
		ih.query = ih.query[:0]
		if ih.state != nil {
			ih.query = append(ih.query, []rune(ih.state.SearchText)...)
		}
		ih.actionChan <- statepkg.SearchModeAction{Active: true}
	case 'r':
		ih.actionChan <- statepkg.RefreshAction{}
	case 'q', 'Q':
		ih.search.Cancel()
		ih.actionChan <- statepkg.QuitAction{}
		return false
	}
	return true
}

// processEscape dismisses a visible notice first, then clears the filter.
func (ih *InputHandler) processEscape() {
	if ih.state == nil {
		return
	}
	switch {
	case ih.state.Notice != "":
		ih.actionChan <- statepkg.DismissNoticeAction{}
	case ih.state.SearchText != "":
		ih.query = ih.query[:0]
		ih.actionChan <- statepkg.SearchAction{Value: ""}
	}
}

func (ih *InputHandler) pageSize() int {
	if ih.state == nil || ih.state.ScreenHeight == 0 {
		return defaultPageSize
	}
	return ih.state.VisibleRows()
}
