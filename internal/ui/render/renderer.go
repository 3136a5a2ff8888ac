package render

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/dirpanel/internal/state"
	"github.com/kk-code-lab/dirpanel/internal/textutil"
)

// NoticeDuration is how long a transient notice stays in the footer.
const NoticeDuration = 5 * time.Second

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	now              func() time.Time
	runeWidthCache   [128]int // ASCII cache (0-127), stored as width+2
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes

	layoutMu sync.RWMutex
	layout   Layout
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
		now:    time.Now,
	}
}

// LastLayout returns the hit regions of the most recent frame.
func (r *Renderer) LastLayout() Layout {
	r.layoutMu.RLock()
	defer r.layoutMu.RUnlock()
	return r.layout
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()
	w, h := r.screen.Size()

	layout := Layout{ListTop: listTopY, ListRows: h - statepkg.ChromeRows}
	if layout.ListRows < 0 {
		layout.ListRows = 0
	}

	layout.UpButton = r.drawHeader(state, w)
	r.drawSearchLine(state, w)

	view := &state.View
	if view.Err != nil {
		r.drawMessage(view.Message, w, layout, tcell.StyleDefault.Foreground(r.theme.ErrorFg))
	} else {
		layout.Headers = r.drawColumnHeaders(view, w)
		if len(view.Rows) == 0 {
			r.drawMessage(statepkg.EmptyMessage, w, layout, tcell.StyleDefault.Foreground(r.theme.MutedFg))
		} else {
			r.drawRows(state, w, layout)
		}
	}

	r.drawFooter(state, w, h)

	r.layoutMu.Lock()
	r.layout = layout
	r.layoutMu.Unlock()

	r.screen.Show()
}

// drawHeader renders the directory path and, when going up is possible,
// the up button at the right edge.
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) HitRegion {
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg).Bold(true)

	var button HitRegion
	pathWidth := w - 1
	if state.View.ShowUp {
		bw := textutil.DisplayWidth(upButtonLabel)
		if bw+2 <= w {
			button = HitRegion{X: w - bw, Y: headerY, Width: bw}
			pathWidth = button.X - 2
		}
	}

	path := state.View.Directory
	if path == "" {
		path = state.CurrentDir
	}
	path = textutil.TruncateLeftToWidth(cellText(path), pathWidth)

	r.screen.SetContent(0, headerY, ' ', nil, style)
	endX := r.drawTextLine(1, headerY, pathWidth, path, style)
	r.fillLine(endX, w, headerY, style)

	if button.Width > 0 {
		buttonStyle := style.Foreground(r.theme.UpButtonFg)
		r.drawTextLine(button.X, headerY, button.Width, upButtonLabel, buttonStyle)
	}
	return button
}

// drawSearchLine shows the query being typed, the active filter, or a hint.
func (r *Renderer) drawSearchLine(state *statepkg.AppState, w int) {
	style := tcell.StyleDefault.Foreground(r.theme.SearchFg)

	switch {
	case state.SearchEditing:
		text := " / " + cellText(state.SearchInput)
		endX := r.drawTextLine(0, searchY, w, text, style)
		if endX < w {
			r.screen.SetContent(endX, searchY, ' ', nil, style.Reverse(true))
		}
	case state.SearchText != "":
		text := " filter: " + cellText(state.SearchText)
		r.drawTextLine(0, searchY, w, text, style)
	default:
		r.drawTextLine(0, searchY, w, " / to filter", tcell.StyleDefault.Foreground(r.theme.MutedFg))
	}
}

func (r *Renderer) drawColumnHeaders(view *statepkg.ViewModel, w int) []HeaderCell {
	style := tcell.StyleDefault.Foreground(r.theme.ColumnFg)
	activeStyle := style.Bold(true)

	var cells []HeaderCell
	for _, span := range computeColumns(w) {
		col, ok := findColumn(view.Columns, span.key)
		if !ok {
			continue
		}
		label := col.Label
		cellStyle := style
		if ind := col.Indicator(); ind != "" {
			label += " " + ind
			cellStyle = activeStyle
		}
		r.drawCell(span.x, columnHeaderY, span.width, label, span.alignRight, cellStyle)
		cells = append(cells, HeaderCell{
			Key:    span.key,
			Region: HitRegion{X: span.x, Y: columnHeaderY, Width: span.width},
		})
	}
	return cells
}

func findColumn(columns []statepkg.Column, key statepkg.SortKey) (statepkg.Column, bool) {
	for _, col := range columns {
		if col.Key == key {
			return col, true
		}
	}
	return statepkg.Column{}, false
}

func (r *Renderer) drawRows(state *statepkg.AppState, w int, layout Layout) {
	spans := computeColumns(w)
	rows := state.View.Rows

	for i := 0; i < layout.ListRows; i++ {
		idx := state.ScrollOffset + i
		if idx >= len(rows) {
			break
		}
		row := rows[idx]
		y := layout.ListTop + i
		selected := idx == state.SelectedIndex

		nameStyle := tcell.StyleDefault.Foreground(r.theme.FileFg)
		if row.IsDir() {
			nameStyle = tcell.StyleDefault.Foreground(r.theme.DirectoryFg)
		}
		metaStyle := tcell.StyleDefault.Foreground(r.theme.MutedFg)
		if selected {
			nameStyle = tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
			metaStyle = nameStyle
		}

		icon := "  "
		if row.IsDir() {
			icon = "▸ "
		}
		r.drawTextLine(0, y, iconWidth, icon, nameStyle)

		prev := iconWidth
		for _, span := range spans {
			style := metaStyle
			if span.key == statepkg.SortByName {
				style = nameStyle
			}
			r.fillLine(prev, span.x, y, style)
			r.drawCell(span.x, y, span.width, rowCell(row, span.key), span.alignRight, style)
			prev = span.x + span.width
		}
		if selected {
			r.fillLine(prev, w, y, nameStyle)
		}
	}
}

func rowCell(row statepkg.Row, key statepkg.SortKey) string {
	switch key {
	case statepkg.SortBySize:
		return row.Size
	case statepkg.SortByCreated:
		return row.Created
	case statepkg.SortByModified:
		return row.Modified
	default:
		return row.Name
	}
}

// drawMessage replaces the list with a single line of text.
func (r *Renderer) drawMessage(message string, w int, layout Layout, style tcell.Style) {
	if layout.ListRows <= 0 {
		return
	}
	r.drawTextLine(1, layout.ListTop, w-1, cellText(message), style)
}

// drawFooter shows an unexpired notice, or the key help.
func (r *Renderer) drawFooter(state *statepkg.AppState, w, h int) {
	y := h - 1
	if y <= columnHeaderY {
		return
	}
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)

	text := buildFooterHelpText(state)
	if r.noticeVisible(state) {
		text = " " + state.Notice
		style = style.Foreground(r.theme.ErrorFg)
	}

	text = textutil.TruncateToWidth(cellText(text), w)
	endX := r.drawTextLine(0, y, w, text, style)
	r.fillLine(endX, w, y, style)
}

func (r *Renderer) noticeVisible(state *statepkg.AppState) bool {
	if state.Notice == "" {
		return false
	}
	if state.NoticeTime.IsZero() {
		return true
	}
	return r.now().Sub(state.NoticeTime) < NoticeDuration
}
