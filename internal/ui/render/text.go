package render

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/dirpanel/internal/textutil"
	"github.com/mattn/go-runewidth"
)

// cachedRuneWidth memoizes runewidth lookups. Zero-width runes (combining
// marks) report -1 so drawTextLine can attach them to the previous cell.
func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru < 128 {
		r.runeWidthCacheMu.RLock()
		width := r.runeWidthCache[ru]
		r.runeWidthCacheMu.RUnlock()
		if width != 0 {
			return width - 2
		}
		actual := asciiWidth(ru)
		r.runeWidthCacheMu.Lock()
		r.runeWidthCache[ru] = actual + 2
		r.runeWidthCacheMu.Unlock()
		return actual
	}

	if cached, ok := r.runeWidthWide.Load(ru); ok {
		return cached.(int)
	}
	width := runewidth.RuneWidth(ru)
	if width == 0 {
		width = -1
	}
	r.runeWidthWide.Store(ru, width)
	return width
}

func asciiWidth(ru rune) int {
	if w := runewidth.RuneWidth(ru); w > 0 {
		return w
	}
	return -1
}

// drawTextLine draws text from startX, clipped to maxWidth cells, and returns
// the first column after the text.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		mainc := runes[i]
		w := r.cachedRuneWidth(mainc)
		if w < 0 {
			w = 0
		}
		if x-startX+w > maxWidth {
			break
		}
		i++

		var combc []rune
		for i < len(runes) && r.cachedRuneWidth(runes[i]) < 0 {
			combc = append(combc, runes[i])
			i++
		}

		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}

	return x
}

// fillLine paints blanks from startX up to (not including) endX.
func (r *Renderer) fillLine(startX, endX, y int, style tcell.Style) {
	for x := startX; x < endX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawCell draws text inside a fixed-width cell, truncated with an ellipsis
// and padded to the cell width.
func (r *Renderer) drawCell(x, y, width int, text string, alignRight bool, style tcell.Style) {
	if width <= 0 {
		return
	}
	text = textutil.TruncateToWidth(cellText(text), width)
	if alignRight {
		text = textutil.PadLeft(text, width)
	} else {
		text = textutil.PadRight(text, width)
	}
	end := r.drawTextLine(x, y, width, text, style)
	r.fillLine(end, x+width, y, style)
}

// cellText makes a file name safe for a single terminal row. Whitespace
// breaks become spaces. Control runes, bidi overrides and other invisible
// format runes become '?' so a name cannot inject escapes or reorder the row.
// ZWJ survives to keep emoji sequences intact.
func cellText(text string) string {
	if strings.IndexFunc(text, unsafeInCell) < 0 {
		return text
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r' || unicode.In(r, unicode.Zl, unicode.Zp):
			return ' '
		case unsafeInCell(r):
			return '?'
		default:
			return r
		}
	}, text)
}

func unsafeInCell(r rune) bool {
	if r == zeroWidthJoiner {
		return false
	}
	return unicode.IsControl(r) || unicode.In(r, unicode.Cf, unicode.Zl, unicode.Zp)
}

const zeroWidthJoiner = '\u200D'

