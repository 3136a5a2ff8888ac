package render

import (
	statepkg "github.com/kk-code-lab/dirpanel/internal/state"
)

// Screen rows, top to bottom. The list fills everything between
// columnHeaderY and the footer.
const (
	headerY       = 0
	searchY       = 1
	columnHeaderY = 2
	listTopY      = 3
)

const (
	iconWidth     = 2
	columnGap     = 2
	sizeWidth     = 10
	dateWidth     = 16 // len("2006-01-02 15:04")
	minNameWidth  = 12
	upButtonLabel = "[↑]"
)

// HitRegion is a clickable rectangle one row high.
type HitRegion struct {
	X, Y, Width int
}

// Contains reports whether the cell (x, y) is inside the region.
func (h HitRegion) Contains(x, y int) bool {
	return h.Width > 0 && y == h.Y && x >= h.X && x < h.X+h.Width
}

// HeaderCell is the clickable area of one column header.
type HeaderCell struct {
	Key    statepkg.SortKey
	Region HitRegion
}

// Layout describes where the last frame put its interactive parts.
type Layout struct {
	UpButton HitRegion
	Headers  []HeaderCell
	ListTop  int
	ListRows int
}

// HeaderAt returns the sort key whose header contains (x, y).
func (l Layout) HeaderAt(x, y int) (statepkg.SortKey, bool) {
	for _, cell := range l.Headers {
		if cell.Region.Contains(x, y) {
			return cell.Key, true
		}
	}
	return "", false
}

// RowAt maps a screen row to a list index given the scroll offset. The
// caller checks the index against the number of rows.
func (l Layout) RowAt(y, scrollOffset int) (int, bool) {
	if y < l.ListTop || y >= l.ListTop+l.ListRows {
		return 0, false
	}
	return scrollOffset + y - l.ListTop, true
}

// columnSpan places one column on a row.
type columnSpan struct {
	key        statepkg.SortKey
	x          int
	width      int
	alignRight bool
}

// computeColumns lays out the list columns for a screen width. Date columns
// are dropped first when space runs out, then size; the name column always
// stays and absorbs the remaining width.
func computeColumns(width int) []columnSpan {
	fixed := []columnSpan{
		{key: statepkg.SortBySize, width: sizeWidth, alignRight: true},
		{key: statepkg.SortByCreated, width: dateWidth},
		{key: statepkg.SortByModified, width: dateWidth},
	}

	for len(fixed) > 0 && iconWidth+minNameWidth+fixedWidth(fixed) > width {
		switch len(fixed) {
		case 3:
			fixed = []columnSpan{fixed[0], fixed[2]}
		case 2:
			fixed = fixed[:1]
		default:
			fixed = nil
		}
	}

	nameWidth := width - iconWidth - fixedWidth(fixed)
	if nameWidth < 0 {
		nameWidth = 0
	}

	spans := []columnSpan{{key: statepkg.SortByName, x: iconWidth, width: nameWidth}}
	x := iconWidth + nameWidth
	for _, col := range fixed {
		x += columnGap
		col.x = x
		spans = append(spans, col)
		x += col.width
	}
	return spans
}

func fixedWidth(cols []columnSpan) int {
	total := 0
	for _, col := range cols {
		total += columnGap + col.width
	}
	return total
}
