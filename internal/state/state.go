package state

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// SortKey names the column the listing is ordered by.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortBySize     SortKey = "size"
	SortByCreated  SortKey = "createdAt"
	SortByModified SortKey = "modifiedAt"
)

// SortKeys lists the sortable columns in display order.
var SortKeys = []SortKey{SortByName, SortBySize, SortByCreated, SortByModified}

// Label is the column header text for the key.
func (k SortKey) Label() string {
	switch k {
	case SortByName:
		return "Name"
	case SortBySize:
		return "Size"
	case SortByCreated:
		return "Created"
	case SortByModified:
		return "Modified"
	default:
		return string(k)
	}
}

// Valid reports whether k is one of SortKeys.
func (k SortKey) Valid() bool {
	for _, known := range SortKeys {
		if k == known {
			return true
		}
	}
	return false
}

// ParseSortKey accepts the column names plus the ctime/mtime aliases.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return SortByName, nil
	case "size":
		return SortBySize, nil
	case "createdat", "created", "ctime":
		return SortByCreated, nil
	case "modifiedat", "modified", "mtime":
		return SortByModified, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (want name, size, createdAt or modifiedAt)", s)
	}
}

// SortDirection multiplies the key comparator.
type SortDirection int

const (
	Ascending  SortDirection = 1
	Descending SortDirection = -1
)

// Indicator is the arrow drawn next to the active column.
func (d SortDirection) Indicator() string {
	if d == Descending {
		return "▼"
	}
	return "▲"
}

// ChromeRows is the number of screen rows not available to the entry list:
// path header, search line, column header and footer.
const ChromeRows = 4

// AppState is the single source of truth for one panel.
type AppState struct {
	// Navigator
	CurrentDir string
	SortKey    SortKey
	SortDir    SortDirection
	SearchText string

	// Result of the last listing pass
	View ViewModel

	// Selection & viewport
	SelectedIndex int
	ScrollOffset  int
	ScreenWidth   int
	ScreenHeight  int

	// Search input as typed, before the debounced SearchAction lands
	SearchEditing bool
	SearchInput   string

	// Transient user-visible error (file open failures)
	Notice     string
	NoticeTime time.Time
}

// NewAppState returns the defaults every fresh panel starts from. The start
// directory wins over the workspace root; both may be empty.
func NewAppState(workspaceRoot, startDir string) *AppState {
	current := startDir
	if current == "" {
		current = workspaceRoot
	}
	if current != "" {
		current = filepath.Clean(current)
	}
	return &AppState{
		CurrentDir: current,
		SortKey:    SortByName,
		SortDir:    Ascending,
	}
}

func (s *AppState) applySort(key SortKey) {
	if key == s.SortKey {
		s.SortDir = -s.SortDir
		return
	}
	s.SortKey = key
	s.SortDir = Ascending
}

// SelectedRow returns the highlighted row, or nil when the list is empty.
func (s *AppState) SelectedRow() *Row {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.View.Rows) {
		return nil
	}
	return &s.View.Rows[s.SelectedIndex]
}

// VisibleRows is how many entries fit on screen.
func (s *AppState) VisibleRows() int {
	rows := s.ScreenHeight - ChromeRows
	if rows < 1 {
		return 1
	}
	return rows
}

func (s *AppState) resetViewport() {
	s.SelectedIndex = 0
	s.ScrollOffset = 0
}

func (s *AppState) clampSelection() {
	count := len(s.View.Rows)
	if count == 0 {
		s.SelectedIndex = 0
		s.ScrollOffset = 0
		return
	}
	if s.SelectedIndex >= count {
		s.SelectedIndex = count - 1
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
	s.updateScrollVisibility()
}

func (s *AppState) updateScrollVisibility() {
	visible := s.VisibleRows()

	if s.SelectedIndex < s.ScrollOffset {
		s.ScrollOffset = s.SelectedIndex
	} else if s.SelectedIndex >= s.ScrollOffset+visible {
		s.ScrollOffset = s.SelectedIndex - visible + 1
	}

	maxOffset := len(s.View.Rows) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ScrollOffset > maxOffset {
		s.ScrollOffset = maxOffset
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}
