package state

import (
	fsutil "github.com/kk-code-lab/dirpanel/internal/fs"
)

// RowKind selects the icon drawn for a row.
type RowKind int

const (
	RowFile RowKind = iota
	RowFolder
)

// Column is a sortable header cell.
type Column struct {
	Key       SortKey
	Label     string
	Active    bool
	Direction SortDirection
}

// Indicator returns the sort arrow for the active column and "" otherwise.
func (c Column) Indicator() string {
	if !c.Active {
		return ""
	}
	return c.Direction.Indicator()
}

// Row is one render-ready entry. FullPath is the key echoed back by
// OpenFolderAction and OpenFileAction.
type Row struct {
	Kind     RowKind
	Name     string
	Size     string
	Created  string
	Modified string
	FullPath string
	Entry    fsutil.Entry
}

// IsDir reports whether the row is a folder.
func (r Row) IsDir() bool {
	return r.Kind == RowFolder
}

// ViewModel is the fully computed listing of the current directory. When Err
// is set, Message replaces the whole list.
type ViewModel struct {
	Directory string
	ShowUp    bool
	Columns   []Column
	Rows      []Row
	Err       error
	Message   string
}

// EmptyMessage is shown in place of rows when nothing matches.
const EmptyMessage = "No files/folders"
