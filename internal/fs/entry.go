package fs

import (
	"time"
)

// HiddenMarker is the leading character that marks an entry as hidden.
const HiddenMarker = '.'

// Entry represents a single child of a listed directory.
type Entry struct {
	Name     string
	FullPath string
	IsDir    bool
	Size     int64
	Created  time.Time
	Modified time.Time
}

// CreatedMillis returns the creation time in epoch milliseconds, 0 if unknown.
func (e Entry) CreatedMillis() int64 {
	return epochMillis(e.Created)
}

// ModifiedMillis returns the modification time in epoch milliseconds, 0 if unknown.
func (e Entry) ModifiedMillis() int64 {
	return epochMillis(e.Modified)
}

func epochMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// IsHidden reports whether name starts with the hidden marker.
func IsHidden(name string) bool {
	return len(name) > 0 && name[0] == HiddenMarker
}
