package textutil

import (
	"fmt"
	"time"
)

// TimestampLayout is used for the created/modified columns.
const TimestampLayout = "2006-01-02 15:04"

// FormatSize renders a byte count with binary units.
func FormatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// FormatTimestamp renders t in local time, or "" when t is unknown.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(TimestampLayout)
}
