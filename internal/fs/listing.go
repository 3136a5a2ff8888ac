package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// StatErrorFunc is notified when a single entry cannot be stat'ed. The entry
// is still listed with zero size and times.
type StatErrorFunc func(path string, err error)

// ReadEntries lists the visible children of dir. Directory sizes are not
// computed here; see DirSize.
func ReadEntries(dir string, onStatErr StatErrorFunc) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		rawName := de.Name()
		if IsHidden(rawName) {
			continue
		}

		fullPath := filepath.Join(dir, rawName)
		entry := Entry{
			Name:     norm.NFC.String(rawName),
			FullPath: fullPath,
			IsDir:    de.IsDir(),
		}

		// os.Stat follows symlinks so a link to a folder lists as a folder.
		info, err := os.Stat(fullPath)
		if err != nil {
			if onStatErr != nil {
				onStatErr(fullPath, err)
			}
			entries = append(entries, entry)
			continue
		}

		entry.IsDir = info.IsDir()
		if info.Mode().IsRegular() {
			entry.Size = info.Size()
		}
		entry.Modified = info.ModTime()
		entry.Created = creationTime(info)
		entries = append(entries, entry)
	}

	return entries, nil
}
