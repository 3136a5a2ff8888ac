package fs

import (
	"os"
	"path/filepath"
)

// DirSize returns the total size of all files below root. Unreadable
// directories and entries that fail to stat count as zero; the walk never
// aborts. Symlinked directories are not descended into.
func DirSize(root string) int64 {
	var total int64
	pending := []string{root}

	for len(pending) > 0 {
		last := len(pending) - 1
		dir := pending[last]
		pending = pending[:last]

		children, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, child := range children {
			childPath := filepath.Join(dir, child.Name())
			if child.IsDir() {
				pending = append(pending, childPath)
				continue
			}
			total += fileSize(childPath, child)
		}
	}

	return total
}

func fileSize(path string, de os.DirEntry) int64 {
	if de.Type()&os.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return 0
		}
		return info.Size()
	}

	info, err := de.Info()
	if err != nil || !info.Mode().IsRegular() {
		return 0
	}
	return info.Size()
}
