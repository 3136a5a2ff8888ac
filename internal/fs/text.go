package fs

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// sniffSize is how much of a file LooksLikeText reads.
const sniffSize = 4096

// Archives, media and compiled artifacts are never handed to an editor,
// whatever their first bytes look like.
var binaryExts = map[string]bool{
	".7z": true, ".bz2": true, ".gz": true, ".jar": true, ".tar": true,
	".tgz": true, ".xz": true, ".zip": true,
	".avi": true, ".bmp": true, ".flac": true, ".gif": true, ".ico": true,
	".jpeg": true, ".jpg": true, ".mkv": true, ".mov": true, ".mp3": true,
	".mp4": true, ".ogg": true, ".png": true, ".psd": true, ".wav": true,
	".doc": true, ".docx": true, ".pdf": true, ".ppt": true, ".pptx": true,
	".xls": true, ".xlsx": true,
	".class": true, ".dll": true, ".dylib": true, ".exe": true, ".so": true,
	".wasm": true,
	".otf": true, ".ttf": true, ".woff": true, ".woff2": true,
}

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// LooksLikeText reports whether the file at path can be opened as a text
// document. It rejects known binary extensions, then checks the first
// sniffSize bytes for NUL and for invalid UTF-8. UTF-16 files with a BOM
// count as text.
func LooksLikeText(path string) (bool, error) {
	if binaryExts[strings.ToLower(filepath.Ext(path))] {
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, sniffSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, err
	}
	return isTextSample(buf[:n], n == sniffSize), nil
}

// isTextSample classifies the head of a file. A truncated sample may end in
// the middle of a multi-byte rune, which is not held against it.
func isTextSample(sample []byte, truncated bool) bool {
	if bytes.HasPrefix(sample, bomUTF16LE) || bytes.HasPrefix(sample, bomUTF16BE) {
		return true
	}
	if bytes.IndexByte(sample, 0x00) >= 0 {
		return false
	}
	if truncated {
		sample = trimPartialRune(sample)
	}
	return utf8.Valid(sample)
}

func trimPartialRune(b []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		start := len(b) - i
		if !utf8.RuneStart(b[start]) {
			continue
		}
		if !utf8.FullRune(b[start:]) {
			return b[:start]
		}
		break
	}
	return b
}
