package app

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// detectEditorCommand resolves the editor: an explicit override, then
// $VISUAL, $EDITOR and a per-platform default.
func detectEditorCommand(override string) ([]string, bool) {
	return detectEditorCommandInternal(runtime.GOOS, override, os.Getenv, exec.LookPath)
}

func detectEditorCommandInternal(goos, override string, getenv func(string) string, lookPath func(string) (string, error)) ([]string, bool) {
	for _, candidate := range []string{override, getenv("VISUAL"), getenv("EDITOR")} {
		args := parseEditorCommand(candidate)
		if len(args) == 0 {
			continue
		}
		if resolved, ok := resolveExecutable(args[0], lookPath); ok {
			args[0] = resolved
			return args, true
		}
	}

	defaults := [][]string{{"vim"}, {"vi"}, {"nano"}}
	if strings.EqualFold(goos, "windows") {
		defaults = [][]string{{"code", "--wait"}, {"notepad++.exe"}, {"notepad.exe"}}
	}
	for _, def := range defaults {
		if resolved, ok := resolveExecutable(def[0], lookPath); ok {
			return append([]string{resolved}, def[1:]...), true
		}
	}
	return nil, false
}

// parseEditorCommand splits a command line on unquoted whitespace. Single
// and double quotes group words; they do not nest.
func parseEditorCommand(cmd string) []string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	var args []string
	var current strings.Builder
	var quote rune

	for _, r := range cmd {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
		case unicode.IsSpace(r):
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}

	if len(args) > 0 {
		args[0] = expandUserPath(args[0])
	}
	return args
}

func expandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' && path[1] != '\\' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return home
	}
	return filepath.Join(home, path[2:])
}

func resolveExecutable(cmd string, lookPath func(string) (string, error)) (string, bool) {
	if cmd == "" {
		return "", false
	}
	path, err := lookPath(expandUserPath(cmd))
	if err != nil || path == "" {
		return "", false
	}
	return path, true
}
