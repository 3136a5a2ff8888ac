package app

import (
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

func TestEditorOpenerRunsEditorWithPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	opener := newTestOpener(t, "fake-editor", "--wait")

	var recorded []string
	var err error
	withFakeCommandBuilder(t, 0, &recorded, func() {
		err = opener.Open(path)
	})
	if err != nil {
		t.Fatalf("expected open to succeed, got %v", err)
	}
	assertCommandRecorded(t, recorded, []string{"fake-editor", "--wait", path})
}

func TestEditorOpenerReportsEditorFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	opener := newTestOpener(t, "fake-editor")

	var err error
	withFakeCommandBuilder(t, 3, nil, func() {
		err = opener.Open(path)
	})
	if err == nil {
		t.Fatalf("expected editor exit status to surface")
	}
	if got := err.Error(); !strings.Contains(got, "fake-editor") {
		t.Fatalf("expected error mentioning the editor, got %q", got)
	}
}

func TestEditorOpenerRejectsUnopenablePaths(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "blob.bin")
	if err := os.WriteFile(binary, []byte{0x00, 0x01, 0x02, 0xff}, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing", filepath.Join(dir, "gone.txt"), fs.ErrNotExist},
		{"directory", dir, ErrNotRegularFile},
		{"binary", binary, ErrBinaryFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opener := newTestOpener(t, "fake-editor")
			var recorded []string
			var err error
			withFakeCommandBuilder(t, 0, &recorded, func() {
				err = opener.Open(tt.path)
			})
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !strings.HasPrefix(err.Error(), filepath.Base(tt.path)+":") {
				t.Fatalf("expected error to name the file, got %q", err)
			}
			if recorded != nil {
				t.Fatalf("editor should not run, ran %v", recorded)
			}
		})
	}
}

func TestEditorOpenerWithoutEditor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	opener := newTestOpener(t)

	if err := opener.Open(path); !errors.Is(err, ErrNoEditor) {
		t.Fatalf("expected ErrNoEditor, got %v", err)
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	code, err := strconv.Atoi(os.Getenv("HELPER_PROCESS_EXIT"))
	if err != nil {
		code = 1
	}
	os.Exit(code)
}

func newTestOpener(t *testing.T, command ...string) *EditorOpener {
	t.Helper()
	return &EditorOpener{
		screen:  newTestScreen(t),
		command: command,
		logger:  zap.NewNop(),
	}
}

func withFakeCommandBuilder(t *testing.T, exitCode int, recorded *[]string, fn func()) {
	t.Helper()
	orig := commandBuilder
	commandBuilder = func(name string, args ...string) *exec.Cmd {
		if recorded != nil {
			*recorded = append([]string{name}, args...)
		}
		return helperProcessCommand(exitCode, name, args...)
	}
	defer func() {
		commandBuilder = orig
	}()
	fn()
}

func helperProcessCommand(exitCode int, name string, args ...string) *exec.Cmd {
	cmdArgs := []string{"-test.run=TestHelperProcess", "--", name}
	cmdArgs = append(cmdArgs, args...)
	cmd := exec.Command(os.Args[0], cmdArgs...)
	cmd.Env = append(os.Environ(),
		"GO_WANT_HELPER_PROCESS=1",
		"HELPER_PROCESS_EXIT="+strconv.Itoa(exitCode),
	)
	return cmd
}

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("failed to init screen: %v", err)
	}
	t.Cleanup(func() {
		screen.Fini()
	})
	return screen
}

func assertCommandRecorded(t *testing.T, recorded, want []string) {
	t.Helper()
	if len(recorded) != len(want) {
		t.Fatalf("expected command %v, got %v", want, recorded)
	}
	for i := range want {
		if recorded[i] != want[i] {
			t.Fatalf("expected command %v, got %v", want, recorded)
		}
	}
}
