package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/dirpanel/internal/fs"
	"go.uber.org/zap"
)

var (
	// ErrNoEditor means no editor could be resolved.
	ErrNoEditor = errors.New("no editor found (set $VISUAL or $EDITOR)")
	// ErrNotRegularFile is returned for directories and special files.
	ErrNotRegularFile = errors.New("not a regular file")
	// ErrBinaryFile is returned for files that do not look like text.
	ErrBinaryFile = errors.New("binary file")
)

var commandBuilder = exec.Command

// EditorOpener opens documents in an external terminal editor, suspending
// the screen while it runs.
type EditorOpener struct {
	screen  tcell.Screen
	command []string
	logger  *zap.Logger
}

// NewEditorOpener resolves the editor command once. override takes
// precedence over $VISUAL and $EDITOR.
func NewEditorOpener(screen tcell.Screen, override string, logger *zap.Logger) *EditorOpener {
	if logger == nil {
		logger = zap.NewNop()
	}
	command, _ := detectEditorCommand(override)
	return &EditorOpener{screen: screen, command: command, logger: logger}
}

// Open implements state.DocumentOpener.
func (o *EditorOpener) Open(path string) error {
	name := filepath.Base(path)

	info, err := os.Stat(path)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			err = pathErr.Err
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", name, ErrNotRegularFile)
	}

	text, err := fsutil.LooksLikeText(path)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if !text {
		return fmt.Errorf("%s: %w", name, ErrBinaryFile)
	}

	if len(o.command) == 0 {
		return ErrNoEditor
	}

	args := editorArgsWithFile(o.command, path)
	o.logger.Debug("launching editor", zap.Strings("args", args))
	if err := o.runInTerminal(args); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(args[0]), err)
	}
	return nil
}

func editorArgsWithFile(command []string, path string) []string {
	args := make([]string, len(command)+1)
	copy(args, command)
	args[len(command)] = path
	return args
}

// runInTerminal gives the controlling terminal to the command and takes it
// back afterwards.
func (o *EditorOpener) runInTerminal(args []string) error {
	var tty *os.File
	if runtime.GOOS != "windows" {
		if f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
			tty = f
			defer func() {
				_ = tty.Close()
			}()
		}
	}

	if err := o.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}

	cmd := commandBuilder(args[0], args[1:]...)
	if tty != nil {
		cmd.Stdin, cmd.Stdout, cmd.Stderr = tty, tty, tty
	} else {
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	}
	runErr := cmd.Run()

	flushPendingInput()
	if err := o.screen.Resume(); err != nil {
		return fmt.Errorf("failed to resume screen: %w", err)
	}
	o.screen.Sync()
	return runErr
}
