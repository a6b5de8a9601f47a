// Package pid guards against concurrent instances through a PID file in
// the system temp directory.
package pid

import (
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/errors"
)

const fileName = "pctoolmgr.pid"

func path() string {
	return filepath.Join(os.TempDir(), fileName)
}

// Acquire claims the PID file for this process. It fails when another
// live process already holds it; a stale file from a dead process is
// silently taken over.
func Acquire() error {
	errFactory := errors.New()

	if owner, ok := readOwner(); ok && alive(owner) {
		return errFactory.WithData(errors.ErrAlreadyRunning, owner)
	}

	if err := os.WriteFile(path(), []byte(strconv.Itoa(os.Getpid())), 0o600); err != nil {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	return nil
}

// Release removes the PID file. Releasing without a file is not an error.
func Release() error {
	if err := os.Remove(path()); err != nil && !os.IsNotExist(err) {
		return errors.New().Wrap(errors.ErrInternal, err)
	}

	return nil
}

func readOwner() (int, bool) {
	raw, err := os.ReadFile(path())
	if err != nil {
		return 0, false
	}

	owner, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, false
	}

	return owner, true
}

// alive probes the process with signal 0.
func alive(owner int) bool {
	process, err := os.FindProcess(owner)
	if err != nil {
		return false
	}

	return process.Signal(syscall.Signal(0)) == nil
}
