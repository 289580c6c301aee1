package node

import (
	"errors"
	"os"
	"syscall"
)

var (
	ErrDataDirUsed = errors.New("dataDir already used by another process")
	ErrNodeStopped = errors.New("node not started")
	ErrNodeRunning = errors.New("node already running")
	ErrConfigNil   = errors.New("config is nil")

	datadirInUseErrnos = map[uint]bool{11: true, 32: true, 35: true}
)

// convertFileLockError maps the errno goleveldb surfaces when another
// process holds the data dir lock onto ErrDataDirUsed.
func convertFileLockError(err error) error {
	if pathErr, ok := err.(*os.PathError); ok {
		err = pathErr.Err
	}
	if errno, ok := err.(syscall.Errno); ok && datadirInUseErrnos[uint(errno)] {
		return ErrDataDirUsed
	}
	return err
}
