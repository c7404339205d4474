//go:build unix

package renamer

import (
	"errors"
	"syscall"
)

func isLockError(err error) bool {
	return errors.Is(err, syscall.EBUSY) || errors.Is(err, syscall.ETXTBSY)
}
