package writers

import (
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether err comes from a reader that went away
// early (e.g. `ab1align ... | head`).
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// DropBrokenPipe returns nil for broken-pipe errors and err otherwise.
func DropBrokenPipe(err error) error {
	if IsBrokenPipe(err) {
		return nil
	}
	return err
}
