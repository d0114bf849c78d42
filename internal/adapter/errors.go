package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrNotFound            = errors.New("entity not found on server")
	ErrVersionConflict     = errors.New("version conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	// ErrWaitingForNetwork is the designated non-error sentinel for
	// connectivity loss. It must never surface as a user-facing failure;
	// schedulers treat it as "will resume once the network returns".
	ErrWaitingForNetwork = errors.New("waiting for network connectivity")
)

// IsOffline reports whether err is the connectivity sentinel. Error-reporting
// paths use it to filter the offline state out of failure banners.
func IsOffline(err error) bool {
	return errors.Is(err, ErrWaitingForNetwork)
}
