package errors

import (
	"storefront/internal/errors"
)

// AsAppError extracts the first AppError in err's chain.
func AsAppError(err error) (AppError, bool) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}

	return nil, false
}

// AsRemoteError extracts the backend rejection in err's chain, if any.
func AsRemoteError(err error) (*RemoteError, bool) {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr, true
	}

	return nil, false
}

// IsAuthRejection reports whether err carries a 401/403 from the backend.
func IsAuthRejection(err error) bool {
	remoteErr, ok := AsRemoteError(err)

	return ok && remoteErr.IsAuthRejection()
}
