package recommender

import "errors"

var (
	// ErrNetworkError indicates the service could not be reached
	ErrNetworkError = errors.New("recommendation service unreachable")
	// ErrServiceError indicates the service returned a non-2xx response
	ErrServiceError = errors.New("recommendation service error")
)
