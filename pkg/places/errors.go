package places

import "errors"

var (
	ErrNetworkError   = errors.New("places: network error")
	ErrUnauthorized   = errors.New("places: request denied")
	ErrInvalidRequest = errors.New("places: invalid request")
)
