package catapi

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingID is returned when an operation needs an id and none was given.
	ErrMissingID = errors.New("id required")
	// ErrMissingData is returned when a success envelope carries no data.
	ErrMissingData = errors.New("response has no data")
	// ErrInvalidVote is returned for decisions other than like, dislike or love.
	ErrInvalidVote = errors.New("invalid vote")
)

// StatusError reports an envelope whose status is not success.
type StatusError struct {
	Endpoint string
	Status   string
	Message  string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "no message"
	}
	return fmt.Sprintf("api %s status %q: %s", e.Endpoint, e.Status, msg)
}

// IsStatusError reports whether err wraps a *StatusError.
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}
