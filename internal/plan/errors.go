package plan

import "errors"

var (
	// ErrUnauthenticated is returned by every mutation attempted
	// without an active session. Mutations never apply silently.
	ErrUnauthenticated = errors.New("not authenticated")

	ErrEmptyTitle = errors.New("title must not be empty")
	ErrNoExercise = errors.New("exercise must be selected")
	ErrBadNumber  = errors.New("value must be a non-negative number")
)
