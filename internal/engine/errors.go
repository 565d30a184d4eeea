package engine

import (
	"errors"
	"fmt"
)

// ErrTaskNotFound covers a task that is missing, owned by someone else, or
// already inactive. Rendered to the user as "nothing to do"; not retried.
var ErrTaskNotFound = errors.New("task not found")

// ErrStoreBusy means the write serializer could not be acquired within its
// bounded wait. Transient; the caller may retry with backoff. No state was
// touched.
var ErrStoreBusy = errors.New("store busy, try again")

// InvariantError flags persisted state that violates a progression
// invariant (e.g. negative XP). Fatal for the operation: logged loudly,
// nothing mutated.
type InvariantError struct {
	UserID int64
	Detail string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("progression invariant violated for user %d: %s", e.UserID, e.Detail)
}
