package domain

import "errors"

// Error kinds. Call sites wrap these with context so callers can branch
// with errors.Is without losing the message.
var (
	// ErrNotFound means the referenced fair, artisan, application or user
	// does not exist. Deletes treat it as a no-op; lookups surface it.
	ErrNotFound = errors.New("not found")

	// ErrValidation means malformed input or a category the target fair
	// does not offer. Never auto-corrected.
	ErrValidation = errors.New("invalid input")

	// ErrCapacity means the requested category has no free slots. The
	// application stays pending and can be retried once capacity frees up.
	ErrCapacity = errors.New("no slots available")

	// ErrStorage means the backing store could not be read or written.
	// The operation must be treated as not having happened.
	ErrStorage = errors.New("storage failure")
)
