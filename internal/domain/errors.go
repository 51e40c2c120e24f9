package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors for the outcomes the API reports to callers. Handlers map
// these onto HTTP statuses; anything else is treated as an internal failure.
var (
	ErrInvalidID       = errors.New("invalid id")
	ErrNotFound        = errors.New("resource not found")
	ErrDuplicateTicket = errors.New("ticket exists already for this guest and event")
	ErrValidation      = errors.New("validation failed")
	ErrNoChange        = errors.New("no attribute or value was specified, nothing was changed")
	ErrEmailExists     = errors.New("email already registered")
)

// Entity-qualified not-found errors. They wrap ErrNotFound so that a
// cross-tenant lookup and a nonexistent id stay indistinguishable to the
// caller while the ticket issuance path can still name which reference failed.
var (
	ErrEventNotFound  = fmt.Errorf("event %w", ErrNotFound)
	ErrGuestNotFound  = fmt.Errorf("guest %w", ErrNotFound)
	ErrTicketNotFound = fmt.Errorf("ticket %w", ErrNotFound)
)

// Validationf builds a field-level validation error that matches
// errors.Is(err, ErrValidation).
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// ParseID validates a raw path parameter as an entity id. Ids are opaque
// positive integers; anything else is ErrInvalidID, which callers must report
// separately from ErrNotFound.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, ErrInvalidID
	}
	return id, nil
}
