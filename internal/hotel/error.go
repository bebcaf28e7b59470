package hotel

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRange           = errors.New("check-out must be after check-in")
	ErrNoAvailability         = errors.New("no room of the requested variant is free")
	ErrDuplicateReservationID = errors.New("reservation id already exists")
	ErrNotFound               = errors.New("reservation not found")
	ErrRoomNotFound           = errors.New("room not found")
	ErrPasswordMismatch       = errors.New("password does not match")
	ErrAlreadyOccupied        = errors.New("room is already occupied")
	ErrNotOccupied            = errors.New("room is not occupied")
)

// PersistenceError reports a log write that failed after the in-memory state
// had already been updated. The booking stands; only its durability is in
// doubt, so callers should treat this as a warning rather than roll back.
type PersistenceError struct {
	Op  string
	Err error
}

func newPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

func IsPersistenceError(err error) *PersistenceError {
	if err == nil {
		return nil
	}

	var persistenceError *PersistenceError

	if errors.As(err, &persistenceError) {
		return persistenceError
	}

	return nil
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
