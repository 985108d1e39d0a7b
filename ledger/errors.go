package ledger

import (
	"errors"
	"fmt"
)

// ErrSlotNotFound is returned when the ledger has no record of a slot.
var ErrSlotNotFound = errors.New("slot not found")

// StorageError reports a failure of the storage engine.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage unavailable: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// IsNotFound reports whether err means the slot is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSlotNotFound)
}

// IsStorageUnavailable reports whether err is a storage engine failure.
func IsStorageUnavailable(err error) bool {
	var serr *StorageError
	return errors.As(err, &serr)
}
