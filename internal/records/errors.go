package records

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned by Append when the collection already holds a
// record with the same id.
var ErrDuplicateID = errors.New("duplicate record id")

// StorageError reports a read, write or decode failure of the medium.
type StorageError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is, or wraps, a StorageError.
func IsStorageError(err error) bool {
	var serr *StorageError
	return errors.As(err, &serr)
}
