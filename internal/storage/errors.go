package storage

import "fmt"

// StorageError reports that the backing file could not be read, written or
// created. Any change the caller was persisting must be treated as not
// committed.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
