package services

import "fmt"

// StorageError means the backing query itself failed (connectivity,
// constraint violation). The underlying message is kept for diagnostics, not
// user display. Distinguish with errors.As.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ShapeError means the query succeeded but the result did not match the
// expected row shape. Always surfaced, never swallowed; it signals a defect
// rather than an operational failure.
type ShapeError struct {
	Op  string
	Err error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: unexpected row shape: %v", e.Op, e.Err)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func shapeErr(op string, err error) error {
	return &ShapeError{Op: op, Err: err}
}
