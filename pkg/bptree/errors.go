package bptree

import "fmt"

// treeError is a small sentinel error type in the style of the
// teacher's store.KVError: an unexported struct with package-level var
// instances, so callers compare with errors.Is rather than string
// matching.
type treeError struct {
	message string
}

func (e *treeError) Error() string { return e.message }

var (
	// ErrInvalidCapacity is returned by New when capacity < 4.
	ErrInvalidCapacity = &treeError{"bptree: invalid capacity"}
	// ErrKeyNotFound is returned by the item-style accessors (GetItem,
	// RemoveItem) when the key is absent. Get and Remove report the
	// same condition with a boolean instead.
	ErrKeyNotFound = &treeError{"bptree: key not found"}
	// ErrDataIntegrity is returned by Insert when a post-split
	// consistency check fails. It should never be observed in
	// practice; it exists so a corrupted split surfaces as an error
	// instead of silently returning wrong data or panicking.
	ErrDataIntegrity = &treeError{"bptree: data integrity violation"}
)

func invalidCapacityError(capacity int) error {
	return fmt.Errorf("%w: %d (minimum is 4)", ErrInvalidCapacity, capacity)
}

func keyNotFoundError() error {
	return fmt.Errorf("%w", ErrKeyNotFound)
}

func dataIntegrityError(detail string) error {
	return fmt.Errorf("%w: %s", ErrDataIntegrity, detail)
}

// validationError is returned by Arena.Validate and Tree.Validate; it
// names the inconsistency and the id or count involved rather than a
// cryptic code.
type validationError struct {
	msg    string
	detail any
}

func (e *validationError) Error() string {
	if e.detail == nil {
		return e.msg
	}
	return fmt.Sprintf("%s (%v)", e.msg, e.detail)
}
