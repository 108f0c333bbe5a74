package comp

import "errors"

// User-recoverable precondition failures. Operations that return these
// abort cleanly with no state mutation; the composition's Notifier has
// already been informed so the UI can show a non-fatal notice.
var (
	// ErrMaskExists is returned when adding a mask to a layer that
	// already has one.
	ErrMaskExists = errors.New("layer already has a mask")

	// ErrNoSelection is returned when a mask type requires an active
	// selection and the composition has none.
	ErrNoSelection = errors.New("no active selection")

	// ErrInvalidSize is returned for non-positive canvas dimensions.
	ErrInvalidSize = errors.New("invalid canvas size")
)
