package group

import "errors"

var (
	// ErrLengthMismatch is returned when parallel slices of bases and
	// exponents (or similar paired inputs) have different lengths.
	ErrLengthMismatch = errors.New("group: length mismatch")
	// ErrInvalidElement is returned when a byte encoding or a candidate
	// element does not belong to the group.
	ErrInvalidElement = errors.New("group: invalid element")
	// ErrMessageOutOfRange is returned by Encode when m is not in
	// [0, MessageUpperBound).
	ErrMessageOutOfRange = errors.New("group: message out of range")
	// ErrEncodeFailed is returned when Encode cannot find a valid element
	// for m within its bounded number of attempts.
	ErrEncodeFailed = errors.New("group: failed to encode message")
)
