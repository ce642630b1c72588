package decoder

import "errors"

// Every decode failure wraps one of these sentinels; match with errors.Is.
// All of them mean "discard this capture and wait for the next burst" --
// none requires intervention, and a decoder never emits a partial Record
// alongside one.
var (
	// ErrMultipleRows reports a capture that is not a single burst; the
	// frame formats decoded here never span rows.
	ErrMultipleRows = errors.New("bitbuffer must contain exactly one row")

	// ErrTooShort reports a capture with fewer bits than the smallest
	// possible frame, or one that ends before a declared frame does.
	ErrTooShort = errors.New("not enough bits for a complete frame")

	// ErrSyncNotFound reports that the device sync pattern never occurs
	// in the capture.
	ErrSyncNotFound = errors.New("sync word not found")

	// ErrFrameTooLarge reports a declared frame length over the format
	// maximum.  Common with noise bursts; rejected before extraction.
	ErrFrameTooLarge = errors.New("declared frame length exceeds maximum")

	// ErrChecksum reports a structurally plausible frame whose payload
	// fails its integrity check.  The content must not be trusted.
	ErrChecksum = errors.New("checksum mismatch")
)
