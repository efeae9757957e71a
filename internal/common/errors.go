package common

import "errors"

// Callers should match these with errors.Is.
var (
	// Remote lookups.
	ErrNotFound        = errors.New("not found, maybe the link has expired")
	ErrInvalidResponse = errors.New("invalid response")

	// Link gating.
	ErrPasswordRequired = errors.New("a password is required to download this transfer")
	ErrInvalidPassword  = errors.New("the password provided is incorrect")
	ErrScanPending      = errors.New("virus scan in progress")
	ErrScanTimeout      = errors.New("timed out waiting for the virus scan to complete")

	ErrDownloadNumberExceeded = errors.New("download limit exceeded for this transfer")

	// Input validation.
	ErrInvalidLink       = errors.New("invalid share link")
	ErrInvalidParameters = errors.New("invalid transfer parameters")
	ErrNoFiles           = errors.New("no files to upload")

	// Local integrity.
	ErrSizeMismatch = errors.New("file size changed during upload")
)
