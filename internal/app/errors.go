package service

import "errors"

// Sentinel kinds for scan errors.
var (
	// ErrSaveDirUnavailable is fatal for a scan: no save can be found.
	ErrSaveDirUnavailable = errors.New("save directory unavailable")
)
