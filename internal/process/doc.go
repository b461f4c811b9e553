// Package process terminates the headless browser together with the
// helper processes it spawns.
package process

import "errors"

// ErrInvalidPID is returned for PIDs that would target the caller's own
// process group or no process at all.
var ErrInvalidPID = errors.New("invalid process id")
