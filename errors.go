package scanstream

import (
	"github.com/bokysan/scanstream/wire"
)

// ScanError is the single terminal item a wrapped stream yields, after all
// of its chunks, when the daemon did not pronounce the content clean. It
// carries the daemon's own message, or a synthesized description when the
// conversation itself broke down.
type ScanError struct {
	Verdict wire.Verdict
}

func (e *ScanError) Error() string {
	return e.Verdict.Message
}

// Infected reports whether the daemon positively identified malware, as
// opposed to the scan failing for protocol reasons.
func (e *ScanError) Infected() bool {
	return e.Verdict.Status == wire.StatusInfected
}
