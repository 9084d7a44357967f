package wire

import (
	"strings"
)

// Markers the daemon puts into its response line. These are a fixed
// external contract -- anything deviating from them is a protocol error,
// never a guess.
const (
	cleanMarker = "OK"
	foundMarker = "FOUND"
)

// Status is the coarse classification of a scan response.
type Status int

const (
	// StatusClean means the daemon pronounced the content clean.
	StatusClean Status = iota
	// StatusInfected means the daemon positively identified malware.
	StatusInfected
	// StatusProtocolError means the conversation with the daemon broke
	// down, or its response could not be understood.
	StatusProtocolError
)

func (s Status) String() string {
	switch s {
	case StatusClean:
		return "clean"
	case StatusInfected:
		return "infected"
	default:
		return "protocol-error"
	}
}

// Verdict is the daemon's final word on a fully transmitted stream. It is
// produced exactly once, after the terminator frame has been flushed.
type Verdict struct {
	Status  Status
	Message string
}

// Clean reports whether the verdict positively declares the content clean.
func (v Verdict) Clean() bool {
	return v.Status == StatusClean
}

// ProtocolFailure builds a Verdict for a failure of the conversation
// itself (broken channel, degraded session, unreadable response).
func ProtocolFailure(message string) Verdict {
	return Verdict{
		Status:  StatusProtocolError,
		Message: message,
	}
}

// Classify parses the single response line read from the daemon after
// finalization. The FOUND marker wins over the OK marker so that an
// ambiguous line never classifies as clean. Classify never fails --
// unrecognizable input degrades to StatusProtocolError.
func Classify(line string) Verdict {
	line = strings.TrimRight(line, " \t\r\n")

	if strings.Contains(line, foundMarker) {
		return Verdict{Status: StatusInfected, Message: line}
	}
	if strings.Contains(line, cleanMarker) {
		return Verdict{Status: StatusClean, Message: line}
	}
	if line == "" {
		return ProtocolFailure("empty response from the scanning daemon")
	}
	return Verdict{Status: StatusProtocolError, Message: line}
}
