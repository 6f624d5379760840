package planform

import "strings"

// WarningCode identifies a class of non-fatal reconstruction issue.
type WarningCode string

// Warning codes reported by terminal operations.
const (
	// WarnHullFallback means no closed loop was found and the boundary is
	// the convex hull of the cleaned geometry.
	WarnHullFallback WarningCode = "hull-fallback"

	// WarnInnerLoops means interior loops (rooms, courtyards) were found
	// inside the exterior boundary and discarded.
	WarnInnerLoops WarningCode = "inner-loops-discarded"

	// WarnHeavyCleaning means cleaning removed more than half of the input
	// segments, so the source is unusually noisy.
	WarnHeavyCleaning WarningCode = "heavy-cleaning"

	// WarnUnknownUnit means the unit label was not recognized and
	// millimeters were assumed.
	WarnUnknownUnit WarningCode = "unknown-unit"
)

// Warning describes a non-fatal issue found while reconstructing an
// outline. Warnings accompany a usable result; they flag places where the
// input was degraded or a fallback was taken, so the result may be
// imperfect.
type Warning struct {
	// Code identifies the warning class for programmatic handling.
	Code WarningCode

	// Message is a human-readable description.
	Message string
}

// FormatWarnings formats a warning list as a single string suitable for
// logging. It returns the empty string for an empty list.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	msgs := make([]string, len(warnings))
	for i, w := range warnings {
		msgs[i] = w.Message
	}
	return strings.Join(msgs, "; ")
}
