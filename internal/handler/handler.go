// Package handler contains the HTTP handlers of the back office. Every
// scoped handler derives the tenant context from the session claims and
// passes it explicitly into the stores and engines.
package handler

import "time"

// location is the tenant-facing calendar used for day bucketing, set
// once at startup from configuration.
var location = time.UTC

// Initialize sets the handlers' local calendar.
func Initialize(loc *time.Location) {
	if loc != nil {
		location = loc
	}
}

func serverLocation() *time.Location {
	return location
}
