package providers

import "time"

// ResolveTimezone returns a location for a tz string, or nil if invalid.
func ResolveTimezone(tz string) *time.Location {
	if tz == "" {
		return nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil
	}
	return loc
}

// LocationOrLocal resolves tz, falling back to the process-local zone.
func LocationOrLocal(tz string) *time.Location {
	if loc := ResolveTimezone(tz); loc != nil {
		return loc
	}
	return time.Local
}
