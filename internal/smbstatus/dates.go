package smbstatus

import (
	"fmt"
	"time"
)

// smbstatus prints ctime-style timestamps, e.g. "Wed Jan  7 14:23:59 2015".
const (
	smbDateLayout = "Mon Jan _2 15:04:05 2006"
	isoLayout     = "2006-01-02T15:04:05"
)

// normDate converts an smbstatus timestamp to ISO-8601 second precision,
// local time, no offset. Inputs are pre-validated by the line parsers, so
// a layout mismatch means the upstream format changed and is an error, not
// a line to skip.
func normDate(s string) (string, error) {
	t, err := time.Parse(smbDateLayout, s)
	if err != nil {
		return "", fmt.Errorf("timestamp %q does not match smbstatus layout: %w", s, err)
	}

	iso := t.Format(isoLayout)
	if len(iso) != 19 {
		return "", fmt.Errorf("normalized timestamp %q is %d bytes, want 19", iso, len(iso))
	}
	return iso, nil
}
