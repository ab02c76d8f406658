package cli

import (
	"fmt"
	"strings"
	"time"
)

// parseDue accepts RFC3339 or a bare date (YYYY-MM-DD, midnight local).
func parseDue(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid due %q (expected YYYY-MM-DD or RFC3339)", s)
}
