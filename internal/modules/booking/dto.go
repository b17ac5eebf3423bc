package booking

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ReserveRequest carries the lease window as ISO dates (2024-01-05) or full
// RFC 3339 timestamps.
type ReserveRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

func (r ReserveRequest) Window() (time.Time, time.Time, error) {
	start, err := parseDate(r.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate(r.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, ErrInvalidDate
}
