package utils

import "time"

// Sri Lanka time (+05:30)
var lkLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Colombo"); err == nil {
		return loc
	}
	return time.FixedZone("SLST", 5*3600+30*60)
}()

func FormatRFC3339LK(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(lkLoc).Format(time.RFC3339)
}

func FormatDisplayLK(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(lkLoc).Format("2006-01-02 15:04:05 MST")
}
