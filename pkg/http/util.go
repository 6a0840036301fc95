package http

import (
	"time"

	xutil "TravelPulse/pkg/util"
)

// ParseDate parses a YYYY-MM-DD query value in UTC. Returns (t, true) if it worked.
func ParseDate(s string) (time.Time, bool) { return xutil.ParseDate(s) }
