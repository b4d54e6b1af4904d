package normalize

import (
	"strings"
	"time"
	_ "time/tzdata"
)

// zoneAbbreviations maps the US zone suffixes schedule feeds append to
// kickoff times.
var zoneAbbreviations = map[string]string{
	"ET":  "America/New_York",
	"EST": "America/New_York",
	"EDT": "America/New_York",
	"CT":  "America/Chicago",
	"CST": "America/Chicago",
	"CDT": "America/Chicago",
	"MT":  "America/Denver",
	"MST": "America/Denver",
	"MDT": "America/Denver",
	"PT":  "America/Los_Angeles",
	"PST": "America/Los_Angeles",
	"PDT": "America/Los_Angeles",
	"UTC": "UTC",
	"GMT": "UTC",
}

// splitZone removes a trailing zone word from a clock value. The zone is
// nil when the value has no suffix or the suffix is not recognized.
func splitZone(clock string) (string, *time.Location) {
	parts := strings.Fields(clock)
	if len(parts) < 2 {
		return clock, nil
	}
	last := strings.ToUpper(parts[len(parts)-1])
	if last == "AM" || last == "PM" {
		return clock, nil
	}

	rest := strings.Join(parts[:len(parts)-1], " ")
	name, ok := zoneAbbreviations[last]
	if !ok {
		return rest, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return rest, nil
	}
	return rest, loc
}
