package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const regulationPeriods = 4

var isoClock = regexp.MustCompile(`^PT(?:(\d+)M)?(?:(\d+)(?:\.\d+)?S)?$`)

// GameClock parses "PT02M30.00S" style durations into "2:30". Other strings pass through.
func GameClock(raw string) string {
	raw = strings.TrimSpace(raw)
	m := isoClock.FindStringSubmatch(strings.ToUpper(raw))
	if m == nil || (m[1] == "" && m[2] == "") {
		return raw
	}
	minutes, _ := strconv.Atoi(m[1])
	seconds, _ := strconv.Atoi(m[2])
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// PeriodLabel renders Q1..Q4, then OT, OT2, ...
func PeriodLabel(period int) string {
	switch {
	case period <= 0:
		return ""
	case period <= regulationPeriods:
		return fmt.Sprintf("Q%d", period)
	case period == regulationPeriods+1:
		return "OT"
	default:
		return fmt.Sprintf("OT%d", period-regulationPeriods)
	}
}

// LiveClock joins the period label and the game clock, e.g. "Q4 2:30".
func LiveClock(period int, clock string) string {
	label := PeriodLabel(period)
	clock = GameClock(clock)
	switch {
	case label == "":
		return clock
	case clock == "":
		return label
	default:
		return label + " " + clock
	}
}
