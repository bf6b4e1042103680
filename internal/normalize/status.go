package normalize

import (
	"regexp"
	"strings"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
)

// StatusSignals gathers every status hint a provider exposes for one game.
// Enumerated codes win over state tags, state tags over the completed flag,
// and all of them over free-text matching. The first recognized tag in States wins.
type StatusSignals struct {
	Code      any
	States    []string
	Completed *bool
	Text      string
}

var livePattern = regexp.MustCompile(`(?i)\b(q[1-4]|[1-4](st|nd|rd|th) qtr|\d*ot|halftime|half|in progress|end of|end)\b`)

// DeriveStatus maps provider status hints onto a StatusCode. Unknown states are not started.
func DeriveStatus(s StatusSignals) games.StatusCode {
	if code, ok := AsInt(s.Code); ok {
		if c := games.StatusCode(code); c.Valid() {
			return c
		}
	}
	for _, state := range s.States {
		if c, ok := statusFromState(state); ok {
			return c
		}
	}
	if s.Completed != nil && *s.Completed {
		return games.StatusFinal
	}
	return statusFromText(s.Text)
}

func statusFromState(state string) (games.StatusCode, bool) {
	tag := strings.ToLower(strings.TrimSpace(state))
	tag = strings.TrimPrefix(tag, "status_")
	switch tag {
	case "":
		return 0, false
	case "pre", "scheduled", "postponed", "canceled", "cancelled", "delayed":
		return games.StatusNotStarted, true
	case "in", "live", "in_progress", "halftime", "end_period", "end_of_period":
		return games.StatusLive, true
	case "post", "final", "full_time", "final_ot":
		return games.StatusFinal, true
	}
	return 0, false
}

func statusFromText(text string) games.StatusCode {
	lower := strings.ToLower(strings.TrimSpace(text))
	switch {
	case lower == "":
		return games.StatusNotStarted
	case strings.Contains(lower, "final"):
		return games.StatusFinal
	case livePattern.MatchString(lower):
		return games.StatusLive
	default:
		return games.StatusNotStarted
	}
}

// StatusText returns the provider's status string, or a generic label for code.
func StatusText(text string, code games.StatusCode) string {
	if text = strings.TrimSpace(text); text != "" {
		return text
	}
	switch code {
	case games.StatusFinal:
		return "Final"
	case games.StatusLive:
		return "Live"
	default:
		return "Scheduled"
	}
}
