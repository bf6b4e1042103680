package normalize

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
)

// LeaderError reports a leader structure that could not be read.
type LeaderError struct {
	Reason string
}

func (e *LeaderError) Error() string {
	return "leader: " + e.Reason
}

// LeaderFields describes where one provider keeps per-team leader data.
type LeaderFields struct {
	// Source locates the leader structure on a team record: a single leader object,
	// a list of stat categories, or a list of leaders.
	Source Chain
	// Categories names the scoring category, matched against name/abbreviation.
	Categories []string
	Name       Chain
	Points     Chain
	Rebounds   Chain
	Assists    Chain
	// Display holds a pre-formatted stat string or list used when no points value exists.
	Display Chain
}

// Extract reads the scoring leader from a team record. A missing structure is a
// successful nil; a malformed one (or a panic while reading it) is a failed Result.
func (f LeaderFields) Extract(team any) Result[*games.Leader] {
	return Try(func() (*games.Leader, error) {
		return f.extract(team)
	})
}

func (f LeaderFields) extract(team any) (*games.Leader, error) {
	raw, ok := f.Source.Resolve(team)
	if !ok {
		return nil, nil
	}
	entry, err := f.selectEntry(raw)
	if err != nil || entry == nil {
		return nil, err
	}

	name := f.Name.String(entry, "")
	if name == "" {
		return nil, nil
	}
	return &games.Leader{Name: name, Stat: f.stat(entry)}, nil
}

func (f LeaderFields) selectEntry(raw any) (map[string]any, error) {
	switch typed := raw.(type) {
	case map[string]any:
		return descend(typed)
	case []any:
		if len(typed) == 0 {
			return nil, nil
		}
		for _, item := range typed {
			obj, ok := AsMap(item)
			if ok && f.isScoringCategory(obj) {
				return descend(obj)
			}
		}
		first, ok := AsMap(typed[0])
		if !ok {
			return nil, &LeaderError{Reason: fmt.Sprintf("unexpected list element %T", typed[0])}
		}
		return descend(first)
	default:
		return nil, &LeaderError{Reason: fmt.Sprintf("unexpected leader shape %T", raw)}
	}
}

// descend unwraps a category object ({name, leaders: [...]}) to its top leader.
func descend(obj map[string]any) (map[string]any, error) {
	inner, ok := obj["leaders"]
	if !ok {
		return obj, nil
	}
	list, ok := AsList(inner)
	if !ok {
		return nil, &LeaderError{Reason: fmt.Sprintf("unexpected leaders field %T", inner)}
	}
	if len(list) == 0 {
		return nil, nil
	}
	top, ok := AsMap(list[0])
	if !ok {
		return nil, &LeaderError{Reason: fmt.Sprintf("unexpected leader entry %T", list[0])}
	}
	return top, nil
}

func (f LeaderFields) isScoringCategory(obj map[string]any) bool {
	for _, key := range []string{"name", "abbreviation", "category"} {
		got, ok := AsString(obj[key])
		if !ok {
			continue
		}
		for _, want := range f.Categories {
			if strings.EqualFold(got, want) {
				return true
			}
		}
	}
	return false
}

func (f LeaderFields) stat(entry map[string]any) string {
	if points, ok := First(f.Points, entry, AsInt); ok {
		return FormatStat(points, f.Rebounds.IntPtr(entry), f.Assists.IntPtr(entry))
	}
	raw, ok := f.Display.Resolve(entry)
	if !ok {
		return ""
	}
	if s, ok := AsString(raw); ok {
		return s
	}
	if list, ok := AsList(raw); ok {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := AsString(item); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// FormatStat renders "28 PTS", appending rebounds and assists when known.
func FormatStat(points int, rebounds, assists *int) string {
	stat := fmt.Sprintf("%d PTS", points)
	if rebounds != nil {
		stat += fmt.Sprintf(", %d REB", *rebounds)
	}
	if assists != nil {
		stat += fmt.Sprintf(", %d AST", *assists)
	}
	return stat
}

// PairLeaders combines per-team results. A failed side becomes nil; the pair is nil
// when neither side has a leader.
func PairLeaders(home, away Result[*games.Leader]) *games.Leaders {
	h := home.OrZero()
	a := away.OrZero()
	if h == nil && a == nil {
		return nil
	}
	return &games.Leaders{Home: h, Away: a}
}
