package providers

import (
	"context"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
)

// GameProvider loads the normalized games for one calendar day.
type GameProvider interface {
	FetchGames(ctx context.Context, day time.Time) ([]games.Game, error)
}

// Reader issues one outbound request and returns the raw provider payload.
type Reader interface {
	Read(ctx context.Context, day time.Time) ([]byte, error)
}

// ReaderFunc adapts a function to Reader.
type ReaderFunc func(ctx context.Context, day time.Time) ([]byte, error)

func (f ReaderFunc) Read(ctx context.Context, day time.Time) ([]byte, error) {
	return f(ctx, day)
}

// Normalizer maps one provider's raw payload to games. It performs no I/O.
type Normalizer func(raw []byte) ([]games.Game, error)

// Source pairs a Reader with the Normalizer for its schema.
type Source struct {
	name      string
	reader    Reader
	normalize Normalizer
}

// NewSource constructs a Source.
func NewSource(name string, reader Reader, normalize Normalizer) *Source {
	return &Source{name: name, reader: reader, normalize: normalize}
}

// Name returns the provider name used in logs and metrics.
func (s *Source) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// FetchGames reads the raw payload for day and normalizes it.
func (s *Source) FetchGames(ctx context.Context, day time.Time) ([]games.Game, error) {
	if s == nil || s.reader == nil || s.normalize == nil {
		return nil, ErrProviderUnavailable
	}
	raw, err := s.reader.Read(ctx, day)
	if err != nil {
		return nil, err
	}
	out, err := s.normalize(raw)
	if err != nil {
		if _, ok := AsParseError(err); ok {
			return nil, err
		}
		return nil, &ParseError{Provider: s.name, Err: err}
	}
	return out, nil
}
