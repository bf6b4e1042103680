package espn

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestFetchGamesHitsScoreboardThroughRelay(t *testing.T) {
	var captured *url.URL
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		captured = req.URL
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(sampleScoreboard)),
			Header:     make(http.Header),
		}, nil
	})

	loc, _ := time.LoadLocation("America/New_York")
	src := New(Config{
		RelayURL:   "http://relay.local/",
		HTTPClient: &http.Client{Transport: rt},
		Location:   loc,
	})
	// 03:00 UTC is still the previous evening in New York.
	day := time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC)

	got, err := src.FetchGames(context.Background(), day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 games, got %d", len(got))
	}
	if captured == nil || captured.Host != "relay.local" {
		t.Fatalf("expected relay host, got %v", captured)
	}
	target := captured.Query().Get("url")
	if !strings.HasPrefix(target, defaultBaseURL+"/scoreboard") {
		t.Fatalf("unexpected upstream target %q", target)
	}
	if !strings.Contains(target, "dates=20240101") {
		t.Fatalf("expected local calendar day in target, got %q", target)
	}
}

func TestNewReaderWithoutRelayUsesBaseURL(t *testing.T) {
	r := NewReader(Config{BaseURL: "http://example.test/nba/", Location: time.UTC})
	got := r.URL(time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC))
	if got != "http://example.test/nba/scoreboard?dates=20250309" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestFetchGamesPropagatesHTTPFailure(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusServiceUnavailable,
			Body:       io.NopCloser(strings.NewReader("down")),
			Header:     make(http.Header),
		}, nil
	})
	src := New(Config{HTTPClient: &http.Client{Transport: rt}, Location: time.UTC})
	if _, err := src.FetchGames(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error for 503")
	}
}

func TestName(t *testing.T) {
	if Name() != "espn" {
		t.Fatalf("unexpected provider name %q", Name())
	}
}
