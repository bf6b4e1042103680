package fixture

import (
	"context"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
)

func TestGamesReturnsDocumentedSlate(t *testing.T) {
	got := Games()
	if len(got) != 2 {
		t.Fatalf("expected 2 games, got %d", len(got))
	}

	final := got[0]
	if final.StatusCode != games.StatusFinal || final.IsLive {
		t.Fatalf("unexpected first game %+v", final)
	}
	if final.Home.Tricode != "LAL" || final.Home.Score != 112 || final.Away.Tricode != "BOS" || final.Away.Score != 109 {
		t.Fatalf("unexpected teams %+v / %+v", final.Home, final.Away)
	}
	if final.Winner() != "home" {
		t.Fatalf("expected Lakers to win, got %q", final.Winner())
	}

	live := got[1]
	if live.StatusCode != games.StatusLive || !live.IsLive || live.Clock != "Q4 2:30" {
		t.Fatalf("unexpected live game %+v", live)
	}
	if live.Home.Tricode != "GSW" || live.Away.Tricode != "PHX" {
		t.Fatalf("unexpected live teams %+v / %+v", live.Home, live.Away)
	}
}

func TestGamesReturnsIndependentCopies(t *testing.T) {
	a := Games()
	a[0].ID = "mutated"
	if Games()[0].ID == "mutated" {
		t.Fatal("expected Games to return a copy")
	}
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("games: [")); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

func TestParseNormalizesStatus(t *testing.T) {
	got, err := Parse([]byte("games:\n  - id: x\n    status: TBD\n    statusCode: 9\n    home: {tricode: AAA}\n    away: {tricode: BBB, wins: 3}\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g := got[0]
	if g.StatusCode != games.StatusNotStarted || g.Clock != "TBD" {
		t.Fatalf("expected invalid code to become not started, got %+v", g)
	}
	if g.Away.HasRecord() || g.Leaders != nil {
		t.Fatalf("expected partial record dropped and no leaders, got %+v", g)
	}
}

func TestProviderFetchGames(t *testing.T) {
	p := New()
	got, err := p.FetchGames(context.Background(), time.Now())
	if err != nil || len(got) != 2 {
		t.Fatalf("expected slate, got %v %v", got, err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.FetchGames(ctx, time.Now()); err == nil {
		t.Fatal("expected cancelled context error")
	}
	if p.Name() != "fixture" {
		t.Fatalf("unexpected name %q", p.Name())
	}
}
