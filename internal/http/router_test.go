package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/nba-schedule-service/internal/http/handlers"
	"github.com/preston-bernstein/nba-schedule-service/internal/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ctrl := testutil.NewLoadedController(t, nil)
	return NewRouter(handlers.NewHandler(ctrl, nil, nil))
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/schedule", http.StatusOK},
		{http.MethodPost, "/schedule/next", http.StatusOK},
		{http.MethodGet, "/games", http.StatusOK},
		{http.MethodGet, "/games/foo", http.StatusNotFound},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != tc.want {
			t.Fatalf("%s %s expected status %d, got %d", tc.method, tc.path, tc.want, rr.Code)
		}
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rr.Code)
	}
}
