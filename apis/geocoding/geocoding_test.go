package geocoding_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-logr/logr"

	"weatherdash/apis/geocoding"
	"weatherdash/config"
	"weatherdash/manager"
)

func newClient(t *testing.T, handler http.HandlerFunc) manager.Geocoding {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return geocoding.New(config.Geocoding{Endpoint: ts.URL, Language: "en", Timeout: 5 * time.Second}, logr.Discard())
}

func TestResolveByName(t *testing.T) {
	t.Run("should return the best match verbatim", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("name") != "London" || q.Get("count") != "1" || q.Get("language") != "en" || q.Get("format") != "json" {
				t.Errorf("unexpected query %q", r.URL.RawQuery)
			}
			w.Write([]byte(`{"results":[{"name":"London","country":"GB","latitude":51.5,"longitude":-0.12},{"name":"London","country":"CA","latitude":42.98,"longitude":-81.23}]}`))
		})

		location, err := client.ResolveByName(context.Background(), "London")
		if err != nil {
			t.Fatalf("expected nil, got %s", err)
		}
		want := manager.Location{Name: "London", Country: "GB", Latitude: 51.5, Longitude: -0.12}
		if location != want {
			t.Errorf("expected %+v, got %+v", want, location)
		}
	})

	t.Run("should accept any success status", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNonAuthoritativeInfo)
			w.Write([]byte(`{"results":[{"name":"Paris","country":"FR","latitude":48.85,"longitude":2.35}]}`))
		})

		location, err := client.ResolveByName(context.Background(), "Paris")
		if err != nil {
			t.Fatalf("expected nil, got %s", err)
		}
		if location.Name != "Paris" || location.Country != "FR" {
			t.Errorf("unexpected location %+v", location)
		}
	})

	t.Run("should return NotFoundError when there are no results", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"generationtime_ms":0.5}`))
		})

		_, err := client.ResolveByName(context.Background(), "Nowhere12345")

		var notFound *manager.NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
		if err.Error() != "City not found: Nowhere12345" {
			t.Errorf("unexpected message %q", err.Error())
		}
		if !errors.Is(err, manager.ErrNotFound) {
			t.Error("expected errors.Is(err, ErrNotFound)")
		}
	})

	t.Run("should return NotFoundError for an empty result list", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results":[]}`))
		})

		_, err := client.ResolveByName(context.Background(), "Atlantis")
		if !errors.Is(err, manager.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("should return UpstreamError when the call fails", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":true}`))
		})

		_, err := client.ResolveByName(context.Background(), "London")

		var upstream *manager.UpstreamError
		if !errors.As(err, &upstream) {
			t.Fatalf("expected UpstreamError, got %v", err)
		}
		if upstream.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("expected status 503, got %d", upstream.StatusCode)
		}
		if err.Error() != "Failed to find city location" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})
}

func TestResolveByCoords(t *testing.T) {
	t.Run("should adopt the reverse lookup name", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("latitude") != "48.85" || q.Get("longitude") != "2.35" {
				t.Errorf("unexpected query %q", r.URL.RawQuery)
			}
			w.Write([]byte(`{"results":[{"name":"Paris","country":"FR","latitude":48.8534,"longitude":2.3488}]}`))
		})

		location := client.ResolveByCoords(context.Background(), 48.85, 2.35)
		want := manager.Location{Name: "Paris", Latitude: 48.85, Longitude: 2.35}
		if location != want {
			t.Errorf("expected %+v, got %+v", want, location)
		}
	})

	t.Run("should degrade to a placeholder when the call fails", func(t *testing.T) {
		var calls atomic.Int32
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		})

		location := client.ResolveByCoords(context.Background(), 10, 20)
		want := manager.Location{Name: geocoding.PlaceholderName, Latitude: 10, Longitude: 20}
		if location != want {
			t.Errorf("expected %+v, got %+v", want, location)
		}
		if calls.Load() != 1 {
			t.Errorf("expected a single call, got %d", calls.Load())
		}
	})

	t.Run("should degrade to a placeholder when nothing matches", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		})

		location := client.ResolveByCoords(context.Background(), -33.9, 151.2)
		if location.Name != "Your Location" || location.Country != "" {
			t.Errorf("unexpected location %+v", location)
		}
	})

	t.Run("should degrade to a placeholder when the body is not JSON", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>`))
		})

		location := client.ResolveByCoords(context.Background(), 1, 2)
		if location.Name != "Your Location" {
			t.Errorf("unexpected location %+v", location)
		}
	})
}
