package manager

import (
	"context"
	"errors"
	"testing"

	"github.com/go-logr/logr"
)

type fakeGeocoding struct {
	location Location
	err      error
	byName   []string
	byCoords int
}

func (f *fakeGeocoding) ResolveByName(_ context.Context, query string) (Location, error) {
	f.byName = append(f.byName, query)
	return f.location, f.err
}

func (f *fakeGeocoding) ResolveByCoords(_ context.Context, latitude, longitude float64) Location {
	f.byCoords++
	return Location{Name: "Your Location", Latitude: latitude, Longitude: longitude}
}

type fakeForecast struct {
	payload Payload
	err     error
	calls   [][2]float64
}

func (f *fakeForecast) Fetch(_ context.Context, latitude, longitude float64) (Payload, error) {
	f.calls = append(f.calls, [2]float64{latitude, longitude})
	return f.payload, f.err
}

func TestByCity(t *testing.T) {
	london := Location{Name: "London", Country: "GB", Latitude: 51.5, Longitude: -0.12}

	t.Run("should fetch at the resolved coordinates", func(t *testing.T) {
		geo := &fakeGeocoding{location: london}
		fc := &fakeForecast{payload: Payload{Current: Current{Temperature: 14.7}}}

		report, err := New(geo, fc, logr.Discard()).ByCity(context.Background(), "London")
		if err != nil {
			t.Fatalf("expected nil, got %s", err)
		}
		if report.Location != london || report.Payload.Current.Temperature != 14.7 {
			t.Errorf("unexpected report %+v", report)
		}
		if len(fc.calls) != 1 || fc.calls[0] != [2]float64{51.5, -0.12} {
			t.Errorf("unexpected fetch calls %v", fc.calls)
		}
	})

	t.Run("should not fetch when the city is unknown", func(t *testing.T) {
		geo := &fakeGeocoding{err: &NotFoundError{Query: "Nowhere12345"}}
		fc := &fakeForecast{}

		_, err := New(geo, fc, logr.Discard()).ByCity(context.Background(), "Nowhere12345")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
		if err.Error() != "City not found: Nowhere12345" {
			t.Errorf("unexpected message %q", err.Error())
		}
		if len(fc.calls) != 0 {
			t.Errorf("forecast must not be called, got %d calls", len(fc.calls))
		}
	})

	t.Run("should surface forecast failures", func(t *testing.T) {
		geo := &fakeGeocoding{location: london}
		fc := &fakeForecast{err: &UpstreamError{Message: "Failed to fetch weather data", StatusCode: 500, Err: errors.New("boom")}}

		_, err := New(geo, fc, logr.Discard()).ByCity(context.Background(), "London")

		var upstream *UpstreamError
		if !errors.As(err, &upstream) || upstream.StatusCode != 500 {
			t.Fatalf("expected upstream error, got %v", err)
		}
		if !errors.Is(err, ErrUpstream) {
			t.Error("expected errors.Is(err, ErrUpstream)")
		}
	})

	t.Run("should refuse to run unconfigured", func(t *testing.T) {
		if _, err := New(nil, nil, logr.Discard()).ByCity(context.Background(), "London"); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestByCoords(t *testing.T) {
	t.Run("should keep the requested coordinates", func(t *testing.T) {
		geo := &fakeGeocoding{}
		fc := &fakeForecast{}

		report, err := New(geo, fc, logr.Discard()).ByCoords(context.Background(), 48.85, 2.35)
		if err != nil {
			t.Fatalf("expected nil, got %s", err)
		}
		if report.Location.Latitude != 48.85 || report.Location.Longitude != 2.35 {
			t.Errorf("unexpected location %+v", report.Location)
		}
		if geo.byCoords != 1 || len(fc.calls) != 1 || fc.calls[0] != [2]float64{48.85, 2.35} {
			t.Errorf("unexpected calls: reverse=%d fetch=%v", geo.byCoords, fc.calls)
		}
	})

	t.Run("should reject out-of-range coordinates", func(t *testing.T) {
		for _, c := range [][2]float64{{91, 0}, {-90.5, 0}, {0, 180.1}, {0, -181}} {
			geo := &fakeGeocoding{}
			fc := &fakeForecast{}

			_, err := New(geo, fc, logr.Discard()).ByCoords(context.Background(), c[0], c[1])
			if !errors.Is(err, ErrInvalidCoordinates) {
				t.Errorf("%v: expected invalid coordinates, got %v", c, err)
			}
			if geo.byCoords != 0 || len(fc.calls) != 0 {
				t.Errorf("%v: no upstream call expected", c)
			}
		}
	})
}

func TestNewLocation(t *testing.T) {
	if _, err := NewLocation("Edge", "", 90, -180); err != nil {
		t.Errorf("boundaries are valid, got %v", err)
	}
	if _, err := NewLocation("Bad", "", 90.01, 0); !errors.Is(err, ErrInvalidCoordinates) {
		t.Errorf("expected invalid coordinates, got %v", err)
	}
}

func TestDailyLen(t *testing.T) {
	if n := (Daily{Time: []string{"a", "b"}}).Len(); n != 2 {
		t.Errorf("expected 2, got %d", n)
	}
}
