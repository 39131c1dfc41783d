package ambient

import (
	"math/rand"
	"testing"
	"time"
)

var epoch = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestScheduler(t *testing.T) {
	t.Run("should run due tasks earliest first and FIFO on ties", func(t *testing.T) {
		var s Scheduler
		var order []string

		s.Schedule(epoch.Add(2*time.Second), func(time.Time) { order = append(order, "c") })
		s.Schedule(epoch, func(time.Time) { order = append(order, "a") })
		s.Schedule(epoch, func(time.Time) { order = append(order, "b") })
		s.Schedule(epoch.Add(time.Minute), func(time.Time) { order = append(order, "late") })

		if ran := s.RunDue(epoch.Add(3 * time.Second)); ran != 3 {
			t.Fatalf("expected 3 tasks to run, got %d", ran)
		}
		if got := order; len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
			t.Errorf("unexpected order %v", got)
		}
		if s.Len() != 1 {
			t.Errorf("expected 1 pending task, got %d", s.Len())
		}
	})

	t.Run("should pass the scheduled time to the task", func(t *testing.T) {
		var s Scheduler
		var got time.Time
		at := epoch.Add(time.Second)

		s.Schedule(at, func(now time.Time) { got = now })
		s.RunDue(epoch.Add(time.Hour))

		if !got.Equal(at) {
			t.Errorf("expected %v, got %v", at, got)
		}
	})

	t.Run("should run tasks queued by a due task", func(t *testing.T) {
		var s Scheduler
		ran := 0

		s.Schedule(epoch, func(now time.Time) {
			ran++
			s.Schedule(now.Add(time.Millisecond), func(time.Time) { ran++ })
		})

		if n := s.RunDue(epoch.Add(time.Second)); n != 2 || ran != 2 {
			t.Errorf("expected both tasks to run, got %d/%d", n, ran)
		}
	})

	t.Run("should drop everything on reset", func(t *testing.T) {
		var s Scheduler
		s.Schedule(epoch, func(time.Time) { t.Error("reset task ran") })
		s.Reset()

		if s.RunDue(epoch.Add(time.Hour)) != 0 || s.Len() != 0 {
			t.Error("expected an empty scheduler")
		}
	})
}

func TestField(t *testing.T) {
	rain := Spec{ParticleKind: ParticleRain, ParticleCount: 5, Theme: ThemeRainy}

	t.Run("should stagger spawns", func(t *testing.T) {
		f := NewField(rand.NewSource(1))
		f.Start(rain, epoch)

		f.Tick(epoch)
		if f.Len() != 1 {
			t.Fatalf("expected 1 particle at start, got %d", f.Len())
		}

		f.Tick(epoch.Add(2*SpawnInterval + SpawnInterval/2))
		if f.Len() != 3 {
			t.Fatalf("expected 3 particles, got %d", f.Len())
		}

		f.Tick(epoch.Add(4 * SpawnInterval))
		particles := f.Snapshot()
		if len(particles) != 5 {
			t.Fatalf("expected 5 particles, got %d", len(particles))
		}

		for i, p := range particles {
			if p.Kind != ParticleRain {
				t.Errorf("unexpected kind %s", p.Kind)
			}
			if !p.SpawnedAt.Equal(epoch.Add(time.Duration(i) * SpawnInterval)) {
				t.Errorf("particle %d spawned at %v", i, p.SpawnedAt)
			}
			if p.Left < 0 || p.Left >= 100 {
				t.Errorf("left out of range: %v", p.Left)
			}
			if p.Duration < 500*time.Millisecond || p.Duration > time.Second {
				t.Errorf("rain duration out of range: %v", p.Duration)
			}
			if p.ID == "" {
				t.Error("expected an id")
			}
		}
	})

	t.Run("should expire each particle after its lifetime", func(t *testing.T) {
		f := NewField(rand.NewSource(2))
		f.Start(Spec{ParticleKind: ParticleSnow, ParticleCount: 3}, epoch)

		f.Tick(epoch.Add(time.Second))
		if f.Len() != 3 {
			t.Fatalf("expected 3 particles, got %d", f.Len())
		}

		f.Tick(epoch.Add(Lifetime))
		if f.Len() != 2 {
			t.Errorf("expected the first particle to expire, got %d live", f.Len())
		}

		f.Tick(epoch.Add(Lifetime + time.Second))
		if f.Len() != 0 || f.Pending() != 0 {
			t.Errorf("expected an empty field, got %d live %d pending", f.Len(), f.Pending())
		}
	})

	t.Run("should cancel queued spawns on clear", func(t *testing.T) {
		f := NewField(rand.NewSource(3))
		f.Start(rain, epoch)
		f.Tick(epoch)

		f.Clear()
		f.Clear()

		f.Tick(epoch.Add(time.Minute))
		if f.Len() != 0 || f.Pending() != 0 {
			t.Errorf("expected an empty field, got %d live %d pending", f.Len(), f.Pending())
		}
	})

	t.Run("should replace particles on restart", func(t *testing.T) {
		f := NewField(rand.NewSource(4))
		f.Start(rain, epoch)
		f.Tick(epoch.Add(time.Second))

		f.Start(Spec{ParticleKind: ParticleCloud, ParticleCount: 2}, epoch.Add(time.Second))
		f.Tick(epoch.Add(2 * time.Second))

		particles := f.Snapshot()
		if len(particles) != 2 {
			t.Fatalf("expected 2 particles, got %d", len(particles))
		}
		for _, p := range particles {
			if p.Kind != ParticleCloud {
				t.Errorf("stale %s particle survived", p.Kind)
			}
			if p.Duration < 2*time.Second || p.Duration > 5*time.Second {
				t.Errorf("cloud duration out of range: %v", p.Duration)
			}
		}
	})

	t.Run("should ignore removal of unknown particles", func(t *testing.T) {
		f := NewField(rand.NewSource(5))
		f.Start(Spec{ParticleKind: ParticleCloud, ParticleCount: 1}, epoch)
		f.Tick(epoch)

		id := f.Snapshot()[0].ID
		if !f.Remove(id) {
			t.Fatal("expected the first removal to succeed")
		}
		if f.Remove(id) {
			t.Error("expected the second removal to be a no-op")
		}

		// The pending expiry must not panic or resurrect anything.
		f.Tick(epoch.Add(Lifetime))
		if f.Len() != 0 {
			t.Errorf("expected an empty field, got %d", f.Len())
		}
	})

	t.Run("should not spawn for none or empty specs", func(t *testing.T) {
		f := NewField(rand.NewSource(6))
		for _, spec := range []Spec{{ParticleKind: ParticleNone, ParticleCount: 10}, {ParticleKind: ParticleRain}} {
			f.Start(spec, epoch)
			if f.Pending() != 0 {
				t.Errorf("expected no queued spawns for %+v", spec)
			}
		}
	})
}

func TestThemeClass(t *testing.T) {
	if got := ThemeSunny.Class(); got != "weather-bg-sunny" {
		t.Errorf("got %q", got)
	}
	if got := ThemeNone.Class(); got != "" {
		t.Errorf("got %q", got)
	}
}
