package ambient

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	SpawnInterval = 100 * time.Millisecond
	Lifetime      = 5 * time.Second
)

type Particle struct {
	ID        string        `json:"id"`
	Kind      ParticleKind  `json:"kind"`
	Left      float64       `json:"left"`
	Delay     time.Duration `json:"delay"`
	Duration  time.Duration `json:"duration"`
	SpawnedAt time.Time     `json:"spawnedAt"`
}

// Field owns the live particles. Spawns are staggered by SpawnInterval and
// each particle expires Lifetime after it appeared.
type Field struct {
	mu         sync.Mutex
	scheduler  Scheduler
	live       map[string]Particle
	generation uint64
	rand       *rand.Rand
}

// NewField builds an empty field. A nil source seeds from the clock.
func NewField(src rand.Source) *Field {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Field{
		live: make(map[string]Particle),
		rand: rand.New(src),
	}
}

// Start clears the field and queues spec.ParticleCount spawns from now on.
func (f *Field) Start(spec Spec, now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.clearLocked()

	if spec.ParticleKind == ParticleNone || spec.ParticleKind == "" || spec.ParticleCount <= 0 {
		return
	}

	generation := f.generation
	for i := 0; i < spec.ParticleCount; i++ {
		f.scheduler.Schedule(now.Add(time.Duration(i)*SpawnInterval), func(at time.Time) {
			if f.generation != generation {
				return
			}
			f.spawnLocked(spec.ParticleKind, at)
		})
	}
}

func (f *Field) spawnLocked(kind ParticleKind, at time.Time) {
	p := Particle{
		ID:        uuid.NewString(),
		Kind:      kind,
		Left:      f.rand.Float64() * 100,
		Delay:     time.Duration(f.rand.Float64() * float64(2*time.Second)),
		Duration:  time.Duration((f.rand.Float64()*3 + 2) * float64(time.Second)),
		SpawnedAt: at,
	}
	if kind == ParticleRain {
		p.Duration = time.Duration((f.rand.Float64()*0.5 + 0.5) * float64(time.Second))
	}

	f.live[p.ID] = p
	f.scheduler.Schedule(at.Add(Lifetime), func(time.Time) {
		f.removeLocked(p.ID)
	})
}

// Remove drops one particle. Removing an unknown or already removed particle
// is a no-op.
func (f *Field) Remove(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.removeLocked(id)
}

func (f *Field) removeLocked(id string) bool {
	if _, ok := f.live[id]; !ok {
		return false
	}
	delete(f.live, id)
	return true
}

// Clear removes every particle and cancels queued spawns.
func (f *Field) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearLocked()
}

func (f *Field) clearLocked() {
	f.generation++
	f.scheduler.Reset()
	clear(f.live)
}

// Tick runs every spawn and expiry due by now.
func (f *Field) Tick(now time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scheduler.RunDue(now)
}

// Snapshot lists live particles in spawn order.
func (f *Field) Snapshot() []Particle {
	f.mu.Lock()
	out := make([]Particle, 0, len(f.live))
	for _, p := range f.live {
		out = append(out, p)
	}
	f.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].SpawnedAt.Equal(out[j].SpawnedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].SpawnedAt.Before(out[j].SpawnedAt)
	})
	return out
}

func (f *Field) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}

// Pending is the number of queued spawn and expiry tasks.
func (f *Field) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scheduler.Len()
}

// Run ticks the field on the wall clock until ctx is done.
func (f *Field) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			f.Tick(now)
		case <-ctx.Done():
			return
		}
	}
}
