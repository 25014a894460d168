package tween

import (
	"sync"
	"time"
)

// Group drives a set of tweens. Finished tweens are dropped on the next update.
type Group struct {
	mu     *sync.Mutex
	tweens []Tween
}

// NewGroup creates an empty tween group.
func NewGroup() *Group {
	return &Group{mu: &sync.Mutex{}}
}

// Add registers tweens with the group.
func (g *Group) Add(tweens ...Tween) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, t := range tweens {
		if t != nil {
			g.tweens = append(g.tweens, t)
		}
	}
}

// Update advances every tween to now. Tweens are updated outside the lock so update callbacks
// may add new tweens to the group.
//
// Parameters:
//   - now: the frame time
func (g *Group) Update(now time.Time) {
	g.mu.Lock()
	snapshot := make([]Tween, len(g.tweens))
	copy(snapshot, g.tweens)
	g.mu.Unlock()

	done := make(map[Tween]struct{})
	for _, t := range snapshot {
		if !t.Update(now) {
			done[t] = struct{}{}
		}
	}
	if len(done) == 0 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	kept := g.tweens[:0]
	for _, t := range g.tweens {
		if _, ok := done[t]; !ok {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(g.tweens); i++ {
		g.tweens[i] = nil
	}
	g.tweens = kept
}

// Len returns the number of live tweens.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.tweens)
}

// RemoveAll stops and drops every tween.
func (g *Group) RemoveAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, t := range g.tweens {
		t.Stop()
	}
	g.tweens = nil
}
