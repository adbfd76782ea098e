// Package screen holds the two guards every screen needs around in-flight
// requests: a busy flag so a control cannot fire twice, and a navigation
// generation so a settled request cannot update a view the user has left.
package screen

import "sync"

// Guard serialises one in-flight action per control. TryBegin returns false
// while a previous action has not settled; the caller skips the action
// instead of queueing or cancelling it.
type Guard struct {
	mu   sync.Mutex
	busy bool
}

func (g *Guard) TryBegin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy {
		return false
	}
	g.busy = true
	return true
}

func (g *Guard) End() {
	g.mu.Lock()
	g.busy = false
	g.mu.Unlock()
}

// Busy reports whether an action is in flight, for disabling the control.
func (g *Guard) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}

// View tracks which rendering of a screen is current. Enter is called on
// navigation and returns the new generation; a request started before the
// navigation holds a stale generation and its Apply becomes a no-op.
type View struct {
	mu  sync.Mutex
	gen uint64
}

// Enter marks a fresh rendering and returns its generation token.
func (v *View) Enter() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	return v.gen
}

// Apply runs fn only when gen is still the current rendering, reporting
// whether it ran.
func (v *View) Apply(gen uint64, fn func()) bool {
	v.mu.Lock()
	current := v.gen == gen
	v.mu.Unlock()
	if !current {
		return false
	}
	fn()
	return true
}
