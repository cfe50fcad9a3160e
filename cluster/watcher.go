package cluster

import "sync"

// ViewportWatcher is the map widget's side of the contract: it announces
// "the viewport changed" with no payload after a pan or zoom settles. The
// engine subscribes once and relayouts on every notification.
type ViewportWatcher interface {
	// Subscribe registers fn and returns a function that removes the
	// subscription. The returned function is idempotent.
	Subscribe(fn func()) (unsubscribe func())
}

// ViewportSignal is a minimal in-process ViewportWatcher: a fan-out of
// no-payload callbacks. Safe for concurrent use.
type ViewportSignal struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

var _ ViewportWatcher = (*ViewportSignal)(nil)

// NewViewportSignal returns an empty signal.
func NewViewportSignal() *ViewportSignal {
	return &ViewportSignal{subs: make(map[int]func())}
}

func (s *ViewportSignal) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	s.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Notify invokes every subscriber. Callbacks run outside the signal's lock
// so they may subscribe or unsubscribe reentrantly.
func (s *ViewportSignal) Notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
