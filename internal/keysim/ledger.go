// Package keysim tracks the down/up state of simulated keyboard keys and
// forwards real transitions to an injection sink, suppressing duplicates.
package keysim

import (
	"log"
	"sort"
)

// Sink injects key events into the OS input stream. Errors are advisory;
// the ledger commits its state regardless (see Ledger).
type Sink interface {
	Press(k Key) error
	Release(k Key) error
}

// Transition is one emitted key state change.
type Transition struct {
	Key  Key
	Down bool
}

// Ledger holds the current down/up state of every simulated key. It is
// owned by a single goroutine (the dispatch loop); it does no locking of
// its own. A sink error does not roll the entry back: retrying a flaky
// sink would re-send key-down storms, so the ledger stays committed and
// the error is only logged when verbose.
type Ledger struct {
	sink    Sink
	down    map[Key]bool
	changes chan Transition
	Verbose bool
}

// NewLedger returns an empty ledger writing transitions to sink.
func NewLedger(sink Sink) *Ledger {
	return &Ledger{
		sink:    sink,
		down:    make(map[Key]bool),
		changes: make(chan Transition, 64),
	}
}

// Changes returns the channel on which emitted transitions are published
// for observers. Transitions are dropped when no one is draining it; it
// never blocks key dispatch.
func (l *Ledger) Changes() <-chan Transition {
	return l.changes
}

// PressOnce emits a key-down if k is not already down. No-op otherwise.
func (l *Ledger) PressOnce(k Key) {
	if l.down[k] {
		return
	}
	l.emit(k, true)
}

// ReleaseOnce emits a key-up if k is down. No-op otherwise.
func (l *Ledger) ReleaseOnce(k Key) {
	if !l.down[k] {
		return
	}
	l.emit(k, false)
}

// Press emits a key-down unconditionally, even if k is already down.
// Used by event-based button dispatch, which trusts the OS event stream
// not to duplicate transitions.
func (l *Ledger) Press(k Key) {
	l.emit(k, true)
}

// Release emits a key-up unconditionally.
func (l *Ledger) Release(k Key) {
	l.emit(k, false)
}

// ReleaseAll releases every held key, in sorted key order.
func (l *Ledger) ReleaseAll() {
	for _, k := range l.Held() {
		l.emit(k, false)
	}
}

// Held returns the currently-down keys in sorted order.
func (l *Ledger) Held() []Key {
	keys := make([]Key, 0, len(l.down))
	for k, down := range l.down {
		if down {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (l *Ledger) emit(k Key, down bool) {
	var err error
	if down {
		err = l.sink.Press(k)
	} else {
		err = l.sink.Release(k)
	}
	if err != nil && l.Verbose {
		log.Printf("[DEBUG] key injection failed: %s down=%v: %v", k, down, err)
	}
	l.down[k] = down

	select {
	case l.changes <- Transition{Key: k, Down: down}:
	default:
	}
}
