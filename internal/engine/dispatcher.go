// Package engine runs the dispatch loop: it blocks on controller input
// and drives the mapping table against the key ledger.
package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/soar/padmapper/internal/gamepad"
	"github.com/soar/padmapper/internal/keysim"
	"github.com/soar/padmapper/internal/mapping"
)

// Provider yields controller input. Satisfied by *gamepad.Reader.
type Provider interface {
	Events() <-chan gamepad.Event
	Snapshots() []gamepad.Snapshot
}

// Mode selects how much work is done per input event.
type Mode int

const (
	// SnapshotMode re-reads every connected device's full state on each
	// event and re-evaluates the whole table against it.
	SnapshotMode Mode = iota
	// DiscreteMode evaluates only the rules matching the single event's
	// axis or button. Device slots alias to mapping positions by
	// connection order, which shifts when a pad disconnects mid-run.
	DiscreteMode
)

func (m Mode) String() string {
	switch m {
	case SnapshotMode:
		return "snapshot"
	case DiscreteMode:
		return "discrete"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses the --mode flag value.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "snapshot":
		return SnapshotMode, nil
	case "discrete":
		return DiscreteMode, nil
	}
	return 0, fmt.Errorf("unknown dispatch mode %q (want snapshot or discrete)", s)
}

// Dispatcher is the single-threaded control loop. The ledger is touched
// only from Run's goroutine.
type Dispatcher struct {
	provider Provider
	table    *mapping.Table
	ledger   *keysim.Ledger
	mode     Mode
	pause    chan bool
	Verbose  bool
}

func New(provider Provider, table *mapping.Table, ledger *keysim.Ledger, mode Mode) *Dispatcher {
	return &Dispatcher{
		provider: provider,
		table:    table,
		ledger:   ledger,
		mode:     mode,
		pause:    make(chan bool, 4),
	}
}

// SetPaused suspends or resumes rule evaluation. Entering pause releases
// every held key. Safe to call from other goroutines (the tray).
func (d *Dispatcher) SetPaused(paused bool) {
	d.pause <- paused
}

// Run blocks until the context is cancelled or the provider's event
// channel closes. All held keys are released on the way out.
func (d *Dispatcher) Run(ctx context.Context) {
	log.Printf("Dispatch loop started (%s mode)", d.mode)
	paused := false

	for {
		select {
		case <-ctx.Done():
			d.ledger.ReleaseAll()
			return

		case p := <-d.pause:
			if p == paused {
				continue
			}
			paused = p
			if paused {
				d.ledger.ReleaseAll()
				log.Println("Mapping paused")
			} else {
				log.Println("Mapping resumed")
			}

		case ev, ok := <-d.provider.Events():
			if !ok {
				d.ledger.ReleaseAll()
				log.Println("Input stream ended")
				return
			}
			if d.Verbose {
				log.Printf("[DEBUG] %s", ev)
			}
			if paused {
				continue
			}
			d.dispatch(ev)
		}
	}
}

func (d *Dispatcher) dispatch(ev gamepad.Event) {
	if ev.Kind == gamepad.Disconnected {
		// The vanished pad cannot report releases anymore; drop
		// everything rather than leave keys stuck.
		d.ledger.ReleaseAll()
		return
	}

	switch d.mode {
	case SnapshotMode:
		for _, snap := range d.provider.Snapshots() {
			d.table.ApplySnapshot(d.ledger, snap)
		}

	case DiscreteMode:
		switch ev.Kind {
		case gamepad.Connected:
			// Controls already deflected at connect time only show up
			// in the snapshot, not as change events.
			for _, snap := range d.provider.Snapshots() {
				if snap.Device == ev.Device {
					d.table.ApplySnapshot(d.ledger, snap)
				}
			}
		case gamepad.AxisChanged, gamepad.ButtonPressed, gamepad.ButtonReleased:
			d.table.ApplyEvent(d.ledger, ev)
		}
	}
}
