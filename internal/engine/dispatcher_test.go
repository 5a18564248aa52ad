package engine

import (
	"context"
	"testing"
	"time"

	"github.com/soar/padmapper/internal/gamepad"
	"github.com/soar/padmapper/internal/keysim"
	"github.com/soar/padmapper/internal/mapping"
)

type injection struct {
	key  keysim.Key
	down bool
}

type recordSink struct {
	calls []injection
}

func (s *recordSink) Press(k keysim.Key) error {
	s.calls = append(s.calls, injection{k, true})
	return nil
}

func (s *recordSink) Release(k keysim.Key) error {
	s.calls = append(s.calls, injection{k, false})
	return nil
}

// fakeProvider holds mutable device state driven by the test and serves
// snapshots from it.
type fakeProvider struct {
	events  chan gamepad.Event
	devices []*fakeDevice
}

type fakeDevice struct {
	axes    map[gamepad.Axis]float64
	buttons map[gamepad.Button]bool
}

func newFakeProvider(numDevices int) *fakeProvider {
	p := &fakeProvider{events: make(chan gamepad.Event, 64)}
	for i := 0; i < numDevices; i++ {
		p.devices = append(p.devices, &fakeDevice{
			axes:    make(map[gamepad.Axis]float64),
			buttons: make(map[gamepad.Button]bool),
		})
	}
	return p
}

func (p *fakeProvider) Events() <-chan gamepad.Event { return p.events }

func (p *fakeProvider) Snapshots() []gamepad.Snapshot {
	snaps := make([]gamepad.Snapshot, len(p.devices))
	for i, d := range p.devices {
		snaps[i] = gamepad.Snapshot{
			Device:  i,
			Axes:    make(map[gamepad.Axis]float64, len(d.axes)),
			Buttons: make(map[gamepad.Button]bool, len(d.buttons)),
		}
		for a, v := range d.axes {
			snaps[i].Axes[a] = v
		}
		for b, v := range d.buttons {
			snaps[i].Buttons[b] = v
		}
	}
	return snaps
}

// moveAxis and setButton mutate device state and return the matching
// discrete event, keeping snapshots and events consistent like real
// hardware.
func (p *fakeProvider) moveAxis(device int, axis gamepad.Axis, v float64) gamepad.Event {
	p.devices[device].axes[axis] = v
	return gamepad.Event{Kind: gamepad.AxisChanged, Device: device, Axis: axis, Value: v}
}

func (p *fakeProvider) setButton(device int, button gamepad.Button, pressed bool) gamepad.Event {
	p.devices[device].buttons[button] = pressed
	kind := gamepad.ButtonReleased
	if pressed {
		kind = gamepad.ButtonPressed
	}
	return gamepad.Event{Kind: kind, Device: device, Button: button}
}

var (
	keyA, _     = keysim.ParseKey("A")
	keyD, _     = keysim.ParseKey("D")
	keyW, _     = keysim.ParseKey("W")
	keySpace, _ = keysim.ParseKey("Space")
	keyEnter, _ = keysim.ParseKey("Enter")
)

func testTable() *mapping.Table {
	return &mapping.Table{Mappings: []mapping.DeviceMapping{
		{
			Controller: 0,
			AxisRules: []mapping.AxisRule{
				{Axis: gamepad.AxisLeftStickX, HighKey: keyD, LowKey: keyA, Threshold: 0.3},
				{Axis: gamepad.AxisLeftStickY, HighKey: keyW, LowKey: keyW, Threshold: 0.5},
			},
			ButtonRules: []mapping.ButtonRule{
				{Button: gamepad.ButtonSouth, Key: keySpace},
			},
		},
		{
			Controller: 1,
			ButtonRules: []mapping.ButtonRule{
				{Button: gamepad.ButtonStart, Key: keyEnter},
			},
		},
	}}
}

// Both dispatch modes must assert the same keys for the same sequence of
// physical state changes.
func TestModeEquivalence(t *testing.T) {
	type step func(p *fakeProvider) gamepad.Event
	steps := []step{
		func(p *fakeProvider) gamepad.Event { return p.moveAxis(0, gamepad.AxisLeftStickX, 0.5) },
		func(p *fakeProvider) gamepad.Event { return p.setButton(0, gamepad.ButtonSouth, true) },
		func(p *fakeProvider) gamepad.Event { return p.moveAxis(0, gamepad.AxisLeftStickX, -0.7) },
		func(p *fakeProvider) gamepad.Event { return p.moveAxis(0, gamepad.AxisLeftStickY, 0.9) },
		func(p *fakeProvider) gamepad.Event { return p.setButton(1, gamepad.ButtonStart, true) },
		func(p *fakeProvider) gamepad.Event { return p.setButton(0, gamepad.ButtonSouth, false) },
		func(p *fakeProvider) gamepad.Event { return p.moveAxis(0, gamepad.AxisLeftStickX, 0.1) },
		func(p *fakeProvider) gamepad.Event { return p.setButton(1, gamepad.ButtonStart, false) },
	}

	run := func(mode Mode) ([]injection, []keysim.Key) {
		provider := newFakeProvider(2)
		sink := &recordSink{}
		ledger := keysim.NewLedger(sink)
		d := New(provider, testTable(), ledger, mode)
		for _, s := range steps {
			d.dispatch(s(provider))
		}
		return sink.calls, ledger.Held()
	}

	snapCalls, snapHeld := run(SnapshotMode)
	discCalls, discHeld := run(DiscreteMode)

	if len(snapHeld) != len(discHeld) {
		t.Fatalf("held keys differ: snapshot=%v discrete=%v", snapHeld, discHeld)
	}
	for i := range snapHeld {
		if snapHeld[i] != discHeld[i] {
			t.Fatalf("held keys differ: snapshot=%v discrete=%v", snapHeld, discHeld)
		}
	}

	// Same multiset of net assertions: count per (key, direction).
	count := func(calls []injection) map[injection]int {
		m := make(map[injection]int)
		for _, c := range calls {
			m[c]++
		}
		return m
	}
	snapCount, discCount := count(snapCalls), count(discCalls)
	if len(snapCount) != len(discCount) {
		t.Fatalf("assertion multisets differ:\nsnapshot=%v\ndiscrete=%v", snapCalls, discCalls)
	}
	for k, n := range snapCount {
		if discCount[k] != n {
			t.Fatalf("assertion %v: snapshot=%d discrete=%d", k, n, discCount[k])
		}
	}

	// Final state: only W held (stick Y still deflected).
	if len(snapHeld) != 1 || snapHeld[0] != keyW {
		t.Errorf("final held = %v, want [W]", snapHeld)
	}
}

func TestDisconnectReleasesHeldKeys(t *testing.T) {
	for _, mode := range []Mode{SnapshotMode, DiscreteMode} {
		provider := newFakeProvider(1)
		sink := &recordSink{}
		ledger := keysim.NewLedger(sink)
		d := New(provider, testTable(), ledger, mode)

		d.dispatch(provider.setButton(0, gamepad.ButtonSouth, true))
		d.dispatch(gamepad.Event{Kind: gamepad.Disconnected, Device: 0})

		if held := ledger.Held(); len(held) != 0 {
			t.Errorf("%s mode: held after disconnect = %v, want none", mode, held)
		}
	}
}

func TestDiscreteConnectAppliesInitialState(t *testing.T) {
	provider := newFakeProvider(1)
	sink := &recordSink{}
	ledger := keysim.NewLedger(sink)
	d := New(provider, testTable(), ledger, DiscreteMode)

	// Pad connects with the stick already deflected.
	provider.devices[0].axes[gamepad.AxisLeftStickX] = 1.0
	d.dispatch(gamepad.Event{Kind: gamepad.Connected, Device: 0, Name: "pad"})

	if held := ledger.Held(); len(held) != 1 || held[0] != keyD {
		t.Errorf("held after connect = %v, want [D]", held)
	}
}

func TestRunPauseReleasesAndSuppresses(t *testing.T) {
	provider := newFakeProvider(1)
	sink := &recordSink{}
	ledger := keysim.NewLedger(sink)
	d := New(provider, testTable(), ledger, DiscreteMode)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	provider.events <- provider.setButton(0, gamepad.ButtonSouth, true)
	<-ledger.Changes() // South press applied
	d.SetPaused(true)
	<-ledger.Changes() // pause released Space
	provider.events <- provider.setButton(0, gamepad.ButtonStart, true) // suppressed
	cancel()
	<-done

	want := []injection{{keySpace, true}, {keySpace, false}}
	if len(sink.calls) != len(want) {
		t.Fatalf("emitted %v, want %v", sink.calls, want)
	}
	for i := range want {
		if sink.calls[i] != want[i] {
			t.Fatalf("emission %d = %v, want %v", i, sink.calls[i], want[i])
		}
	}
}

func TestRunStopsWhenEventChannelCloses(t *testing.T) {
	provider := newFakeProvider(1)
	sink := &recordSink{}
	ledger := keysim.NewLedger(sink)
	d := New(provider, testTable(), ledger, SnapshotMode)

	done := make(chan struct{})
	go func() {
		d.Run(context.Background())
		close(done)
	}()

	provider.events <- provider.setButton(0, gamepad.ButtonSouth, true)
	close(provider.events)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after event channel closed")
	}
	if held := ledger.Held(); len(held) != 0 {
		t.Errorf("held after shutdown = %v, want none", held)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("snapshot"); err != nil || m != SnapshotMode {
		t.Errorf("ParseMode(snapshot) = %v, %v", m, err)
	}
	if m, err := ParseMode("discrete"); err != nil || m != DiscreteMode {
		t.Errorf("ParseMode(discrete) = %v, %v", m, err)
	}
	if _, err := ParseMode("hybrid"); err == nil {
		t.Errorf("expected error for unknown mode")
	}
}
