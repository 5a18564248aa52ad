// Package mapping evaluates configured controller-to-keyboard rules
// against input events and device snapshots.
package mapping

import (
	"github.com/soar/padmapper/internal/gamepad"
	"github.com/soar/padmapper/internal/keysim"
)

// KeyActor is the slice of the key ledger that rules drive. Satisfied by
// *keysim.Ledger.
type KeyActor interface {
	PressOnce(k keysim.Key)
	ReleaseOnce(k keysim.Key)
	Press(k keysim.Key)
	Release(k keysim.Key)
}

// AxisRule maps one analog axis to a pair of keys across a dead zone.
// Immutable after config load.
type AxisRule struct {
	Axis      gamepad.Axis
	HighKey   keysim.Key
	LowKey    keysim.Key
	Threshold float64
}

// Apply evaluates the rule against the axis value. Comparisons are
// strict: a value exactly at ±Threshold falls into the dead zone, where
// both keys are released.
func (r AxisRule) Apply(keys KeyActor, v float64) {
	switch {
	case v < -r.Threshold:
		keys.PressOnce(r.LowKey)
	case v > r.Threshold:
		keys.PressOnce(r.HighKey)
	default:
		keys.ReleaseOnce(r.LowKey)
		keys.ReleaseOnce(r.HighKey)
	}
}

// ButtonRule maps one digital button to one key. Immutable after load.
type ButtonRule struct {
	Button gamepad.Button
	Key    keysim.Key
}

// ApplyValue is the snapshot-mode strategy: the key follows the button
// value through the idempotent ledger operations.
func (r ButtonRule) ApplyValue(keys KeyActor, v float64) {
	if v > 0.5 {
		keys.PressOnce(r.Key)
	} else {
		keys.ReleaseOnce(r.Key)
	}
}

// ApplyTransition is the discrete-mode strategy: the OS event stream is
// trusted, so the press/release is forced through without the
// idempotence check.
func (r ButtonRule) ApplyTransition(keys KeyActor, pressed bool) {
	if pressed {
		keys.Press(r.Key)
	} else {
		keys.Release(r.Key)
	}
}

// DeviceMapping binds rules to one device slot.
type DeviceMapping struct {
	Controller  int
	AxisRules   []AxisRule
	ButtonRules []ButtonRule
}

// ApplySnapshot evaluates every rule against a full device snapshot.
// Snapshots for other devices are skipped silently. Controls absent from
// the snapshot evaluate as 0 / released.
func (m *DeviceMapping) ApplySnapshot(keys KeyActor, snap gamepad.Snapshot) {
	if m.Controller != snap.Device {
		return
	}
	for _, ar := range m.AxisRules {
		ar.Apply(keys, snap.Axes[ar.Axis])
	}
	for _, br := range m.ButtonRules {
		var v float64
		if snap.Buttons[br.Button] {
			v = 1.0
		}
		br.ApplyValue(keys, v)
	}
}

// ApplyEvent evaluates only the rules relevant to a single discrete
// event. Events for other devices are skipped silently.
func (m *DeviceMapping) ApplyEvent(keys KeyActor, ev gamepad.Event) {
	if m.Controller != ev.Device {
		return
	}
	switch ev.Kind {
	case gamepad.AxisChanged:
		for _, ar := range m.AxisRules {
			if ar.Axis == ev.Axis {
				ar.Apply(keys, ev.Value)
			}
		}
	case gamepad.ButtonPressed, gamepad.ButtonReleased:
		for _, br := range m.ButtonRules {
			if br.Button == ev.Button {
				br.ApplyTransition(keys, ev.Kind == gamepad.ButtonPressed)
			}
		}
	}
}

// Table is the full ordered set of device mappings, read-only after
// load.
type Table struct {
	Mappings []DeviceMapping
}

// ApplySnapshot runs every mapping against one device snapshot.
func (t *Table) ApplySnapshot(keys KeyActor, snap gamepad.Snapshot) {
	for i := range t.Mappings {
		t.Mappings[i].ApplySnapshot(keys, snap)
	}
}

// ApplyEvent runs every mapping against one discrete event.
func (t *Table) ApplyEvent(keys KeyActor, ev gamepad.Event) {
	for i := range t.Mappings {
		t.Mappings[i].ApplyEvent(keys, ev)
	}
}
