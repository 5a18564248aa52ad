package gamepad

import "fmt"

// EventKind tags the payload carried by an Event.
type EventKind int

const (
	Connected EventKind = iota
	Disconnected
	AxisChanged
	ButtonPressed
	ButtonReleased
)

func (k EventKind) String() string {
	switch k {
	case Connected:
		return "Connected"
	case Disconnected:
		return "Disconnected"
	case AxisChanged:
		return "AxisChanged"
	case ButtonPressed:
		return "ButtonPressed"
	case ButtonReleased:
		return "ButtonReleased"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is a single normalized input change from one device.
//
// Device is the connection-order slot of the device (first connected pad
// is 0, second is 1, ...). Axis/Value are set for AxisChanged; Button for
// ButtonPressed/ButtonReleased; Name for Connected.
type Event struct {
	Kind   EventKind
	Device int
	Name   string
	Axis   Axis
	Button Button
	Value  float64
}

func (e Event) String() string {
	switch e.Kind {
	case AxisChanged:
		return fmt.Sprintf("device %d: %s=%.3f", e.Device, e.Axis, e.Value)
	case ButtonPressed, ButtonReleased:
		return fmt.Sprintf("device %d: %s %s", e.Device, e.Button, e.Kind)
	default:
		return fmt.Sprintf("device %d: %s %s", e.Device, e.Kind, e.Name)
	}
}

// Snapshot is the full current state of one connected device. Controls
// the device never reported are simply absent from the maps; readers
// treat absent as 0 / released.
type Snapshot struct {
	Device  int
	Name    string
	Axes    map[Axis]float64
	Buttons map[Button]bool
}
