// Package gamepad reads controller input through the SDL3 joystick API
// and exposes it as normalized events and snapshots.
//
// Devices are addressed by connection-order slot: the first pad to
// connect is device 0, the next is device 1. If a pad disconnects
// mid-run, later pads shift down a slot; mappings keyed by slot can then
// pick up a different physical pad. Known limitation.
package gamepad

import (
	"context"
	"log"
	"runtime"
	"sync"

	"github.com/jupiterrider/purego-sdl3/sdl"
)

const (
	jitterDeadzone = 0.05
	pollDelayNS    = 16_000_000 // ~60Hz

	hatUp    uint8 = 0x01
	hatRight uint8 = 0x02
	hatDown  uint8 = 0x04
	hatLeft  uint8 = 0x08
)

type joystickInfo struct {
	joystick *sdl.Joystick
	layout   *RawMapping
	name     string
	id       sdl.JoystickID
	axes     map[Axis]float64
	buttons  map[Button]bool
}

// Reader owns the SDL joystick subsystem and emits normalized input
// events. Snapshots are served from a cache updated on the SDL thread,
// so SDL state queries never leave Run's goroutine.
type Reader struct {
	joysticks map[sdl.JoystickID]*joystickInfo
	slots     []sdl.JoystickID // connection order
	events    chan Event
	mu        sync.RWMutex
	Verbose   bool
}

func NewReader() *Reader {
	return &Reader{
		joysticks: make(map[sdl.JoystickID]*joystickInfo),
		events:    make(chan Event, 256),
	}
}

// Events returns the channel on which normalized input events are sent.
// The channel is closed when Run returns.
func (r *Reader) Events() <-chan Event {
	return r.events
}

// Snapshots returns the full current state of every connected device,
// ordered by slot.
func (r *Reader) Snapshots() []Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snaps := make([]Snapshot, 0, len(r.slots))
	for slot, id := range r.slots {
		info, ok := r.joysticks[id]
		if !ok {
			continue
		}
		snap := Snapshot{
			Device:  slot,
			Name:    info.name,
			Axes:    make(map[Axis]float64, len(info.axes)),
			Buttons: make(map[Button]bool, len(info.buttons)),
		}
		for a, v := range info.axes {
			snap.Axes[a] = v
		}
		for b, v := range info.buttons {
			snap.Buttons[b] = v
		}
		snaps = append(snaps, snap)
	}
	return snaps
}

// Run initializes SDL and runs the event loop on the current thread.
// Must be called from a dedicated goroutine; it locks the OS thread.
func (r *Reader) Run(ctx context.Context) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(r.events)

	if !sdl.Init(sdl.InitJoystick) {
		log.Fatalf("SDL Init failed: %s", sdl.GetError())
	}
	defer sdl.Quit()

	log.Println("SDL3 Joystick subsystem initialized")

	// Pads that were connected before we started.
	for _, id := range sdl.GetJoysticks() {
		r.openJoystick(ctx, id)
	}

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return
		default:
		}

		r.processEvents(ctx)
		sdl.DelayNS(pollDelayNS)
	}
}

func (r *Reader) processEvents(ctx context.Context) {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			r.openJoystick(ctx, event.JDevice().Which)

		case sdl.EventJoystickRemoved:
			r.removeJoystick(ctx, event.JDevice().Which)

		case sdl.EventJoystickAxisMotion:
			ae := event.JAxis()
			r.handleAxis(ctx, ae.Which, int32(ae.Axis), ae.Value)

		case sdl.EventJoystickButtonDown:
			be := event.JButton()
			r.handleButton(ctx, be.Which, int32(be.Button), true)

		case sdl.EventJoystickButtonUp:
			be := event.JButton()
			r.handleButton(ctx, be.Which, int32(be.Button), false)

		case sdl.EventJoystickHatMotion:
			he := event.JHat()
			r.handleHat(ctx, he.Which, he.Value)
		}
	}
}

func (r *Reader) handleAxis(ctx context.Context, id sdl.JoystickID, index int32, raw int16) {
	info, ok := r.joysticks[id]
	if !ok {
		return
	}
	ra, ok := info.layout.axisByIndex(index)
	if !ok {
		return
	}

	var v float64
	if ra.IsTrigger {
		v = NormalizeTrigger(raw, ra.RawMin, ra.RawMax)
	} else {
		v = NormalizeAxis(raw)
		if ra.Invert {
			v = -v
		}
	}
	v = ApplyDeadzone(v, jitterDeadzone)

	r.mu.Lock()
	changed := info.axes[ra.Axis] != v
	info.axes[ra.Axis] = v
	r.mu.Unlock()
	if !changed {
		return
	}

	if r.Verbose {
		log.Printf("[DEBUG] axis %s=%.3f joystick=%d", ra.Axis, v, id)
	}
	r.send(ctx, Event{Kind: AxisChanged, Device: r.slotOf(id), Axis: ra.Axis, Value: v})
}

func (r *Reader) handleButton(ctx context.Context, id sdl.JoystickID, index int32, pressed bool) {
	info, ok := r.joysticks[id]
	if !ok {
		return
	}
	button, ok := info.layout.buttonByIndex(index)
	if !ok {
		return
	}

	r.mu.Lock()
	info.buttons[button] = pressed
	r.mu.Unlock()

	kind := ButtonReleased
	value := 0.0
	if pressed {
		kind = ButtonPressed
		value = 1.0
	}
	if r.Verbose {
		log.Printf("[DEBUG] button %s pressed=%v joystick=%d", button, pressed, id)
	}
	r.send(ctx, Event{Kind: kind, Device: r.slotOf(id), Button: button, Value: value})
}

func (r *Reader) handleHat(ctx context.Context, id sdl.JoystickID, hat uint8) {
	info, ok := r.joysticks[id]
	if !ok || !info.layout.HasHat {
		return
	}

	x, y := hatAxes(hat)
	slot := r.slotOf(id)

	r.mu.Lock()
	changedX := info.axes[AxisDPadX] != x
	changedY := info.axes[AxisDPadY] != y
	info.axes[AxisDPadX] = x
	info.axes[AxisDPadY] = y
	r.mu.Unlock()

	if changedX {
		r.send(ctx, Event{Kind: AxisChanged, Device: slot, Axis: AxisDPadX, Value: x})
	}
	if changedY {
		r.send(ctx, Event{Kind: AxisChanged, Device: slot, Axis: AxisDPadY, Value: y})
	}
}

// hatAxes converts an SDL hat bitmask to DPadX/DPadY values. Up is +1 on
// the Y axis, right is +1 on the X axis.
func hatAxes(hat uint8) (x, y float64) {
	if hat&hatRight != 0 {
		x = 1
	} else if hat&hatLeft != 0 {
		x = -1
	}
	if hat&hatUp != 0 {
		y = 1
	} else if hat&hatDown != 0 {
		y = -1
	}
	return x, y
}

func (r *Reader) openJoystick(ctx context.Context, instanceID sdl.JoystickID) {
	if _, exists := r.joysticks[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		log.Printf("Failed to open joystick %d: %s", instanceID, sdl.GetError())
		return
	}

	jsID := sdl.GetJoystickID(js)
	vendorID := sdl.GetJoystickVendor(js)
	productID := sdl.GetJoystickProduct(js)
	name := sdl.GetJoystickName(js)
	layout := GetRawMapping(vendorID, productID)

	info := &joystickInfo{
		joystick: js,
		layout:   layout,
		name:     name,
		id:       jsID,
		axes:     make(map[Axis]float64),
		buttons:  make(map[Button]bool),
	}
	r.readInitialState(info)

	r.mu.Lock()
	r.joysticks[jsID] = info
	r.slots = append(r.slots, jsID)
	slot := len(r.slots) - 1
	r.mu.Unlock()

	log.Printf("Joystick connected: %s (VID=%04X PID=%04X) layout=%s slot=%d",
		name, vendorID, productID, layout.Name, slot)

	r.send(ctx, Event{Kind: Connected, Device: slot, Name: name})
}

// readInitialState seeds the cache from current hardware state so that
// controls already deflected at connect time are not reported as zero.
// Runs on the SDL thread before the joystick is published.
func (r *Reader) readInitialState(info *joystickInfo) {
	for _, ra := range info.layout.Axes {
		raw := sdl.GetJoystickAxis(info.joystick, ra.Index)
		var v float64
		if ra.IsTrigger {
			v = NormalizeTrigger(raw, ra.RawMin, ra.RawMax)
		} else {
			v = NormalizeAxis(raw)
			if ra.Invert {
				v = -v
			}
		}
		info.axes[ra.Axis] = ApplyDeadzone(v, jitterDeadzone)
	}

	numButtons := sdl.GetNumJoystickButtons(info.joystick)
	for _, rb := range info.layout.Buttons {
		if rb.Index >= numButtons {
			continue
		}
		info.buttons[rb.Button] = sdl.GetJoystickButton(info.joystick, rb.Index)
	}

	if info.layout.HasHat && sdl.GetNumJoystickHats(info.joystick) > 0 {
		x, y := hatAxes(sdl.GetJoystickHat(info.joystick, 0))
		info.axes[AxisDPadX] = x
		info.axes[AxisDPadY] = y
	}
}

func (r *Reader) removeJoystick(ctx context.Context, instanceID sdl.JoystickID) {
	info, exists := r.joysticks[instanceID]
	if !exists {
		return
	}

	slot := r.slotOf(instanceID)
	log.Printf("Joystick disconnected: %s (slot=%d)", info.name, slot)

	sdl.CloseJoystick(info.joystick)

	r.mu.Lock()
	delete(r.joysticks, instanceID)
	for i, id := range r.slots {
		if id == instanceID {
			r.slots = append(r.slots[:i], r.slots[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	r.send(ctx, Event{Kind: Disconnected, Device: slot, Name: info.name})
}

func (r *Reader) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, info := range r.joysticks {
		sdl.CloseJoystick(info.joystick)
		delete(r.joysticks, id)
	}
	r.slots = nil
}

func (r *Reader) slotOf(id sdl.JoystickID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i, sid := range r.slots {
		if sid == id {
			return i
		}
	}
	return -1
}

// send delivers an event to the dispatch loop, giving up on shutdown
// rather than blocking the SDL thread forever.
func (r *Reader) send(ctx context.Context, ev Event) {
	select {
	case r.events <- ev:
	case <-ctx.Done():
	}
}
