package gamepad

import "math"

// rawAxis defines how a raw SDL axis index maps to a normalized Axis.
type rawAxis struct {
	Index     int32
	Axis      Axis
	IsTrigger bool
	Invert    bool
	// For triggers: raw range. Some devices use -32768..32767, others 0..32767.
	RawMin int16
	RawMax int16
}

// rawButton defines how a raw SDL button index maps to a normalized Button.
type rawButton struct {
	Index  int32
	Button Button
}

// RawMapping holds the raw-index layout for a specific device type.
type RawMapping struct {
	Name    string
	Axes    []rawAxis
	Buttons []rawButton
	HasHat  bool
}

func (m *RawMapping) axisByIndex(index int32) (rawAxis, bool) {
	for _, a := range m.Axes {
		if a.Index == index {
			return a, true
		}
	}
	return rawAxis{}, false
}

func (m *RawMapping) buttonByIndex(index int32) (Button, bool) {
	for _, b := range m.Buttons {
		if b.Index == index {
			return b.Button, true
		}
	}
	return "", false
}

// NormalizeAxis converts a raw axis value (-32768..32767) to -1.0..1.0.
func NormalizeAxis(raw int16) float64 {
	v := float64(raw) / math.MaxInt16
	if v < -1.0 {
		v = -1.0
	}
	return v
}

// NormalizeTrigger converts a raw trigger value to 0.0..1.0.
func NormalizeTrigger(raw int16, rawMin, rawMax int16) float64 {
	if rawMax == rawMin {
		return 0
	}
	v := float64(raw-rawMin) / float64(rawMax-rawMin)
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

// ApplyDeadzone returns 0 if the value is within the deadzone threshold.
// This is hardware jitter suppression only; directional thresholds live
// in the mapping rules.
func ApplyDeadzone(v float64, threshold float64) float64 {
	if math.Abs(v) < threshold {
		return 0
	}
	return v
}

// Built-in raw layouts for common controllers.

var xboxLayout = &RawMapping{
	Name: "xbox",
	Axes: []rawAxis{
		{Index: 0, Axis: AxisLeftStickX},
		{Index: 1, Axis: AxisLeftStickY, Invert: true},
		{Index: 2, Axis: AxisRightStickX},
		{Index: 3, Axis: AxisRightStickY, Invert: true},
		{Index: 4, Axis: AxisLeftTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
		{Index: 5, Axis: AxisRightTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	},
	Buttons: []rawButton{
		{Index: 0, Button: ButtonSouth},
		{Index: 1, Button: ButtonEast},
		{Index: 2, Button: ButtonWest},
		{Index: 3, Button: ButtonNorth},
		{Index: 4, Button: ButtonLeftBumper},
		{Index: 5, Button: ButtonRightBumper},
		{Index: 6, Button: ButtonSelect},
		{Index: 7, Button: ButtonStart},
		{Index: 8, Button: ButtonLeftThumb},
		{Index: 9, Button: ButtonRightThumb},
		{Index: 10, Button: ButtonMode},
	},
	HasHat: true,
}

var playstationLayout = &RawMapping{
	Name: "playstation",
	Axes: []rawAxis{
		{Index: 0, Axis: AxisLeftStickX},
		{Index: 1, Axis: AxisLeftStickY, Invert: true},
		{Index: 2, Axis: AxisRightStickX},
		{Index: 3, Axis: AxisRightStickY, Invert: true},
		{Index: 4, Axis: AxisLeftTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
		{Index: 5, Axis: AxisRightTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	},
	Buttons: []rawButton{
		{Index: 0, Button: ButtonSouth},  // Cross
		{Index: 1, Button: ButtonEast},   // Circle
		{Index: 2, Button: ButtonWest},   // Square
		{Index: 3, Button: ButtonNorth},  // Triangle
		{Index: 4, Button: ButtonSelect}, // Share / Create
		{Index: 5, Button: ButtonMode},   // PS button
		{Index: 6, Button: ButtonStart},  // Options
		{Index: 7, Button: ButtonLeftThumb},
		{Index: 8, Button: ButtonRightThumb},
		{Index: 9, Button: ButtonLeftBumper},   // L1
		{Index: 10, Button: ButtonRightBumper}, // R1
	},
	HasHat: true,
}

var switchProLayout = &RawMapping{
	Name: "switch_pro",
	Axes: []rawAxis{
		{Index: 0, Axis: AxisLeftStickX},
		{Index: 1, Axis: AxisLeftStickY, Invert: true},
		{Index: 2, Axis: AxisRightStickX},
		{Index: 3, Axis: AxisRightStickY, Invert: true},
	},
	Buttons: []rawButton{
		{Index: 0, Button: ButtonSouth},
		{Index: 1, Button: ButtonEast},
		{Index: 2, Button: ButtonWest},
		{Index: 3, Button: ButtonNorth},
		{Index: 4, Button: ButtonLeftBumper},
		{Index: 5, Button: ButtonRightBumper},
		{Index: 6, Button: ButtonSelect},
		{Index: 7, Button: ButtonStart},
		{Index: 8, Button: ButtonLeftThumb},
		{Index: 9, Button: ButtonRightThumb},
		{Index: 10, Button: ButtonMode},
	},
	HasHat: true,
}

var genericLayout = &RawMapping{
	Name: "generic",
	Axes: []rawAxis{
		{Index: 0, Axis: AxisLeftStickX},
		{Index: 1, Axis: AxisLeftStickY, Invert: true},
		{Index: 2, Axis: AxisRightStickX},
		{Index: 3, Axis: AxisRightStickY, Invert: true},
		{Index: 4, Axis: AxisLeftTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
		{Index: 5, Axis: AxisRightTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	},
	Buttons: []rawButton{
		{Index: 0, Button: ButtonSouth},
		{Index: 1, Button: ButtonEast},
		{Index: 2, Button: ButtonWest},
		{Index: 3, Button: ButtonNorth},
		{Index: 4, Button: ButtonLeftBumper},
		{Index: 5, Button: ButtonRightBumper},
		{Index: 6, Button: ButtonSelect},
		{Index: 7, Button: ButtonStart},
		{Index: 8, Button: ButtonLeftThumb},
		{Index: 9, Button: ButtonRightThumb},
		{Index: 10, Button: ButtonMode},
	},
	HasHat: true,
}

// Known vendor/product IDs.
type deviceKey struct {
	VendorID  uint16
	ProductID uint16
}

var knownDevices = map[deviceKey]*RawMapping{
	// Microsoft Xbox controllers
	{0x045E, 0x028E}: xboxLayout, // Xbox 360
	{0x045E, 0x02FF}: xboxLayout, // Xbox One
	{0x045E, 0x0B12}: xboxLayout, // Xbox Series X|S
	{0x045E, 0x0B13}: xboxLayout, // Xbox Series X|S (wireless)
	// Sony PlayStation controllers
	{0x054C, 0x0CE6}: playstationLayout, // DualSense
	{0x054C, 0x09CC}: playstationLayout, // DualShock 4 v2
	{0x054C, 0x05C4}: playstationLayout, // DualShock 4 v1
	// Nintendo Switch Pro Controller
	{0x057E, 0x2009}: switchProLayout,
}

// GetRawMapping returns the raw layout for a device identified by
// vendor/product ID, falling back to the generic layout.
func GetRawMapping(vendorID, productID uint16) *RawMapping {
	key := deviceKey{VendorID: vendorID, ProductID: productID}
	if m, ok := knownDevices[key]; ok {
		return m
	}
	return genericLayout
}
