package gamepad

import "fmt"

// Axis is a normalized analog input channel, reporting -1.0..1.0
// (triggers report 0.0..1.0, hats report -1, 0 or 1 per direction).
type Axis string

const (
	AxisLeftStickX   Axis = "LeftStickX"
	AxisLeftStickY   Axis = "LeftStickY"
	AxisRightStickX  Axis = "RightStickX"
	AxisRightStickY  Axis = "RightStickY"
	AxisLeftTrigger  Axis = "LeftTrigger"
	AxisRightTrigger Axis = "RightTrigger"
	AxisDPadX        Axis = "DPadX"
	AxisDPadY        Axis = "DPadY"
)

// Button is a normalized digital input channel.
type Button string

const (
	ButtonSouth       Button = "South"
	ButtonEast        Button = "East"
	ButtonWest        Button = "West"
	ButtonNorth       Button = "North"
	ButtonLeftBumper  Button = "LeftBumper"
	ButtonRightBumper Button = "RightBumper"
	ButtonSelect      Button = "Select"
	ButtonStart       Button = "Start"
	ButtonMode        Button = "Mode"
	ButtonLeftThumb   Button = "LeftThumb"
	ButtonRightThumb  Button = "RightThumb"
)

var allAxes = map[Axis]bool{
	AxisLeftStickX: true, AxisLeftStickY: true,
	AxisRightStickX: true, AxisRightStickY: true,
	AxisLeftTrigger: true, AxisRightTrigger: true,
	AxisDPadX: true, AxisDPadY: true,
}

var allButtons = map[Button]bool{
	ButtonSouth: true, ButtonEast: true, ButtonWest: true, ButtonNorth: true,
	ButtonLeftBumper: true, ButtonRightBumper: true,
	ButtonSelect: true, ButtonStart: true, ButtonMode: true,
	ButtonLeftThumb: true, ButtonRightThumb: true,
}

// ParseAxis validates an axis name from a mapping config.
func ParseAxis(name string) (Axis, error) {
	if !allAxes[Axis(name)] {
		return "", fmt.Errorf("unknown axis name %q", name)
	}
	return Axis(name), nil
}

// ParseButton validates a button name from a mapping config.
func ParseButton(name string) (Button, error) {
	if !allButtons[Button(name)] {
		return "", fmt.Errorf("unknown button name %q", name)
	}
	return Button(name), nil
}
