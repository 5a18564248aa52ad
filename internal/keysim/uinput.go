package keysim

import (
	"fmt"

	"github.com/bendahl/uinput"
)

// UinputSink injects key events through a virtual uinput keyboard device.
type UinputSink struct {
	keyboard uinput.Keyboard
}

// NewUinputSink creates the virtual keyboard. Requires write access to
// /dev/uinput.
func NewUinputSink(name string) (*UinputSink, error) {
	kb, err := uinput.CreateKeyboard("/dev/uinput", []byte(name))
	if err != nil {
		return nil, fmt.Errorf("create virtual keyboard: %w", err)
	}
	return &UinputSink{keyboard: kb}, nil
}

func (s *UinputSink) Press(k Key) error {
	return s.keyboard.KeyDown(int(k))
}

func (s *UinputSink) Release(k Key) error {
	return s.keyboard.KeyUp(int(k))
}

// Close destroys the virtual keyboard device.
func (s *UinputSink) Close() error {
	return s.keyboard.Close()
}
