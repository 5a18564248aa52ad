package gamepad

import (
	"math"
	"testing"
)

func TestNormalizeAxis(t *testing.T) {
	tests := []struct {
		raw  int16
		want float64
	}{
		{0, 0},
		{math.MaxInt16, 1.0},
		{math.MinInt16, -1.0},
		{math.MaxInt16 / 2, 0.5},
	}
	for _, tt := range tests {
		got := NormalizeAxis(tt.raw)
		if math.Abs(got-tt.want) > 0.001 {
			t.Errorf("NormalizeAxis(%d) = %f, want %f", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeTrigger(t *testing.T) {
	if got := NormalizeTrigger(-32768, -32768, 32767); got != 0 {
		t.Errorf("rest position = %f, want 0", got)
	}
	if got := NormalizeTrigger(32767, -32768, 32767); got != 1 {
		t.Errorf("full pull = %f, want 1", got)
	}
	if got := NormalizeTrigger(100, 0, 0); got != 0 {
		t.Errorf("degenerate range = %f, want 0", got)
	}
}

func TestApplyDeadzone(t *testing.T) {
	if got := ApplyDeadzone(0.03, 0.05); got != 0 {
		t.Errorf("inside deadzone = %f, want 0", got)
	}
	if got := ApplyDeadzone(-0.5, 0.05); got != -0.5 {
		t.Errorf("outside deadzone = %f, want -0.5", got)
	}
}

func TestGetRawMappingFallsBackToGeneric(t *testing.T) {
	if m := GetRawMapping(0xDEAD, 0xBEEF); m.Name != "generic" {
		t.Errorf("unknown device layout = %q, want generic", m.Name)
	}
	if m := GetRawMapping(0x054C, 0x0CE6); m.Name != "playstation" {
		t.Errorf("DualSense layout = %q, want playstation", m.Name)
	}
}

func TestHatAxes(t *testing.T) {
	tests := []struct {
		hat  uint8
		x, y float64
	}{
		{0, 0, 0},
		{hatUp, 0, 1},
		{hatDown, 0, -1},
		{hatLeft, -1, 0},
		{hatRight, 1, 0},
		{hatUp | hatRight, 1, 1},
	}
	for _, tt := range tests {
		x, y := hatAxes(tt.hat)
		if x != tt.x || y != tt.y {
			t.Errorf("hatAxes(0x%02X) = (%f, %f), want (%f, %f)", tt.hat, x, y, tt.x, tt.y)
		}
	}
}

func TestParseAxisAndButton(t *testing.T) {
	if _, err := ParseAxis("LeftStickX"); err != nil {
		t.Errorf("ParseAxis(LeftStickX): %v", err)
	}
	if _, err := ParseAxis("Warp"); err == nil {
		t.Errorf("expected error for unknown axis")
	}
	if _, err := ParseButton("South"); err != nil {
		t.Errorf("ParseButton(South): %v", err)
	}
	if _, err := ParseButton("Fire"); err == nil {
		t.Errorf("expected error for unknown button")
	}
}
