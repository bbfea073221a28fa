package components

import (
	"math"
	"testing"
)

func TestViewModeCycle(t *testing.T) {
	m := ThirdPerson
	want := []ViewMode{FreePan, FirstPerson, ThirdPerson}
	for i, w := range want {
		m = m.Next()
		if m != w {
			t.Fatalf("press %d: got %v, want %v", i+1, m, w)
		}
	}
}

func TestVisibilityFor(t *testing.T) {
	tests := []struct {
		mode ViewMode
		want Visibility
	}{
		{FirstPerson, Hidden},
		{ThirdPerson, Visible},
		{FreePan, Visible},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			if got := VisibilityFor(tt.mode); got != tt.want {
				t.Errorf("VisibilityFor(%v) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestParseViewMode(t *testing.T) {
	for _, name := range ViewModeNames() {
		m, ok := ParseViewMode(name)
		if !ok || m.String() != name {
			t.Errorf("ParseViewMode(%q) = %v, %v", name, m, ok)
		}
	}
	if _, ok := ParseViewMode("orbit"); ok {
		t.Error("expected unknown mode to fail")
	}
}

func TestNewCraftForward(t *testing.T) {
	c := NewCraft()
	f := c.Forward()
	if math.Abs(float64(f.Z()+1)) > 1e-6 || math.Abs(float64(f.X())) > 1e-6 {
		t.Errorf("default forward = %v, want (0,0,-1)", f)
	}
	if c.ForwardSpeed != 0 || c.Bank != 0 {
		t.Error("default craft should be at rest")
	}
}

func TestControlsIdle(t *testing.T) {
	if !(Controls{}).Idle() {
		t.Error("zero controls should be idle")
	}
	if (Controls{SwitchView: true}).Idle() {
		t.Error("switch press is not idle")
	}
}
