package components

// Controls is a per-tick snapshot of the held logical buttons.
type Controls struct {
	ThrottleUp   bool
	ThrottleDown bool
	PitchUp      bool
	PitchDown    bool
	YawLeft      bool
	YawRight     bool

	// SwitchView is true only on the tick the mode-switch button was pressed.
	SwitchView bool
}

// Idle reports whether no button is held or pressed.
func (c Controls) Idle() bool {
	return c == Controls{}
}
