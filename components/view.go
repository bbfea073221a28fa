package components

// ViewMode selects the active camera behavior.
type ViewMode uint8

const (
	ThirdPerson ViewMode = iota // chase camera, craft mesh visible
	FreePan                     // host-controlled camera
	FirstPerson                 // cockpit camera, craft mesh hidden
)

// Next returns the mode selected by one view-switch press.
// The cycle is ThirdPerson -> FreePan -> FirstPerson -> ThirdPerson.
func (m ViewMode) Next() ViewMode {
	switch m {
	case ThirdPerson:
		return FreePan
	case FreePan:
		return FirstPerson
	default:
		return ThirdPerson
	}
}

// String returns the display name for a ViewMode.
func (m ViewMode) String() string {
	names := ViewModeNames()
	if int(m) < len(names) {
		return names[m]
	}
	return "unknown"
}

// ViewModeNames returns the config names for all view modes.
// The order matches the ViewMode constants.
func ViewModeNames() []string {
	return []string{"third_person", "free_pan", "first_person"}
}

// ParseViewMode maps a config name to a ViewMode.
func ParseViewMode(name string) (ViewMode, bool) {
	for i, n := range ViewModeNames() {
		if n == name {
			return ViewMode(i), true
		}
	}
	return ThirdPerson, false
}

// Visibility is the render visibility flag for the player mesh.
type Visibility uint8

const (
	Visible Visibility = iota
	Hidden
)

// String returns the display name for a Visibility.
func (v Visibility) String() string {
	if v == Hidden {
		return "hidden"
	}
	return "visible"
}

// VisibilityFor returns the player mesh visibility for a view mode.
func VisibilityFor(m ViewMode) Visibility {
	if m == FirstPerson {
		return Hidden
	}
	return Visible
}
