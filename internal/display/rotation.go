package display

// Rotation is one of the four quarter-turn orientations an output can have
type Rotation int

const (
	RotationNormal Rotation = iota
	Rotation90
	Rotation180
	Rotation270
)

// RotationFromTransform maps a wlr-randr transform tag to a Rotation.
// Unknown tags, flipped variants and nil all read as RotationNormal.
func RotationFromTransform(tag *string) Rotation {
	if tag == nil {
		return RotationNormal
	}
	switch *tag {
	case "90":
		return Rotation90
	case "180":
		return Rotation180
	case "270":
		return Rotation270
	default:
		return RotationNormal
	}
}

// RotationFromHyprland is the inverse of Hyprland; anything outside 1..3 is normal
func RotationFromHyprland(v int) Rotation {
	switch v {
	case 1:
		return Rotation90
	case 2:
		return Rotation180
	case 3:
		return Rotation270
	default:
		return RotationNormal
	}
}

// Transform returns the textual tag stored on a Monitor
func (r Rotation) Transform() string {
	switch r {
	case Rotation90:
		return "90"
	case Rotation180:
		return "180"
	case Rotation270:
		return "270"
	default:
		return "normal"
	}
}

// Hyprland returns the integer used after the transform keyword in a monitor directive
func (r Rotation) Hyprland() int {
	switch r {
	case Rotation90:
		return 1
	case Rotation180:
		return 2
	case Rotation270:
		return 3
	default:
		return 0
	}
}

// Next advances to the following orientation: normal, 90, 180, 270, normal...
func (r Rotation) Next() Rotation {
	switch r {
	case RotationNormal:
		return Rotation90
	case Rotation90:
		return Rotation180
	case Rotation180:
		return Rotation270
	default:
		return RotationNormal
	}
}

// SwapsAxes reports whether width and height trade places under this rotation
func (r Rotation) SwapsAxes() bool {
	return r == Rotation90 || r == Rotation270
}

// String uses the transform tag so listings match the serialized monitor
func (r Rotation) String() string {
	return r.Transform()
}
