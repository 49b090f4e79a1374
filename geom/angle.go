package geom

import (
	"fmt"
	"math"
)

// AngleUnit is the unit an Angle was specified in.
type AngleUnit uint8

const (
	// Radians measures the angle in radians.
	Radians AngleUnit = iota
	// Degrees measures the angle in degrees.
	Degrees
	// Turns measures the angle in fractions of a full circle.
	Turns
)

// Angle is an angle value tagged with the unit it was created in.
type Angle struct {
	Value float32
	Unit  AngleUnit
}

// Rad creates an angle in radians.
func Rad(v float32) Angle { return Angle{Value: v, Unit: Radians} }

// Deg creates an angle in degrees.
func Deg(v float32) Angle { return Angle{Value: v, Unit: Degrees} }

// Unit creates an angle in turns, where 1 is a full circle.
func Unit(v float32) Angle { return Angle{Value: v, Unit: Turns} }

// Radians returns the angle in radians.
func (a Angle) Radians() float32 {
	switch a.Unit {
	case Degrees:
		return a.Value * math.Pi / 180
	case Turns:
		return a.Value * 2 * math.Pi
	default:
		return a.Value
	}
}

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float32 {
	switch a.Unit {
	case Degrees:
		return a.Value
	case Turns:
		return a.Value * 360
	default:
		return a.Value * 180 / math.Pi
	}
}

// Turns returns the angle as a fraction of a full circle.
func (a Angle) Turns() float32 {
	switch a.Unit {
	case Degrees:
		return a.Value / 360
	case Turns:
		return a.Value
	default:
		return a.Value / (2 * math.Pi)
	}
}

func (a Angle) String() string {
	switch a.Unit {
	case Degrees:
		return fmt.Sprintf("%gdeg", a.Value)
	case Turns:
		return fmt.Sprintf("%gturn", a.Value)
	default:
		return fmt.Sprintf("%grad", a.Value)
	}
}
