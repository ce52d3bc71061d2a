package structure

import (
	"math"

	"github.com/alexiusacademia/gostatics/internal/ids"
)

// Force is a concentrated or distributed load applied to a segment.
type Force struct {
	id       int
	value    float64 // magnitude per unit length
	angle    float64 // degrees in [0, 360)
	offset   float64 // distance of the application point from the segment's first node
	length   float64 // 1 = concentrated, otherwise the loaded run
	unknownX bool
	unknownY bool
}

// NewForce creates a force owned by b's id registry.
func (b *Beam) NewForce(value, angle, offset, length float64, opts ...Option) (*Force, error) {
	if value < 0 {
		return nil, Errorf(NegativeOrZeroValue, "force magnitude cannot be negative: %g", value)
	}
	if offset < 0 {
		return nil, Errorf(NegativeOrZeroValue, "force offset cannot be negative: %g", offset)
	}
	if length <= 0 {
		return nil, Errorf(NegativeOrZeroValue, "force length must be positive: %g", length)
	}

	o := collect(opts)
	id, err := claimID(b.reg, ids.Force, o.id)
	if err != nil {
		return nil, err
	}
	return &Force{
		id:       id,
		value:    value,
		angle:    normalizeAngle(angle),
		offset:   offset,
		length:   length,
		unknownX: o.unknownX,
		unknownY: o.unknownY,
	}, nil
}

func (f *Force) ID() int { return f.id }
func (f *Force) Value() float64 { return f.value }
func (f *Force) Angle() float64 { return f.angle }
func (f *Force) Offset() float64 { return f.offset }
func (f *Force) Length() float64 { return f.length }
func (f *Force) UnknownX() bool { return f.unknownX }
func (f *Force) UnknownY() bool { return f.unknownY }
func (f *Force) Distributed() bool { return f.length != 1 }

// PartX returns the global x component of the resultant. Axis-aligned
// angles are projected exactly.
func (f *Force) PartX() float64 {
	total := f.value * f.length
	switch f.angle {
	case 0:
		return total
	case 180:
		return -total
	case 90, 270:
		return 0
	}
	return math.Cos(radians(f.angle)) * total
}

// PartY returns the global y component of the resultant.
func (f *Force) PartY() float64 {
	total := f.value * f.length
	switch f.angle {
	case 0, 180:
		return 0
	case 90:
		return total
	case 270:
		return -total
	}
	return math.Sin(radians(f.angle)) * total
}

// Torque is a concentrated moment applied to a segment. Positive values are
// counter-clockwise.
type Torque struct {
	id      int
	value   float64
	offset  float64
	unknown bool
}

// NewTorque creates a torque owned by b's id registry. Unknown() marks it
// as a quantity to solve for.
func (b *Beam) NewTorque(value, offset float64, opts ...Option) (*Torque, error) {
	if offset < 0 {
		return nil, Errorf(NegativeOrZeroValue, "torque offset cannot be negative: %g", offset)
	}

	o := collect(opts)
	id, err := claimID(b.reg, ids.Torque, o.id)
	if err != nil {
		return nil, err
	}
	return &Torque{
		id:      id,
		value:   value,
		offset:  offset,
		unknown: o.unknownX || o.unknownY,
	}, nil
}

func (t *Torque) ID() int { return t.id }
func (t *Torque) Value() float64 { return t.value }
func (t *Torque) Offset() float64 { return t.offset }
func (t *Torque) Unknown() bool { return t.unknown }

func normalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// combineProjections returns the magnitude and angle in [0, 360) of the
// vector (fx, fy).
func combineProjections(fx, fy float64) (magnitude, angle float64) {
	magnitude = math.Hypot(fx, fy)
	angle = math.Atan2(fy, fx) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	return magnitude, angle
}
