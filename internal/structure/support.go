package structure

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gostatics/internal/ids"
)

// SupportType enumerates the ways a node can be restrained.
type SupportType int

const (
	Fixed  SupportType = iota // resists translation and rotation
	Pinned                    // resists translation only
	Roller                    // resists translation along one axis
)

func (t SupportType) String() string {
	switch t {
	case Fixed:
		return "fixed"
	case Pinned:
		return "pinned"
	case Roller:
		return "roller"
	default:
		return fmt.Sprintf("SupportType(%d)", int(t))
	}
}

// ParseSupportType accepts the names returned by String.
func ParseSupportType(s string) (SupportType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed":
		return Fixed, nil
	case "pinned", "pin":
		return Pinned, nil
	case "roller":
		return Roller, nil
	}
	return 0, fmt.Errorf("unknown support type %q", s)
}

// Support restrains a node. Its reaction force and torque start as
// placeholders; the flags decide which components are solved for.
type Support struct {
	id     int
	typ    SupportType
	angle  float64
	force  *Force
	torque *Torque
}

// NewSupport creates a support of type t mounted at angle degrees. fx, fy
// and torque are the known reaction values; the unknown flags select which
// of them are solved for. Unless WithRawFlags is given, the x/y flags are
// adjusted to the mounting angle: unchanged at 0/180, swapped at 90/270,
// both forced unknown otherwise.
func (b *Beam) NewSupport(t SupportType, angle, fx, fy, torque float64, unknownFx, unknownFy, unknownT bool, opts ...Option) (*Support, error) {
	if t < Fixed || t > Roller {
		return nil, Errorf(NonExistentReference, "unknown support type %d", int(t))
	}
	o := collect(opts)

	sid, err := claimID(b.reg, ids.Support, o.id)
	if err != nil {
		return nil, err
	}
	fid, err := claimID(b.reg, ids.Force, o.forceID)
	if err != nil {
		b.reg.Release(ids.Support, sid)
		return nil, err
	}
	tid, err := claimID(b.reg, ids.Torque, o.torqueID)
	if err != nil {
		b.reg.Release(ids.Support, sid)
		b.reg.Release(ids.Force, fid)
		return nil, err
	}

	mount := normalizeAngle(angle)
	ux, uy := unknownFx, unknownFy
	if !o.rawFlags {
		ux, uy = reactionFlags(mount, unknownFx, unknownFy)
	}
	magnitude, direction := combineProjections(fx, fy)

	return &Support{
		id:    sid,
		typ:   t,
		angle: mount,
		force: &Force{
			id:       fid,
			value:    magnitude,
			angle:    normalizeAngle(mount + direction),
			length:   1,
			unknownX: ux,
			unknownY: uy,
		},
		torque: &Torque{id: tid, value: torque, unknown: unknownT},
	}, nil
}

// NewSupportOfType creates a support with the default flags of its type:
// fixed and pinned supports resist both directions, a roller resists the
// direction normal to its mounting, and only a fixed support resists
// rotation.
func (b *Beam) NewSupportOfType(t SupportType, angle float64, opts ...Option) (*Support, error) {
	return b.NewSupport(t, angle, 0, 0, 0, t != Roller, true, t == Fixed, opts...)
}

// reactionFlags applies the mounting angle rule to the caller's flags.
// An inclined reaction is not axis-aligned, so neither global component
// can be assumed known.
func reactionFlags(angle float64, ux, uy bool) (bool, bool) {
	switch angle {
	case 0, 180:
		return ux, uy
	case 90, 270:
		return uy, ux
	}
	return true, true
}

func (s *Support) ID() int { return s.id }
func (s *Support) Type() SupportType { return s.typ }
func (s *Support) Angle() float64 { return s.angle }

// Force returns the reaction force placeholder.
func (s *Support) Force() *Force { return s.force }

// Torque returns the reaction torque placeholder.
func (s *Support) Torque() *Torque { return s.torque }

// Hinge is a zero-moment internal connection. Bodies holds the sub-beams
// incident on it and is populated only while solving.
type Hinge struct {
	id     int
	bodies []*Beam
}

// NewHinge creates a hinge owned by b's id registry.
func (b *Beam) NewHinge(opts ...Option) (*Hinge, error) {
	o := collect(opts)
	id, err := claimID(b.reg, ids.Hinge, o.id)
	if err != nil {
		return nil, err
	}
	return &Hinge{id: id}, nil
}

func (h *Hinge) ID() int { return h.id }

// Bodies returns the sub-beams recorded by the last decomposition.
func (h *Hinge) Bodies() []*Beam {
	out := make([]*Beam, len(h.bodies))
	copy(out, h.bodies)
	return out
}

func (h *Hinge) assignBody(b *Beam) {
	if !h.hasBody(b) {
		h.bodies = append(h.bodies, b)
	}
}

func (h *Hinge) hasBody(b *Beam) bool {
	for _, existing := range h.bodies {
		if existing == b {
			return true
		}
	}
	return false
}
