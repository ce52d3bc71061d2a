package structure

import (
	"math"

	"github.com/alexiusacademia/gostatics/internal/ids"
)

// Node is a point of the structure. Identity, not position, is the
// equality key; positions are only used to merge nodes inside a Beam.
type Node struct {
	id      int
	x, y    float64
	support *Support
	hinge   *Hinge
}

// NewNode creates a node at (x, y). It is not part of b until AddNode or
// AddSegment is called.
func (b *Beam) NewNode(x, y float64, opts ...Option) (*Node, error) {
	o := collect(opts)
	id, err := claimID(b.reg, ids.Node, o.id)
	if err != nil {
		return nil, err
	}
	return &Node{id: id, x: x, y: y}, nil
}

func (n *Node) ID() int { return n.id }
func (n *Node) X() float64 { return n.x }
func (n *Node) Y() float64 { return n.y }
func (n *Node) Support() *Support { return n.support }
func (n *Node) Hinge() *Hinge { return n.hinge }

// AddSupport attaches s to the node, replacing any previous support.
// A supported node cannot also be a hinge.
func (n *Node) AddSupport(s *Support) {
	n.support = s
	n.hinge = nil
}

// AddHinge marks the node as a hinge. A hinge node carries no support.
func (n *Node) AddHinge(h *Hinge) {
	n.hinge = h
	n.support = nil
}

// RemoveSupport detaches the node's support, if any.
func (n *Node) RemoveSupport() {
	n.support = nil
}

// RemoveHinge clears the node's hinge marker, if any.
func (n *Node) RemoveHinge() {
	n.hinge = nil
}

// Segment is a straight rigid member between two distinct nodes.
type Segment struct {
	id      int
	n1, n2  *Node
	forces  []*Force
	torques []*Torque
}

// NewSegment creates a segment from n1 to n2. It is not part of b until
// AddSegment is called.
func (b *Beam) NewSegment(n1, n2 *Node, opts ...Option) (*Segment, error) {
	if n1 == nil || n2 == nil {
		return nil, Errorf(NonExistentReference, "segment needs two nodes")
	}
	o := collect(opts)
	id, err := claimID(b.reg, ids.Segment, o.id)
	if err != nil {
		return nil, err
	}
	return &Segment{id: id, n1: n1, n2: n2}, nil
}

func (s *Segment) ID() int { return s.id }

// Nodes returns the first and second endpoint.
func (s *Segment) Nodes() (*Node, *Node) { return s.n1, s.n2 }

// Length is the Euclidean distance between the endpoints.
func (s *Segment) Length() float64 {
	return math.Hypot(s.n2.x-s.n1.x, s.n2.y-s.n1.y)
}

// PointAt returns the position at distance offset from the first node.
func (s *Segment) PointAt(offset float64) (x, y float64) {
	l := s.Length()
	if l == 0 {
		return s.n1.x, s.n1.y
	}
	t := offset / l
	return s.n1.x + t*(s.n2.x-s.n1.x), s.n1.y + t*(s.n2.y-s.n1.y)
}

// Forces returns the attached forces in insertion order.
func (s *Segment) Forces() []*Force {
	out := make([]*Force, len(s.forces))
	copy(out, s.forces)
	return out
}

// Torques returns the attached torques in insertion order.
func (s *Segment) Torques() []*Torque {
	out := make([]*Torque, len(s.torques))
	copy(out, s.torques)
	return out
}

// AddForce attaches f. Its offset must not exceed the segment length.
func (s *Segment) AddForce(f *Force) error {
	if f.offset > s.Length() {
		return Errorf(OffsetExceedsLength, "force offset %g exceeds segment %d length %g", f.offset, s.id, s.Length())
	}
	s.forces = append(s.forces, f)
	return nil
}

// AddTorque attaches t. Its offset must not exceed the segment length.
func (s *Segment) AddTorque(t *Torque) error {
	if t.offset > s.Length() {
		return Errorf(OffsetExceedsLength, "torque offset %g exceeds segment %d length %g", t.offset, s.id, s.Length())
	}
	s.torques = append(s.torques, t)
	return nil
}
