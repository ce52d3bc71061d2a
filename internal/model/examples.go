package model

import (
	"fmt"
	"sort"

	"github.com/alexiusacademia/gostatics/internal/structure"
)

// Example is a ready-made structure.
type Example struct {
	Name        string
	Description string
	build       func(*builder)
}

// Build constructs a fresh beam for the example.
func (e Example) Build() (*structure.Beam, error) {
	bl := &builder{b: structure.New()}
	e.build(bl)
	if bl.err != nil {
		return nil, fmt.Errorf("example %s: %w", e.Name, bl.err)
	}
	return bl.b, nil
}

var examples = map[string]Example{
	"simply-supported": {
		Name:        "simply-supported",
		Description: "Span of 10 on pinned and roller ends with a downward load of 100 at midspan",
		build:       simplySupported,
	},
	"c1-1": {
		Name:        "c1-1",
		Description: "Overhanging beam with an inclined point load, a torque and a distributed load",
		build:       overhang,
	},
	"c3-2": {
		Name:        "c3-2",
		Description: "Frame with a fixed base, one hinge and a roller",
		build:       hingedFrame,
	},
	"c4-1": {
		Name:        "c4-1",
		Description: "Branched frame on an inclined fixed base with two hinges and two rollers",
		build:       twoHingeFrame,
	},
}

// Examples returns every built-in example sorted by name.
func Examples() []Example {
	out := make([]Example, 0, len(examples))
	for _, e := range examples {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the example called name.
func Lookup(name string) (Example, error) {
	e, ok := examples[name]
	if !ok {
		return Example{}, structure.Errorf(structure.NonExistentReference, "no example named %q", name)
	}
	return e, nil
}

// builder records the first construction error and turns every later call
// into a no-op.
type builder struct {
	b   *structure.Beam
	err error
}

func (bl *builder) nodes(pts ...[2]float64) []*structure.Node {
	out := make([]*structure.Node, len(pts))
	for i, p := range pts {
		if bl.err != nil {
			return nil
		}
		var n *structure.Node
		n, bl.err = bl.b.NewNode(p[0], p[1])
		if bl.err == nil {
			out[i] = bl.b.AddNode(n)
		}
	}
	return out
}

func (bl *builder) segment(n1, n2 *structure.Node) *structure.Segment {
	if bl.err != nil {
		return nil
	}
	s, err := bl.b.NewSegment(n1, n2)
	if err == nil {
		s, err = bl.b.AddSegment(s)
	}
	bl.err = err
	return s
}

// chain joins consecutive nodes.
func (bl *builder) chain(nodes []*structure.Node) []*structure.Segment {
	var out []*structure.Segment
	for i := 1; i < len(nodes); i++ {
		out = append(out, bl.segment(nodes[i-1], nodes[i]))
	}
	return out
}

func (bl *builder) support(n *structure.Node, t structure.SupportType, angle float64) {
	if bl.err != nil {
		return
	}
	s, err := bl.b.NewSupportOfType(t, angle)
	if err == nil {
		n.AddSupport(s)
	}
	bl.err = err
}

func (bl *builder) hinge(n *structure.Node) {
	if bl.err != nil {
		return
	}
	h, err := bl.b.NewHinge()
	if err == nil {
		n.AddHinge(h)
	}
	bl.err = err
}

func (bl *builder) force(s *structure.Segment, value, angle, offset, length float64) {
	if bl.err != nil {
		return
	}
	f, err := bl.b.NewForce(value, angle, offset, length)
	if err == nil {
		err = s.AddForce(f)
	}
	bl.err = err
}

func (bl *builder) torque(s *structure.Segment, value, offset float64) {
	if bl.err != nil {
		return
	}
	t, err := bl.b.NewTorque(value, offset)
	if err == nil {
		err = s.AddTorque(t)
	}
	bl.err = err
}

func simplySupported(bl *builder) {
	n := bl.nodes([2]float64{0, 0}, [2]float64{10, 0})
	s := bl.chain(n)
	if bl.err != nil {
		return
	}
	bl.support(n[0], structure.Pinned, 0)
	bl.support(n[1], structure.Roller, 0)
	bl.force(s[0], 100, 270, 5, 1)
}

func overhang(bl *builder) {
	n := bl.nodes([2]float64{-17, 1}, [2]float64{-11, 1}, [2]float64{-1, 1})
	s := bl.chain(n)
	if bl.err != nil {
		return
	}
	bl.support(n[1], structure.Pinned, 0)
	bl.support(n[2], structure.Roller, 0)
	bl.force(s[0], 10, 215, 0, 1)
	bl.torque(s[1], 8, 0)
	bl.force(s[1], 4, 270, 2.5, 5)
}

func hingedFrame(bl *builder) {
	n := bl.nodes(
		[2]float64{1, 1}, [2]float64{1, 4}, [2]float64{4, 4},
		[2]float64{4, 3}, [2]float64{6, 3}, [2]float64{9, 3})
	s := bl.chain(n)
	if bl.err != nil {
		return
	}
	bl.support(n[0], structure.Fixed, 0)
	bl.hinge(n[2])
	bl.support(n[4], structure.Roller, 0)
	bl.force(s[1], 1600, 270, 1.5, 3)
	bl.torque(s[3], -16000, 1)
	bl.force(s[4], 9000, 330, 3, 1)
}

func twoHingeFrame(bl *builder) {
	n := bl.nodes(
		[2]float64{0, 0.5}, [2]float64{2, 3}, [2]float64{4, 3},
		[2]float64{6, 3}, [2]float64{8, 3}, [2]float64{4, 0.5})
	if bl.err != nil {
		return
	}
	s := bl.chain(n[:5])
	leg := bl.segment(n[2], n[5])
	if bl.err != nil {
		return
	}
	bl.support(n[0], structure.Fixed, 315)
	bl.support(n[4], structure.Roller, 0)
	bl.support(n[5], structure.Roller, 0)
	bl.hinge(n[1])
	bl.hinge(n[3])
	bl.torque(s[0], 29000, 3)
	bl.torque(s[3], -37000, 1)
	bl.force(leg, 11000, 0, 1, 1)
}
