package structure

import (
	"fmt"
	"strings"
)

// Describe returns an indented listing of the beam: its nodes with their
// supports and hinges, then its segments with their loads.
func (b *Beam) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Beam #%d\n", b.id)
	sb.WriteString("  Nodes:\n")
	for _, n := range b.nodes {
		n.describe(&sb, "    ")
	}
	sb.WriteString("  Segments:\n")
	for _, s := range b.segments {
		s.describe(&sb, "    ")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (n *Node) describe(sb *strings.Builder, pad string) {
	fmt.Fprintf(sb, "%sNode #%d (%g, %g)\n", pad, n.id, n.x, n.y)
	if s := n.support; s != nil {
		fmt.Fprintf(sb, "%s  Support #%d: %s, angle=%g°\n", pad, s.id, s.typ, s.angle)
		s.force.describe(sb, pad+"    ")
		s.torque.describe(sb, pad+"    ")
	}
	if h := n.hinge; h != nil {
		bodies := make([]string, len(h.bodies))
		for i, body := range h.bodies {
			bodies[i] = fmt.Sprintf("#%d", body.id)
		}
		fmt.Fprintf(sb, "%s  Hinge #%d: bodies=[%s]\n", pad, h.id, strings.Join(bodies, ", "))
	}
}

func (s *Segment) describe(sb *strings.Builder, pad string) {
	fmt.Fprintf(sb, "%sSegment #%d: node #%d -> node #%d, length=%g\n", pad, s.id, s.n1.id, s.n2.id, s.Length())
	for _, f := range s.forces {
		f.describe(sb, pad+"  ")
	}
	for _, t := range s.torques {
		t.describe(sb, pad+"  ")
	}
}

func (f *Force) describe(sb *strings.Builder, pad string) {
	fmt.Fprintf(sb, "%sForce #%d: value=%g, angle=%g°, offset=%g, length=%g, unknown=%s\n",
		pad, f.id, f.value, f.angle, f.offset, f.length, flags(f.unknownX, f.unknownY))
}

func (t *Torque) describe(sb *strings.Builder, pad string) {
	fmt.Fprintf(sb, "%sTorque #%d: value=%g, offset=%g, unknown=%s\n", pad, t.id, t.value, t.offset, yesNo(t.unknown))
}

func flags(x, y bool) string {
	return "x:" + yesNo(x) + " y:" + yesNo(y)
}

func yesNo(v bool) string {
	if v {
		return "Y"
	}
	return "N"
}
