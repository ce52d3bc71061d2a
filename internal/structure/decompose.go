package structure

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// isHinge reports whether n acts as a hinge. A support takes precedence
// over a hinge marker.
func isHinge(n *Node) bool {
	return n.hinge != nil && n.support == nil
}

// group is the segment set of one future sub-beam, keyed by the smallest
// parent handle it touches.
type group struct {
	first    int
	handles  []int
	segments []int
}

// Decompose splits b at its hinge nodes into independently balanced
// sub-beams numbered from 1. Every sub-beam keeps the hinge nodes at its
// boundary, so a hinge appears in each sub-beam incident on it, and the
// hinge records those sub-beams as its bodies. A segment joining two hinge
// nodes forms a sub-beam of its own. A beam without hinges decomposes to
// itself.
//
// Sub-beams share nodes and segments with b; they are views used for
// assembly, not independent structures.
func Decompose(b *Beam) []*Beam {
	var hinges []int
	for h, n := range b.nodes {
		if isHinge(n) {
			hinges = append(hinges, h)
		}
	}
	if len(hinges) == 0 {
		return []*Beam{b}
	}
	for _, h := range hinges {
		b.nodes[h].hinge.bodies = nil
	}

	// Connectivity of the beam with its hinge nodes removed.
	rest := simple.NewUndirectedGraph()
	for h, n := range b.nodes {
		if !isHinge(n) {
			rest.AddNode(simple.Node(h))
		}
	}
	for key := range b.edges {
		if !isHinge(b.nodes[key.u]) && !isHinge(b.nodes[key.v]) {
			rest.SetEdge(rest.NewEdge(simple.Node(key.u), simple.Node(key.v)))
		}
	}

	owner := make(map[int]int) // non-hinge handle -> group index
	var groups []*group
	for _, comp := range topo.ConnectedComponents(rest) {
		g := &group{first: len(b.nodes)}
		for _, n := range comp {
			h := int(n.ID())
			g.handles = append(g.handles, h)
			if h < g.first {
				g.first = h
			}
			owner[h] = len(groups)
		}
		groups = append(groups, g)
	}

	segGroup := make([]int, len(b.segments))
	for i, s := range b.segments {
		u, v := b.handles[s.n1], b.handles[s.n2]
		switch {
		case !isHinge(s.n1):
			segGroup[i] = owner[u]
		case !isHinge(s.n2):
			segGroup[i] = owner[v]
		default:
			segGroup[i] = len(groups)
			groups = append(groups, &group{first: min(u, v)})
		}
		g := groups[segGroup[i]]
		g.segments = append(g.segments, i)
		g.handles = append(g.handles, u, v)
	}

	order := make([]int, len(groups))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return groups[order[i]].first < groups[order[j]].first
	})

	subs := make([]*Beam, len(groups))
	for pos, gi := range order {
		subs[gi] = b.materialize(pos+1, groups[gi])
	}

	for i, s := range b.segments {
		for _, n := range []*Node{s.n1, s.n2} {
			if isHinge(n) {
				n.hinge.assignBody(subs[segGroup[i]])
			}
		}
	}

	out := make([]*Beam, len(order))
	for pos, gi := range order {
		out[pos] = subs[gi]
	}
	return out
}

// materialize builds the sub-beam of g. Nodes keep their parent order.
func (b *Beam) materialize(id int, g *group) *Beam {
	sub := newBeam(id, b.reg, b.logger)

	handles := append([]int(nil), g.handles...)
	sort.Ints(handles)
	for _, h := range handles {
		n := b.nodes[h]
		if !sub.Contains(n) {
			sub.insertNode(n)
		}
	}
	for _, i := range g.segments {
		s := b.segments[i]
		sub.insertSegment(newEdgeKey(sub.handles[s.n1], sub.handles[s.n2]), s)
	}
	return sub
}
