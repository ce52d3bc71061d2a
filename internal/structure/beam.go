// Package structure models planar beam structures as graphs of nodes and
// segments, and solves them for their support and hinge reactions.
package structure

import (
	"log/slog"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/alexiusacademia/gostatics/internal/ids"
)

type point struct{ x, y float64 }

// edgeKey identifies an undirected edge by its two node handles, lower
// handle first.
type edgeKey struct{ u, v int }

func newEdgeKey(u, v int) edgeKey {
	if u > v {
		u, v = v, u
	}
	return edgeKey{u, v}
}

// Beam is an undirected graph of nodes and segments. Node handles are
// insertion indices; coordinates are consulted only by AddNode to merge
// coincident nodes.
//
// A Beam is not safe for concurrent use.
type Beam struct {
	id     int
	reg    *ids.Registry
	logger *slog.Logger

	nodes    []*Node
	handles  map[*Node]int
	byCoord  map[point]int
	segments []*Segment
	edges    map[edgeKey]*Segment
	graph    *simple.UndirectedGraph
}

// New returns an empty beam with its own id registry.
func New() *Beam {
	return newBeam(1, ids.New(), slog.Default())
}

func newBeam(id int, reg *ids.Registry, logger *slog.Logger) *Beam {
	return &Beam{
		id:      id,
		reg:     reg,
		logger:  logger,
		handles: make(map[*Node]int),
		byCoord: make(map[point]int),
		edges:   make(map[edgeKey]*Segment),
		graph:   simple.NewUndirectedGraph(),
	}
}

// SetLogger replaces the logger used while solving. A nil logger restores
// slog.Default().
func (b *Beam) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	b.logger = l
}

// ID returns the beam id. Sub-beams produced by Decompose are numbered from 1.
func (b *Beam) ID() int { return b.id }

// Registry returns the id registry shared by every entity of the beam.
func (b *Beam) Registry() *ids.Registry { return b.reg }

// AddNode inserts n and returns the node that now represents its position.
// If a node with the same coordinates is already present, that node is
// returned and n is discarded.
func (b *Beam) AddNode(n *Node) *Node {
	if h, ok := b.handles[n]; ok {
		return b.nodes[h]
	}
	if h, ok := b.byCoord[point{n.x, n.y}]; ok {
		return b.nodes[h]
	}
	b.insertNode(n)
	return n
}

func (b *Beam) insertNode(n *Node) int {
	h := len(b.nodes)
	b.nodes = append(b.nodes, n)
	b.handles[n] = h
	b.byCoord[point{n.x, n.y}] = h
	b.graph.AddNode(simple.Node(h))
	return h
}

// AddSegment inserts s, resolving both endpoints through AddNode, and
// returns the segment that now joins them. If the endpoints are already
// joined the existing segment is returned and s is discarded.
func (b *Beam) AddSegment(s *Segment) (*Segment, error) {
	if s.n1 == s.n2 || (s.n1.x == s.n2.x && s.n1.y == s.n2.y) {
		return nil, Errorf(DegenerateSegment, "segment %d has coincident endpoints (%g, %g)", s.id, s.n1.x, s.n1.y)
	}
	n1 := b.AddNode(s.n1)
	n2 := b.AddNode(s.n2)
	s.n1, s.n2 = n1, n2

	key := newEdgeKey(b.handles[n1], b.handles[n2])
	if existing, ok := b.edges[key]; ok {
		return existing, nil
	}
	b.insertSegment(key, s)
	return s, nil
}

func (b *Beam) insertSegment(key edgeKey, s *Segment) {
	b.segments = append(b.segments, s)
	b.edges[key] = s
	b.graph.SetEdge(b.graph.NewEdge(simple.Node(key.u), simple.Node(key.v)))
}

// Nodes returns the nodes in insertion order.
func (b *Beam) Nodes() []*Node {
	out := make([]*Node, len(b.nodes))
	copy(out, b.nodes)
	return out
}

// Segments returns the segments in insertion order.
func (b *Beam) Segments() []*Segment {
	out := make([]*Segment, len(b.segments))
	copy(out, b.segments)
	return out
}

// NodeAt returns the n-th node (1-based) in insertion order.
func (b *Beam) NodeAt(n int) (*Node, error) {
	if n < 1 || n > len(b.nodes) {
		return nil, Errorf(NonExistentReference, "node %d does not exist", n)
	}
	return b.nodes[n-1], nil
}

// SegmentAt returns the n-th segment (1-based) in insertion order.
func (b *Beam) SegmentAt(n int) (*Segment, error) {
	if n < 1 || n > len(b.segments) {
		return nil, Errorf(NonExistentReference, "segment %d does not exist", n)
	}
	return b.segments[n-1], nil
}

// Contains reports whether n is one of the beam's nodes.
func (b *Beam) Contains(n *Node) bool {
	_, ok := b.handles[n]
	return ok
}

// connected reports whether every node is reachable from every other one.
func (b *Beam) connected() bool {
	return len(topo.ConnectedComponents(b.graph)) <= 1
}

// hasSupport reports whether any node carries a support.
func (b *Beam) hasSupport() bool {
	for _, n := range b.nodes {
		if n.support != nil {
			return true
		}
	}
	return false
}

// reassignIDs renumbers every entity into a contiguous sequence following
// node order, then segment order. Supports take their ids together with
// their reaction force and torque; hinges follow node order.
func (b *Beam) reassignIDs() {
	b.reg.Reset()
	for _, n := range b.nodes {
		n.id = b.reg.Allocate(ids.Node)
		if s := n.support; s != nil {
			s.id = b.reg.Allocate(ids.Support)
			s.force.id = b.reg.Allocate(ids.Force)
			s.torque.id = b.reg.Allocate(ids.Torque)
		}
	}
	for _, s := range b.segments {
		s.id = b.reg.Allocate(ids.Segment)
		for _, f := range s.forces {
			f.id = b.reg.Allocate(ids.Force)
		}
		for _, t := range s.torques {
			t.id = b.reg.Allocate(ids.Torque)
		}
	}
	seen := make(map[*Hinge]bool)
	for _, n := range b.nodes {
		if h := n.hinge; h != nil && !seen[h] {
			seen[h] = true
			h.id = b.reg.Allocate(ids.Hinge)
		}
	}
}
