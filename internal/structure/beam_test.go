package structure

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gostatics/internal/ids"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// chain adds nodes at the given points and joins consecutive ones.
func chain(t *testing.T, b *Beam, pts ...[2]float64) ([]*Node, []*Segment) {
	t.Helper()
	nodes := make([]*Node, len(pts))
	for i, p := range pts {
		nodes[i] = b.AddNode(must(b.NewNode(p[0], p[1])))
	}
	var segs []*Segment
	for i := 1; i < len(nodes); i++ {
		s := must(b.NewSegment(nodes[i-1], nodes[i]))
		segs = append(segs, must(b.AddSegment(s)))
	}
	return nodes, segs
}

func TestAddNodeMergesCoincidentNodes(t *testing.T) {
	b := New()
	first := b.AddNode(must(b.NewNode(1, 2)))
	second := b.AddNode(must(b.NewNode(1, 2)))
	other := b.AddNode(must(b.NewNode(2, 1)))

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
	assert.Len(t, b.Nodes(), 2)
	assert.Same(t, first, b.AddNode(first), "re-adding a member is a no-op")
}

func TestAddSegment(t *testing.T) {
	t.Run("resolves endpoints through coordinates", func(t *testing.T) {
		b := New()
		a := b.AddNode(must(b.NewNode(0, 0)))
		ghost := must(b.NewNode(0, 0))
		c := must(b.NewNode(3, 4))

		s := must(b.AddSegment(must(b.NewSegment(ghost, c))))
		n1, n2 := s.Nodes()
		assert.Same(t, a, n1)
		assert.Same(t, c, n2)
		assert.Len(t, b.Nodes(), 2)
		assert.InDelta(t, 5.0, s.Length(), 1e-12)
	})

	t.Run("duplicate edge returns the first segment", func(t *testing.T) {
		b := New()
		nodes, segs := chain(t, b, [2]float64{0, 0}, [2]float64{5, 0})
		again := must(b.AddSegment(must(b.NewSegment(nodes[1], nodes[0]))))
		assert.Same(t, segs[0], again)
		assert.Len(t, b.Segments(), 1)
	})

	t.Run("degenerate segment", func(t *testing.T) {
		b := New()
		a := must(b.NewNode(1, 1))
		c := must(b.NewNode(1, 1))
		_, err := b.AddSegment(must(b.NewSegment(a, c)))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDegenerateSegment)
		assert.Empty(t, b.Nodes(), "nothing is inserted on failure")
	})

	t.Run("insertion order is stable", func(t *testing.T) {
		b := New()
		nodes, segs := chain(t, b, [2]float64{0, 0}, [2]float64{1, 0}, [2]float64{2, 0}, [2]float64{3, 0})
		assert.Equal(t, nodes, b.Nodes())
		assert.Equal(t, segs, b.Segments())
	})
}

func TestNumberLookup(t *testing.T) {
	b := New()
	nodes, segs := chain(t, b, [2]float64{0, 0}, [2]float64{1, 0}, [2]float64{2, 0})

	n, err := b.NodeAt(3)
	require.NoError(t, err)
	assert.Same(t, nodes[2], n)

	s, err := b.SegmentAt(1)
	require.NoError(t, err)
	assert.Same(t, segs[0], s)

	for _, k := range []int{0, 4, -1} {
		_, err := b.NodeAt(k)
		assert.ErrorIs(t, err, ErrNonExistentReference)
	}
	_, err = b.SegmentAt(3)
	assert.ErrorIs(t, err, ErrNonExistentReference)
}

func TestLoadValidation(t *testing.T) {
	b := New()
	tests := []struct {
		name  string
		build func() error
		want  ErrorKind
	}{
		{"negative magnitude", func() error { _, err := b.NewForce(-1, 0, 0, 1); return err }, NegativeOrZeroValue},
		{"negative offset", func() error { _, err := b.NewForce(1, 0, -1, 1); return err }, NegativeOrZeroValue},
		{"zero length", func() error { _, err := b.NewForce(1, 0, 0, 0); return err }, NegativeOrZeroValue},
		{"negative torque offset", func() error { _, err := b.NewTorque(5, -0.5); return err }, NegativeOrZeroValue},
		{"zero magnitude is allowed", func() error { _, err := b.NewForce(0, 0, 0, 1); return err }, 0},
		{"negative torque is allowed", func() error { _, err := b.NewTorque(-5, 0); return err }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.build()))
		})
	}
}

func TestForceProjections(t *testing.T) {
	b := New()
	tests := []struct {
		angle  float64
		length float64
		wantX  float64
		wantY  float64
	}{
		{0, 1, 10, 0},
		{90, 1, 0, 10},
		{180, 2, -20, 0},
		{270, 1, 0, -10},
		{-90, 1, 0, -10},
		{450, 1, 0, 10},
		{45, 1, 7.0710678, 7.0710678},
	}
	for _, tt := range tests {
		f := must(b.NewForce(10, tt.angle, 0, tt.length))
		assert.InDelta(t, tt.wantX, f.PartX(), 1e-6, "angle %g", tt.angle)
		assert.InDelta(t, tt.wantY, f.PartY(), 1e-6, "angle %g", tt.angle)
	}

	down := must(b.NewForce(10, 270, 0, 1))
	assert.Equal(t, 0.0, down.PartX(), "axis-aligned projections are exact")
}

func TestOffsetExceedsLength(t *testing.T) {
	b := New()
	_, segs := chain(t, b, [2]float64{0, 0}, [2]float64{4, 0})

	require.NoError(t, segs[0].AddForce(must(b.NewForce(1, 270, 4, 1))))
	err := segs[0].AddForce(must(b.NewForce(1, 270, 4.5, 1)))
	assert.ErrorIs(t, err, ErrOffsetExceedsLength)

	err = segs[0].AddTorque(must(b.NewTorque(1, 5)))
	assert.ErrorIs(t, err, ErrOffsetExceedsLength)
	assert.Len(t, segs[0].Forces(), 1)
	assert.Empty(t, segs[0].Torques())
}

func TestSupportFlags(t *testing.T) {
	tests := []struct {
		name         string
		typ          SupportType
		angle        float64
		wantX, wantY bool
		wantTorque   bool
	}{
		{"fixed", Fixed, 0, true, true, true},
		{"pinned", Pinned, 0, true, true, false},
		{"roller flat", Roller, 0, false, true, false},
		{"roller upside down", Roller, 180, false, true, false},
		{"roller on a wall", Roller, 90, true, false, false},
		{"roller on the other wall", Roller, 270, true, false, false},
		{"roller inclined", Roller, 45, true, true, false},
		{"pinned inclined", Pinned, 30, true, true, false},
		{"fixed inclined", Fixed, 315, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			s := must(b.NewSupportOfType(tt.typ, tt.angle))
			assert.Equal(t, tt.wantX, s.Force().UnknownX())
			assert.Equal(t, tt.wantY, s.Force().UnknownY())
			assert.Equal(t, tt.wantTorque, s.Torque().Unknown())
			assert.Zero(t, s.Force().Value())
		})
	}

	t.Run("raw flags skip the angle rule", func(t *testing.T) {
		b := New()
		s := must(b.NewSupport(Roller, 90, 0, 0, 0, false, true, false, WithRawFlags()))
		assert.False(t, s.Force().UnknownX())
		assert.True(t, s.Force().UnknownY())
	})
}

func TestSupportHingeExclusive(t *testing.T) {
	b := New()
	n := b.AddNode(must(b.NewNode(0, 0)))
	s := must(b.NewSupportOfType(Pinned, 0))
	h := must(b.NewHinge())

	n.AddSupport(s)
	n.AddHinge(h)
	assert.Nil(t, n.Support())
	assert.Same(t, h, n.Hinge())

	n.AddSupport(s)
	assert.Nil(t, n.Hinge())
	assert.Same(t, s, n.Support())
}

func TestCustomIDs(t *testing.T) {
	b := New()
	n := must(b.NewNode(0, 0, WithID(7)))
	assert.Equal(t, 7, n.ID())

	_, err := b.NewNode(1, 0, WithID(7))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.True(t, errors.Is(err, ids.ErrDuplicateID))

	other := must(b.NewSegment(n, n, WithID(7)))
	assert.Equal(t, 7, other.ID(), "kinds are independent")

	_, err = b.NewSupportOfType(Fixed, 0, WithID(1), WithReactionIDs(3, 3))
	require.NoError(t, err)
	_, err = b.NewSupportOfType(Fixed, 0, WithID(2), WithReactionIDs(3, 4))
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.False(t, b.Registry().InUse(ids.Support, 2), "failed support releases its id")
}

func TestReassignIDs(t *testing.T) {
	b := New()
	a := must(b.NewNode(0, 0, WithID(40)))
	c := must(b.NewNode(10, 0, WithID(12)))
	a.AddSupport(must(b.NewSupportOfType(Pinned, 0, WithID(9), WithReactionIDs(30, 31))))
	s := must(b.AddSegment(must(b.NewSegment(a, c, WithID(5)))))
	f := must(b.NewForce(100, 270, 5, 1, WithID(2)))
	require.NoError(t, s.AddForce(f))

	b.reassignIDs()

	assert.Equal(t, 1, a.ID())
	assert.Equal(t, 2, c.ID())
	assert.Equal(t, 1, a.Support().ID())
	assert.Equal(t, 1, a.Support().Force().ID())
	assert.Equal(t, 1, a.Support().Torque().ID())
	assert.Equal(t, 1, s.ID())
	assert.Equal(t, 2, f.ID())
	assert.Equal(t, 2, b.Registry().Count(ids.Node))
}

func TestDescribe(t *testing.T) {
	b := New()
	nodes, segs := chain(t, b, [2]float64{0, 0}, [2]float64{10, 0})
	nodes[0].AddSupport(must(b.NewSupportOfType(Pinned, 0)))
	require.NoError(t, segs[0].AddForce(must(b.NewForce(100, 270, 5, 1))))

	out := b.Describe()
	assert.Contains(t, out, "Beam #1")
	assert.Contains(t, out, "Node #1 (0, 0)")
	assert.Contains(t, out, "Support #1: pinned, angle=0°")
	assert.Contains(t, out, "Segment #1: node #1 -> node #2, length=10")
	assert.Contains(t, out, "Force #2: value=100, angle=270°, offset=5, length=1, unknown=x:N y:N")
}
