package model

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gostatics/internal/structure"
)

func TestRoundTripExamples(t *testing.T) {
	for _, ext := range []string{Extension, ".yaml"} {
		for _, ex := range Examples() {
			t.Run(ex.Name+ext, func(t *testing.T) {
				original, err := ex.Build()
				require.NoError(t, err)
				want, err := original.Solve()
				require.NoError(t, err)

				path := filepath.Join(t.TempDir(), "beam"+ext)
				require.NoError(t, Save(path, original))

				loaded, err := Load(path)
				require.NoError(t, err)
				got, err := loaded.Solve()
				require.NoError(t, err)

				assert.Equal(t, want.Reactions, got.Reactions)
				assert.Equal(t, FromBeam(original), FromBeam(loaded))
			})
		}
	}
}

func TestRoundTripKeepsCustomIDs(t *testing.T) {
	b := structure.New()
	a, err := b.NewNode(0, 0, structure.WithID(10))
	require.NoError(t, err)
	c, err := b.NewNode(4, 0, structure.WithID(20))
	require.NoError(t, err)
	s, err := b.NewSupport(structure.Fixed, 0, 0, 0, 0, true, true, true,
		structure.WithID(5), structure.WithReactionIDs(6, 7))
	require.NoError(t, err)
	a.AddSupport(s)
	seg, err := b.NewSegment(a, c, structure.WithID(3))
	require.NoError(t, err)
	seg, err = b.AddSegment(seg)
	require.NoError(t, err)
	f, err := b.NewForce(2, 270, 0, 4, structure.WithID(9))
	require.NoError(t, err)
	require.NoError(t, seg.AddForce(f))

	path := filepath.Join(t.TempDir(), "custom.bm")
	require.NoError(t, Save(path, b))
	loaded, err := Load(path)
	require.NoError(t, err)

	nodes := loaded.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, 10, nodes[0].ID())
	assert.Equal(t, 20, nodes[1].ID())
	assert.Equal(t, 5, nodes[0].Support().ID())
	assert.Equal(t, 6, nodes[0].Support().Force().ID())
	assert.Equal(t, 7, nodes[0].Support().Torque().ID())
	assert.Equal(t, 3, loaded.Segments()[0].ID())
	assert.Equal(t, 9, loaded.Segments()[0].Forces()[0].ID())

	want, err := b.Solve()
	require.NoError(t, err)
	got, err := loaded.Solve()
	require.NoError(t, err)
	assert.Equal(t, want.Reactions, got.Reactions)
}

func TestSavedShape(t *testing.T) {
	ex, err := Lookup("c3-2")
	require.NoError(t, err)
	b, err := ex.Build()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "frame.bm")
	require.NoError(t, Save(path, b))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "{\n    \"nodes\": ["), "four space indent")
	for _, key := range []string{`"node1_dist"`, `"unknown_x"`, `"hinge_id": 1`, `"node_ids": [`, `"support": null`} {
		assert.Contains(t, text, key)
	}
}

func TestLoadAcceptsUnknownShorthand(t *testing.T) {
	const doc = `{
    "nodes": [
        {"id": 1, "x": 0, "y": 0, "support": {"id": 1, "type": 1, "angle": 0,
            "force": {"id": 1, "value": 0, "angle": 0, "node1_dist": 0, "length": 1, "unknown_x": true, "unknown_y": true},
            "torque": {"id": 1, "value": 0, "node1_dist": 0, "unknown": false}}, "hinge_id": null},
        {"id": 2, "x": 4, "y": 0, "support": null, "hinge_id": null}
    ],
    "segments": [
        {"id": 1, "node1_id": 1, "node2_id": 2,
         "forces": [{"id": 2, "value": 0, "angle": 0, "node1_dist": 4, "length": 1, "unknown": true}],
         "torques": [{"id": 2, "value": -200, "node1_dist": 0, "unknown": false}]}
    ],
    "hinges": []
}`
	r, err := Unmarshal("shorthand.bm", []byte(doc))
	require.NoError(t, err)
	b, err := r.Build()
	require.NoError(t, err)

	f := b.Segments()[0].Forces()[0]
	assert.True(t, f.UnknownX())
	assert.True(t, f.UnknownY())
}

func TestBuildErrors(t *testing.T) {
	valid := func() *Record {
		ex, err := Lookup("simply-supported")
		require.NoError(t, err)
		b, err := ex.Build()
		require.NoError(t, err)
		return FromBeam(b)
	}

	t.Run("missing node", func(t *testing.T) {
		r := valid()
		r.Segments[0].Node2ID = 99
		_, err := r.Build()
		assert.ErrorIs(t, err, structure.ErrNonExistentReference)
	})

	t.Run("missing hinge", func(t *testing.T) {
		r := valid()
		id := 4
		r.Nodes[1].HingeID = &id
		_, err := r.Build()
		assert.ErrorIs(t, err, structure.ErrNonExistentReference)
	})

	t.Run("hinge on missing node", func(t *testing.T) {
		r := valid()
		r.Hinges = append(r.Hinges, HingeRecord{ID: 1, NodeIDs: []int{42}})
		_, err := r.Build()
		assert.ErrorIs(t, err, structure.ErrNonExistentReference)
	})

	t.Run("duplicate node id", func(t *testing.T) {
		r := valid()
		r.Nodes[1].ID = r.Nodes[0].ID
		_, err := r.Build()
		assert.ErrorIs(t, err, structure.ErrDuplicateID)
	})

	t.Run("offset beyond the segment", func(t *testing.T) {
		r := valid()
		r.Segments[0].Forces[0].Offset = 11
		_, err := r.Build()
		assert.ErrorIs(t, err, structure.ErrOffsetExceedsLength)
	})

	t.Run("field validation", func(t *testing.T) {
		r := valid()
		r.Segments[0].Forces[0].Length = 0
		r.Nodes[0].Support.Type = 7
		_, err := r.Build()
		require.Error(t, err)

		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.ElementsMatch(t, []string{
			"segments[0].forces[0].length",
			"nodes[0].support.type",
		}, ve.Fields)
		assert.Contains(t, ve.Error(), "(gt=0)")
	})
}

func TestUnmarshalRejectsUnknownFields(t *testing.T) {
	_, err := Unmarshal("x.bm", []byte(`{"nodes": [], "beams": []}`))
	assert.Error(t, err)

	_, err = Unmarshal("x.yaml", []byte("nodes: []\nbeams: []\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.bm"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestExamples(t *testing.T) {
	names := make([]string, 0)
	for _, ex := range Examples() {
		names = append(names, ex.Name)
		assert.NotEmpty(t, ex.Description)
	}
	assert.Equal(t, []string{"c1-1", "c3-2", "c4-1", "simply-supported"}, names)

	_, err := Lookup("c9-9")
	assert.ErrorIs(t, err, structure.ErrNonExistentReference)

	ex, err := Lookup("simply-supported")
	require.NoError(t, err)
	b, err := ex.Build()
	require.NoError(t, err)
	res, err := b.Solve()
	require.NoError(t, err)
	v, ok := res.Value("Vertical reaction at node 1")
	require.True(t, ok)
	assert.Equal(t, 50.0, v)
}
