package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gostatics/internal/model"
	"github.com/alexiusacademia/gostatics/internal/structure"
)

func solved(t *testing.T, name string) (*structure.Beam, *structure.Result) {
	t.Helper()
	ex, err := model.Lookup(name)
	require.NoError(t, err)
	b, err := ex.Build()
	require.NoError(t, err)
	res, err := b.Solve()
	require.NoError(t, err)
	return b, res
}

func TestVerticalLoads(t *testing.T) {
	b, res := solved(t, "simply-supported")
	loads := VerticalLoads(b, res)
	require.Len(t, loads, 3)

	assert.Equal(t, 0.0, loads[0].X)
	assert.InDelta(t, 50, loads[0].Value, 1e-9)
	assert.InDelta(t, 5, loads[1].X, 1e-12)
	assert.InDelta(t, -100, loads[1].Value, 1e-12)
	assert.InDelta(t, 10, loads[2].X, 1e-12)
	assert.InDelta(t, 50, loads[2].Value, 1e-9)
}

func TestShearProfile(t *testing.T) {
	b, res := solved(t, "simply-supported")
	got := ShearProfile(VerticalLoads(b, res), 11)
	require.Len(t, got, 11)
	for i := 0; i < 5; i++ {
		assert.InDelta(t, 50, got[i], 1e-9, "x=%d", i)
	}
	for i := 5; i < 10; i++ {
		assert.InDelta(t, -50, got[i], 1e-9, "x=%d", i)
	}
	assert.InDelta(t, 0, got[10], 1e-9, "closes at the right end")

	assert.Nil(t, ShearProfile(nil, 10))
	assert.Equal(t, []float64{3}, ShearProfile([]VerticalLoad{{X: 2, Value: 3}}, 1))
}

func TestDrawShearProfile(t *testing.T) {
	b, res := solved(t, "simply-supported")
	chart := DrawShearProfile(b, res, 40, 6, 1)
	assert.Contains(t, chart, "running vertical force")
	assert.Contains(t, chart, "50.0")
	assert.Contains(t, chart, "-50.0")
}

func TestDrawReactionSummary(t *testing.T) {
	_, res := solved(t, "c3-2")
	box := DrawReactionSummary(res, 2)

	assert.Contains(t, box, "REACTIONS")
	assert.Contains(t, box, "Moment at node 1")
	assert.Contains(t, box, "-1975.97")
	assert.Contains(t, box, "2 sub-beam(s)")

	lines := strings.Split(strings.TrimRight(box, "\n"), "\n")
	width := utf8.RuneCountInString(lines[0])
	for _, l := range lines {
		assert.Equal(t, width, utf8.RuneCountInString(l), "ragged line %q", l)
	}
}

func TestDrawSummaryBox(t *testing.T) {
	got := DrawSummaryBox("T", []string{"ab", "abcd"})
	want := "" +
		"  ╔════════╗\n" +
		"  ║  T     ║\n" +
		"  ╠════════╣\n" +
		"  ║  ab    ║\n" +
		"  ║  abcd  ║\n" +
		"  ╚════════╝\n"
	assert.Equal(t, want, got)
}

func TestExportStructure(t *testing.T) {
	b, res := solved(t, "c4-1")
	dir := t.TempDir()

	for _, name := range []string{"frame.png", "frame.svg", "nested/frame.pdf"} {
		path := filepath.Join(dir, name)
		require.NoError(t, ExportStructure(b, res, path, 6, 4))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	path := filepath.Join(dir, "frame.out")
	require.NoError(t, ExportStructure(b, nil, path, 6, 4))
	_, err := os.Stat(path + ".png")
	assert.NoError(t, err, "unknown extensions fall back to png")
}

func TestStructurePlotEmpty(t *testing.T) {
	_, err := StructurePlot(structure.New(), nil)
	assert.ErrorIs(t, err, structure.ErrEmptyStructure)
}
