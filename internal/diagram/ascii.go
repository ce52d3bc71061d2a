package diagram

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gostatics/internal/structure"
)

// VerticalLoad is a vertical force acting at a global x position.
type VerticalLoad struct {
	X     float64
	Value float64
}

// VerticalLoads collects the vertical component of every applied load and
// every support reaction of a solved beam. Unknown components take their
// solved values from res. Hinge reactions cancel out and are skipped.
func VerticalLoads(b *structure.Beam, res *structure.Result) []VerticalLoad {
	var out []VerticalLoad
	for _, n := range b.Nodes() {
		s := n.Support()
		if s == nil {
			continue
		}
		v := s.Force().PartY()
		if s.Force().UnknownY() {
			v = res.Symbols[fmt.Sprintf("node_%d_y", n.ID())]
		}
		out = append(out, VerticalLoad{X: n.X(), Value: v})
	}
	for _, seg := range b.Segments() {
		for _, f := range seg.Forces() {
			x, _ := seg.PointAt(f.Offset())
			v := f.PartY()
			if f.UnknownY() {
				v = res.Symbols[fmt.Sprintf("segment_%d_force_%d_y", seg.ID(), f.ID())]
			}
			out = append(out, VerticalLoad{X: x, Value: v})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

// ShearProfile samples the running sum of the vertical loads from left to
// right at n evenly spaced positions between the outermost loads.
func ShearProfile(loads []VerticalLoad, n int) []float64 {
	if len(loads) == 0 || n < 1 {
		return nil
	}
	minX, maxX := loads[0].X, loads[0].X
	for _, l := range loads {
		minX = min(minX, l.X)
		maxX = max(maxX, l.X)
	}

	out := make([]float64, n)
	step := 0.0
	if n > 1 {
		step = (maxX - minX) / float64(n-1)
	}
	for i := range out {
		x := minX + step*float64(i)
		if i == n-1 {
			x = maxX
		}
		var sum float64
		for _, l := range loads {
			if l.X <= x+1e-9 {
				sum += l.Value
			}
		}
		out[i] = sum
	}
	return out
}

// DrawShearProfile plots the running vertical force of a solved beam.
func DrawShearProfile(b *structure.Beam, res *structure.Result, width, height, precision int) string {
	series := ShearProfile(VerticalLoads(b, res), width)
	if len(series) == 0 {
		return "  (no vertical loads)\n"
	}
	chart := asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(uint(precision)),
		asciigraph.Caption("running vertical force, left to right"))
	return chart + "\n"
}

// DrawReactionSummary lists the solved reactions in a box.
func DrawReactionSummary(res *structure.Result, precision int) string {
	width := 0
	for _, rc := range res.Reactions {
		width = max(width, utf8.RuneCountInString(rc.Label))
	}
	lines := make([]string, 0, len(res.Reactions)+2)
	for _, rc := range res.Reactions {
		lines = append(lines, fmt.Sprintf("%-*s  %s", width, rc.Label, strconv.FormatFloat(rc.Value, 'f', precision, 64)))
	}
	lines = append(lines, "", fmt.Sprintf("%d sub-beam(s), %d equations, %d unknowns", res.SubBeams, res.Equations, res.Unknowns))
	return DrawSummaryBox("REACTIONS", lines)
}

// DrawSummaryBox frames title and lines in a double-line box.
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	fmt.Fprintf(&sb, "  ╔%s╗\n", border)
	fmt.Fprintf(&sb, "  ║  %-*s  ║\n", maxLen-4, title)
	fmt.Fprintf(&sb, "  ╠%s╣\n", border)
	for _, line := range lines {
		fmt.Fprintf(&sb, "  ║  %-*s  ║\n", maxLen-4, line)
	}
	fmt.Fprintf(&sb, "  ╚%s╝\n", border)

	return sb.String()
}
