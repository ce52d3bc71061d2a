package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gostatics/internal/structure"
)

var (
	memberColor   = color.Black
	loadColor     = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	reactionColor = color.RGBA{R: 0, G: 120, B: 0, A: 255}
	supportColor  = color.RGBA{R: 0, G: 0, B: 139, A: 255}
)

// supportGlyphs maps a support type to the marker drawn at its node.
var supportGlyphs = map[structure.SupportType]draw.GlyphDrawer{
	structure.Fixed:  draw.BoxGlyph{},
	structure.Pinned: draw.TriangleGlyph{},
	structure.Roller: draw.RingGlyph{},
}

// StructurePlot draws the members, supports, hinges and loads of b. When res
// is not nil the solved support reactions are drawn and labelled too.
func StructurePlot(b *structure.Beam, res *structure.Result) (*plot.Plot, error) {
	nodes := b.Nodes()
	if len(nodes) == 0 {
		return nil, structure.Errorf(structure.EmptyStructure, "nothing to draw")
	}

	p := plot.New()
	p.Title.Text = "Structure"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	scale := arrowScale(nodes)

	for _, seg := range b.Segments() {
		n1, n2 := seg.Nodes()
		line, err := plotter.NewLine(plotter.XYs{{X: n1.X(), Y: n1.Y()}, {X: n2.X(), Y: n2.Y()}})
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = memberColor
		p.Add(line)

		for _, f := range seg.Forces() {
			x, y := seg.PointAt(f.Offset())
			if err := addArrow(p, x, y, f.Angle(), scale, loadColor); err != nil {
				return nil, err
			}
			if err := addLabel(p, x, y+scale*0.2, forceLabel(f)); err != nil {
				return nil, err
			}
		}
		for _, t := range seg.Torques() {
			x, y := seg.PointAt(t.Offset())
			if err := addMarker(p, plotter.XYs{{X: x, Y: y}}, draw.PlusGlyph{}, loadColor, 5); err != nil {
				return nil, err
			}
			text := "M=?"
			if !t.Unknown() {
				text = "M=" + strconv.FormatFloat(t.Value(), 'g', 6, 64)
			}
			if err := addLabel(p, x, y-scale*0.3, text); err != nil {
				return nil, err
			}
		}
	}

	var hinges plotter.XYs
	for _, n := range nodes {
		if n.Hinge() != nil && n.Support() == nil {
			hinges = append(hinges, plotter.XY{X: n.X(), Y: n.Y()})
		}
		s := n.Support()
		if s == nil {
			continue
		}
		if err := addMarker(p, plotter.XYs{{X: n.X(), Y: n.Y()}}, supportGlyphs[s.Type()], supportColor, 7); err != nil {
			return nil, err
		}
	}
	if len(hinges) > 0 {
		if err := addMarker(p, hinges, draw.CircleGlyph{}, memberColor, 4); err != nil {
			return nil, err
		}
	}

	if res != nil {
		if err := addReactions(p, res, b, scale); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ExportStructure saves the structure plot of b to filename. The format
// follows the extension (png, svg, pdf); anything else is saved as png.
// width and height are in inches.
func ExportStructure(b *structure.Beam, res *structure.Result, filename string, width, height float64) error {
	p, err := StructurePlot(b, res)
	if err != nil {
		return err
	}

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	w, h := vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch
	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(w, h, filename)
	default:
		return p.Save(w, h, filename+".png")
	}
}

// addReactions draws one arrow per solved support force at its node, plus a
// label listing the node's reaction values.
func addReactions(p *plot.Plot, res *structure.Result, b *structure.Beam, scale float64) error {
	type xy struct{ x, y float64 }
	parts := make(map[int]*xy)
	labels := make(map[int]string)
	for _, rc := range res.Reactions {
		if rc.Node == 0 {
			continue
		}
		v := parts[rc.Node]
		if v == nil {
			v = &xy{}
			parts[rc.Node] = v
		}
		switch rc.Axis {
		case "x":
			v.x = rc.Value
			labels[rc.Node] += fmt.Sprintf(" Rx=%g", rc.Value)
		case "y":
			v.y = rc.Value
			labels[rc.Node] += fmt.Sprintf(" Ry=%g", rc.Value)
		case "torque":
			labels[rc.Node] += fmt.Sprintf(" M=%g", rc.Value)
		}
	}

	for _, n := range b.Nodes() {
		v, ok := parts[n.ID()]
		if !ok {
			continue
		}
		if v.x != 0 || v.y != 0 {
			angle := math.Atan2(v.y, v.x) * 180 / math.Pi
			if err := addArrow(p, n.X(), n.Y(), angle, scale, reactionColor); err != nil {
				return err
			}
		}
		if err := addLabel(p, n.X(), n.Y()-scale*0.5, strings.TrimSpace(labels[n.ID()])); err != nil {
			return err
		}
	}
	return nil
}

// addArrow draws an arrow of length scale pointing in direction angle
// (degrees) with its tip at (x, y).
func addArrow(p *plot.Plot, x, y, angle, scale float64, c color.Color) error {
	rad := angle * math.Pi / 180
	dx, dy := math.Cos(rad), math.Sin(rad)
	head := scale * 0.25
	wing := func(turn float64) plotter.XY {
		a := rad + math.Pi + turn
		return plotter.XY{X: x + head*math.Cos(a), Y: y + head*math.Sin(a)}
	}

	shaft := plotter.XYs{{X: x - scale*dx, Y: y - scale*dy}, {X: x, Y: y}}
	tip := plotter.XYs{wing(0.4), {X: x, Y: y}, wing(-0.4)}
	for _, pts := range []plotter.XYs{shaft, tip} {
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = c
		p.Add(l)
	}
	return nil
}

func addMarker(p *plot.Plot, pts plotter.XYs, shape draw.GlyphDrawer, c color.Color, radius float64) error {
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyle.Shape = shape
	s.GlyphStyle.Color = c
	s.GlyphStyle.Radius = vg.Points(radius)
	p.Add(s)
	return nil
}

func addLabel(p *plot.Plot, x, y float64, text string) error {
	l, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: x, Y: y}},
		Labels: []string{text},
	})
	if err != nil {
		return err
	}
	p.Add(l)
	return nil
}

func forceLabel(f *structure.Force) string {
	switch {
	case f.UnknownX() && f.UnknownY():
		return "F=?"
	case f.Distributed():
		return fmt.Sprintf("w=%g (L=%g)", f.Value(), f.Length())
	}
	return fmt.Sprintf("F=%g", f.Value())
}

// arrowScale sizes arrows to a tenth of the structure's larger extent.
func arrowScale(nodes []*structure.Node) float64 {
	minX, maxX := nodes[0].X(), nodes[0].X()
	minY, maxY := nodes[0].Y(), nodes[0].Y()
	for _, n := range nodes {
		minX, maxX = min(minX, n.X()), max(maxX, n.X())
		minY, maxY = min(minY, n.Y()), max(maxY, n.Y())
	}
	span := max(maxX-minX, maxY-minY)
	if span == 0 {
		return 1
	}
	return span / 10
}
