// Package model converts beams to and from their saved record form.
package model

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alexiusacademia/gostatics/internal/structure"
)

// Record is the saved form of a beam.
type Record struct {
	Nodes    []NodeRecord    `json:"nodes" yaml:"nodes" validate:"dive"`
	Segments []SegmentRecord `json:"segments" yaml:"segments" validate:"dive"`
	Hinges   []HingeRecord   `json:"hinges" yaml:"hinges" validate:"dive"`
}

type NodeRecord struct {
	ID      int            `json:"id" yaml:"id" validate:"gte=1"`
	X       float64        `json:"x" yaml:"x"`
	Y       float64        `json:"y" yaml:"y"`
	Support *SupportRecord `json:"support" yaml:"support"`
	HingeID *int           `json:"hinge_id" yaml:"hinge_id"`
}

type SupportRecord struct {
	ID     int          `json:"id" yaml:"id" validate:"gte=1"`
	Type   int          `json:"type" yaml:"type" validate:"gte=0,lte=2"`
	Angle  float64      `json:"angle" yaml:"angle"`
	Force  ForceRecord  `json:"force" yaml:"force"`
	Torque TorqueRecord `json:"torque" yaml:"torque"`
}

// ForceRecord stores a force. Unknown is accepted on load as shorthand for
// both components and never written.
type ForceRecord struct {
	ID       int     `json:"id" yaml:"id" validate:"gte=1"`
	Value    float64 `json:"value" yaml:"value" validate:"gte=0"`
	Angle    float64 `json:"angle" yaml:"angle"`
	Offset   float64 `json:"node1_dist" yaml:"node1_dist" validate:"gte=0"`
	Length   float64 `json:"length" yaml:"length" validate:"gt=0"`
	Unknown  bool    `json:"unknown,omitempty" yaml:"unknown,omitempty"`
	UnknownX bool    `json:"unknown_x" yaml:"unknown_x"`
	UnknownY bool    `json:"unknown_y" yaml:"unknown_y"`
}

type TorqueRecord struct {
	ID      int     `json:"id" yaml:"id" validate:"gte=1"`
	Value   float64 `json:"value" yaml:"value"`
	Offset  float64 `json:"node1_dist" yaml:"node1_dist" validate:"gte=0"`
	Unknown bool    `json:"unknown" yaml:"unknown"`
}

type SegmentRecord struct {
	ID      int            `json:"id" yaml:"id" validate:"gte=1"`
	Node1ID int            `json:"node1_id" yaml:"node1_id" validate:"gte=1"`
	Node2ID int            `json:"node2_id" yaml:"node2_id" validate:"gte=1"`
	Forces  []ForceRecord  `json:"forces" yaml:"forces" validate:"dive"`
	Torques []TorqueRecord `json:"torques" yaml:"torques" validate:"dive"`
}

type HingeRecord struct {
	ID      int   `json:"id" yaml:"id" validate:"gte=1"`
	NodeIDs []int `json:"node_ids" yaml:"node_ids"`
}

// ValidationError lists the record fields that failed validation.
type ValidationError struct {
	msg    string
	Fields []string
}

func (e *ValidationError) Error() string {
	return e.msg
}

var recordValidate *validator.Validate

func init() {
	recordValidate = validator.New()
	recordValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks field constraints. Cross references are checked by Build.
func (r *Record) Validate() error {
	err := recordValidate.Struct(r)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validating record: %w", err)
	}
	ve := &ValidationError{}
	var parts []string
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Record.")
		ve.Fields = append(ve.Fields, field)
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", field, rule))
	}
	ve.msg = "invalid record: " + strings.Join(parts, ", ")
	return ve
}

// FromBeam captures b as a record. Nodes and segments keep their order.
func FromBeam(b *structure.Beam) *Record {
	r := &Record{
		Nodes:    []NodeRecord{},
		Segments: []SegmentRecord{},
		Hinges:   []HingeRecord{},
	}

	hingeIndex := make(map[*structure.Hinge]int)
	for _, n := range b.Nodes() {
		nr := NodeRecord{ID: n.ID(), X: n.X(), Y: n.Y()}
		if s := n.Support(); s != nil {
			nr.Support = &SupportRecord{
				ID:     s.ID(),
				Type:   int(s.Type()),
				Angle:  s.Angle(),
				Force:  forceRecord(s.Force()),
				Torque: torqueRecord(s.Torque()),
			}
		}
		if h := n.Hinge(); h != nil {
			id := h.ID()
			nr.HingeID = &id
			i, ok := hingeIndex[h]
			if !ok {
				i = len(r.Hinges)
				hingeIndex[h] = i
				r.Hinges = append(r.Hinges, HingeRecord{ID: id})
			}
			r.Hinges[i].NodeIDs = append(r.Hinges[i].NodeIDs, n.ID())
		}
		r.Nodes = append(r.Nodes, nr)
	}

	for _, s := range b.Segments() {
		n1, n2 := s.Nodes()
		sr := SegmentRecord{
			ID:      s.ID(),
			Node1ID: n1.ID(),
			Node2ID: n2.ID(),
			Forces:  []ForceRecord{},
			Torques: []TorqueRecord{},
		}
		for _, f := range s.Forces() {
			sr.Forces = append(sr.Forces, forceRecord(f))
		}
		for _, t := range s.Torques() {
			sr.Torques = append(sr.Torques, torqueRecord(t))
		}
		r.Segments = append(r.Segments, sr)
	}
	return r
}

func forceRecord(f *structure.Force) ForceRecord {
	return ForceRecord{
		ID:       f.ID(),
		Value:    f.Value(),
		Angle:    f.Angle(),
		Offset:   f.Offset(),
		Length:   f.Length(),
		UnknownX: f.UnknownX(),
		UnknownY: f.UnknownY(),
	}
}

func torqueRecord(t *structure.Torque) TorqueRecord {
	return TorqueRecord{ID: t.ID(), Value: t.Value(), Offset: t.Offset(), Unknown: t.Unknown()}
}

// Build reconstructs the beam with its saved ids. Supports keep their saved
// unknown flags as they are.
func (r *Record) Build() (*structure.Beam, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	b := structure.New()
	nodes := make(map[int]*structure.Node, len(r.Nodes))
	for _, nr := range r.Nodes {
		n, err := b.NewNode(nr.X, nr.Y, structure.WithID(nr.ID))
		if err != nil {
			return nil, err
		}
		if sr := nr.Support; sr != nil {
			// The reaction force is given relative to the mounting angle.
			rel := (sr.Force.Angle - sr.Angle) * math.Pi / 180
			fx, fy := sr.Force.Value*math.Cos(rel), sr.Force.Value*math.Sin(rel)
			s, err := b.NewSupport(structure.SupportType(sr.Type), sr.Angle,
				fx, fy, sr.Torque.Value,
				sr.Force.UnknownX || sr.Force.Unknown, sr.Force.UnknownY || sr.Force.Unknown, sr.Torque.Unknown,
				structure.WithID(sr.ID),
				structure.WithReactionIDs(sr.Force.ID, sr.Torque.ID),
				structure.WithRawFlags())
			if err != nil {
				return nil, fmt.Errorf("support of node %d: %w", nr.ID, err)
			}
			n.AddSupport(s)
		}
		nodes[nr.ID] = b.AddNode(n)
	}

	hinges := make(map[int]*structure.Hinge, len(r.Hinges))
	for _, hr := range r.Hinges {
		h, err := b.NewHinge(structure.WithID(hr.ID))
		if err != nil {
			return nil, err
		}
		hinges[hr.ID] = h
		for _, id := range hr.NodeIDs {
			n, ok := nodes[id]
			if !ok {
				return nil, structure.Errorf(structure.NonExistentReference, "hinge %d refers to missing node %d", hr.ID, id)
			}
			n.AddHinge(h)
		}
	}
	for _, nr := range r.Nodes {
		if nr.HingeID == nil {
			continue
		}
		h, ok := hinges[*nr.HingeID]
		if !ok {
			return nil, structure.Errorf(structure.NonExistentReference, "node %d refers to missing hinge %d", nr.ID, *nr.HingeID)
		}
		nodes[nr.ID].AddHinge(h)
	}

	for _, sr := range r.Segments {
		if err := buildSegment(b, nodes, sr); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func buildSegment(b *structure.Beam, nodes map[int]*structure.Node, sr SegmentRecord) error {
	n1, ok1 := nodes[sr.Node1ID]
	n2, ok2 := nodes[sr.Node2ID]
	if !ok1 || !ok2 {
		return structure.Errorf(structure.NonExistentReference, "segment %d refers to missing node %d or %d", sr.ID, sr.Node1ID, sr.Node2ID)
	}
	seg, err := b.NewSegment(n1, n2, structure.WithID(sr.ID))
	if err != nil {
		return err
	}
	if seg, err = b.AddSegment(seg); err != nil {
		return fmt.Errorf("segment %d: %w", sr.ID, err)
	}

	for _, fr := range sr.Forces {
		opts := []structure.Option{structure.WithID(fr.ID)}
		if fr.UnknownX || fr.Unknown {
			opts = append(opts, structure.UnknownX())
		}
		if fr.UnknownY || fr.Unknown {
			opts = append(opts, structure.UnknownY())
		}
		f, err := b.NewForce(fr.Value, fr.Angle, fr.Offset, fr.Length, opts...)
		if err != nil {
			return err
		}
		if err := seg.AddForce(f); err != nil {
			return err
		}
	}
	for _, tr := range sr.Torques {
		opts := []structure.Option{structure.WithID(tr.ID)}
		if tr.Unknown {
			opts = append(opts, structure.Unknown())
		}
		t, err := b.NewTorque(tr.Value, tr.Offset, opts...)
		if err != nil {
			return err
		}
		if err := seg.AddTorque(t); err != nil {
			return err
		}
	}
	return nil
}
