package records

import (
	"fmt"
	"strings"

	"spool/internal/parse"
)

// Analysis kinds accepted by configuration and the CLI.
const (
	KindScript   = "script"
	KindSegments = "segments"
)

// Schema describes one analysis dataset: its stored columns and the
// structural anchors used to repair and validate model output lines.
//
// Column indexes refer to the stored row. Leads and Clocks count fields on
// the model-emitted line, which omits the key column when InjectsKey is set.
type Schema struct {
	// Name is the analysis kind, one of KindScript or KindSegments.
	Name string
	// Columns are the stored CSV columns in order; Columns[0] is always the
	// item key.
	Columns []string
	// InjectsKey marks schemas whose model lines do not carry the key
	// column; materialization prepends it. When false the model echoes the
	// key column and materialization overwrites it with the derived key.
	InjectsKey bool
	// Leads counts the fixed fields at the head of a model line, Clocks how
	// many of those are timestamp-shaped.
	Leads  int
	Clocks int
	// CategoryColumn locates the closed-vocabulary column in the stored row,
	// -1 when the schema has none.
	CategoryColumn int
	Categories     []string
	// RatingColumn locates the bounded-integer column in the stored row.
	RatingColumn int
	RatingMin    int
	RatingMax    int
}

// Script returns the schema for whole-video script analysis: one stored row
// per item, thirteen columns, no category vocabulary.
func Script() Schema {
	return Schema{
		Name: KindScript,
		Columns: []string{
			"video_filename",
			"overall_message",
			"script_purpose",
			"tonality",
			"emotional_arc",
			"hook_effectiveness",
			"narrative_flow",
			"transition_quality",
			"call_to_action",
			"recurring_patterns",
			"line_by_line_analysis",
			"effectiveness_score",
			"improvement_suggestions",
		},
		InjectsKey:     false,
		Leads:          1,
		Clocks:         0,
		CategoryColumn: -1,
		RatingColumn:   11,
		RatingMin:      1,
		RatingMax:      10,
	}
}

// Segments returns the schema for per-segment analysis: many stored rows per
// item, ten columns, with the key column injected in front of the nine
// fields each model line carries.
func Segments() Schema {
	return Schema{
		Name: KindSegments,
		Columns: []string{
			"video_filename",
			"segment_id",
			"start_time",
			"end_time",
			"shot_type",
			"spoken_text",
			"visual_description",
			"inferred_purpose",
			"effectiveness_rating",
			"effectiveness_justification",
		},
		InjectsKey:     true,
		Leads:          3,
		Clocks:         2,
		CategoryColumn: 4,
		Categories:     []string{"Talking Head", "B-roll", "Hybrid"},
		RatingColumn:   8,
		RatingMin:      1,
		RatingMax:      5,
	}
}

// ForKind maps a configured analysis kind to its schema.
func ForKind(kind string) (Schema, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindScript:
		return Script(), nil
	case KindSegments:
		return Segments(), nil
	default:
		return Schema{}, fmt.Errorf("unknown analysis kind %q", kind)
	}
}

// Arity returns the stored column count.
func (s Schema) Arity() int {
	return len(s.Columns)
}

// LineArity returns the field count of a well-formed model line.
func (s Schema) LineArity() int {
	if s.InjectsKey {
		return len(s.Columns) - 1
	}
	return len(s.Columns)
}

// Line maps the schema onto the shape the reconciler repairs toward.
func (s Schema) Line() parse.LineShape {
	offset := s.keyOffset()
	shape := parse.LineShape{
		Arity:         len(s.Columns) - offset,
		Leads:         s.Leads,
		Clocks:        s.Clocks,
		CategoryIndex: -1,
		RatingIndex:   s.RatingColumn - offset,
		RatingMin:     s.RatingMin,
		RatingMax:     s.RatingMax,
	}
	if s.CategoryColumn >= 0 {
		shape.Categories = s.Categories
		shape.CategoryIndex = s.CategoryColumn - offset
	}
	return shape
}

// IsHeaderRow reports whether a tokenized line restates the column names
// instead of carrying data. Models frequently emit the header they were
// shown; a full case-insensitive match or a match on the first two columns
// marks the line as skippable.
func (s Schema) IsHeaderRow(fields []string) bool {
	cols := s.lineColumns()
	if len(fields) < 2 || len(cols) < 2 {
		return false
	}
	if len(fields) == len(cols) {
		match := true
		for i := range cols {
			if !headerFieldEqual(fields[i], cols[i]) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return headerFieldEqual(fields[0], cols[0]) && headerFieldEqual(fields[1], cols[1])
}

// lineColumns returns the column names as they appear on a model line.
func (s Schema) lineColumns() []string {
	return s.Columns[s.keyOffset():]
}

// columnAt names the stored column a model-line field lands in.
func (s Schema) columnAt(lineIndex int) string {
	return s.Columns[lineIndex+s.keyOffset()]
}

func (s Schema) keyOffset() int {
	if s.InjectsKey {
		return 1
	}
	return 0
}

func headerFieldEqual(field, column string) bool {
	field = strings.TrimSpace(strings.Trim(strings.TrimSpace(field), `"`))
	return strings.EqualFold(field, column)
}
