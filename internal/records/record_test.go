package records_test

import (
	"errors"
	"reflect"
	"testing"

	"spool/internal/records"
)

func TestMaterializeSegmentsInjectsKey(t *testing.T) {
	schema := records.Segments()
	fields := []string{"1", "00:00:00.000", "00:00:05.000", "b-roll", `"Hello, world"`, "city skyline", "sets the scene", "5", `"He said ""go""."`}

	record, err := schema.Materialize("clip [abc123].mp4", fields)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	want := []string{
		"clip [abc123].mp4",
		"1",
		"00:00:00.000",
		"00:00:05.000",
		"B-roll",
		"Hello, world",
		"city skyline",
		"sets the scene",
		"5",
		`He said "go".`,
	}
	if !reflect.DeepEqual(record.Values, want) {
		t.Fatalf("values = %#v, want %#v", record.Values, want)
	}
	if record.Rating != 5 {
		t.Fatalf("rating = %d, want 5", record.Rating)
	}
	if record.Key() != "clip [abc123].mp4" {
		t.Fatalf("key = %q", record.Key())
	}
}

func TestMaterializeScriptOverwritesEchoedKey(t *testing.T) {
	schema := records.Script()
	fields := []string{
		"whatever the model wrote.mp4",
		"message", "purpose", "tone", "arc", "hook", "flow", "transitions", "cta", "patterns", "lines", "8", "suggestions",
	}

	record, err := schema.Materialize("clip [abc123].mp4", fields)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if record.Values[0] != "clip [abc123].mp4" {
		t.Fatalf("key column = %q, want derived key", record.Values[0])
	}
	if record.Rating != 8 {
		t.Fatalf("rating = %d, want 8", record.Rating)
	}
	if len(record.Values) != schema.Arity() {
		t.Fatalf("stored %d values, want %d", len(record.Values), schema.Arity())
	}
}

func TestMaterializeRejectsBadFields(t *testing.T) {
	schema := records.Segments()
	good := []string{"1", "00:00:00.000", "00:00:05.000", "B-roll", "text", "visuals", "purpose", "5", "why"}

	cases := []struct {
		name       string
		mutate     func([]string)
		wantColumn string
	}{
		{
			name:       "category outside vocabulary",
			mutate:     func(f []string) { f[3] = "montage" },
			wantColumn: "shot_type",
		},
		{
			name:       "rating out of range",
			mutate:     func(f []string) { f[7] = "9" },
			wantColumn: "effectiveness_rating",
		},
		{
			name:       "rating not an integer",
			mutate:     func(f []string) { f[7] = "five" },
			wantColumn: "effectiveness_rating",
		},
		{
			name:       "ambiguous quoting",
			mutate:     func(f []string) { f[4] = `"unterminated` },
			wantColumn: "spoken_text",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := append([]string(nil), good...)
			tc.mutate(fields)

			_, err := schema.Materialize("key.mp4", fields)
			if err == nil {
				t.Fatal("expected error")
			}
			var fieldErr *records.FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("expected FieldError, got %T: %v", err, err)
			}
			if fieldErr.Column != tc.wantColumn {
				t.Fatalf("column = %q, want %q", fieldErr.Column, tc.wantColumn)
			}
		})
	}
}

func TestMaterializeRejectsWrongArity(t *testing.T) {
	schema := records.Segments()
	if _, err := schema.Materialize("key.mp4", []string{"1", "2"}); err == nil {
		t.Fatal("expected error for short line")
	}
}
