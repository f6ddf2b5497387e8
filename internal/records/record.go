package records

import (
	"fmt"
	"strconv"
	"strings"

	"spool/internal/parse"
)

// Record is one validated dataset row. Values always spans the schema's
// stored columns, so Values[0] is the item key.
type Record struct {
	Values []string
	Rating int
}

// Key returns the item key column.
func (r Record) Key() string {
	if len(r.Values) == 0 {
		return ""
	}
	return r.Values[0]
}

// FieldError reports a validation failure in a named column.
type FieldError struct {
	Column string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Column, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Materialize turns a reconciled model line into a stored row keyed by key.
// Every field is unquoted, the category label is checked against the closed
// vocabulary and canonicalized, and the rating is checked against its range.
func (s Schema) Materialize(key string, fields []string) (Record, error) {
	if len(fields) != s.LineArity() {
		return Record{}, fmt.Errorf("expected %d fields, got %d", s.LineArity(), len(fields))
	}

	values := make([]string, len(fields))
	for i, field := range fields {
		unquoted, err := parse.Unquote(field)
		if err != nil {
			return Record{}, &FieldError{Column: s.columnAt(i), Err: err}
		}
		values[i] = unquoted
	}

	offset := s.keyOffset()

	if s.CategoryColumn >= 0 {
		idx := s.CategoryColumn - offset
		label, ok := matchLabel(values[idx], s.Categories)
		if !ok {
			return Record{}, &FieldError{
				Column: s.columnAt(idx),
				Err:    fmt.Errorf("label %q outside vocabulary %v", values[idx], s.Categories),
			}
		}
		values[idx] = label
	}

	ratingIdx := s.RatingColumn - offset
	rating, err := strconv.Atoi(strings.TrimSpace(values[ratingIdx]))
	if err != nil {
		return Record{}, &FieldError{Column: s.columnAt(ratingIdx), Err: fmt.Errorf("not an integer: %q", values[ratingIdx])}
	}
	if rating < s.RatingMin || rating > s.RatingMax {
		return Record{}, &FieldError{
			Column: s.columnAt(ratingIdx),
			Err:    fmt.Errorf("rating %d outside range %d-%d", rating, s.RatingMin, s.RatingMax),
		}
	}
	values[ratingIdx] = strconv.Itoa(rating)

	if s.InjectsKey {
		values = append([]string{key}, values...)
	} else {
		values[0] = key
	}
	return Record{Values: values, Rating: rating}, nil
}

func matchLabel(field string, labels []string) (string, bool) {
	for _, label := range labels {
		if strings.EqualFold(strings.TrimSpace(field), label) {
			return label, true
		}
	}
	return "", false
}
