package parse

import (
	"fmt"
	"strconv"
	"strings"
)

// LineShape describes the expected structure of one model-emitted line so the
// reconciler can repair bad splits.
type LineShape struct {
	// Arity is the exact field count a well-formed line carries.
	Arity int
	// Leads counts the fixed fields at the head of the line (identifier plus
	// timestamps), Clocks how many of those are timestamp-shaped.
	Leads  int
	Clocks int
	// Categories is the closed label vocabulary for the category field, empty
	// when the shape has none. CategoryIndex is -1 in that case.
	Categories    []string
	CategoryIndex int
	// RatingIndex locates the bounded-integer field; RatingMin and RatingMax
	// bound its closed range.
	RatingIndex int
	RatingMin   int
	RatingMax   int
}

// Reconcile returns a field list of exactly shape.Arity elements, or an error
// when neither repair strategy can recover one. Exact-arity input passes
// through untouched. Otherwise adjacent-fragment merging runs first and
// anchor-based reassembly is the fallback.
func Reconcile(fields []string, shape LineShape) ([]string, error) {
	if len(fields) == shape.Arity {
		return fields, nil
	}
	if merged, ok := mergeFragments(fields, shape.Arity); ok {
		return merged, nil
	}
	if rebuilt, ok := anchorRebuild(fields, shape); ok {
		return rebuilt, nil
	}
	return nil, fmt.Errorf("cannot reconcile %d fields into %d", len(fields), shape.Arity)
}

// mergeFragments repairs fields that were split because a delimiter appeared
// inside a quoted span the tokenizer never saw closed: an element that opens
// with a quote but does not close with one is rejoined with its successors
// until one ends in a quote or the list runs out. Passes repeat until the
// list stabilizes.
func mergeFragments(fields []string, arity int) ([]string, bool) {
	current := fields
	for {
		merged := mergeOnce(current)
		if len(merged) == len(current) {
			break
		}
		current = merged
	}
	if len(current) == arity {
		return current, true
	}
	return nil, false
}

func mergeOnce(fields []string) []string {
	out := make([]string, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		field := fields[i]
		if !strings.HasPrefix(field, `"`) || strings.HasSuffix(field, `"`) {
			out = append(out, field)
			continue
		}
		combined := field
		j := i + 1
		for ; j < len(fields); j++ {
			combined += ", " + fields[j]
			if strings.HasSuffix(fields[j], `"`) {
				break
			}
		}
		out = append(out, combined)
		i = j
	}
	return out
}

// anchorRebuild reassembles a line around its anchor fields: the category
// label (when the shape has a vocabulary) and the bounded integer rating.
// Everything before the category anchor becomes the leading fixed fields,
// the span between the anchors is apportioned across the free-text slots
// (the first slot absorbs any surplus), and everything after the rating
// joins into the trailing field. The result is structurally sound but the
// apportionment of prose between adjacent free-text fields is best-effort.
func anchorRebuild(fields []string, shape LineShape) ([]string, bool) {
	if shape.RatingIndex < 0 || shape.RatingIndex >= shape.Arity {
		return nil, false
	}

	stripped := make([]string, len(fields))
	for i, field := range fields {
		stripped[i] = bare(field)
	}

	categoryAt := -1
	categoryLabel := ""
	if shape.CategoryIndex >= 0 {
		if len(shape.Categories) == 0 {
			return nil, false
		}
		for i, field := range stripped {
			if label, ok := canonicalLabel(field, shape.Categories); ok {
				categoryAt = i
				categoryLabel = label
				break
			}
		}
		if categoryAt < 0 {
			return nil, false
		}
	}

	middleStart := shape.Leads
	if categoryAt >= 0 {
		middleStart = categoryAt + 1
	}
	ratingAt, rating := findRating(stripped, middleStart, shape)
	if ratingAt < 0 {
		return nil, false
	}

	out := make([]string, shape.Arity)

	if categoryAt >= 0 {
		if !assembleLeads(out, stripped[:categoryAt], shape) {
			return nil, false
		}
		out[shape.CategoryIndex] = categoryLabel
		fillSpan(out, shape.CategoryIndex+1, shape.RatingIndex, stripped[categoryAt+1:ratingAt])
	} else {
		if ratingAt < shape.Leads {
			return nil, false
		}
		copy(out, stripped[:shape.Leads])
		fillSpan(out, shape.Leads, shape.RatingIndex, stripped[shape.Leads:ratingAt])
	}

	out[shape.RatingIndex] = strconv.Itoa(rating)
	fillSpan(out, shape.RatingIndex+1, shape.Arity, stripped[ratingAt+1:])
	return out, true
}

// assembleLeads maps the fields preceding the category anchor onto the
// leading fixed slots. Timestamp-shaped fields are detected by containing a
// colon and fill the clock slots in order; everything else joins into the
// identifier slots.
func assembleLeads(out []string, before []string, shape LineShape) bool {
	idSlots := shape.Leads - shape.Clocks
	if idSlots < 0 {
		return false
	}

	var clocks []string
	var others []string
	for _, field := range before {
		if len(clocks) < shape.Clocks && strings.Contains(field, ":") {
			clocks = append(clocks, field)
			continue
		}
		others = append(others, field)
	}
	if len(clocks) < shape.Clocks {
		return false
	}

	fillSpan(out, 0, idSlots, others)
	for i, clock := range clocks {
		out[idSlots+i] = clock
	}
	return true
}

// fillSpan distributes parts across out[start:end). Missing slots become
// empty strings; when there are more parts than slots the first slot absorbs
// the surplus as one joined field.
func fillSpan(out []string, start, end int, parts []string) {
	slots := end - start
	if slots <= 0 {
		return
	}
	if len(parts) <= slots {
		for i := 0; i < slots; i++ {
			if i < len(parts) {
				out[start+i] = parts[i]
			} else {
				out[start+i] = ""
			}
		}
		return
	}
	surplus := len(parts) - slots + 1
	out[start] = strings.Join(parts[:surplus], ", ")
	for i := 1; i < slots; i++ {
		out[start+i] = parts[surplus+i-1]
	}
}

func findRating(fields []string, from int, shape LineShape) (int, int) {
	for i := from; i < len(fields); i++ {
		value, err := strconv.Atoi(strings.TrimSpace(fields[i]))
		if err != nil {
			continue
		}
		if value >= shape.RatingMin && value <= shape.RatingMax {
			return i, value
		}
	}
	return -1, 0
}

// canonicalLabel reports whether field matches one of the closed vocabulary
// labels, returning the canonical spelling on a hit.
func canonicalLabel(field string, labels []string) (string, bool) {
	for _, label := range labels {
		if strings.EqualFold(field, label) {
			return label, true
		}
	}
	return "", false
}
