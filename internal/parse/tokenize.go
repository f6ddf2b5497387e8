package parse

import "strings"

const delimiter = ','

// Tokenize splits one normalized line into raw fields on unquoted commas.
//
// A double-quote character toggles the quoted state, except that a doubled
// quote inside a quoted span is passed through literally (unescaping is
// deferred to Unquote). Fields keep their surrounding quotes and are
// whitespace-trimmed. Mismatched quotes never error: an unterminated span
// swallows the rest of the line into the current field, which surfaces later
// as a wrong field count for Reconcile to repair. A delimiter at the very end
// of the line does not produce a trailing empty field.
func Tokenize(line string) []string {
	if line == "" {
		return nil
	}

	var fields []string
	var current strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteString(`""`)
				i++
				continue
			}
			inQuotes = !inQuotes
			current.WriteRune(ch)
		case ch == delimiter && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	if current.Len() > 0 {
		fields = append(fields, strings.TrimSpace(current.String()))
	}
	return fields
}
