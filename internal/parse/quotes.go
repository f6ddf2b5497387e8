package parse

import (
	"fmt"
	"strings"
)

// Unquote strips one layer of enclosing straight quotes from a field if
// present and unescapes doubled embedded quotes. A field that is quoted on
// exactly one end is ambiguous: it means a broken quoted span survived
// reconciliation, so the caller must treat the line as unparsable.
func Unquote(field string) (string, error) {
	f := strings.TrimSpace(field)
	if strings.HasPrefix(f, `"`) || strings.HasSuffix(f, `"`) {
		if len(f) < 2 || !strings.HasPrefix(f, `"`) || !strings.HasSuffix(f, `"`) {
			return "", fmt.Errorf("ambiguous quoting in field %q", field)
		}
		f = f[1 : len(f)-1]
	}
	return strings.ReplaceAll(f, `""`, `"`), nil
}

// bare trims a field and drops at most one quote from each end without
// balance checks. Anchor matching and anchor-based reassembly use it because
// they must see through whatever quoting survived a bad split.
func bare(field string) string {
	f := strings.TrimSpace(field)
	f = strings.TrimPrefix(f, `"`)
	f = strings.TrimSuffix(f, `"`)
	return strings.TrimSpace(f)
}
