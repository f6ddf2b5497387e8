package parse

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// quoteGlyphs maps the curly quote variants the generation service mixes in
// to their straight ASCII equivalents.
var quoteGlyphs = strings.NewReplacer(
	"“", `"`, // left double
	"”", `"`, // right double
	"„", `"`, // low double
	"‟", `"`, // high reversed double
	"‘", "'", // left single
	"’", "'", // right single
)

// Normalize canonicalizes one raw output line before tokenization: curly
// quote glyphs become straight quotes and the text is NFC-normalized so
// anchor matching compares canonical forms.
func Normalize(line string) string {
	return norm.NFC.String(quoteGlyphs.Replace(line))
}
