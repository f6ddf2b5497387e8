// Package parse recovers fixed-arity records from the quasi-CSV lines the
// generation service emits.
//
// The chain runs Normalize (straight quotes, NFC), Tokenize (quote-aware
// splitting), then Reconcile, which accepts exact-arity lines as-is and
// otherwise tries two repairs in order: merging adjacent fragments of a
// broken quoted span, and anchor-based reassembly around the category and
// rating fields. Unquote strips one enclosing quote layer and unescapes
// doubled quotes when a record is materialized.
//
// Reconciliation is structural, not semantic: a repaired line has the right
// field count and correct anchor fields, but prose split across free-text
// neighbours may end up absorbed by the wrong column.
package parse
