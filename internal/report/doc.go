// Package report defines the typed records produced by the markdown report
// extractor together with the small text helpers (glyph classification,
// title cleaning) shared by every block parser.
package report
