// Package timing converts time expressions into milliseconds and formats
// milliseconds, percentages and numbers for the script grammar.
//
// Two disjoint expression syntaxes are understood:
//   - Colon form "H:M:S" is an absolute timestamp. The baseline is ignored.
//   - Unit form ("1m30s", "500ms", "2h") is an increment added to the baseline.
//
// Parsing never fails: unparseable or absent tokens contribute 0.
package timing
