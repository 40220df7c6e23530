// core/csvline.go
package core

import "strings"

// SplitLine splits one line of a shard into trimmed fields, honoring
// double-quoted segments that may contain the comma delimiter.
//
// Quote characters toggle an in-quotes flag and are consumed, not emitted;
// two adjacent quotes therefore read as close-then-open, not as an escaped
// quote. Commas inside quotes are ordinary field text. A trailing comma
// yields an explicit empty trailing field. Unbalanced quoting is absorbed
// rather than rejected: this tokenizer never fails.
func SplitLine(line string) []string {
	var fields []string
	var current strings.Builder

	inQuotes := false
	for _, c := range line {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}
	if current.Len() > 0 || strings.HasSuffix(line, ",") {
		fields = append(fields, strings.TrimSpace(current.String()))
	}
	return fields
}
