package core

import "fmt"

// AccessError reports that a shard or series source could not be opened or
// read. It wraps the underlying I/O failure.
type AccessError struct {
	Source string
	Err    error
}

func (e *AccessError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("shard access: %v", e.Err)
	}
	return fmt.Sprintf("shard access %s: %v", e.Source, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// DecodeError reports a malformed shard row. Line is 1-based and counts
// the header as line 1, so the first data line reports as line 2. Field
// names the offending logical field when a specific one failed to parse.
type DecodeError struct {
	Line  int
	Field string
	Msg   string
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("line %d: field %s: %s", e.Line, e.Field, e.Msg)
}
