package core

import (
	"reflect"
	"testing"
)

func TestSplitLine_Basic(t *testing.T) {
	got := SplitLine("A,B,C")
	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitLine(A,B,C) = %v, want %v", got, want)
	}
}

func TestSplitLine_QuotedComma(t *testing.T) {
	got := SplitLine(`A,"B, with comma",C`)
	want := []string{"A", "B, with comma", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitLine quoted = %v, want %v", got, want)
	}
}

func TestSplitLine_TrailingDelimiter(t *testing.T) {
	// A trailing comma after nonempty content yields an explicit empty
	// trailing field. This is a fixed contract the shard decoder relies on.
	got := SplitLine("A,B,")
	want := []string{"A", "B", ""}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitLine(A,B,) = %v, want %v", got, want)
	}
}

func TestSplitLine_NoTrailingOveremit(t *testing.T) {
	got := SplitLine("A,B")
	if len(got) != 2 {
		t.Fatalf("SplitLine(A,B) emitted %d fields, want 2", len(got))
	}
}

func TestSplitLine_TrimsWhitespace(t *testing.T) {
	got := SplitLine("  A ,\tB , C  ")
	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitLine with padding = %v, want %v", got, want)
	}
}

func TestSplitLine_AdjacentQuotesCloseThenOpen(t *testing.T) {
	// "" inside a field reads as close-then-open: both quotes are consumed
	// and the comma between remains quoted text only while a quote is open.
	got := SplitLine(`A,"B""C",D`)
	want := []string{"A", "BC", "D"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitLine adjacent quotes = %v, want %v", got, want)
	}
}

func TestSplitLine_UnbalancedQuoteAbsorbed(t *testing.T) {
	got := SplitLine(`A,"B,C`)
	want := []string{"A", "B,C"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitLine unbalanced = %v, want %v", got, want)
	}
}

func TestSplitLine_Empty(t *testing.T) {
	if got := SplitLine(""); len(got) != 0 {
		t.Fatalf("SplitLine(\"\") = %v, want no fields", got)
	}
}
