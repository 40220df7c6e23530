package core

import (
	"strings"
	"testing"
)

const seriesHeader = "node_id,contaminant,t,Cin,Cout,Q\n"

func TestLoadTimeSeries_GroupsByKey(t *testing.T) {
	src := seriesHeader +
		"CAP-LP,PFBS,0,3.9,2.0,12.5\n" +
		"CAP-LP,PFBS,3600,3.9,1.8,12.5\n" +
		"GILA-ESTRELLA,Ecoli,0,310,120,4.2\n"

	byKey, err := LoadTimeSeries(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadTimeSeries error: %v", err)
	}
	if len(byKey) != 2 {
		t.Fatalf("got %d keys, want 2", len(byKey))
	}

	lp := byKey["CAP-LP:PFBS"]
	if len(lp) != 2 {
		t.Fatalf("CAP-LP:PFBS has %d samples, want 2", len(lp))
	}
	if lp[1].T != 3600 || lp[1].Cout != 1.8 {
		t.Errorf("second sample = %+v", lp[1])
	}

	gila := byKey["GILA-ESTRELLA:Ecoli"]
	if len(gila) != 1 || gila[0].Q != 4.2 {
		t.Errorf("GILA series = %+v", gila)
	}
}

func TestLoadTimeSeries_TolerantOfMalformedRows(t *testing.T) {
	src := seriesHeader +
		"CAP-LP,PFBS,0,3.9,2.0,12.5\n" +
		"short,row\n" +
		"\n" +
		"CAP-LP,PFBS,not-a-time,3.9,2.0,12.5\n" +
		"CAP-LP,PFBS,7200,3.9,1.5,12.5\n"

	byKey, err := LoadTimeSeries(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadTimeSeries error: %v", err)
	}
	if got := len(byKey["CAP-LP:PFBS"]); got != 2 {
		t.Fatalf("kept %d samples, want 2 (malformed rows skipped)", got)
	}
}

func TestLoadTimeSeries_EmptySource(t *testing.T) {
	byKey, err := LoadTimeSeries(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadTimeSeries error: %v", err)
	}
	if len(byKey) != 0 {
		t.Fatalf("got %d keys from empty source", len(byKey))
	}
}

func TestSeriesKey(t *testing.T) {
	if got := SeriesKey("CAP-LP", "PFBS"); got != "CAP-LP:PFBS" {
		t.Fatalf("SeriesKey = %q", got)
	}
}
