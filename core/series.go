// core/series.go
package core

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hydrosignals/econet-linker/model"
)

// SeriesKey builds the node:contaminant key under which a time series is
// stored, e.g. "CAP-LP:PFBS".
func SeriesKey(nodeID model.NodeID, contaminantID string) string {
	return string(nodeID) + ":" + contaminantID
}

// LoadTimeSeries reads per-node measurement series from r. Expected row
// format, after a header line:
//
//	node_id,contaminant,t,Cin,Cout,Q
//
// Unlike the shard loader this one is tolerant: blank, short, or
// unparsable rows are skipped rather than aborting, since series files are
// typically machine-produced telemetry where a dropped sample is routine.
// Samples are appended in file order under their node:contaminant key.
func LoadTimeSeries(r io.Reader) (map[string]model.TimeSeries, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	byKey := make(map[string]model.TimeSeries)
	first := true
	for scanner.Scan() {
		text := scanner.Text()
		if first {
			first = false
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := SplitLine(text)
		if len(fields) < 6 {
			continue
		}

		t, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			continue
		}
		cin, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			continue
		}
		cout, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			continue
		}
		q, err := strconv.ParseFloat(fields[5], 64)
		if err != nil {
			continue
		}

		key := SeriesKey(model.NodeID(fields[0]), fields[1])
		byKey[key] = append(byKey[key], model.Sample{T: t, Cin: cin, Cout: cout, Q: q})
	}
	if err := scanner.Err(); err != nil {
		return nil, &AccessError{Err: err}
	}
	return byKey, nil
}

// LoadTimeSeriesFile opens path and decodes it with LoadTimeSeries.
func LoadTimeSeriesFile(path string) (map[string]model.TimeSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &AccessError{Source: path, Err: err}
	}
	defer f.Close()

	byKey, err := LoadTimeSeries(f)
	if err != nil {
		if ae, ok := err.(*AccessError); ok && ae.Source == "" {
			ae.Source = path
		}
		return nil, err
	}
	return byKey, nil
}
