// core/report.go
package core

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hydrosignals/econet-linker/model"
)

// NewRunID returns a fresh identifier tying one report to the log lines
// and spans produced while building it.
func NewRunID() string { return uuid.NewString() }

// SeriesReportEntry is one row of a karma report produced from integrated
// time series.
type SeriesReportEntry struct {
	Node        model.NodeConfig
	Contaminant model.ContaminantConfig
	Impact      model.SeriesImpact
	WindowStart time.Time
	WindowEnd   time.Time
}

// WriteKarmaReport writes integrated series impacts as CSV. Columns follow
// the established karma report layout; runID is repeated per row so
// downstream joins stay line-oriented.
func WriteKarmaReport(w io.Writer, runID string, entries []SeriesReportEntry) error {
	cw := csv.NewWriter(w)
	header := []string{
		"node_id", "waterbody", "contaminant", "series_key",
		"karma_Kn", "mass_load", "unit_mass",
		"window_start", "window_end", "ecoimpactscore", "notes", "run_id",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write karma report header: %w", err)
	}

	for _, e := range entries {
		meta := e.Node.Meta
		row := []string{
			string(meta.NodeID),
			meta.Waterbody,
			e.Contaminant.ID,
			SeriesKey(meta.NodeID, e.Contaminant.ID),
			formatSci(e.Impact.Kn),
			formatSci(e.Impact.MassLoad),
			string(e.Contaminant.Unit) + "*s/m3",
			e.WindowStart.UTC().Format(time.RFC3339),
			e.WindowEnd.UTC().Format(time.RFC3339),
			formatScore(clamp01(meta.EcoImpactScore)),
			meta.Notes,
			runID,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write karma report row for %s: %w", meta.NodeID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush karma report: %w", err)
	}
	return nil
}

// ImpactReportEntry is one row of a fixed-outlet evaluation report.
type ImpactReportEntry struct {
	Node   model.NodeConfig
	Cout   float64
	Result model.ImpactResult
}

// WriteImpactReport writes fixed-outlet evaluation results as CSV.
func WriteImpactReport(w io.Writer, runID string, entries []ImpactReportEntry) error {
	cw := csv.NewWriter(w)
	header := []string{
		"node_id", "waterbody", "asset_type", "profile",
		"cout", "mass_avoided", "ecoimpactscore", "karma_gain",
		"safe_threshold", "notes", "run_id",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write impact report header: %w", err)
	}

	for _, e := range entries {
		meta := e.Node.Meta
		row := []string{
			string(meta.NodeID),
			meta.Waterbody,
			string(meta.AssetType),
			meta.Profile,
			formatSci(e.Cout),
			formatSci(e.Result.MassAvoided),
			formatScore(e.Result.EcoImpactScore),
			formatSci(e.Result.KarmaGain),
			formatSci(e.Node.Safety.SafeThreshold),
			meta.Notes,
			runID,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write impact report row for %s: %w", meta.NodeID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush impact report: %w", err)
	}
	return nil
}

func formatSci(v float64) string   { return strconv.FormatFloat(v, 'e', 6, 64) }
func formatScore(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
