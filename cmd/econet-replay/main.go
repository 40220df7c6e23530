package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/hydrosignals/econet-linker/catalog"
	"github.com/hydrosignals/econet-linker/core"
	"github.com/hydrosignals/econet-linker/internal/logging"
	"github.com/hydrosignals/econet-linker/internal/observability"
	"github.com/hydrosignals/econet-linker/model"
	"github.com/hydrosignals/econet-linker/timectrl"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	seriesPath := flag.String("series", "", "Time-series CSV (node_id,contaminant,t,Cin,Cout,Q) to replay")
	catalogPath := flag.String("catalog", "configs/catalog.yaml", "Path to a YAML contaminant catalog; built-ins are used when missing")
	nodeID := flag.String("node", "", "Node ID to replay")
	contaminantID := flag.String("contaminant", "", "Contaminant ID to replay")
	window := flag.Duration("window", time.Hour, "Evaluation window width in replay time")
	tick := flag.Duration("tick", time.Minute, "Replay clock tick")
	accelerated := flag.Bool("accelerated", true, "Replay as fast as possible instead of in real time")
	duration := flag.Duration("duration", 0, "Replay duration; defaults to the span of the series plus one tick")
	metricsAddr := flag.String("metrics-addr", "", "HTTP address for Prometheus /metrics (empty disables the listener)")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx, log := logging.WithRunLogger(context.Background(), log)

	if *seriesPath == "" || *nodeID == "" || *contaminantID == "" {
		log.Error(ctx, "missing required flags: -series, -node, and -contaminant")
		os.Exit(2)
	}

	cat := catalog.LoadOrBuiltin(*catalogPath, log)
	cont, ok := cat.Contaminant(*contaminantID)
	if !ok {
		log.Error(ctx, "contaminant not in catalog", logging.String("contaminant", *contaminantID))
		os.Exit(1)
	}

	byKey, err := core.LoadTimeSeriesFile(*seriesPath)
	if err != nil {
		log.Error(ctx, "series load failed",
			logging.String("series", *seriesPath),
			logging.String("error", err.Error()),
		)
		os.Exit(1)
	}
	series := byKey[core.SeriesKey(model.NodeID(*nodeID), *contaminantID)]
	if len(series) == 0 {
		log.Error(ctx, "no samples for requested pair",
			logging.String("node", *nodeID),
			logging.String("contaminant", *contaminantID),
		)
		os.Exit(1)
	}

	collector, err := observability.NewReplayCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}
	if *metricsAddr != "" {
		serveMetrics(*metricsAddr, log)
	}

	mode := timectrl.RealTime
	if *accelerated {
		mode = timectrl.Accelerated
	}
	start := time.Unix(int64(series[0].T), 0).UTC()
	controller := timectrl.NewController(start, *tick, mode)

	replayer := core.NewReplayer(model.NodeID(*nodeID), cont, series, window.Seconds())
	controller.AddListener(func(now time.Time) {
		collector.RecordTick()
		for _, w := range replayer.Advance(float64(now.Unix())) {
			logWindow(ctx, log, collector, w)
		}
	})

	span := replayDuration(*duration, series, *tick)
	log.Info(ctx, "replay starting",
		logging.String("node", *nodeID),
		logging.String("contaminant", *contaminantID),
		logging.String("window", window.String()),
		logging.String("duration", span.String()),
	)

	<-controller.Start(span)

	if w, ok := replayer.Flush(); ok {
		logWindow(ctx, log, collector, w)
	}
	log.Info(ctx, "replay finished", logging.String("elapsed", controller.Elapsed().String()))
}

// replayDuration picks how much replay time to run: the explicit flag when
// set, otherwise the sample span of the series padded by one tick so the
// last window closes.
func replayDuration(explicit time.Duration, series model.TimeSeries, tick time.Duration) time.Duration {
	if explicit > 0 {
		return explicit
	}
	if len(series) == 0 {
		return tick
	}
	span := series[len(series)-1].T - series[0].T
	return time.Duration(span*float64(time.Second)) + tick
}

func logWindow(ctx context.Context, log logging.Logger, collector *observability.ReplayCollector, w core.WindowImpact) {
	collector.RecordWindow(w.Impact.Kn, w.Impact.MassLoad)
	log.Info(ctx, "window complete",
		logging.String("start", time.Unix(int64(w.Start), 0).UTC().Format(time.RFC3339)),
		logging.String("end", time.Unix(int64(w.End), 0).UTC().Format(time.RFC3339)),
		logging.Float64("kn", w.Impact.Kn),
		logging.Float64("mass_load", w.Impact.MassLoad),
	)
}

// serveMetrics exposes the default registry, where NewReplayCollector(nil)
// registers its metrics.
func serveMetrics(addr string, log logging.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()
	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
}
