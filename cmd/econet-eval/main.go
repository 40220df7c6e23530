package main

import (
	"context"
	"flag"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/hydrosignals/econet-linker/catalog"
	"github.com/hydrosignals/econet-linker/core"
	"github.com/hydrosignals/econet-linker/internal/logging"
	"github.com/hydrosignals/econet-linker/internal/observability"
	"github.com/hydrosignals/econet-linker/kb"
	"github.com/hydrosignals/econet-linker/model"
	"go.opentelemetry.io/otel"
)

func main() {
	shardPath := flag.String("shard", "", "Path to the qpudatashard CSV of node metadata")
	catalogPath := flag.String("catalog", "configs/catalog.yaml", "Path to a YAML contaminant catalog; built-ins are used when missing")
	seriesPath := flag.String("series", "", "Optional time-series CSV (node_id,contaminant,t,Cin,Cout,Q); when set, impacts are integrated from it")
	outPath := flag.String("out", "karma_report.csv", "Path of the CSV report to write")
	cout := flag.Float64("cout", 0, "Proposed outlet concentration for fixed-outlet evaluation (ignored with -series)")
	cref := flag.Float64("cref", 0, "Reference concentration default; overrides the catalog value when set")
	lambda := flag.Float64("lambda", 0, "Viability (CLF) weight; overrides the catalog value when set")
	mu := flag.Float64("mu", 0, "Safety (CBF) weight; overrides the catalog value when set")
	metricsAddr := flag.String("metrics-addr", "", "HTTP address for Prometheus /metrics (empty disables the listener)")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx, runID := logging.EnsureRunID(context.Background())
	log = log.With(logging.String("run_id", runID))

	if *shardPath == "" {
		log.Error(ctx, "missing required -shard flag")
		os.Exit(2)
	}

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	collector, err := observability.NewPipelineCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}
	metricsSrv := serveMetrics(*metricsAddr, collector, log)

	cat := catalog.LoadOrBuiltin(*catalogPath, log)
	defaults := resolveDefaults(cat.Defaults, flagsSet(), *cref, *lambda, *mu)

	tracer := otel.Tracer("econet-eval")

	loadCtx, loadSpan := tracer.Start(ctx, "shard.load")
	loadStart := time.Now()
	configs, err := core.LoadShardConfigs(*shardPath, defaults.CrefDefault, defaults.LambdaCLF, defaults.MuCBF)
	collector.ObserveShardLoad(time.Since(loadStart), len(configs), err)
	loadSpan.End()
	if err != nil {
		log.Error(loadCtx, "shard load failed",
			logging.String("shard", *shardPath),
			logging.String("error", err.Error()),
		)
		os.Exit(1)
	}
	log.Info(ctx, "shard loaded",
		logging.String("shard", *shardPath),
		logging.Int("nodes", len(configs)),
	)

	registry := kb.NewRegistry()
	registry.Subscribe(func(kb.Event) {
		nodes, contaminants := registry.Counts()
		collector.SetRegistryCounts(nodes, contaminants)
	})

	_, registerSpan := tracer.Start(ctx, "registry.register")
	err = registry.RegisterShard(configs)
	if err == nil {
		for _, c := range cat.ContaminantConfigs() {
			if err = registry.RegisterContaminant(c); err != nil {
				break
			}
		}
	}
	registerSpan.End()
	if err != nil {
		log.Error(ctx, "registration failed", logging.String("error", err.Error()))
		os.Exit(1)
	}

	var reportErr error
	evalCtx, evalSpan := tracer.Start(ctx, "evaluate.report")
	if *seriesPath != "" {
		byKey, err := core.LoadTimeSeriesFile(*seriesPath)
		if err != nil {
			evalSpan.End()
			log.Error(evalCtx, "series load failed",
				logging.String("series", *seriesPath),
				logging.String("error", err.Error()),
			)
			os.Exit(1)
		}
		entries := evaluateSeries(registry.Nodes(), registry.Contaminants(), byKey)
		collector.RecordEvaluations("series", len(entries))
		reportErr = writeReport(*outPath, func(f *os.File) error {
			return core.WriteKarmaReport(f, runID, entries)
		})
		log.Info(evalCtx, "series evaluation complete", logging.Int("windows", len(entries)))
	} else {
		entries := evaluateFixed(registry.Nodes(), *cout)
		collector.RecordEvaluations("fixed", len(entries))
		reportErr = writeReport(*outPath, func(f *os.File) error {
			return core.WriteImpactReport(f, runID, entries)
		})
		log.Info(evalCtx, "fixed-outlet evaluation complete",
			logging.Float64("cout", *cout),
			logging.Int("nodes", len(entries)),
		)
	}
	evalSpan.End()
	if reportErr != nil {
		log.Error(ctx, "report write failed",
			logging.String("out", *outPath),
			logging.String("error", reportErr.Error()),
		)
		os.Exit(1)
	}
	log.Info(ctx, "report written", logging.String("out", *outPath))

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
}

// resolveDefaults starts from the catalog defaults and applies any binder
// flags the operator actually set.
func resolveDefaults(base catalog.Defaults, set map[string]bool, cref, lambda, mu float64) catalog.Defaults {
	if set["cref"] {
		base.CrefDefault = cref
	}
	if set["lambda"] {
		base.LambdaCLF = lambda
	}
	if set["mu"] {
		base.MuCBF = mu
	}
	return base
}

func flagsSet() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// evaluateFixed scores every node at the same proposed outlet concentration.
func evaluateFixed(configs []model.NodeConfig, cout float64) []core.ImpactReportEntry {
	entries := make([]core.ImpactReportEntry, 0, len(configs))
	for _, cfg := range configs {
		entries = append(entries, core.ImpactReportEntry{
			Node:   cfg,
			Cout:   cout,
			Result: core.EvaluateNode(cfg, cout),
		})
	}
	return entries
}

// evaluateSeries integrates every node x contaminant pair that has a
// measurement series, skipping pairs with no samples.
func evaluateSeries(
	configs []model.NodeConfig,
	contaminants []model.ContaminantConfig,
	byKey map[string]model.TimeSeries,
) []core.SeriesReportEntry {
	var entries []core.SeriesReportEntry
	for _, cfg := range configs {
		for _, cont := range contaminants {
			series, ok := byKey[core.SeriesKey(cfg.Meta.NodeID, cont.ID)]
			if !ok || len(series) == 0 {
				continue
			}
			start, end := seriesWindow(series)
			entries = append(entries, core.SeriesReportEntry{
				Node:        cfg,
				Contaminant: cont,
				Impact:      core.IntegrateSeriesImpact(cfg.Meta.NodeID, cont, series),
				WindowStart: start,
				WindowEnd:   end,
			})
		}
	}
	return entries
}

// seriesWindow reports the covered sample-time bounds of a series.
func seriesWindow(series model.TimeSeries) (time.Time, time.Time) {
	minT, maxT := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		minT = math.Min(minT, s.T)
		maxT = math.Max(maxT, s.T)
	}
	return time.Unix(int64(minT), 0).UTC(), time.Unix(int64(maxT), 0).UTC()
}

func writeReport(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func serveMetrics(addr string, collector *observability.PipelineCollector, log logging.Logger) *http.Server {
	if addr == "" || collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
