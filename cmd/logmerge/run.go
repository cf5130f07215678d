package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"

	"github.com/creastat/logmerge"
	"github.com/creastat/logmerge/config"
	"github.com/creastat/logmerge/core"
	"github.com/creastat/logmerge/metrics"
	"github.com/creastat/logmerge/sinks"
	"github.com/creastat/logmerge/sources"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	_ "github.com/lib/pq"
)

func runMerge(ctx context.Context, logger zerolog.Logger, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	logger = logger.Level(level).With().Str("run_id", uuid.NewString()).Logger()

	observer := logmerge.Observer(logmerge.NoopObserver{})
	if cfg.Metrics.Addr != "" {
		observer = metrics.NewPromObserver(prometheus.DefaultRegisterer)
		go serveMetrics(logger, cfg.Metrics.Addr)
	}

	srcs, closeSources, err := buildSources(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSources()

	sink, closeSink, err := buildSink(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSink()

	builder := logmerge.NewBuilder().
		WithSink(sink).
		WithMaxBuffer(cfg.MaxBuffer).
		WithLogger(logger).
		WithObserver(observer)
	for _, src := range srcs {
		builder.AddSource(src)
	}

	merge, err := builder.Build()
	if err != nil {
		return err
	}
	return merge.Run(ctx)
}

func buildSources(cfg *config.Config, logger zerolog.Logger) ([]core.Source, func(), error) {
	var (
		srcs    []core.Source
		closers []func() error
	)
	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn().Err(err).Msg("source close failed")
			}
		}
	}

	for _, sc := range cfg.Sources {
		switch sc.Kind {
		case "file":
			src, err := sources.NewFileSource(sc.Name, sc.Path)
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("source %s: %w", sc.Name, err)
			}
			srcs = append(srcs, src)
			closers = append(closers, src.Close)
		case "sql":
			db, err := sql.Open("postgres", sc.ConnString)
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("source %s: %w", sc.Name, err)
			}
			src := sources.NewTableSource(sc.Name, db, sc.Table)
			srcs = append(srcs, src)
			closers = append(closers, src.Close, db.Close)
		case "pebble":
			src, err := sources.NewPebbleSource(sc.Name, sc.Dir)
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("source %s: %w", sc.Name, err)
			}
			srcs = append(srcs, src)
			closers = append(closers, src.Close)
		}
	}
	return srcs, closeAll, nil
}

func buildSink(cfg *config.Config, logger zerolog.Logger) (core.Sink, func(), error) {
	switch cfg.Output.Kind {
	case "stdout":
		return sinks.NewWriterSink(os.Stdout), func() {}, nil
	case "file":
		f, err := os.Create(cfg.Output.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("create output file: %w", err)
		}
		return sinks.NewWriterSink(f), func() { f.Close() }, nil
	case "websocket":
		conn, _, err := websocket.DefaultDialer.Dial(cfg.Output.URL, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("dial %s: %w", cfg.Output.URL, err)
		}
		return sinks.NewWebSocketSink(conn, logger), func() { conn.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown output kind %q", cfg.Output.Kind)
	}
}

func serveMetrics(logger zerolog.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Str("addr", addr).Msg("metrics endpoint failed")
	}
}
