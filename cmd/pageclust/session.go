package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/pagecluster"
	"github.com/hupe1980/pagecluster/blobstore"
	"github.com/hupe1980/pagecluster/htmlpage"
	"github.com/hupe1980/pagecluster/snapshot"
)

// env bundles what every command needs.
type env struct {
	store   blobstore.Store
	metrics pagecluster.MetricsCollector
	snap    []snapshot.Option
	release func()
}

func openEnv(ctx context.Context) (*env, error) {
	snapOpts, err := cfg.SnapshotOptions()
	if err != nil {
		return nil, err
	}

	store, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	mc, stopMetrics, err := startMetrics(cfg.Metrics.Addr)
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	return &env{
		store:   store,
		metrics: mc,
		snap:    snapOpts,
		release: func() {
			stopMetrics()
			if err := closeStore(); err != nil {
				logger.Warn("close store", "error", err)
			}
		},
	}, nil
}

// runtimeOptions are the options that are never persisted.
func (e *env) runtimeOptions() []pagecluster.Option {
	opts := []pagecluster.Option{
		pagecluster.WithLogger(logger),
		pagecluster.WithMetricsCollector(e.metrics),
	}
	if e.store != nil && cfg.Snapshot.CheckpointInterval > 0 {
		cp := snapshot.NewCheckpointer(e.store, cfg.Snapshot.Name, cfg.Snapshot.CheckpointInterval, e.snap...)
		opts = append(opts, pagecluster.WithCheckpointer(cp))
	}
	return opts
}

// newSession starts a fresh session, seeded when exemplars are given.
func (e *env) newSession(exemplars []*htmlpage.Page) (*pagecluster.Clusterer, error) {
	opts := append(cfg.ClusterOptions(), e.runtimeOptions()...)
	if len(exemplars) > 0 {
		return pagecluster.NewFromExemplars(exemplars, opts...)
	}
	return pagecluster.New(cfg.Cluster.Clusters, opts...)
}

// loadSession resumes the stored session.
func (e *env) loadSession(ctx context.Context) (*pagecluster.Clusterer, error) {
	if e.store == nil {
		return nil, errors.New("no snapshot store configured")
	}
	c, err := pagecluster.Load(ctx, e.store, cfg.Snapshot.Name, e.runtimeOptions()...)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", cfg.Snapshot.Name, err)
	}
	return c, nil
}

func (e *env) save(ctx context.Context, c *pagecluster.Clusterer) error {
	if e.store == nil {
		return nil
	}
	if err := c.Save(ctx, e.store, cfg.Snapshot.Name, e.snap...); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	logger.Info("session saved", "name", cfg.Snapshot.Name, "session_id", c.ID())
	return nil
}
