package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pagecluster"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "pageclust.yaml")

	cfg := Default()
	cfg.Cluster.Clusters = 7
	cfg.Cluster.BatchSize = 21
	cfg.Store.Type = StoreBadger
	cfg.Store.Dir = "/var/lib/pageclust"
	cfg.Store.MirrorDir = "/backup"
	cfg.Snapshot.CheckpointInterval = 30 * time.Second
	cfg.Snapshot.Compression = "lz4"
	cfg.Log.Format = "json"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pageclust.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
cluster:
  clusters: 3
snapshot:
  checkpoint_interval: 1m
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Cluster.Clusters)
	assert.Equal(t, pagecluster.DefaultMaxStdDev, cfg.Cluster.MaxStdDev)
	assert.Equal(t, time.Minute, cfg.Snapshot.CheckpointInterval)
	assert.Equal(t, "session.snap", cfg.Snapshot.Name)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		body string
	}{
		{"syntax", "cluster: ["},
		{"store type", "store:\n  type: ftp\n"},
		{"local without dir", "store:\n  type: local\n"},
		{"s3 without bucket", "store:\n  type: s3\n"},
		{"codec", "snapshot:\n  codec: xml\n"},
		{"compression", "snapshot:\n  compression: brotli\n"},
		{"log level", "log:\n  level: loud\n"},
		{"log format", "log:\n  format: xml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestClusterOptions(t *testing.T) {
	cfg := Default()
	cfg.Cluster.BatchSize = 3
	cfg.Cluster.DisableOutliers = true

	c, err := pagecluster.New(2, cfg.ClusterOptions()...)
	require.NoError(t, err)
	assert.Equal(t, 3, c.BatchSize())
	assert.False(t, c.OutlierDetection())

	c, err = pagecluster.New(2, Default().ClusterOptions()...)
	require.NoError(t, err)
	assert.Equal(t, 20, c.BatchSize())
	assert.True(t, c.OutlierDetection())
}

func TestLogLevel(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "debug"

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	logger, err := cfg.Logger()
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
