// Package config holds the pageclust command configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/pagecluster"
	"github.com/hupe1980/pagecluster/codec"
	"github.com/hupe1980/pagecluster/snapshot"
)

// Store types.
const (
	StoreNone   = "none"
	StoreLocal  = "local"
	StoreBadger = "badger"
	StoreMinio  = "minio"
	StoreS3     = "s3"
)

// ClusterConfig configures the clustering session.
type ClusterConfig struct {
	Clusters         int     `yaml:"clusters"`
	BatchSize        int     `yaml:"batch_size,omitempty"`
	MaxStdDev        float64 `yaml:"max_std_dev"`
	DisableOutliers  bool    `yaml:"disable_outliers,omitempty"`
	MinClusterPoints int64   `yaml:"min_cluster_points"`
	Seed             int64   `yaml:"seed"`
}

// StoreConfig selects where snapshots are kept.
type StoreConfig struct {
	Type         string `yaml:"type"`
	Dir          string `yaml:"dir,omitempty"`
	Bucket       string `yaml:"bucket,omitempty"`
	Prefix       string `yaml:"prefix,omitempty"`
	Endpoint     string `yaml:"endpoint,omitempty"`
	Region       string `yaml:"region,omitempty"`
	UseSSL       bool   `yaml:"use_ssl,omitempty"`
	AccessKeyEnv string `yaml:"access_key_env,omitempty"`
	SecretKeyEnv string `yaml:"secret_key_env,omitempty"`
	// MirrorDir, if set, keeps a local copy of every snapshot.
	MirrorDir string `yaml:"mirror_dir,omitempty"`
}

// SnapshotConfig configures snapshot encoding and checkpointing.
type SnapshotConfig struct {
	Name               string        `yaml:"name"`
	Codec              string        `yaml:"codec"`
	Compression        string        `yaml:"compression"`
	CheckpointInterval time.Duration `yaml:"checkpoint_interval"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// Config is the root configuration.
type Config struct {
	Cluster  ClusterConfig  `yaml:"cluster"`
	Store    StoreConfig    `yaml:"store"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Cluster: ClusterConfig{
			Clusters:         5,
			MaxStdDev:        pagecluster.DefaultMaxStdDev,
			MinClusterPoints: pagecluster.DefaultMinClusterPoints,
			Seed:             pagecluster.DefaultRandSeed,
		},
		Store: StoreConfig{
			Type:         StoreNone,
			AccessKeyEnv: "PAGECLUST_ACCESS_KEY",
			SecretKeyEnv: "PAGECLUST_SECRET_KEY",
		},
		Snapshot: SnapshotConfig{
			Name:        "session.snap",
			Codec:       "json",
			Compression: snapshot.CompressionZSTD.String(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a config from path. A missing file yields the defaults; fields
// absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Save writes cfg to path, creating directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks the values the library does not validate itself.
func (c *Config) Validate() error {
	switch c.Store.Type {
	case StoreNone:
	case StoreLocal, StoreBadger:
		if c.Store.Dir == "" {
			return fmt.Errorf("config: store %s requires dir", c.Store.Type)
		}
	case StoreMinio, StoreS3:
		if c.Store.Bucket == "" {
			return fmt.Errorf("config: store %s requires bucket", c.Store.Type)
		}
	default:
		return fmt.Errorf("config: unknown store type %q", c.Store.Type)
	}

	if _, err := c.SnapshotOptions(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}

// ClusterOptions translates the cluster section into session options.
func (c *Config) ClusterOptions() []pagecluster.Option {
	opts := []pagecluster.Option{
		pagecluster.WithMaxStdDev(c.Cluster.MaxStdDev),
		pagecluster.WithMinClusterPoints(c.Cluster.MinClusterPoints),
		pagecluster.WithRandSeed(c.Cluster.Seed),
	}
	if c.Cluster.BatchSize > 0 {
		opts = append(opts, pagecluster.WithBatchSize(c.Cluster.BatchSize))
	}
	if c.Cluster.DisableOutliers {
		opts = append(opts, pagecluster.WithoutOutlierDetection())
	}
	return opts
}

// SnapshotOptions translates the snapshot section into encoding options.
func (c *Config) SnapshotOptions() ([]snapshot.Option, error) {
	cd, ok := codec.ByName(c.Snapshot.Codec)
	if !ok {
		return nil, fmt.Errorf("config: unknown codec %q", c.Snapshot.Codec)
	}
	comp, err := snapshot.ParseCompression(c.Snapshot.Compression)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return []snapshot.Option{snapshot.WithCodec(cd), snapshot.WithCompression(comp)}, nil
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("config: %w", err)
	}
	return level, nil
}

// Logger builds the configured logger.
func (c *Config) Logger() (*pagecluster.Logger, error) {
	level, err := c.LogLevel()
	if err != nil {
		return nil, err
	}
	if c.Log.Format == "json" {
		return pagecluster.NewJSONLogger(level), nil
	}
	return pagecluster.NewTextLogger(level), nil
}
