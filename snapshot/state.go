package snapshot

import "github.com/google/uuid"

// Config is the persisted session configuration.
type Config struct {
	BatchSize        int     `json:"batch_size" yaml:"batch_size"`
	MaxStdDev        float64 `json:"max_std_dev" yaml:"max_std_dev"`
	OutlierDetection bool    `json:"outlier_detection" yaml:"outlier_detection"`
	MinClusterPoints int64   `json:"min_cluster_points" yaml:"min_cluster_points"`
	RandSeed         int64   `json:"rand_seed" yaml:"rand_seed"`
}

// State is the exported form of a session. Matrices are stored row by row.
type State struct {
	SessionID uuid.UUID `json:"session_id" yaml:"session_id"`
	Config    Config    `json:"config" yaml:"config"`

	// Vocabulary lists the token keys in index order. Empty when the
	// session uses a vectorizer without an exportable vocabulary.
	Vocabulary []string `json:"vocabulary,omitempty" yaml:"vocabulary,omitempty"`

	NumClusters int  `json:"num_clusters" yaml:"num_clusters"`
	Dimension   int  `json:"dimension" yaml:"dimension"`
	Initialized bool `json:"initialized" yaml:"initialized"`

	Centers    [][]float32 `json:"centers,omitempty" yaml:"centers,omitempty"`
	Seed       [][]float32 `json:"seed,omitempty" yaml:"seed,omitempty"`
	Counts     []int64     `json:"counts" yaml:"counts"`
	SumSqrDist []float64   `json:"sum_sqr_dist" yaml:"sum_sqr_dist"`

	// Pending holds the buffered vectors not yet flushed.
	Pending [][]float32 `json:"pending,omitempty" yaml:"pending,omitempty"`
}
