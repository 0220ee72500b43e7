package prometheus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pagecluster"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	require.NoError(t, err)

	c.RecordAdd(1)
	c.RecordAdd(2)
	c.RecordFlush(2, 1, 9, time.Millisecond, nil)
	c.RecordFlush(2, 0, 9, time.Millisecond, errors.New("boom"))
	c.RecordClassify(false, time.Microsecond, nil)
	c.RecordClassify(true, time.Microsecond, nil)
	c.RecordClassify(false, time.Microsecond, pagecluster.ErrNotFitted)
	c.RecordCheckpoint(time.Millisecond, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.adds))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.pending))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.flushes.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.flushes.WithLabelValues("error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.flushRows))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.outliers))
	assert.Equal(t, 9.0, testutil.ToFloat64(c.dimension))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.classified.WithLabelValues("cluster")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.classified.WithLabelValues("outlier")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.classified.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.checkpoints.WithLabelValues("success")))

	// flush success/error, classify success/error, checkpoint success
	assert.Equal(t, 5, testutil.CollectAndCount(c.latency))
}

func TestCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)
}

func TestCollector_WithClusterer(t *testing.T) {
	reg := prometheus.NewRegistry()
	mc, err := New(reg)
	require.NoError(t, err)

	c, err := pagecluster.New(1, pagecluster.WithBatchSize(2), pagecluster.WithMetricsCollector(mc))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, c.AddVector(ctx, []float32{1, 0}))
	require.NoError(t, c.AddVector(ctx, []float32{0, 1, 1}))

	assert.Equal(t, 2.0, testutil.ToFloat64(mc.adds))
	assert.Equal(t, 3.0, testutil.ToFloat64(mc.dimension))
	assert.Equal(t, 2.0, testutil.ToFloat64(mc.flushRows))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "pagecluster_flushes_total")
	assert.Contains(t, names, "pagecluster_feature_dimension")
}
