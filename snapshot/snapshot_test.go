package snapshot

import (
	"context"
	"encoding/binary"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pagecluster/blobstore"
	"github.com/hupe1980/pagecluster/codec"
)

func sampleState() *State {
	return &State{
		SessionID: uuid.MustParse("3f1c7c8e-6a55-4c0e-9d3f-0b3c1d2e4f50"),
		Config: Config{
			BatchSize:        20,
			MaxStdDev:        5,
			OutlierDetection: true,
			MinClusterPoints: 30,
			RandSeed:         42,
		},
		Vocabulary:  []string{"html", "body", "div post"},
		NumClusters: 2,
		Dimension:   3,
		Initialized: true,
		Centers:     [][]float32{{1, 1, 0.5}, {1, 1, 0}},
		Counts:      []int64{12, 8},
		SumSqrDist:  []float64{3.25, 0},
		Pending:     [][]float32{{1, 1}, {1, 1, 2}},
	}
}

func TestEncodeDecode(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		for _, cd := range []codec.Codec{codec.JSON{}, codec.YAML{}} {
			t.Run(c.String()+"/"+cd.Name(), func(t *testing.T) {
				st := sampleState()
				data, err := Encode(st, WithCompression(c), WithCodec(cd))
				require.NoError(t, err)

				got, err := Decode(data)
				require.NoError(t, err)
				assert.Equal(t, st, got)

				id, err := SessionID(data)
				require.NoError(t, err)
				assert.Equal(t, st.SessionID, id)
			})
		}
	}
}

func TestEncode_CompressesRepetitivePayloads(t *testing.T) {
	st := sampleState()
	for i := 0; i < 500; i++ {
		st.Pending = append(st.Pending, []float32{1, 1, 0})
	}

	raw, err := Encode(st, WithCompression(CompressionNone))
	require.NoError(t, err)
	packed, err := Encode(st, WithCompression(CompressionZSTD))
	require.NoError(t, err)
	assert.Less(t, len(packed), len(raw)/2)
}

func TestDecode_Errors(t *testing.T) {
	data, err := Encode(sampleState())
	require.NoError(t, err)

	t.Run("Truncated", func(t *testing.T) {
		_, err := Decode(data[:5])
		assert.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("BadMagic", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[0] = 'X'
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("Version", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		binary.LittleEndian.PutUint16(bad[4:], Version+1)
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("Compression", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[6] = 9
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrUnknownCompression)
	})

	t.Run("Codec", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[8] = 'x' // "json" -> "xson"
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrUnknownCodec)
	})

	t.Run("Checksum", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[len(bad)-9] ^= 0xFF
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrChecksumMismatch)
	})
}

func TestParseCompression(t *testing.T) {
	c, err := ParseCompression("lz4")
	require.NoError(t, err)
	assert.Equal(t, CompressionLZ4, c)

	c, err = ParseCompression("")
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, c)

	_, err = ParseCompression("brotli")
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func TestWriteRead(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	st := sampleState()
	require.NoError(t, Write(ctx, store, "s.snap", st))

	got, err := Read(ctx, store, "s.snap")
	require.NoError(t, err)
	assert.Equal(t, st, got)

	_, err = Read(ctx, store, "missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestCheckpointer(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	calls := 0
	snap := func() *State {
		calls++
		return sampleState()
	}

	cp := NewCheckpointer(store, "cp.snap", time.Hour)
	assert.Equal(t, "cp.snap", cp.Name())

	written, err := cp.Checkpoint(ctx, snap)
	require.NoError(t, err)
	assert.True(t, written)

	// Within the interval: skipped without building a snapshot.
	written, err = cp.Checkpoint(ctx, snap)
	require.NoError(t, err)
	assert.False(t, written)
	assert.Equal(t, 1, calls)

	_, err = Read(ctx, store, "cp.snap")
	require.NoError(t, err)
}

func TestCheckpointer_NoInterval(t *testing.T) {
	cp := NewCheckpointer(blobstore.NewMemoryStore(), "cp.snap", 0)
	for i := 0; i < 3; i++ {
		written, err := cp.Checkpoint(context.Background(), sampleState)
		require.NoError(t, err)
		assert.True(t, written)
	}
}
