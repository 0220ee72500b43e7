package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the payload compression algorithm.
type Compression uint8

const (
	// CompressionNone stores the payload as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD (better ratio).
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", c)
	}
}

// ParseCompression maps "none", "lz4" or "zstd" to a Compression.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
	}
}

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

const blockHeaderSize = 8

// appendBlock appends [rawSize][storedSize][data] to dst. Data that does not
// shrink below 90% of its size is stored uncompressed with storedSize 0.
func appendBlock(dst, data []byte, c Compression) ([]byte, error) {
	var compressed []byte

	switch c {
	case CompressionNone:
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n] // n == 0 means incompressible
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		putZstdEncoder(enc)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}

	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(data)))
	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		dst = binary.LittleEndian.AppendUint32(dst, 0)
		return append(dst, data...), nil
	}
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(compressed)))
	return append(dst, compressed...), nil
}

// readBlock decodes a block written by appendBlock and returns the raw data
// and the number of bytes consumed.
func readBlock(data []byte, c Compression) ([]byte, int, error) {
	if len(data) < blockHeaderSize {
		return nil, 0, errors.New("snapshot: block too small for header")
	}

	rawSize := binary.LittleEndian.Uint32(data[0:])
	storedSize := binary.LittleEndian.Uint32(data[4:])

	if storedSize == 0 {
		end := blockHeaderSize + int(rawSize)
		if len(data) < end {
			return nil, 0, errors.New("snapshot: block data too small")
		}
		return data[blockHeaderSize:end], end, nil
	}

	end := blockHeaderSize + int(storedSize)
	if len(data) < end {
		return nil, 0, errors.New("snapshot: compressed block data too small")
	}
	compressed := data[blockHeaderSize:end]
	result := make([]byte, rawSize)

	switch c {
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(compressed, result)
		if err != nil {
			return nil, 0, fmt.Errorf("snapshot: lz4: %w", err)
		}
		if uint32(n) != rawSize {
			return nil, 0, errors.New("snapshot: decompressed size mismatch")
		}
		return result, end, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		decoded, err := dec.DecodeAll(compressed, result[:0])
		if err != nil {
			return nil, 0, fmt.Errorf("snapshot: zstd: %w", err)
		}
		if uint32(len(decoded)) != rawSize {
			return nil, 0, errors.New("snapshot: decompressed size mismatch")
		}
		return decoded, end, nil

	default:
		return nil, 0, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}
