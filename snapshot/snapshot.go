package snapshot

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/hupe1980/pagecluster/blobstore"
	"github.com/hupe1980/pagecluster/codec"
)

// Version is the format version written by Encode.
const Version uint16 = 1

var magic = [4]byte{'P', 'G', 'C', 'S'}

var (
	// ErrBadMagic is returned for data that is not a snapshot.
	ErrBadMagic = errors.New("snapshot: bad magic")
	// ErrUnsupportedVersion is returned for snapshots written by a newer format.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
	// ErrChecksumMismatch is returned when the trailer does not match the content.
	ErrChecksumMismatch = errors.New("snapshot: checksum mismatch")
	// ErrUnknownCodec is returned when the header names an unregistered codec.
	ErrUnknownCodec = errors.New("snapshot: unknown codec")
	// ErrUnknownCompression is returned for an unsupported compression id.
	ErrUnknownCompression = errors.New("snapshot: unknown compression")
	// ErrTruncated is returned when the data ends before the header or trailer.
	ErrTruncated = errors.New("snapshot: truncated")
)

type options struct {
	codec       codec.Codec
	compression Compression
}

// Option configures Encode and Write.
type Option func(*options)

// WithCodec selects the payload codec. If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression selects the payload compression. Default: ZSTD.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// Encode serializes st.
func Encode(st *State, optFns ...Option) ([]byte, error) {
	opts := options{codec: codec.Default, compression: CompressionZSTD}
	for _, fn := range optFns {
		fn(&opts)
	}

	name := opts.codec.Name()
	if len(name) > 255 {
		return nil, fmt.Errorf("%w: name too long", ErrUnknownCodec)
	}

	payload, err := opts.codec.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("snapshot: marshal: %w", err)
	}

	buf := make([]byte, 0, 64+len(payload))
	buf = append(buf, magic[:]...)
	buf = binary.LittleEndian.AppendUint16(buf, Version)
	buf = append(buf, byte(opts.compression), byte(len(name)))
	buf = append(buf, name...)
	buf = append(buf, st.SessionID[:]...)

	buf, err = appendBlock(buf, payload, opts.compression)
	if err != nil {
		return nil, err
	}

	return binary.LittleEndian.AppendUint64(buf, xxhash.Sum64(buf)), nil
}

type header struct {
	version     uint16
	compression Compression
	codec       codec.Codec
	sessionID   uuid.UUID
	size        int
}

func readHeader(data []byte) (header, error) {
	var h header

	if len(data) < 8 {
		return h, ErrTruncated
	}
	if [4]byte(data[:4]) != magic {
		return h, ErrBadMagic
	}

	h.version = binary.LittleEndian.Uint16(data[4:])
	if h.version == 0 || h.version > Version {
		return h, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.version)
	}

	h.compression = Compression(data[6])
	if h.compression > CompressionZSTD {
		return h, fmt.Errorf("%w: %d", ErrUnknownCompression, data[6])
	}

	n := int(data[7])
	h.size = 8 + n + len(h.sessionID)
	if len(data) < h.size {
		return h, ErrTruncated
	}

	name := string(data[8 : 8+n])
	c, ok := codec.ByName(name)
	if !ok {
		return h, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	h.codec = c
	copy(h.sessionID[:], data[8+n:h.size])

	return h, nil
}

// Decode verifies and deserializes a snapshot produced by Encode.
func Decode(data []byte) (*State, error) {
	if len(data) < 8 {
		return nil, ErrTruncated
	}

	body, trailer := data[:len(data)-8], data[len(data)-8:]
	h, err := readHeader(body)
	if err != nil {
		return nil, err
	}
	if xxhash.Sum64(body) != binary.LittleEndian.Uint64(trailer) {
		return nil, ErrChecksumMismatch
	}

	payload, _, err := readBlock(body[h.size:], h.compression)
	if err != nil {
		return nil, err
	}

	st := &State{}
	if err := h.codec.Unmarshal(payload, st); err != nil {
		return nil, fmt.Errorf("snapshot: unmarshal: %w", err)
	}
	return st, nil
}

// SessionID returns the session id stored in the header without verifying
// the checksum or decoding the payload.
func SessionID(data []byte) (uuid.UUID, error) {
	h, err := readHeader(data)
	if err != nil {
		return uuid.Nil, err
	}
	return h.sessionID, nil
}

// Write encodes st and stores it under name.
func Write(ctx context.Context, store blobstore.Store, name string, st *State, optFns ...Option) error {
	data, err := Encode(st, optFns...)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("snapshot: put %s: %w", name, err)
	}
	return nil
}

// Read loads and decodes the snapshot stored under name.
func Read(ctx context.Context, store blobstore.Store, name string) (*State, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("snapshot: get %s: %w", name, err)
	}
	return Decode(data)
}
