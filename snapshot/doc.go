// Package snapshot persists clustering sessions.
//
// # Format
//
// A snapshot is a single self-describing blob (little endian):
//
//	magic        [4]byte  "PGCS"
//	version      uint16
//	compression  uint8
//	codecLen     uint8
//	codec        [codecLen]byte
//	sessionID    [16]byte
//	rawSize      uint32
//	storedSize   uint32   0 = payload stored uncompressed
//	payload      [storedSize or rawSize]byte
//	checksum     uint64   xxhash64 of everything before it
//
// The payload is the State encoded with the named codec. Readers reject
// unknown magic, newer versions, unregistered codecs or compressions and
// checksum mismatches before decoding anything.
package snapshot
