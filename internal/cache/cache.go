// Package cache persists a xref.Registry snapshot between site builds, so a
// rebuild that touches only a few files can skip the pass-1 scan over the
// whole archive (spec §4.8, §7 "incremental rebuilds").
//
// The on-disk format is a small fixed header (magic + version) followed by
// a Zstd-compressed payload (compress.ZstdCompressor) of the registry's
// four maps, framed the way every other format in this module is framed:
// little-endian integers via endian.EndianEngine, length-prefixed byte
// strings, read back with sabstream.Stream.
package cache

import (
	"fmt"
	"os"
	"strconv"

	"github.com/arloliu/sabdoc/compress"
	"github.com/arloliu/sabdoc/endian"
	"github.com/arloliu/sabdoc/errs"
	"github.com/arloliu/sabdoc/internal/pool"
	"github.com/arloliu/sabdoc/sab"
	"github.com/arloliu/sabdoc/sabstream"
	"github.com/arloliu/sabdoc/xref"
)

// magic identifies a registry cache file before the version byte is even
// consulted.
const magic = "SBCC"

// Version is the current on-disk cache format version. Load rejects a file
// whose version byte does not match with errs.ErrCacheVersion, so a format
// change never gets silently misread.
const Version = 1

var engine = endian.GetLittleEndianEngine()

// Save writes reg to path as a versioned, Zstd-compressed snapshot.
func Save(path string, reg *xref.Registry) error {
	payload := encodeRegistry(reg)

	codec := compress.NewZstdCompressor()
	compressed, err := codec.Compress(payload.Bytes())
	if err != nil {
		return err
	}

	out := make([]byte, 0, len(magic)+1+len(compressed))
	out = append(out, magic...)
	out = append(out, byte(Version))
	out = append(out, compressed...)

	return os.WriteFile(path, out, 0o644)
}

// Load reads a cache file written by Save. errs.ErrInvalidCacheFile is
// returned for a file too short to carry the header or with a bad magic;
// errs.ErrCacheVersion for a version byte this build does not understand.
func Load(path string) (*xref.Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if len(raw) < len(magic)+1 || string(raw[:len(magic)]) != magic {
		return nil, errs.ErrInvalidCacheFile
	}
	if raw[len(magic)] != byte(Version) {
		return nil, errs.ErrCacheVersion
	}

	codec := compress.NewZstdCompressor()
	payload, err := codec.Decompress(raw[len(magic)+1:])
	if err != nil {
		return nil, errs.ErrInvalidCacheFile
	}

	return decodeRegistry(payload)
}

func encodeRegistry(reg *xref.Registry) *pool.ByteBuffer {
	buf := pool.NewByteBuffer(pool.BlobBufferDefaultSize)

	appendU32(buf, uint32(len(reg.ByID)))
	for key, target := range reg.ByID {
		appendString(buf, key)
		appendTarget(buf, target)
	}

	appendU32(buf, uint32(len(reg.ByIndex)))
	for key, target := range reg.ByIndex {
		appendU64(buf, uint64(key))
		appendTarget(buf, target)
	}

	appendU32(buf, uint32(len(reg.ByName)))
	for key, target := range reg.ByName {
		appendString(buf, key)
		appendTarget(buf, target)
	}

	appendU32(buf, uint32(len(reg.Callees)))
	for key, callees := range reg.Callees {
		appendString(buf, key)
		appendU32(buf, uint32(len(callees)))
		for _, c := range callees {
			appendString(buf, topicString(c.Topic))
			appendString(buf, c.Type)
			appendString(buf, c.CalledHow)
			appendString(buf, uniqueIDString(c.CalleeUID))
		}
	}

	return buf
}

func decodeRegistry(data []byte) (*xref.Registry, error) {
	s := sabstream.New(data)
	reg := xref.New()

	idCount, err := s.ReadU32LE()
	if err != nil {
		return nil, errs.ErrInvalidCacheFile
	}
	for i := uint32(0); i < idCount; i++ {
		key, err := readString(s)
		if err != nil {
			return nil, errs.ErrInvalidCacheFile
		}
		target, err := readTarget(s)
		if err != nil {
			return nil, errs.ErrInvalidCacheFile
		}
		reg.ByID[key] = target
	}

	indexCount, err := s.ReadU32LE()
	if err != nil {
		return nil, errs.ErrInvalidCacheFile
	}
	for i := uint32(0); i < indexCount; i++ {
		key, err := s.ReadU64LE()
		if err != nil {
			return nil, errs.ErrInvalidCacheFile
		}
		target, err := readTarget(s)
		if err != nil {
			return nil, errs.ErrInvalidCacheFile
		}
		reg.ByIndex[int64(key)] = target
	}

	nameCount, err := s.ReadU32LE()
	if err != nil {
		return nil, errs.ErrInvalidCacheFile
	}
	for i := uint32(0); i < nameCount; i++ {
		key, err := readString(s)
		if err != nil {
			return nil, errs.ErrInvalidCacheFile
		}
		target, err := readTarget(s)
		if err != nil {
			return nil, errs.ErrInvalidCacheFile
		}
		reg.ByName[key] = target
	}

	calleeKeyCount, err := s.ReadU32LE()
	if err != nil {
		return nil, errs.ErrInvalidCacheFile
	}
	for i := uint32(0); i < calleeKeyCount; i++ {
		key, err := readString(s)
		if err != nil {
			return nil, errs.ErrInvalidCacheFile
		}
		calleeCount, err := s.ReadU32LE()
		if err != nil {
			return nil, errs.ErrInvalidCacheFile
		}
		callees := make([]sab.Callee, 0, calleeCount)
		for j := uint32(0); j < calleeCount; j++ {
			topic, err := readString(s)
			if err != nil {
				return nil, errs.ErrInvalidCacheFile
			}
			typ, err := readString(s)
			if err != nil {
				return nil, errs.ErrInvalidCacheFile
			}
			calledHow, err := readString(s)
			if err != nil {
				return nil, errs.ErrInvalidCacheFile
			}
			calleeUID, err := readString(s)
			if err != nil {
				return nil, errs.ErrInvalidCacheFile
			}
			callees = append(callees, sab.Callee{Topic: topic, Type: typ, CalledHow: calledHow, CalleeUID: calleeUID})
		}
		reg.Callees[key] = callees
	}

	return reg, nil
}

func appendU32(buf *pool.ByteBuffer, v uint32) {
	buf.MustWrite(engine.AppendUint32(nil, v))
}

func appendU64(buf *pool.ByteBuffer, v uint64) {
	buf.MustWrite(engine.AppendUint64(nil, v))
}

func appendString(buf *pool.ByteBuffer, s string) {
	appendU32(buf, uint32(len(s)))
	buf.MustWrite([]byte(s))
}

func appendTarget(buf *pool.ByteBuffer, target xref.Target) {
	appendString(buf, target.RelPath)
	appendString(buf, target.Topic)
	appendString(buf, target.Type)
}

func readString(s *sabstream.Stream) (string, error) {
	n, err := s.ReadU32LE()
	if err != nil {
		return "", err
	}
	b, err := s.ReadBytes(int(n))
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// topicString and uniqueIDString mirror xref's own (unexported) any->string
// canonicalization, so a callee's Topic/CalleeUID round-trips through the
// cache to the same string a fresh pass-1 scan would have produced.
func topicString(topic any) string {
	switch v := topic.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		if topic == nil {
			return ""
		}

		return fmt.Sprintf("%v", topic)
	}
}

func uniqueIDString(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case int64:
		return strconv.FormatInt(n, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func readTarget(s *sabstream.Stream) (xref.Target, error) {
	relPath, err := readString(s)
	if err != nil {
		return xref.Target{}, err
	}
	topic, err := readString(s)
	if err != nil {
		return xref.Target{}, err
	}
	typ, err := readString(s)
	if err != nil {
		return xref.Target{}, err
	}

	return xref.Target{RelPath: relPath, Topic: topic, Type: typ}, nil
}
