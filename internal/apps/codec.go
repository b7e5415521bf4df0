package apps

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/golang/snappy"
)

const (
	indexMagic   = "TUICHER_APPS"
	indexVersion = 1
)

var (
	// ErrIndexSchema means the cache file was written by another format version.
	ErrIndexSchema = errors.New("app index schema mismatch")
	// ErrIndexCorrupt means the cache file could not be decoded.
	ErrIndexCorrupt = errors.New("app index corrupt")
)

type indexFile struct {
	Entries []AppEntry
}

// EncodeIndex serializes entries as header + snappy(gob).
func EncodeIndex(entries []AppEntry) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(indexFile{Entries: entries}); err != nil {
		return nil, fmt.Errorf("failed to encode app index: %w", err)
	}

	out := make([]byte, 0, len(indexMagic)+1+snappy.MaxEncodedLen(buf.Len()))
	out = append(out, indexMagic...)
	out = append(out, indexVersion)
	out = append(out, snappy.Encode(nil, buf.Bytes())...)
	return out, nil
}

// DecodeIndex is the inverse of EncodeIndex. It never returns a partial index.
func DecodeIndex(data []byte) ([]AppEntry, error) {
	headerLen := len(indexMagic) + 1
	if len(data) < headerLen || string(data[:len(indexMagic)]) != indexMagic {
		return nil, fmt.Errorf("%w: bad header", ErrIndexSchema)
	}
	if v := data[len(indexMagic)]; v != indexVersion {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrIndexSchema, v, indexVersion)
	}

	raw, err := snappy.Decode(nil, data[headerLen:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexCorrupt, err)
	}

	var file indexFile
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexCorrupt, err)
	}

	entries := file.Entries
	if entries == nil {
		entries = []AppEntry{}
	}
	for i := range entries {
		if entries[i].Keywords == nil {
			entries[i].Keywords = []string{}
		}
	}
	return entries, nil
}
