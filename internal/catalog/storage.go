package catalog

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
)

// formatVersion is bumped on any backward-incompatible schema change.
const formatVersion uint32 = 1

// Write serializes every record to w as: a uint32 format version, then a
// uint32 length prefix, then that many deflate-compressed gob-encoded
// bytes. gob is the standard library's own typed-binary codec and handles
// this closed tagged union (Record's four optional variant pointers)
// without any third-party scheme — no example-repo serialization library
// models a closed Go sum type more directly than gob already does.
func Write(w io.Writer, records []*Record) error {
	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(records); err != nil {
		return fmt.Errorf("catalog: encode: %w", err)
	}

	var compressed bytes.Buffer
	fw, err := flate.NewWriter(&compressed, flate.BestCompression)
	if err != nil {
		return fmt.Errorf("catalog: compress: %w", err)
	}
	if _, err := fw.Write(payload.Bytes()); err != nil {
		return fmt.Errorf("catalog: compress: %w", err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("catalog: compress: %w", err)
	}

	if err := binary.Write(w, binary.BigEndian, formatVersion); err != nil {
		return fmt.Errorf("catalog: write version: %w", err)
	}
	if err := binary.Write(w, binary.BigEndian, uint32(compressed.Len())); err != nil {
		return fmt.Errorf("catalog: write length: %w", err)
	}
	_, err = w.Write(compressed.Bytes())
	return err
}

// Read is Write's inverse: it decodes a record set and builds a Catalog,
// running the same validation New does.
func Read(r io.Reader) (*Catalog, error) {
	var version, length uint32
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return nil, fmt.Errorf("catalog: read version: %w", err)
	}
	if version != formatVersion {
		return nil, fmt.Errorf("catalog: unsupported format version %d", version)
	}
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return nil, fmt.Errorf("catalog: read length: %w", err)
	}

	compressed := make([]byte, length)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, fmt.Errorf("catalog: read payload: %w", err)
	}

	fr := flate.NewReader(bytes.NewReader(compressed))
	defer fr.Close()

	var records []*Record
	if err := gob.NewDecoder(fr).Decode(&records); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	return New(records)
}
