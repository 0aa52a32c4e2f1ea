package stl

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"mesh-doctor/core/mesh"
)

// Read parses an STL stream, auto-detecting binary versus ASCII. It
// returns the facets plus the facet count the source declared; ASCII
// sources declare nothing, reported as -1.
func Read(r io.Reader) ([]mesh.Facet, int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read STL input: %w", err)
	}
	if isASCII(data) {
		facets, err := ReadASCII(bytes.NewReader(data))
		return facets, -1, err
	}
	return ReadBinary(bytes.NewReader(data))
}

// ReadFile reads an STL file from disk.
func ReadFile(path string) ([]mesh.Facet, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// WriteFile writes facets to disk, ASCII when ascii is set and binary
// otherwise. name becomes the solid name or header comment.
func WriteFile(path string, facets []mesh.Facet, name string, ascii bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if ascii {
		err = WriteASCII(f, facets, name)
	} else {
		err = WriteBinary(f, facets, name)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

// isASCII decides the format of raw STL bytes. A leading "solid" alone
// is not enough because binary exporters write it into the comment
// field, so the record arithmetic is checked too: a binary file is
// exactly header plus count*50 bytes.
func isASCII(data []byte) bool {
	if !bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return false
	}
	if len(data) >= headerSize {
		count := int(uint32(data[80]) | uint32(data[81])<<8 | uint32(data[82])<<16 | uint32(data[83])<<24)
		if len(data) == headerSize+count*recordSize {
			return false
		}
	}
	return true
}
