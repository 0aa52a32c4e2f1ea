package stl

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"mesh-doctor/core/geom"
	"mesh-doctor/core/mesh"
)

const (
	headerSize = 84
	recordSize = 50
)

// ReadBinary parses a binary STL stream. It returns the facets actually
// present together with the count the header declared; the two differ
// when the file is truncated, which the mesh Store treats as a fault on
// load.
func ReadBinary(r io.Reader) ([]mesh.Facet, int, error) {
	var header struct {
		Comment [80]byte
		Count   uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, 0, fmt.Errorf("failed to read STL header: %w", err)
	}
	declared := int(header.Count)

	facets := make([]mesh.Facet, 0, declared)
	var buf [recordSize]byte
	for i := 0; i < declared; i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				// Short file: hand back what we got plus the declared
				// count so the Store can flag the inconsistency.
				return facets, declared, nil
			}
			return facets, declared, fmt.Errorf("failed to read facet %d: %w", i, err)
		}
		facets = append(facets, decodeRecord(buf))
	}
	return facets, declared, nil
}

// WriteBinary serializes facets as binary STL with the given header
// comment (truncated to 80 bytes).
func WriteBinary(w io.Writer, facets []mesh.Facet, comment string) error {
	var header [headerSize]byte
	copy(header[:80], comment)
	binary.LittleEndian.PutUint32(header[80:], uint32(len(facets)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write STL header: %w", err)
	}

	var buf [recordSize]byte
	for i := range facets {
		encodeRecord(&buf, facets[i])
		if _, err := w.Write(buf[:]); err != nil {
			return fmt.Errorf("failed to write facet %d: %w", i, err)
		}
	}
	return nil
}

func getVector(b []byte) geom.Vector3 {
	return geom.Vector3{
		X: math.Float32frombits(binary.LittleEndian.Uint32(b)),
		Y: math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		Z: math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
	}
}

func putVector(b []byte, v geom.Vector3) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(v.Z))
}

func decodeRecord(buf [recordSize]byte) mesh.Facet {
	var f mesh.Facet
	f.Normal = getVector(buf[0:])
	for v := 0; v < 3; v++ {
		f.Vertices[v] = getVector(buf[12+12*v:])
	}
	return f
}

func encodeRecord(buf *[recordSize]byte, f mesh.Facet) {
	putVector(buf[0:], f.Normal)
	for v := 0; v < 3; v++ {
		putVector(buf[12+12*v:], f.Vertices[v])
	}
	// Attribute byte count stays zero.
	buf[48], buf[49] = 0, 0
}
