package stl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"mesh-doctor/core/geom"
	"mesh-doctor/core/mesh"
)

// ReadASCII parses an ASCII STL stream. ASCII files carry no declared
// facet count, so the returned count always matches the data.
func ReadASCII(r io.Reader) ([]mesh.Facet, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var (
		facets  []mesh.Facet
		current mesh.Facet
		vertex  int
		inFacet bool
		line    int
	)
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "solid", "endsolid", "outer", "endloop":
			// Structure keywords carry no geometry.
		case "facet":
			if len(fields) != 5 || fields[1] != "normal" {
				return nil, fmt.Errorf("line %d: malformed facet statement", line)
			}
			n, err := parseVector(fields[2:5])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			current = mesh.Facet{Normal: n}
			vertex = 0
			inFacet = true
		case "vertex":
			if !inFacet || vertex >= 3 || len(fields) != 4 {
				return nil, fmt.Errorf("line %d: unexpected vertex", line)
			}
			v, err := parseVector(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			current.Vertices[vertex] = v
			vertex++
		case "endfacet":
			if !inFacet || vertex != 3 {
				return nil, fmt.Errorf("line %d: facet closed with %d vertices", line, vertex)
			}
			facets = append(facets, current)
			inFacet = false
		default:
			return nil, fmt.Errorf("line %d: unexpected token %q", line, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ASCII STL: %w", err)
	}
	if inFacet {
		return nil, fmt.Errorf("unterminated facet at end of input")
	}
	return facets, nil
}

func parseVector(fields []string) (geom.Vector3, error) {
	var v geom.Vector3
	if _, err := fmt.Sscanf(strings.Join(fields, " "), "%f %f %f", &v.X, &v.Y, &v.Z); err != nil {
		return v, fmt.Errorf("malformed coordinate triple: %w", err)
	}
	return v, nil
}

// WriteASCII serializes facets as ASCII STL under the given solid name.
func WriteASCII(w io.Writer, facets []mesh.Facet, name string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "solid %s\n", name)
	for i := range facets {
		f := facets[i]
		fmt.Fprintf(bw, "  facet normal %e %e %e\n", f.Normal.X, f.Normal.Y, f.Normal.Z)
		fmt.Fprintf(bw, "    outer loop\n")
		for _, v := range f.Vertices {
			fmt.Fprintf(bw, "      vertex %e %e %e\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write ASCII STL: %w", err)
	}
	return nil
}
