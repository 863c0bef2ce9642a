package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/softrast/softrast/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file as a triangle mesh.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// ParseOBJ reads OBJ geometry from r. Only `v` and `f` statements are
// used; texture coordinates, normals, groups, and materials are skipped.
// Face indices are 1-based in the format and normalized to 0-based here.
// Polygons with more than three vertices are fan-triangulated, which
// keeps the source face order for painter-style drawing.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	mesh := NewMesh("")
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var coords [3]float64
			for i := 0; i < 3; i++ {
				c, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: vertex coordinate %q: %w", lineNo, fields[i+1], err)
				}
				coords[i] = c
			}
			mesh.Vertices = append(mesh.Vertices, math3d.V3(coords[0], coords[1], coords[2]))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			indices := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := parseFaceIndex(ref, len(mesh.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				indices = append(indices, idx)
			}
			// Fan triangulation for quads and larger polygons.
			for i := 1; i+1 < len(indices); i++ {
				mesh.Faces = append(mesh.Faces, Face{
					A: indices[0],
					B: indices[i],
					C: indices[i+1],
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	mesh.CalculateBounds()
	return mesh, nil
}

// parseFaceIndex extracts the vertex index from a face vertex reference
// (`v`, `v/vt`, `v//vn`, or `v/vt/vn`), handling OBJ's 1-based and
// negative (relative) index conventions.
func parseFaceIndex(ref string, vertexCount int) (int, error) {
	vertPart, _, _ := strings.Cut(ref, "/")
	idx, err := strconv.Atoi(vertPart)
	if err != nil {
		return 0, fmt.Errorf("face vertex reference %q: %w", ref, err)
	}
	if idx < 0 {
		// Negative indices count back from the current end of the list.
		return vertexCount + idx, nil
	}
	return idx - 1, nil
}
