// Package sphere generates the UV-sphere mesh the globe is drawn with.
//
// The mesh is a flat, non-indexed triangle list. Each vertex carries a
// homogeneous position, a normal, a tangent and a texture coordinate, laid out
// back to back so the whole slice can be handed to glBufferData as is.
package sphere

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/midgard-globe/pkg/math"
)

// Interleaved vertex layout shared with the globe shaders.
const (
	FloatsPerVertex = 14
	Stride          = FloatsPerVertex * 4 // 56 bytes

	PositionOffset = 0
	NormalOffset   = 16
	TangentOffset  = 32
	TexCoordOffset = 48
)

// tangentEpsilon is the length below which a tangent counts as degenerate.
const tangentEpsilon = 1e-6

// ErrInvalidSubdivisions is returned for subdivision counts below one.
var ErrInvalidSubdivisions = errors.New("subdivisions must be at least 1")

// up is the reference vector tangents are derived from.
var up = math.Direction(0, 1, 0)

// FallbackTangent is used where up is parallel to the normal (the poles).
var FallbackTangent = math.Direction(1, 0, 0)

// Vertex is one corner of a sphere triangle.
type Vertex struct {
	Position math.Vec4
	Normal   math.Vec4
	Tangent  math.Vec4
	TexCoord math.Vec2
}

// Mesh is an immutable sphere triangle list.
type Mesh struct {
	Subdivisions int
	LatBands     int
	LonBands     int
	Vertices     []Vertex
}

// Count returns the number of vertices to draw.
func (m *Mesh) Count() int32 {
	return int32(len(m.Vertices))
}

// Floats returns the interleaved vertex stream.
func (m *Mesh) Floats() []float32 {
	out := make([]float32, 0, len(m.Vertices)*FloatsPerVertex)
	for _, v := range m.Vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Normal[:]...)
		out = append(out, v.Tangent[:]...)
		out = append(out, v.TexCoord.X, v.TexCoord.Y)
	}
	return out
}

// BandCounts returns the latitude and longitude band counts for n subdivisions.
// With step = 2π/n these are ceil(π/step) and floor(2π/step), computed on
// integers so rounding in the angle never adds or drops a band.
func BandCounts(n int) (lat, lon int) {
	return (n + 1) / 2, n
}

// Generate builds a sphere of radius 1 centered at the origin with n bands per
// full revolution. Band edges never pass the south pole.
func Generate(n int) (*Mesh, error) {
	if n < 1 {
		return nil, fmt.Errorf("generate sphere with %d subdivisions: %w", n, ErrInvalidSubdivisions)
	}

	latBands, lonBands := BandCounts(n)
	step := 2 * gomath.Pi / float64(n)

	m := &Mesh{
		Subdivisions: n,
		LatBands:     latBands,
		LonBands:     lonBands,
		Vertices:     make([]Vertex, 0, latBands*lonBands*6),
	}

	for i := 0; i < latBands; i++ {
		lat := float64(i) * step
		// Odd n leaves the last band short of a full step; stop it at the pole.
		lat2 := min(lat+step, gomath.Pi)
		v1 := float32(1 - lat/gomath.Pi)
		v2 := float32(1 - lat2/gomath.Pi)

		for j := 0; j < lonBands; j++ {
			lon := float64(j) * step
			lon2 := lon + step
			u1 := float32(lon / (2 * gomath.Pi))
			u2 := float32(lon2 / (2 * gomath.Pi))

			// One tangent per band edge, shared by both triangles.
			t1 := tangent(surfacePoint(lat, lon))
			t2 := tangent(surfacePoint(lat2, lon2))

			m.Vertices = append(m.Vertices,
				vertex(lat, lon, t1, u1, v1),
				vertex(lat, lon2, t1, u2, v1),
				vertex(lat2, lon2, t2, u2, v2),

				vertex(lat2, lon2, t2, u2, v2),
				vertex(lat2, lon, t2, u1, v2),
				vertex(lat, lon, t1, u1, v1),
			)
		}
	}

	return m, nil
}

// surfacePoint returns the unit direction for a latitude (from the +Y pole)
// and longitude (from +Z towards +X).
func surfacePoint(lat, lon float64) math.Vec4 {
	sinLat := gomath.Sin(lat)
	return math.Direction(
		float32(sinLat*gomath.Sin(lon)),
		float32(gomath.Cos(lat)),
		float32(gomath.Cos(lon)*sinLat),
	)
}

func tangent(normal math.Vec4) math.Vec4 {
	t := up.Cross(normal)
	if t.Length3() < tangentEpsilon {
		return FallbackTangent
	}
	return t
}

func vertex(lat, lon float64, t math.Vec4, u, v float32) Vertex {
	n := surfacePoint(lat, lon)
	p := n
	p[3] = 1
	return Vertex{
		Position: p,
		Normal:   n,
		Tangent:  t,
		TexCoord: math.Vec2{X: u, Y: v},
	}
}
