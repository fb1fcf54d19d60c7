// Package geometry builds the static meshes of the globe scene.
package geometry

import (
	gomath "math"

	"github.com/Faultbox/wireglobe/pkg/math"
)

// Wireframe is a sphere mesh reduced to what the globe draws: its unique
// vertices and the edges between them.
type Wireframe struct {
	Vertices []math.Vec3
	Edges    [][2]uint32
}

// Icosahedron corners and faces (counter-clockwise from outside).
var (
	icoVertices = func() [12][3]float64 {
		t := (1 + gomath.Sqrt(5)) / 2
		return [12][3]float64{
			{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
			{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
			{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
		}
	}()

	icoFaces = [20][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
)

// Icosphere builds a geodesic sphere of the given radius. Each icosahedron
// edge is split into detail+1 segments, so the mesh has 10(detail+1)²+2
// vertices and 30(detail+1)² edges.
func Icosphere(radius float32, detail int) *Wireframe {
	if detail < 0 {
		detail = 0
	}
	n := detail + 1

	b := &builder{
		radius: float64(radius),
		index:  make(map[[3]int64]uint32),
		edges:  make(map[[2]uint32]struct{}),
	}
	w := &Wireframe{}

	for _, f := range icoFaces {
		a, bv, c := icoVertices[f[0]], icoVertices[f[1]], icoVertices[f[2]]

		// Lattice point (i, j) sits i steps toward b and j steps toward c.
		lattice := func(i, j int) uint32 {
			fi, fj := float64(i)/float64(n), float64(j)/float64(n)
			var p [3]float64
			for k := range p {
				p[k] = a[k] + (bv[k]-a[k])*fi + (c[k]-a[k])*fj
			}
			return b.vertex(w, p)
		}

		for i := 0; i < n; i++ {
			for j := 0; i+j < n; j++ {
				v0 := lattice(i, j)
				v1 := lattice(i+1, j)
				v2 := lattice(i, j+1)
				b.edge(w, v0, v1)
				b.edge(w, v1, v2)
				b.edge(w, v2, v0)
			}
		}
	}

	return w
}

// builder deduplicates vertices shared by neighboring faces and edges shared
// by neighboring triangles.
type builder struct {
	radius float64
	index  map[[3]int64]uint32
	edges  map[[2]uint32]struct{}
}

// vertex projects p onto the sphere and returns its index, reusing an
// existing vertex at the same position (to 1e-5).
func (b *builder) vertex(w *Wireframe, p [3]float64) uint32 {
	l := gomath.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
	for k := range p {
		p[k] = p[k] / l * b.radius
	}

	key := [3]int64{
		int64(gomath.Round(p[0] * 1e5)),
		int64(gomath.Round(p[1] * 1e5)),
		int64(gomath.Round(p[2] * 1e5)),
	}
	if idx, ok := b.index[key]; ok {
		return idx
	}

	idx := uint32(len(w.Vertices))
	b.index[key] = idx
	w.Vertices = append(w.Vertices, math.Vec3{X: float32(p[0]), Y: float32(p[1]), Z: float32(p[2])})
	return idx
}

func (b *builder) edge(w *Wireframe, i, j uint32) {
	if i > j {
		i, j = j, i
	}
	key := [2]uint32{i, j}
	if _, ok := b.edges[key]; ok {
		return
	}
	b.edges[key] = struct{}{}
	w.Edges = append(w.Edges, key)
}

// LinePositions flattens the edges into xyz pairs for GL_LINES.
func (w *Wireframe) LinePositions() []float32 {
	out := make([]float32, 0, len(w.Edges)*6)
	for _, e := range w.Edges {
		a, b := w.Vertices[e[0]], w.Vertices[e[1]]
		out = append(out, a.X, a.Y, a.Z, b.X, b.Y, b.Z)
	}
	return out
}

// PointPositions flattens the vertices into xyz triples for GL_POINTS.
func (w *Wireframe) PointPositions() []float32 {
	return Flatten(w.Vertices)
}

// Flatten packs vectors into a tightly packed xyz float slice.
func Flatten(vs []math.Vec3) []float32 {
	out := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		out = append(out, v.X, v.Y, v.Z)
	}
	return out
}
