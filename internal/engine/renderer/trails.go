package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/wireglobe/internal/globe"
)

// trailVertexSize is xyz + rgba.
const trailVertexSize = 7

// trailBuffer streams the marker trails as line strips with per-vertex alpha.
type trailBuffer struct {
	vao uint32
	vbo uint32

	capacity int // vertices the buffer can hold
	data     []float32
	first    []int32
	counts   []int32
}

func newTrailBuffer() *trailBuffer {
	t := &trailBuffer{}

	gl.GenVertexArrays(1, &t.vao)
	gl.GenBuffers(1, &t.vbo)

	gl.BindVertexArray(t.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)

	stride := int32(trailVertexSize * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return t
}

// update uploads the trails into the vertex buffer.
func (t *trailBuffer) update(trails [][]globe.TrailVertex) {
	vertices := t.pack(trails)
	if vertices == 0 {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)
	if n := int(vertices); n > t.capacity {
		t.capacity = n * 2
		gl.BufferData(gl.ARRAY_BUFFER, t.capacity*trailVertexSize*4, nil, gl.STREAM_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(t.data)*4, unsafe.Pointer(&t.data[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// pack lays the trails out as consecutive white strips faded by age and
// returns the vertex count. Trails too short to draw are skipped.
func (t *trailBuffer) pack(trails [][]globe.TrailVertex) int32 {
	t.data = t.data[:0]
	t.first = t.first[:0]
	t.counts = t.counts[:0]

	vertices := int32(0)
	for _, trail := range trails {
		if len(trail) < 2 {
			continue
		}
		t.first = append(t.first, vertices)
		t.counts = append(t.counts, int32(len(trail)))
		vertices += int32(len(trail))

		for _, v := range trail {
			t.data = append(t.data,
				v.Position.X, v.Position.Y, v.Position.Z,
				1, 1, 1, v.Alpha,
			)
		}
	}
	return vertices
}

func (t *trailBuffer) draw() {
	if len(t.first) == 0 {
		return
	}
	gl.BindVertexArray(t.vao)
	gl.MultiDrawArrays(gl.LINE_STRIP, &t.first[0], &t.counts[0], int32(len(t.first)))
	gl.BindVertexArray(0)
}

func (t *trailBuffer) destroy() {
	if t.vao != 0 {
		gl.DeleteVertexArrays(1, &t.vao)
		t.vao = 0
	}
	if t.vbo != 0 {
		gl.DeleteBuffers(1, &t.vbo)
		t.vbo = 0
	}
}
