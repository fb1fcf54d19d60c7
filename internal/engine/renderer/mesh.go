package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// mesh is a static position-only vertex array.
type mesh struct {
	vao   uint32
	vbo   uint32
	count int32
	mode  uint32
}

// newMesh uploads tightly packed xyz positions.
func newMesh(positions []float32, mode uint32) *mesh {
	m := &mesh{
		count: int32(len(positions) / 3),
		mode:  mode,
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(positions) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, unsafe.Pointer(&positions[0]), gl.STATIC_DRAW)
	}

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	return m
}

func (m *mesh) draw() {
	if m.count == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(m.mode, 0, m.count)
	gl.BindVertexArray(0)
}

func (m *mesh) destroy() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
}
