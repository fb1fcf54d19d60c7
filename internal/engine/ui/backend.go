// Package ui hosts the globe inside an ImGui window.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Backend wraps the ImGui SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
}

// NewBackend creates the ImGui window and its OpenGL context.
func NewBackend(title string, width, height int) (*Backend, error) {
	b := &Backend{}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(func() {
		imgui.CurrentIO().SetIniFilename("")
	})

	b.backend.SetBgColor(imgui.NewVec4(0.04, 0.055, 0.15, 1.0))
	b.backend.CreateWindow(title, width, height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	return b, nil
}

// Run starts the main render loop.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// Close asks the backend to shut the window; Run returns at the next frame.
func (b *Backend) Close() {
	b.backend.SetShouldClose(true)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// Viewport returns the main viewport work area.
func Viewport() (pos, size imgui.Vec2) {
	viewport := imgui.MainViewport()
	return viewport.WorkPos(), viewport.WorkSize()
}

// Texture draws a GL texture rendered bottom-up, flipping V.
func Texture(texID uint32, size imgui.Vec2) {
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(texID))
	imgui.ImageWithBgV(
		*texRef,
		size,
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0, 0, 0, 0),
		imgui.NewVec4(1, 1, 1, 1),
	)
}
