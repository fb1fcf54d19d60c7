package app

import (
	"strings"
	"testing"

	"github.com/Faultbox/wireglobe/internal/config"
	"github.com/Faultbox/wireglobe/internal/globe"
)

func TestTitle(t *testing.T) {
	got := Title("Wireframe Globe", globe.Indicators{Zoom: "9.0", Velocity: "3.92"})
	want := "Wireframe Globe | zoom 9.0 | velocity 3.92%"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRendererConfig(t *testing.T) {
	cfg := config.Default()

	rc, err := RendererConfig(cfg, 1920, 1080)
	if err != nil {
		t.Fatalf("RendererConfig: %v", err)
	}
	if rc.Width != 1920 || rc.Height != 1080 {
		t.Errorf("unexpected size %dx%d", rc.Width, rc.Height)
	}
	if rc.EdgeColor[0] != 1 {
		t.Errorf("expected full red in edge color, got %v", rc.EdgeColor)
	}
	if rc.Radius != 1.2 || rc.Detail != 3 {
		t.Errorf("unexpected sphere settings radius=%v detail=%d", rc.Radius, rc.Detail)
	}

	cfg.Render.Background = "navy"
	if _, err := RendererConfig(cfg, 1, 1); err == nil {
		t.Error("expected error for invalid background")
	}
}

func TestNewRandIsDeterministic(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := 0; i < 10; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatal("same seed produced different sequences")
		}
	}
}

func TestRendererConfigRejectsBadColor(t *testing.T) {
	cfg := config.Default()
	cfg.Render.EdgeColor = "#FFA2"

	if _, err := RendererConfig(cfg, 800, 600); err == nil || !strings.Contains(err.Error(), "edge color") {
		t.Errorf("expected edge color error, got %v", err)
	}
}
