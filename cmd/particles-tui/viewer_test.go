package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/particles/pkg/config"
	"github.com/gonewx/particles/pkg/game"
	"github.com/gonewx/particles/pkg/systems"
	"github.com/gonewx/particles/pkg/types"
)

func newTestViewer(t *testing.T) *viewer {
	t.Helper()

	cfg, err := config.LoadParticleConfig("../../data/particles.yaml")
	if err != nil {
		t.Fatalf("LoadParticleConfig() error: %v", err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init() error: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	return newViewer(screen, cfg, 1, game.NewSettingsManager(nil), true)
}

func TestViewer_SpawnAtCursor(t *testing.T) {
	v := newTestViewer(t)

	v.input.keyRune('4')
	v.tick(systems.TickDuration)

	if v.system.EmitterCount() != 1 {
		t.Fatalf("EmitterCount() = %d, want 1", v.system.EmitterCount())
	}
	e := v.system.Emitters()[0]
	if e.Type != types.EmitterFire {
		t.Errorf("Type = %v, want Fire", e.Type)
	}
	cx, cy := v.input.Cursor()
	wantX, wantY := cellCenter(cx, cy)
	if e.Center.X != float64(wantX) || e.Center.Y != float64(wantY) {
		t.Errorf("Center = %v, want (%d, %d)", e.Center, wantX, wantY)
	}
	if v.system.Ticks() != 1 {
		t.Errorf("Ticks() = %d, want 1", v.system.Ticks())
	}
}

func TestViewer_VariableFrameTime(t *testing.T) {
	v := newTestViewer(t)

	// 30 FPS: 每帧两步
	v.tick(2 * systems.TickDuration)
	v.tick(2 * systems.TickDuration)
	if v.system.Ticks() != 4 {
		t.Errorf("Ticks() = %d, want 4", v.system.Ticks())
	}
}

func TestViewer_ToggleHUD(t *testing.T) {
	v := newTestViewer(t)
	before := v.settings.GetSettings().ShowHUD

	v.input.keyRune('h')
	v.tick(systems.TickDuration)

	if v.settings.GetSettings().ShowHUD == before {
		t.Error("h should toggle the HUD")
	}
}

func TestViewer_DrawDoesNotPanic(t *testing.T) {
	v := newTestViewer(t)

	for _, r := range "123456d" {
		v.input.keyRune(r)
	}
	v.tick(systems.TickDuration)
	v.draw()

	if v.system.EmitterCount() != 6 {
		t.Errorf("EmitterCount() = %d, want 6", v.system.EmitterCount())
	}
	if !v.system.DebugDraw() {
		t.Error("d should enable debug draw")
	}
}

func TestViewer_ResizeEvent(t *testing.T) {
	v := newTestViewer(t)

	v.handle(tcell.NewEventResize(40, 10))

	if v.renderer.cols != 40 || v.renderer.rows != 10 {
		t.Errorf("renderer size = %dx%d, want 40x10", v.renderer.cols, v.renderer.rows)
	}
	if v.input.cols != 40 || v.input.rows != 10 {
		t.Errorf("input size = %dx%d, want 40x10", v.input.cols, v.input.rows)
	}
}

// TestPollEventsStopsWhenDone 无人接收事件时，done 关闭后转发协程退出
func TestPollEventsStopsWhenDone(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init() error: %v", err)
	}
	defer screen.Fini()

	events := make(chan tcell.Event)
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		pollEvents(screen, events, done)
		close(exited)
	}()

	if err := screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent() error: %v", err)
	}
	close(done)

	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatal("pollEvents did not return after done was closed")
	}
}
