package app

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/particles/pkg/config"
	"github.com/gonewx/particles/pkg/systems"
	"github.com/gonewx/particles/pkg/utils"
)

const testConfigPath = "../../data/particles.yaml"

func newTestApp(t *testing.T, seed uint64) *App {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	a, err := NewApp(Config{Verbose: true, ConfigPath: testConfigPath, Seed: seed})
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	return a
}

func press(x, y int, keys ...utils.Key) utils.InputState {
	in := utils.InputState{X: x, Y: y}
	for _, k := range keys {
		in.Keys[k] = utils.KeyPressed
	}
	return in
}

func TestNewApp_MissingConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := NewApp(Config{Verbose: true, ConfigPath: "testdata/missing.yaml"})
	if !errors.Is(err, config.ErrConfigMissingFile) {
		t.Fatalf("NewApp() error = %v, want ErrConfigMissingFile", err)
	}
}

func TestNewApp_Defaults(t *testing.T) {
	a := newTestApp(t, 7)

	if a.Seed() != 7 {
		t.Errorf("Seed() = %d, want 7", a.Seed())
	}
	if a.frameTime != systems.TickDuration {
		t.Errorf("frameTime = %v, want %v", a.frameTime, systems.TickDuration)
	}
	if w, h := a.Layout(1, 1); w != ScreenWidth || h != ScreenHeight {
		t.Errorf("Layout() = %dx%d, want %dx%d", w, h, ScreenWidth, ScreenHeight)
	}
	if a.ParticleSystem().EmitterCount() != 0 {
		t.Errorf("EmitterCount() = %d, want 0", a.ParticleSystem().EmitterCount())
	}
}

func TestStep_SpawnKeys(t *testing.T) {
	a := newTestApp(t, 1)

	if err := a.step(press(100, 200, utils.Key1, utils.Key6)); err != nil {
		t.Fatalf("step() error: %v", err)
	}

	ps := a.ParticleSystem()
	if got := ps.EmitterCount(); got != 2 {
		t.Fatalf("EmitterCount() = %d, want 2", got)
	}
	// sparkles 10 + fireworks 50
	if got := ps.ParticleCount(); got != 60 {
		t.Errorf("ParticleCount() = %d, want 60", got)
	}
	if got := ps.Ticks(); got != 1 {
		t.Errorf("Ticks() = %d, want 1 (one frame at %d TPS)", got, DefaultTPS)
	}
	if c := ps.Emitters()[0].Center; c.X != 100 || c.Y != 200 {
		t.Errorf("emitter center = %v, want (100, 200)", c)
	}
}

func TestStep_HeldKeyDoesNotRepeat(t *testing.T) {
	a := newTestApp(t, 1)

	a.step(press(0, 0, utils.Key2))
	held := utils.InputState{}
	held.Keys[utils.Key2] = utils.KeyHeld
	for i := 0; i < 5; i++ {
		a.step(held)
	}

	if got := a.ParticleSystem().EmitterCount(); got != 1 {
		t.Errorf("EmitterCount() = %d, want 1", got)
	}
}

func TestStep_ToggleHUDAndDebug(t *testing.T) {
	a := newTestApp(t, 1)
	hud := a.Settings().GetSettings().ShowHUD

	a.step(press(0, 0, utils.KeyH, utils.KeyD))

	if a.Settings().GetSettings().ShowHUD == hud {
		t.Error("H should toggle ShowHUD")
	}
	if !a.ParticleSystem().DebugDraw() {
		t.Error("D should enable debug draw")
	}
	if !a.Settings().GetSettings().DebugDraw {
		t.Error("debug draw should be mirrored into settings")
	}
}

func TestStep_PauseStopsTicks(t *testing.T) {
	a := newTestApp(t, 1)

	a.step(press(0, 0, utils.KeyP))
	a.step(utils.InputState{})
	a.step(utils.InputState{})

	ps := a.ParticleSystem()
	if !ps.Paused() {
		t.Fatal("P should pause")
	}
	if ps.Ticks() != 0 {
		t.Errorf("Ticks() = %d, want 0 while paused", ps.Ticks())
	}
}

func TestStep_EscapeTerminates(t *testing.T) {
	a := newTestApp(t, 1)

	err := a.step(press(0, 0, utils.KeyEscape))
	if !errors.Is(err, ebiten.Termination) {
		t.Errorf("step() error = %v, want ebiten.Termination", err)
	}
}

func TestStep_SameSeedSameParticles(t *testing.T) {
	run := func() []float64 {
		a := newTestApp(t, 42)
		a.step(press(300, 300, utils.Key4))
		for i := 0; i < 30; i++ {
			a.step(utils.InputState{X: 300, Y: 300})
		}
		var out []float64
		for _, p := range a.ParticleSystem().Emitters()[0].Particles() {
			out = append(out, p.Position.X, p.Position.Y, p.Velocity.X, p.Velocity.Y)
		}
		return out
	}

	first, second := run(), run()
	if len(first) != len(second) {
		t.Fatalf("particle counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("value %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}
