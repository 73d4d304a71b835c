package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下创建 gdata manager
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return gdataManager
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.DebugDraw {
		t.Error("DebugDraw: got true, want false")
	}
	if !s.ShowHUD {
		t.Error("ShowHUD: got false, want true")
	}
	if !s.SoundEnabled || s.SoundVolume != 0.5 {
		t.Errorf("sound defaults: enabled=%v volume=%v", s.SoundEnabled, s.SoundVolume)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm.GetSettings() == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}

	sm.SetDebugDraw(true)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode: %v", err)
	}
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode: %v", err)
	}
	if sm.GetSettings().DebugDraw {
		t.Error("Load() in degraded mode should reset to defaults")
	}
}

// TestSettingsLoadSave 设置经 gdata 保存后可以重新加载
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := openTestGdata(t, "test_particles_settings")

	sm1 := NewSettingsManager(gdataManager)
	if sm1.GetSettings().DebugDraw {
		t.Fatal("fresh store should start from defaults")
	}

	sm1.SetDebugDraw(true)
	sm1.SetShowHUD(false)
	sm1.SetFullscreen(true)
	sm1.SetSoundEnabled(false)
	sm1.SetSoundVolume(0.25)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(gdataManager)
	got := *sm2.GetSettings()
	want := ViewerSettings{DebugDraw: true, ShowHUD: false, Fullscreen: true, SoundEnabled: false, SoundVolume: 0.25}
	if got != want {
		t.Errorf("loaded settings = %+v, want %+v", got, want)
	}
}

// TestLoadPartialSettings 缺少的字段保持默认值
func TestLoadPartialSettings(t *testing.T) {
	gdataManager := openTestGdata(t, "test_particles_partial")
	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("debugDraw: true\nsoundVolume: 3\n")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	s := NewSettingsManager(gdataManager).GetSettings()
	if !s.DebugDraw {
		t.Error("DebugDraw should be loaded as true")
	}
	if !s.ShowHUD {
		t.Error("missing ShowHUD should keep default true")
	}
	if s.SoundVolume != 1 {
		t.Errorf("SoundVolume = %v, want clamped to 1", s.SoundVolume)
	}
}

func TestLoadCorruptSettings(t *testing.T) {
	gdataManager := openTestGdata(t, "test_particles_corrupt")
	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("debugDraw: [")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := &SettingsManager{gdataManager: gdataManager, settings: DefaultSettings()}
	if err := sm.Load(); err == nil {
		t.Error("Load() should fail on corrupt data")
	}
	if *sm.GetSettings() != *DefaultSettings() {
		t.Error("corrupt data should fall back to defaults")
	}
}

func TestClampVolume(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.3, 0.3},
		{1, 1},
		{1.5, 1},
	}
	for _, tt := range tests {
		if got := clampVolume(tt.in); got != tt.want {
			t.Errorf("clampVolume(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
