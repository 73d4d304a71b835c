// Package main 粒子查看器终端前端
//
// 模拟与桌面端完全相同，绘制改为字符单元（每个单元 8×16 世界像素），
// 生成发射器时用正弦提示音代替音效文件。
//
// Usage:
//
//	go run ./cmd/particles-tui [flags]
//
// Flags:
//
//	-config <path>   粒子配置文件，默认 data/particles.yaml
//	-seed <n>        随机种子，0 表示使用当前时间
//	-fps <n>         刷新率，默认 30（模拟始终按 60 步/秒推进）
//	-mute            不播放提示音
//	-log <path>      日志文件（终端被界面占用，日志不输出到 stderr）
//
// Controls:
//
//	1-6          在光标处生成 Sparkles / Rain / Snow / Fire / Smoke / Fireworks
//	Arrows       移动光标
//	Click/Enter  在光标处生成 Sparkles
//	Right click  移除最后一个发射器
//	D            切换调试绘制
//	S / P        暂停 / 继续
//	R            清空所有发射器
//	H            显示 / 隐藏统计信息
//	Q / Esc      退出
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/particles/pkg/config"
	"github.com/gonewx/particles/pkg/ecs"
	"github.com/gonewx/particles/pkg/game"
	"github.com/gonewx/particles/pkg/systems"
	"github.com/gonewx/particles/pkg/utils"
)

var (
	configFlag = flag.String("config", config.DefaultParticleConfigPath, "Particle config file (.yaml, .yml or .xml)")
	seedFlag   = flag.Uint64("seed", 0, "Random seed (0 = time based)")
	fpsFlag    = flag.Int("fps", 30, "Screen refresh rate")
	muteFlag   = flag.Bool("mute", false, "Disable spawn tones")
	logFlag    = flag.String("log", "", "Write logs to this file")
)

var (
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	cursorStyle = tcell.StyleDefault.Reverse(true)
)

type viewer struct {
	screen   tcell.Screen
	system   *systems.ParticleSystem
	renderer *cellRenderer
	input    *terminalInput
	settings *game.SettingsManager
	tone     *spawnTone
}

func newViewer(screen tcell.Screen, cfg *config.ParticleConfig, seed uint64, settings *game.SettingsManager, mute bool) *viewer {
	cols, rows := screen.Size()
	s := settings.GetSettings()

	v := &viewer{
		screen:   screen,
		system:   systems.NewParticleSystem(cfg, systems.NewRand(seed)),
		renderer: newCellRenderer(cols, rows),
		input:    newTerminalInput(cols, rows),
		settings: settings,
		tone:     newSpawnTone(s.SoundEnabled && !mute, s.SoundVolume),
	}
	v.system.SetDebugDraw(s.DebugDraw)
	v.system.SetSpawnListener(func(_ ecs.EntityID, e *systems.Emitter) {
		v.tone.Play(e.Type)
	})
	return v
}

// tick 处理一帧输入并推进模拟
func (v *viewer) tick(elapsed time.Duration) {
	in := v.input.Advance()
	if in.JustPressed(utils.KeyH) {
		v.settings.SetShowHUD(!v.settings.GetSettings().ShowHUD)
	}
	v.system.Update(elapsed, systems.MapInput(in))
}

func (v *viewer) draw() {
	v.screen.Clear()
	v.renderer.Clear()
	v.system.Draw(v.renderer)
	v.renderer.Flush(v.screen)

	cx, cy := v.input.Cursor()
	ch := ' '
	if c := v.renderer.cellAt(cx, cy); c != nil && c.set {
		ch = c.ch
	}
	v.screen.SetContent(cx, cy, ch, nil, cursorStyle)

	if v.settings.GetSettings().ShowHUD {
		status := ""
		if v.system.Paused() {
			status = " [PAUSED]"
		}
		if v.system.DebugDraw() {
			status += " [DEBUG]"
		}
		drawText(v.screen, 0, 0, hudStyle, fmt.Sprintf("Emitters: %d  Particles: %d (live %d)%s",
			v.system.EmitterCount(), v.system.ParticleCount(), v.system.LiveParticleCount(), status))
		_, rows := v.screen.Size()
		drawText(v.screen, 0, rows-1, hudStyle, "1-6 spawn  arrows move  enter/click spawn  D debug  S/P pause  R clear  H hud  Q quit")
	}
	v.screen.Show()
}

func (v *viewer) handle(ev tcell.Event) {
	if resize, ok := ev.(*tcell.EventResize); ok {
		cols, rows := resize.Size()
		v.renderer.Resize(cols, rows)
		v.screen.Sync()
	}
	v.input.Handle(ev)
}

func (v *viewer) run(fps int) {
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(v.screen, eventChan, done)

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			v.handle(ev)
			if v.input.Quit() {
				return
			}

		case now := <-ticker.C:
			v.tick(now.Sub(last))
			last = now
			v.draw()
		}
	}
}

// pollEvents 转发终端事件，屏幕关闭（PollEvent 返回 nil）或 done 关闭后退出
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (v *viewer) close() {
	v.settings.SetDebugDraw(v.system.DebugDraw())
	if err := v.settings.Save(); err != nil {
		log.Printf("[TUI] Failed to save settings: %v", err)
	}
	v.tone.Close()
	v.screen.Fini()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func setupLogging(path string) (io.Closer, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

func main() {
	flag.Parse()

	logFile, err := setupLogging(*logFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	particleConfig, err := config.LoadParticleConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load particle config: %v\n", err)
		os.Exit(1)
	}

	var gdataManager *gdata.Manager
	if m, err := gdata.Open(gdata.Config{AppName: game.StorageAppName}); err != nil {
		log.Printf("[TUI] Warning: gdata unavailable, settings will not persist: %v", err)
	} else {
		gdataManager = m
	}
	settings := game.NewSettingsManager(gdataManager)

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("[TUI] Random seed: %d", seed)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.SetStyle(tcell.StyleDefault)

	v := newViewer(screen, particleConfig, seed, settings, *muteFlag)
	defer v.close()

	v.run(*fpsFlag)
}
