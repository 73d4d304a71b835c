// Package app 提供粒子查看器的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/particles/pkg/config"
	"github.com/gonewx/particles/pkg/ecs"
	"github.com/gonewx/particles/pkg/game"
	"github.com/gonewx/particles/pkg/systems"
	"github.com/gonewx/particles/pkg/utils"
)

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 1024
	ScreenHeight = 768
)

// DefaultTPS 默认每秒 tick 数
const DefaultTPS = 60

// SpawnSoundPath 生成发射器时播放的音效
const SpawnSoundPath = "assets/sounds/spawn.wav"

var backgroundColor = color.RGBA{R: 12, G: 14, B: 24, A: 255}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 粒子配置文件路径（.yaml/.yml/.xml），为空使用默认配置
	ConfigPath string
	// Seed 随机种子，0 表示使用当前时间
	Seed uint64
	// TPS 每秒 tick 数，<= 0 使用 DefaultTPS
	TPS int
	// Gdata 设置存储，为 nil 时自动打开；打开失败则只在内存中保存设置
	Gdata *gdata.Manager
}

// App 是粒子查看器的核心包装器，实现 ebiten.Game 接口
//
// 每个 tick 依次执行：输入 → 更新 → 绘制。
type App struct {
	system    *systems.ParticleSystem
	renderer  *systems.EbitenRenderer
	tracker   *utils.InputTracker
	resources *game.ResourceManager
	settings  *game.SettingsManager

	spawnSound *audio.Player
	frameTime  time.Duration
	seed       uint64
	verbose    bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化查看器
//
// 桌面端调用此函数前应先调用 embedded.Init() 初始化嵌入资源；
// 未初始化时所有资源从磁盘读取。
// 粒子配置文件不存在时返回包装了 config.ErrConfigMissingFile 的错误。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if cfg.ConfigPath == "" {
		cfg.ConfigPath = config.DefaultParticleConfigPath
	}
	if cfg.TPS <= 0 {
		cfg.TPS = DefaultTPS
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	// 初始化音频上下文（每个进程只能创建一个）
	audioContext := audio.CurrentContext()
	if audioContext == nil {
		audioContext = audio.NewContext(48000)
	}

	resourceManager := game.NewResourceManager(audioContext)

	particleConfig, err := resourceManager.LoadParticleConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("粒子配置加载失败: %w", err)
	}
	log.Printf("[App] Loaded particle config %s: %d emitter types", particleConfig.Source, len(particleConfig.Types()))
	for t, rerr := range particleConfig.Rejected() {
		log.Printf("[App] Warning: emitter type %s unavailable: %v", t, rerr)
	}

	gdataManager := cfg.Gdata
	if gdataManager == nil {
		gdataManager = openGdata()
	}
	settings := game.NewSettingsManager(gdataManager)

	ps := systems.NewParticleSystem(particleConfig, systems.NewRand(cfg.Seed))
	ps.SetDebugDraw(settings.GetSettings().DebugDraw)
	log.Printf("[App] Random seed: %d", cfg.Seed)

	a := &App{
		system:    ps,
		renderer:  systems.NewEbitenRenderer(resourceManager),
		tracker:   utils.NewInputTracker(),
		resources: resourceManager,
		settings:  settings,
		frameTime: time.Second / time.Duration(cfg.TPS),
		seed:      cfg.Seed,
		verbose:   cfg.Verbose,
	}

	if player, err := resourceManager.LoadSoundEffect(SpawnSoundPath); err != nil {
		log.Printf("[App] Warning: spawn sound unavailable: %v", err)
	} else {
		a.spawnSound = player
	}
	ps.SetSpawnListener(a.onSpawn)

	return a, nil
}

// openGdata 打开设置存储，失败时返回 nil（降级为内存设置）
func openGdata() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: storage dir unavailable: %v", err)
	} else if path := utils.StoragePath(); path != "" {
		log.Printf("[App] Settings storage: %s", path)
	}
	manager, err := gdata.Open(gdata.Config{
		AppName: game.StorageAppName,
	})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, settings will not persist: %v", err)
		return nil
	}
	return manager
}

// onSpawn 新发射器创建后播放音效
func (a *App) onSpawn(_ ecs.EntityID, _ *systems.Emitter) {
	s := a.settings.GetSettings()
	if a.spawnSound == nil || !s.SoundEnabled {
		return
	}
	a.spawnSound.SetVolume(s.SoundVolume)
	if err := a.spawnSound.Rewind(); err != nil {
		log.Printf("[App] Failed to rewind spawn sound: %v", err)
		return
	}
	a.spawnSound.Play()
}

// Update 更新查看器逻辑
// 每个 tick 调用一次（默认每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	return a.step(utils.PollEbiten(a.tracker))
}

// step 处理一帧输入并推进模拟
// 按下 Escape 时保存设置并返回 ebiten.Termination
func (a *App) step(in utils.InputState) error {
	if in.JustPressed(utils.KeyEscape) {
		a.Close()
		return ebiten.Termination
	}
	if in.JustPressed(utils.KeyH) {
		a.settings.SetShowHUD(!a.settings.GetSettings().ShowHUD)
	}

	debugBefore := a.system.DebugDraw()
	a.system.Update(a.frameTime, systems.MapInput(in))
	if a.system.DebugDraw() != debugBefore {
		a.settings.SetDebugDraw(a.system.DebugDraw())
	}
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		a.settings.SetFullscreen(false)
		return
	}
	ebiten.SetFullscreen(true)
	a.settings.SetFullscreen(true)
}

// Draw 绘制画面
// 每帧调用一次，暂停时仍然绘制
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	a.renderer.Begin(screen)
	a.system.Draw(a.renderer)

	if a.settings.GetSettings().ShowHUD {
		ebitenutil.DebugPrint(screen, a.hudText())
	}
}

// hudText 左上角统计信息
func (a *App) hudText() string {
	status := ""
	if a.system.Paused() {
		status = "  [PAUSED]"
	}
	if a.system.DebugDraw() {
		status += "  [DEBUG]"
	}
	return fmt.Sprintf("Emitters: %d  Particles: %d (live %d)  TPS: %.0f%s\n"+
		"1-6 spawn  Click spawn  Right-click undo  D debug  S/P pause  R clear  H hud  F11 fullscreen  Esc quit",
		a.system.EmitterCount(), a.system.ParticleCount(), a.system.LiveParticleCount(), ebiten.ActualTPS(), status)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Close 保存设置，退出前调用
func (a *App) Close() {
	a.settings.SetDebugDraw(a.system.DebugDraw())
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Failed to save settings: %v", err)
	}
}

// ParticleSystem 返回粒子系统
func (a *App) ParticleSystem() *systems.ParticleSystem {
	return a.system
}

// Settings 返回设置管理器
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

// Seed 返回本次运行使用的随机种子
func (a *App) Seed() uint64 {
	return a.seed
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// StartFullscreen 按保存的设置决定是否全屏启动（移动端忽略）
func (a *App) StartFullscreen() bool {
	return !utils.IsMobile() && a.settings.GetSettings().Fullscreen
}
