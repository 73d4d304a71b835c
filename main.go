// Package main 粒子查看器桌面端入口
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	-config <path>   粒子配置文件（.yaml/.yml/.xml），默认 data/particles.yaml
//	-seed <n>        随机种子，0 表示使用当前时间
//	-tps <n>         每秒 tick 数（模拟始终按 60 步/秒推进）
//	-verbose         输出详细日志
//
// Controls:
//
//	1-6          在鼠标处生成 Sparkles / Rain / Snow / Fire / Smoke / Fireworks
//	Left click   在鼠标处生成 Sparkles
//	Right click  移除最后一个发射器
//	D            切换调试绘制
//	S / P        暂停 / 继续
//	R            清空所有发射器
//	H            显示 / 隐藏统计信息
//	F11          切换全屏
//	Escape       退出
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/particles/pkg/app"
	"github.com/gonewx/particles/pkg/config"
	"github.com/gonewx/particles/pkg/embedded"
)

var (
	configFlag  = flag.String("config", config.DefaultParticleConfigPath, "Particle config file (.yaml, .yml or .xml)")
	seedFlag    = flag.Uint64("seed", 0, "Random seed (0 = time based)")
	tpsFlag     = flag.Int("tps", app.DefaultTPS, "Ticks per second")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（assetsFS 和 dataFS 在 embed.go 中声明）
	embedded.Init(assetsFS, dataFS)

	viewer, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Seed:       *seedFlag,
		TPS:        *tpsFlag,
	})
	if err != nil {
		// 非 verbose 模式下 log 已被静音，直接写 stderr
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	if *tpsFlag > 0 {
		ebiten.SetTPS(*tpsFlag)
	}
	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Particles")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(viewer.StartFullscreen())

	if err := ebiten.RunGame(viewer); err != nil {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", err)
		os.Exit(1)
	}
}
