package config

import (
	"image/color"

	"github.com/gonewx/particles/pkg/types"
)

// DefaultParticleConfigPath 默认粒子配置路径（磁盘或嵌入 FS 中）
const DefaultParticleConfigPath = "data/particles.yaml"

// defaultColors 各类型未配置 color 时的填充颜色
var defaultColors = map[types.EmitterType]color.RGBA{
	types.EmitterSparkles:  {R: 255, G: 236, B: 139, A: 255},
	types.EmitterRain:      {R: 120, G: 160, B: 255, A: 255},
	types.EmitterSnow:      {R: 245, G: 245, B: 255, A: 255},
	types.EmitterFire:      {R: 255, G: 120, B: 30, A: 255},
	types.EmitterSmoke:     {R: 140, G: 140, B: 140, A: 255},
	types.EmitterFireworks: {R: 255, G: 80, B: 200, A: 255},
}

// DefaultColor 返回类型的默认颜色，未知类型为白色
func DefaultColor(t types.EmitterType) color.RGBA {
	if c, ok := defaultColors[t]; ok {
		return c
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}
