package components

import (
	"fmt"
	"image/color"
	"math"
)

// Vec2 二维向量（像素 / 像素每 tick）
type Vec2 struct {
	X, Y float64
}

// Add 返回 v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale 返回 v * s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Range 闭区间 [Min, Max]
type Range struct {
	Min float64
	Max float64
}

// Valid 检查 Min <= Max（NaN 视为无效）
func (r Range) Valid() bool {
	return r.Min <= r.Max
}

// Contains 检查 v 是否落在闭区间内
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Mid 返回区间中点
func (r Range) Mid() float64 {
	return r.Min + (r.Max-r.Min)/2
}

// TextureHandle 纹理句柄（资源路径）。空字符串表示没有纹理，使用纯色矩形绘制。
// 核心模拟层只持有句柄，由渲染适配器解析为实际图片。
type TextureHandle string

// ParticleProperties 描述某一类型粒子的生成与老化边界。
// 每个发射器实例持有一份，创建后不可修改。
//
// 所有位置/锚点都是相对发射器中心的偏移量；寿命单位为 tick。
type ParticleProperties struct {
	// Amount 默认粒子池大小（生成命令未指定数量时使用）
	Amount int

	// Lifespan 粒子寿命范围（tick）
	Lifespan Range

	// Velocity 初速度范围（像素/tick）
	VelocityX Range
	VelocityY Range

	// Gravity 锚点偏移与每 tick 加速度（弹簧式偏置，不是万有引力）
	GravityAnchor Vec2
	GravityAccel  Vec2

	// Spawn offset 相对发射器中心的生成偏移范围
	OffsetX Range
	OffsetY Range

	// Draw size 绘制尺寸范围（生成时采样一次）
	DrawW Range
	DrawH Range

	// Texture 可选纹理
	Texture TextureHandle

	// Color 无纹理时的填充颜色（Alpha 由淡出计算覆盖）
	Color color.RGBA

	// Fade 淡出缓动函数名称，默认 "Linear"
	Fade string
}

// MaxLifespan 寿命上限（tick），超出时整数转换会溢出
const MaxLifespan = math.MaxInt32

// LifespanBounds 返回整数寿命采样区间 [ceil(min), floor(max)]
func (p ParticleProperties) LifespanBounds() (lo, hi int) {
	return int(math.Ceil(p.Lifespan.Min)), int(math.Floor(p.Lifespan.Max))
}

// Validate 检查所有 min <= max 约束以及寿命/尺寸的下限。
// 返回的错误带有违反约束的属性名，供配置加载时拒绝该类型。
func (p ParticleProperties) Validate() error {
	ranges := []struct {
		name string
		r    Range
	}{
		{"lifespan", p.Lifespan},
		{"velocity.x", p.VelocityX},
		{"velocity.y", p.VelocityY},
		{"position.x", p.OffsetX},
		{"position.y", p.OffsetY},
		{"draw.w", p.DrawW},
		{"draw.h", p.DrawH},
	}
	for _, rg := range ranges {
		if !rg.r.Valid() {
			return fmt.Errorf("%s: min %v > max %v", rg.name, rg.r.Min, rg.r.Max)
		}
	}

	if p.Lifespan.Min < 1 {
		return fmt.Errorf("lifespan: min %v must be >= 1", p.Lifespan.Min)
	}
	if p.Lifespan.Max > MaxLifespan {
		return fmt.Errorf("lifespan: max %v exceeds %d ticks", p.Lifespan.Max, MaxLifespan)
	}
	if lo, hi := p.LifespanBounds(); lo > hi {
		return fmt.Errorf("lifespan: no whole tick count in [%v, %v]", p.Lifespan.Min, p.Lifespan.Max)
	}
	if p.Amount < 0 {
		return fmt.Errorf("emitter.amount: %d must be >= 0", p.Amount)
	}
	if p.DrawW.Min < 0 || p.DrawH.Min < 0 {
		return fmt.Errorf("draw: sizes must be >= 0")
	}
	return nil
}

// Particle 单个模拟粒子。
// 不变量：每次 Update 结束后 0 <= Lifetime <= Lifespan。
type Particle struct {
	Lifetime int  // 自上次生成以来经过的 tick 数
	Lifespan int  // 生成时采样的寿命（tick）
	Position Vec2 // 世界坐标
	Velocity Vec2 // 像素/tick
	Size     Vec2 // 绘制尺寸（生成时采样）

	// Active 一次性发射器的粒子到期后置为 false，保留内存但不再绘制/更新
	Active bool
}

// Expired 粒子是否已到达寿命
func (p *Particle) Expired() bool {
	return p.Lifetime >= p.Lifespan
}

// LifeRatio 返回 lifetime/lifespan ∈ [0, 1]
func (p *Particle) LifeRatio() float64 {
	if p.Lifespan <= 0 {
		return 1
	}
	return float64(p.Lifetime) / float64(p.Lifespan)
}
