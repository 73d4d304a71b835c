// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import (
	"fmt"
	"strings"
)

// EmitterType 定义发射器的类型（封闭集合）
type EmitterType int

const (
	// EmitterUnknown 未知发射器类型，永远不会被创建
	EmitterUnknown EmitterType = iota
	// EmitterSparkles 火花
	EmitterSparkles
	// EmitterRain 雨
	EmitterRain
	// EmitterSnow 雪
	EmitterSnow
	// EmitterFire 火焰
	EmitterFire
	// EmitterSmoke 烟雾
	EmitterSmoke
	// EmitterFireworks 烟花（一次性）
	EmitterFireworks
)

// AllEmitterTypes 按键位顺序（1..6）列出所有有效的发射器类型
var AllEmitterTypes = []EmitterType{
	EmitterSparkles,
	EmitterRain,
	EmitterSnow,
	EmitterFire,
	EmitterSmoke,
	EmitterFireworks,
}

// String 返回发射器类型的字符串表示
func (t EmitterType) String() string {
	switch t {
	case EmitterSparkles:
		return "Sparkles"
	case EmitterRain:
		return "Rain"
	case EmitterSnow:
		return "Snow"
	case EmitterFire:
		return "Fire"
	case EmitterSmoke:
		return "Smoke"
	case EmitterFireworks:
		return "Fireworks"
	default:
		return "Unknown"
	}
}

// Tag 返回配置文件中使用的类型标签（小写）
func (t EmitterType) Tag() string {
	return strings.ToLower(t.String())
}

// Valid 检查类型是否属于封闭集合
func (t EmitterType) Valid() bool {
	return t >= EmitterSparkles && t <= EmitterFireworks
}

// ParseEmitterType 将配置标签解析为发射器类型（大小写不敏感）
func ParseEmitterType(tag string) (EmitterType, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range AllEmitterTypes {
		if t.Tag() == tag {
			return t, nil
		}
	}
	return EmitterUnknown, fmt.Errorf("unknown emitter type tag %q", tag)
}
