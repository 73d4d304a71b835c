package utils

import (
	"sort"

	"github.com/tanema/gween/ease"
)

// Easing Functions (缓动函数)
//
// 粒子淡出使用 gween 的缓动函数：f(t, b, c, d)，t 为已过时间，b 为起始值，
// c 为变化量，d 为总时长。Linear 即 b + c*t/d。
//
// 参考：https://easings.net/

// DefaultFade 默认淡出缓动名称
const DefaultFade = "Linear"

var fadeFuncs = map[string]ease.TweenFunc{
	"Linear":     ease.Linear,
	"InQuad":     ease.InQuad,
	"OutQuad":    ease.OutQuad,
	"InOutQuad":  ease.InOutQuad,
	"InCubic":    ease.InCubic,
	"OutCubic":   ease.OutCubic,
	"InOutCubic": ease.InOutCubic,
	"InSine":     ease.InSine,
	"OutSine":    ease.OutSine,
	"OutExpo":    ease.OutExpo,
}

// LookupFade 根据名称查找缓动函数，空名称返回 Linear
func LookupFade(name string) (ease.TweenFunc, bool) {
	if name == "" {
		name = DefaultFade
	}
	fn, ok := fadeFuncs[name]
	return fn, ok
}

// FadeNames 返回所有支持的缓动名称（已排序）
func FadeNames() []string {
	names := make([]string, 0, len(fadeFuncs))
	for name := range fadeFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FadeAlpha 计算粒子透明度：从 255 随寿命衰减到 0
// Linear 时等价于 255 * (1 - lifetime/lifespan)
func FadeAlpha(fn ease.TweenFunc, lifetime, lifespan int) uint8 {
	if lifespan <= 0 || lifetime >= lifespan {
		return 0
	}
	if lifetime <= 0 {
		return 255
	}
	if fn == nil {
		fn = ease.Linear
	}
	a := fn(float32(lifetime), 255, -255, float32(lifespan))
	if a < 0 {
		return 0
	}
	if a > 255 {
		return 255
	}
	return uint8(a)
}
