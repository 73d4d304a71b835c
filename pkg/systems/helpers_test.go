package systems

import (
	"fmt"
	"image/color"

	"github.com/gonewx/particles/pkg/components"
	"github.com/gonewx/particles/pkg/config"
	"github.com/gonewx/particles/pkg/types"
)

// fakeResolver 基于 map 的属性解析器，errs 中的类型返回对应错误
type fakeResolver struct {
	props map[types.EmitterType]components.ParticleProperties
	errs  map[types.EmitterType]error
}

func (r *fakeResolver) Resolve(t types.EmitterType) (components.ParticleProperties, error) {
	if err, ok := r.errs[t]; ok {
		return components.ParticleProperties{}, err
	}
	if p, ok := r.props[t]; ok {
		return p, nil
	}
	return components.ParticleProperties{}, fmt.Errorf("%w: %s", config.ErrInvalidEmitterType, t)
}

// newResolver 所有类型使用同一组属性
func newResolver(p components.ParticleProperties) *fakeResolver {
	r := &fakeResolver{
		props: make(map[types.EmitterType]components.ParticleProperties),
		errs:  make(map[types.EmitterType]error),
	}
	for _, t := range types.AllEmitterTypes {
		r.props[t] = p
	}
	return r
}

// testProps 一组覆盖所有字段的典型属性
func testProps() components.ParticleProperties {
	return components.ParticleProperties{
		Amount:        10,
		Lifespan:      components.Range{Min: 20, Max: 40},
		VelocityX:     components.Range{Min: -2, Max: 2},
		VelocityY:     components.Range{Min: 1, Max: 3},
		GravityAnchor: components.Vec2{X: 0, Y: 10},
		GravityAccel:  components.Vec2{X: 0.05, Y: 0.1},
		OffsetX:       components.Range{Min: -10, Max: 10},
		OffsetY:       components.Range{Min: -5, Max: 5},
		DrawW:         components.Range{Min: 2, Max: 4},
		DrawH:         components.Range{Min: 1, Max: 3},
		Color:         color.RGBA{R: 200, G: 100, B: 50, A: 255},
		Fade:          "Linear",
	}
}

// staticProps 固定寿命、零速度、零加速度、零偏移
func staticProps(lifespan float64) components.ParticleProperties {
	return components.ParticleProperties{
		Amount:   1,
		Lifespan: components.Range{Min: lifespan, Max: lifespan},
		DrawW:    components.Range{Min: 2, Max: 2},
		DrawH:    components.Range{Min: 2, Max: 2},
		Color:    color.RGBA{R: 255, A: 255},
		Fade:     "Linear",
	}
}

type drawCall struct {
	kind       string // "rect", "tex", "line"
	x, y, w, h float64
	color      color.RGBA
	alpha      uint8
	tex        components.TextureHandle
}

// recordingRenderer 记录所有绘制调用
type recordingRenderer struct {
	calls []drawCall
}

func (r *recordingRenderer) DrawFilledRect(x, y, w, h float64, c color.RGBA) {
	r.calls = append(r.calls, drawCall{kind: "rect", x: x, y: y, w: w, h: h, color: c, alpha: c.A})
}

func (r *recordingRenderer) DrawTexturedRect(tex components.TextureHandle, x, y, w, h float64, alpha uint8) {
	r.calls = append(r.calls, drawCall{kind: "tex", x: x, y: y, w: w, h: h, alpha: alpha, tex: tex})
}

func (r *recordingRenderer) DrawLine(x0, y0, x1, y1 float64, c color.RGBA) {
	r.calls = append(r.calls, drawCall{kind: "line", x: x0, y: y0, w: x1 - x0, h: y1 - y0, color: c})
}

func (r *recordingRenderer) count(kind string) int {
	n := 0
	for _, c := range r.calls {
		if c.kind == kind {
			n++
		}
	}
	return n
}
