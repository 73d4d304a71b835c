package systems

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/tanema/gween/ease"

	"github.com/gonewx/particles/pkg/components"
	"github.com/gonewx/particles/pkg/types"
	"github.com/gonewx/particles/pkg/utils"
)

// particle_emitter.go - 单个发射器
//
// 发射器持有固定容量的粒子池（构造时一次性创建，长度不再变化），
// 每次 Update 推进一个固定 tick：粒子老化、积分位置并受锚点偏置加速度影响，
// 到达寿命的粒子随即按生成规则原地回收或退役。

// MaxParticlesPerEmitter 单个发射器的粒子池上限
const MaxParticlesPerEmitter = 10000

// ErrPoolTooLarge 请求的粒子池超过上限，拒绝生成
var ErrPoolTooLarge = errors.New("particle pool too large")

// 调试绘制参数
const (
	debugVelocityScale = 10.0
	debugCrosshairSize = 6.0
)

var (
	debugVelocityColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	debugCenterColor   = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	debugAnchorColor   = color.RGBA{R: 255, G: 0, B: 255, A: 255}
)

// Emitter owns a fixed pool of particles sharing one ParticleProperties.
type Emitter struct {
	Type   types.EmitterType
	Center components.Vec2
	Props  components.ParticleProperties

	rule      SpawnRule
	fade      ease.TweenFunc
	rng       *rand.Rand
	particles []components.Particle
	active    bool
	// live 当前 Active 的粒子数
	live int
}

// NewEmitter creates an emitter at center with a pool of count particles.
// count <= 0 uses props.Amount. Every particle is spawned immediately.
func NewEmitter(t types.EmitterType, center components.Vec2, props components.ParticleProperties, count int, rng *rand.Rand) (*Emitter, error) {
	if count <= 0 {
		count = props.Amount
	}
	if count > MaxParticlesPerEmitter {
		return nil, fmt.Errorf("%w: %d particles requested for %s (max %d)", ErrPoolTooLarge, count, t, MaxParticlesPerEmitter)
	}
	if rng == nil {
		return nil, fmt.Errorf("emitter %s: nil random source", t)
	}

	rule, err := SpawnRuleFor(t)
	if err != nil {
		return nil, err
	}

	fade, ok := utils.LookupFade(props.Fade)
	if !ok {
		fade = ease.Linear
	}

	e := &Emitter{
		Type:      t,
		Center:    center,
		Props:     props,
		rule:      rule,
		fade:      fade,
		rng:       rng,
		particles: make([]components.Particle, count),
		active:    true,
	}
	for i := range e.particles {
		e.particles[i] = rule.Start(&e.Props, center, rng)
	}
	e.live = count
	return e, nil
}

// Anchor returns the world position particles are biased toward.
func (e *Emitter) Anchor() components.Vec2 {
	return e.Center.Add(e.Props.GravityAnchor)
}

// Active reports whether the emitter still updates and draws.
func (e *Emitter) Active() bool {
	return e.active
}

// Finished reports whether a one-shot emitter has retired all its particles.
func (e *Emitter) Finished() bool {
	return !e.active
}

// PoolSize 粒子池容量
func (e *Emitter) PoolSize() int {
	return len(e.particles)
}

// LiveCount 仍然活跃的粒子数
func (e *Emitter) LiveCount() int {
	return e.live
}

// Particles returns the pool. Callers must not change its length.
func (e *Emitter) Particles() []components.Particle {
	return e.particles
}

// Policy 返回该发射器的到期策略
func (e *Emitter) Policy() EndOfLifePolicy {
	return e.rule.EndOfLife()
}

// Update advances the emitter by exactly one fixed tick.
// dt is accepted for the update contract but never scales aging or integration.
func (e *Emitter) Update(dt time.Duration) {
	_ = dt
	if !e.active {
		return
	}

	anchor := e.Anchor()
	accel := e.Props.GravityAccel
	policy := e.rule.EndOfLife()

	for i := range e.particles {
		p := &e.particles[i]
		if !p.Active {
			continue
		}

		p.Lifetime++
		p.Position = p.Position.Add(p.Velocity)
		p.Velocity.X = biasToward(p.Position.X, anchor.X, p.Velocity.X, accel.X)
		p.Velocity.Y = biasToward(p.Position.Y, anchor.Y, p.Velocity.Y, accel.Y)

		// 到达寿命的粒子在同一 tick 内回收或退役
		if p.Expired() {
			switch policy {
			case Recycle:
				*p = e.rule.Start(&e.Props, e.Center, e.rng)
			case Deactivate:
				p.Active = false
				e.live--
			}
		}
	}

	if policy == Deactivate && e.live == 0 {
		e.active = false
	}
}

// biasToward 弹簧式偏置：位于锚点左/上侧时加速，否则（包括相等）减速
func biasToward(pos, anchor, v, accel float64) float64 {
	if pos < anchor {
		return v + accel
	}
	return v - accel
}

// Draw renders every live particle, plus debug overlays when debug is set.
func (e *Emitter) Draw(r Renderer, debug bool) {
	if !e.active {
		return
	}

	for i := range e.particles {
		p := &e.particles[i]
		if !p.Active || p.Expired() {
			continue
		}

		alpha := utils.FadeAlpha(e.fade, p.Lifetime, p.Lifespan)
		x := p.Position.X - p.Size.X/2
		y := p.Position.Y - p.Size.Y/2

		if e.Props.Texture != "" {
			r.DrawTexturedRect(e.Props.Texture, x, y, p.Size.X, p.Size.Y, alpha)
		} else {
			c := e.Props.Color
			c.A = alpha
			r.DrawFilledRect(x, y, p.Size.X, p.Size.Y, c)
		}

		if debug {
			tip := p.Position.Add(p.Velocity.Scale(debugVelocityScale))
			r.DrawLine(p.Position.X, p.Position.Y, tip.X, tip.Y, debugVelocityColor)
		}
	}

	if debug {
		drawCrosshair(r, e.Center, debugCenterColor)
		drawCrosshair(r, e.Anchor(), debugAnchorColor)
	}
}

func drawCrosshair(r Renderer, at components.Vec2, c color.RGBA) {
	r.DrawLine(at.X-debugCrosshairSize, at.Y, at.X+debugCrosshairSize, at.Y, c)
	r.DrawLine(at.X, at.Y-debugCrosshairSize, at.X, at.Y+debugCrosshairSize, c)
}
