package systems

import (
	"fmt"
	"math/rand/v2"

	"github.com/gonewx/particles/pkg/components"
	"github.com/gonewx/particles/pkg/config"
	"github.com/gonewx/particles/pkg/types"
)

// EndOfLifePolicy decides what happens to a particle once lifetime reaches lifespan.
type EndOfLifePolicy int

const (
	// Recycle respawns the particle in place during the Update that expires it.
	Recycle EndOfLifePolicy = iota
	// Deactivate retires the particle: memory is kept, it is no longer updated or drawn.
	Deactivate
)

// String 返回策略名称
func (p EndOfLifePolicy) String() string {
	switch p {
	case Recycle:
		return "Recycle"
	case Deactivate:
		return "Deactivate"
	default:
		return "Unknown"
	}
}

// SpawnRule produces fresh particles for one emitter type.
// Start must only consume the given rng and must keep every sampled value
// inside the configured bounds.
type SpawnRule interface {
	Start(props *components.ParticleProperties, center components.Vec2, rng *rand.Rand) components.Particle
	EndOfLife() EndOfLifePolicy
}

// SpawnRuleFor selects the rule for an emitter type.
// Called once per emitter at construction.
func SpawnRuleFor(t types.EmitterType) (SpawnRule, error) {
	switch t {
	case types.EmitterSparkles, types.EmitterFire, types.EmitterSmoke:
		return baseRule{}, nil
	case types.EmitterRain:
		return rainRule{}, nil
	case types.EmitterSnow:
		return snowRule{}, nil
	case types.EmitterFireworks:
		return oneShotRule{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", config.ErrInvalidEmitterType, int(t))
	}
}

// StartParticle is the base spawn rule.
//
// Sampling order (fixed, so a seeded rng reproduces the same particles):
// lifespan, offset x, offset y, velocity x, velocity y, width, height.
func StartParticle(props *components.ParticleProperties, center components.Vec2, rng *rand.Rand) components.Particle {
	lifespan := sampleLifespan(props, rng)
	offset := components.Vec2{X: uniform(props.OffsetX, rng), Y: uniform(props.OffsetY, rng)}
	velocity := components.Vec2{X: uniform(props.VelocityX, rng), Y: uniform(props.VelocityY, rng)}
	size := components.Vec2{X: uniform(props.DrawW, rng), Y: uniform(props.DrawH, rng)}

	return components.Particle{
		Lifetime: 0,
		Lifespan: lifespan,
		Position: center.Add(offset),
		Velocity: velocity,
		Size:     size,
		Active:   true,
	}
}

// sampleLifespan 在 [ceil(min), floor(max)] 中均匀采样整数寿命（闭区间）
func sampleLifespan(props *components.ParticleProperties, rng *rand.Rand) int {
	lo, hi := props.LifespanBounds()
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

// uniform 在 [min, max] 中均匀采样
func uniform(r components.Range, rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// baseRule Sparkles/Fire/Smoke 使用基础规则
type baseRule struct{}

func (baseRule) Start(props *components.ParticleProperties, center components.Vec2, rng *rand.Rand) components.Particle {
	return StartParticle(props, center, rng)
}

func (baseRule) EndOfLife() EndOfLifePolicy { return Recycle }

// rainRule spawns along a horizontal line at the top edge of the emitter area
// (full OffsetX width, OffsetY pinned to its minimum) and falls at full speed.
type rainRule struct{}

func (rainRule) Start(props *components.ParticleProperties, center components.Vec2, rng *rand.Rand) components.Particle {
	p := StartParticle(props, center, rng)
	p.Position.Y = center.Y + props.OffsetY.Min
	p.Velocity.Y = props.VelocityY.Max
	return p
}

func (rainRule) EndOfLife() EndOfLifePolicy { return Recycle }

// snowRule spawns along the same horizontal line as rain and drifts down in the
// slower half of the vertical velocity range.
type snowRule struct{}

func (snowRule) Start(props *components.ParticleProperties, center components.Vec2, rng *rand.Rand) components.Particle {
	p := StartParticle(props, center, rng)
	p.Position.Y = center.Y + props.OffsetY.Min
	p.Velocity.Y = uniform(components.Range{Min: props.VelocityY.Min, Max: props.VelocityY.Mid()}, rng)
	return p
}

func (snowRule) EndOfLife() EndOfLifePolicy { return Recycle }

// oneShotRule 烟花：每个粒子只发射一次
type oneShotRule struct{}

func (oneShotRule) Start(props *components.ParticleProperties, center components.Vec2, rng *rand.Rand) components.Particle {
	return StartParticle(props, center, rng)
}

func (oneShotRule) EndOfLife() EndOfLifePolicy { return Deactivate }
