package systems

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/gonewx/particles/pkg/components"
	"github.com/gonewx/particles/pkg/ecs"
	"github.com/gonewx/particles/pkg/types"
)

// TickDuration is the fixed simulation step: all lifespans and velocities are per tick.
const TickDuration = time.Second / 60

// MaxStepsPerUpdate caps the steps run by one Update; time beyond the cap is dropped.
const MaxStepsPerUpdate = 5

// PropertiesResolver resolves the configured properties of an emitter type.
// config.ParticleConfig implements it.
type PropertiesResolver interface {
	Resolve(t types.EmitterType) (components.ParticleProperties, error)
}

// SpawnListener is notified after an emitter has been created.
type SpawnListener func(id ecs.EntityID, e *Emitter)

// ParticleSystem owns every emitter and aggregates their counters.
//
// One tick of the engine is Input → Update → Draw on the goroutine that owns
// the system. Update applies all commands first, then runs zero or more fixed
// steps depending on the elapsed time. Emitters are updated in insertion order;
// finished one-shot emitters are marked during a step and removed after it.
//
// All randomness comes from the injected rng: a fixed seed reproduces a run exactly.
type ParticleSystem struct {
	emitters *ecs.EntityManager[*Emitter]
	resolver PropertiesResolver
	rng      *rand.Rand

	emitterCount  int
	particleCount int

	debugDraw bool
	paused    bool

	accumulator time.Duration
	ticks       uint64

	onSpawn SpawnListener
}

// NewParticleSystem creates a new ParticleSystem instance.
// rng must be non-nil; use NewRand for a seeded source.
func NewParticleSystem(resolver PropertiesResolver, rng *rand.Rand) *ParticleSystem {
	if rng == nil {
		log.Printf("[ParticleSystem] Warning: nil random source, using seed 0")
		rng = NewRand(0)
	}
	return &ParticleSystem{
		emitters: ecs.NewEntityManager[*Emitter](),
		resolver: resolver,
		rng:      rng,
	}
}

// NewRand returns a PCG source seeded from a single value.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SetSpawnListener 设置发射器创建回调（例如播放音效），nil 取消
func (ps *ParticleSystem) SetSpawnListener(fn SpawnListener) {
	ps.onSpawn = fn
}

// AddEmitter resolves the properties of t and appends a new emitter at center.
// count <= 0 uses the configured amount. On error nothing is created.
func (ps *ParticleSystem) AddEmitter(t types.EmitterType, center components.Vec2, count int) (ecs.EntityID, error) {
	if ps.resolver == nil {
		return ecs.InvalidEntity, fmt.Errorf("add emitter %s: no config loaded", t)
	}

	props, err := ps.resolver.Resolve(t)
	if err != nil {
		return ecs.InvalidEntity, fmt.Errorf("add emitter %s: %w", t, err)
	}

	e, err := NewEmitter(t, center, props, count, ps.rng)
	if err != nil {
		return ecs.InvalidEntity, fmt.Errorf("add emitter %s: %w", t, err)
	}

	id := ps.emitters.CreateEntity(e)
	ps.emitterCount++
	ps.particleCount += e.PoolSize()

	log.Printf("[ParticleSystem] Added emitter %d: %s at (%.0f, %.0f), %d particles (total: %d emitters, %d particles)",
		id, t, center.X, center.Y, e.PoolSize(), ps.emitterCount, ps.particleCount)

	if ps.onSpawn != nil {
		ps.onSpawn(id, e)
	}
	return id, nil
}

// RemoveEmitter removes an emitter immediately. It must not be called from inside a step.
func (ps *ParticleSystem) RemoveEmitter(id ecs.EntityID) bool {
	if !ps.emitters.Has(id) {
		return false
	}
	ps.emitters.DestroyEntity(id)
	ps.removeMarked()
	return true
}

// RemoveLast removes the most recently added emitter.
func (ps *ParticleSystem) RemoveLast() bool {
	id, ok := ps.emitters.Last()
	if !ok {
		return false
	}
	return ps.RemoveEmitter(id)
}

// Clear removes every emitter. Flags are kept.
func (ps *ParticleSystem) Clear() {
	if ps.emitters.Len() > 0 {
		log.Printf("[ParticleSystem] Cleared %d emitters, %d particles", ps.emitterCount, ps.particleCount)
	}
	ps.emitters.Clear()
	ps.emitterCount = 0
	ps.particleCount = 0
}

// Update applies commands, then advances the simulation by the number of
// whole fixed steps contained in the accumulated time. While paused no time
// accumulates and no emitter is updated.
func (ps *ParticleSystem) Update(dt time.Duration, cmds []Command) {
	for _, cmd := range cmds {
		if cmd == nil {
			continue
		}
		if err := cmd.Apply(ps); err != nil {
			log.Printf("[ParticleSystem] Command %s failed: %v", cmd, err)
		}
	}

	if ps.paused || dt <= 0 {
		return
	}

	ps.accumulator += dt
	steps := 0
	for ps.accumulator >= TickDuration && steps < MaxStepsPerUpdate {
		ps.Step()
		ps.accumulator -= TickDuration
		steps++
	}
	if ps.accumulator >= TickDuration {
		dropped := ps.accumulator / TickDuration
		ps.accumulator %= TickDuration
		log.Printf("[ParticleSystem] Falling behind, dropped %d steps", dropped)
	}
}

// Step runs exactly one fixed tick on every active emitter, regardless of pause.
func (ps *ParticleSystem) Step() {
	ps.ticks++
	ps.emitters.Each(func(id ecs.EntityID, e *Emitter) bool {
		if !e.Active() {
			return true
		}
		e.Update(TickDuration)
		if e.Finished() {
			ps.emitters.DestroyEntity(id)
		}
		return true
	})
	ps.removeMarked()
}

// removeMarked 清理已标记的发射器并更新计数
func (ps *ParticleSystem) removeMarked() {
	for _, e := range ps.emitters.RemoveMarkedEntities() {
		ps.emitterCount--
		ps.particleCount -= e.PoolSize()
		log.Printf("[ParticleSystem] Removed emitter %s (%d particles)", e.Type, e.PoolSize())
	}
}

// Draw renders every active emitter in insertion order. Not affected by pause.
func (ps *ParticleSystem) Draw(r Renderer) {
	ps.emitters.Each(func(_ ecs.EntityID, e *Emitter) bool {
		if e.Active() {
			e.Draw(r, ps.debugDraw)
		}
		return true
	})
}

// EmitterCount 当前发射器数量
func (ps *ParticleSystem) EmitterCount() int { return ps.emitterCount }

// ParticleCount 所有发射器粒子池容量之和（包括已退役的一次性粒子）
func (ps *ParticleSystem) ParticleCount() int { return ps.particleCount }

// LiveParticleCount 当前仍然活跃的粒子数
func (ps *ParticleSystem) LiveParticleCount() int {
	live := 0
	ps.emitters.Each(func(_ ecs.EntityID, e *Emitter) bool {
		live += e.LiveCount()
		return true
	})
	return live
}

// Ticks 已执行的固定步数
func (ps *ParticleSystem) Ticks() uint64 { return ps.ticks }

// DebugDraw 是否绘制调试信息
func (ps *ParticleSystem) DebugDraw() bool { return ps.debugDraw }

// SetDebugDraw 设置调试绘制开关
func (ps *ParticleSystem) SetDebugDraw(on bool) { ps.debugDraw = on }

// Paused 模拟是否暂停
func (ps *ParticleSystem) Paused() bool { return ps.paused }

// SetPaused 设置暂停状态；暂停时清空累积时间
func (ps *ParticleSystem) SetPaused(on bool) {
	ps.paused = on
	if on {
		ps.accumulator = 0
	}
}

// Emitter 按 ID 获取发射器
func (ps *ParticleSystem) Emitter(id ecs.EntityID) (*Emitter, bool) {
	return ps.emitters.Get(id)
}

// Emitters returns the emitters in insertion order.
func (ps *ParticleSystem) Emitters() []*Emitter {
	result := make([]*Emitter, 0, ps.emitters.Len())
	ps.emitters.Each(func(_ ecs.EntityID, e *Emitter) bool {
		result = append(result, e)
		return true
	})
	return result
}
