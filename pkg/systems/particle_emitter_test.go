package systems

import (
	"errors"
	"testing"

	"github.com/gonewx/particles/pkg/components"
	"github.com/gonewx/particles/pkg/types"
)

// TestEmitterRecycleScenario lifespan=60、零速度、零加速度、单粒子，生成于 (100,100)
//
// 第 60 次 Update 时 lifetime 到达 60，粒子在同一 tick 内回收：
// lifetime 归零且位置回到中心，恰好回收一次。
func TestEmitterRecycleScenario(t *testing.T) {
	center := components.Vec2{X: 100, Y: 100}
	e, err := NewEmitter(types.EmitterSparkles, center, staticProps(60), 1, NewRand(1))
	if err != nil {
		t.Fatalf("NewEmitter() unexpected error: %v", err)
	}

	recycles := 0
	prev := e.Particles()[0].Lifetime
	for tick := 1; tick <= 60; tick++ {
		e.Update(TickDuration)
		p := e.Particles()[0]
		if p.Lifetime < prev {
			recycles++
		}
		prev = p.Lifetime
		if tick == 59 && p.Lifetime != 59 {
			t.Fatalf("lifetime after 59 ticks = %d, want 59", p.Lifetime)
		}
	}

	p := e.Particles()[0]
	if recycles != 1 {
		t.Errorf("recycles after 60 ticks = %d, want 1", recycles)
	}
	if p.Lifetime != 0 || p.Lifespan != 60 {
		t.Errorf("after 60 ticks: lifetime=%d lifespan=%d, want 0, 60", p.Lifetime, p.Lifespan)
	}
	if p.Position != center {
		t.Errorf("position after recycle = %+v, want %+v", p.Position, center)
	}

	e.Update(TickDuration)
	if got := e.Particles()[0].Lifetime; got != 1 {
		t.Errorf("lifetime one tick after recycle = %d, want 1", got)
	}
}

// TestEmitterRecycledWithinBounds 经 Update 回收的粒子，位置与速度都落在配置区间内
func TestEmitterRecycledWithinBounds(t *testing.T) {
	props := testProps()
	props.Lifespan = components.Range{Min: 1, Max: 4}
	center := components.Vec2{X: 300, Y: 200}

	tests := []types.EmitterType{types.EmitterSparkles, types.EmitterRain, types.EmitterSnow}
	for _, et := range tests {
		t.Run(et.String(), func(t *testing.T) {
			e, err := NewEmitter(et, center, props, 40, NewRand(11))
			if err != nil {
				t.Fatal(err)
			}

			recycled := 0
			for tick := 0; tick < 200; tick++ {
				e.Update(TickDuration)
				for i, p := range e.Particles() {
					if p.Lifetime != 0 {
						continue
					}
					recycled++
					if !props.OffsetX.Contains(p.Position.X-center.X) || !props.OffsetY.Contains(p.Position.Y-center.Y) {
						t.Fatalf("tick %d particle %d: position %+v outside offset bounds", tick, i, p.Position)
					}
					if !props.VelocityX.Contains(p.Velocity.X) || !props.VelocityY.Contains(p.Velocity.Y) {
						t.Fatalf("tick %d particle %d: velocity %+v outside bounds", tick, i, p.Velocity)
					}
					if p.Lifespan < 1 || p.Lifespan > 4 {
						t.Fatalf("tick %d particle %d: lifespan %d outside [1, 4]", tick, i, p.Lifespan)
					}
				}
			}
			if recycled == 0 {
				t.Fatal("no particle recycled in 200 ticks")
			}
		})
	}
}

// TestEmitterLifetimeInvariant 任意 Update 之后 0 <= lifetime <= lifespan
func TestEmitterLifetimeInvariant(t *testing.T) {
	props := testProps()
	props.Lifespan = components.Range{Min: 1, Max: 5}
	e, err := NewEmitter(types.EmitterFire, components.Vec2{X: 10, Y: 10}, props, 50, NewRand(5))
	if err != nil {
		t.Fatal(err)
	}

	for tick := 0; tick < 500; tick++ {
		e.Update(TickDuration)
		for i, p := range e.Particles() {
			if p.Lifetime < 0 || p.Lifetime > p.Lifespan {
				t.Fatalf("tick %d particle %d: lifetime=%d lifespan=%d", tick, i, p.Lifetime, p.Lifespan)
			}
		}
	}
	if e.PoolSize() != 50 {
		t.Errorf("pool size changed to %d", e.PoolSize())
	}
}

// TestEmitterAnchorBias 严格小于时加速，相等时减速
func TestEmitterAnchorBias(t *testing.T) {
	props := staticProps(100)
	props.GravityAccel = components.Vec2{X: 1, Y: 0.5}
	center := components.Vec2{X: 0, Y: 0}

	e, err := NewEmitter(types.EmitterSparkles, center, props, 1, NewRand(1))
	if err != nil {
		t.Fatal(err)
	}

	// 位置与锚点重合：减速
	e.Update(TickDuration)
	p := e.Particles()[0]
	if p.Velocity != (components.Vec2{X: -1, Y: -0.5}) {
		t.Fatalf("velocity at anchor = %+v, want (-1, -0.5)", p.Velocity)
	}

	// 移动到锚点左上方：加速
	e.Update(TickDuration)
	p = e.Particles()[0]
	if p.Position != (components.Vec2{X: -1, Y: -0.5}) {
		t.Fatalf("position = %+v, want (-1, -0.5)", p.Position)
	}
	if p.Velocity != (components.Vec2{X: 0, Y: 0}) {
		t.Errorf("velocity below anchor = %+v, want (0, 0)", p.Velocity)
	}
}

// TestEmitterAnchorOffset 锚点是相对发射器中心的偏移
func TestEmitterAnchorOffset(t *testing.T) {
	props := staticProps(100)
	props.GravityAnchor = components.Vec2{X: 5, Y: -5}
	props.GravityAccel = components.Vec2{X: 1, Y: 1}

	e, _ := NewEmitter(types.EmitterSparkles, components.Vec2{X: 10, Y: 10}, props, 1, NewRand(1))
	if got := e.Anchor(); got != (components.Vec2{X: 15, Y: 5}) {
		t.Fatalf("Anchor() = %+v, want (15, 5)", got)
	}

	e.Update(TickDuration)
	// x=10 < 15 加速；y=10 > 5 减速
	if v := e.Particles()[0].Velocity; v != (components.Vec2{X: 1, Y: -1}) {
		t.Errorf("velocity = %+v, want (1, -1)", v)
	}
}

// TestEmitterFireworksRetire 一次性粒子到期后退役，全部退役后发射器结束
func TestEmitterFireworksRetire(t *testing.T) {
	e, err := NewEmitter(types.EmitterFireworks, components.Vec2{}, staticProps(2), 3, NewRand(1))
	if err != nil {
		t.Fatal(err)
	}

	e.Update(TickDuration)
	if e.Finished() || e.LiveCount() != 3 {
		t.Fatalf("after 1 tick: finished=%v live=%d", e.Finished(), e.LiveCount())
	}

	e.Update(TickDuration)
	if !e.Finished() || e.LiveCount() != 0 {
		t.Fatalf("after 2 ticks: finished=%v live=%d", e.Finished(), e.LiveCount())
	}
	for i, p := range e.Particles() {
		if p.Active {
			t.Errorf("particle %d should be retired", i)
		}
		if p.Lifetime != 2 {
			t.Errorf("retired particle %d lifetime = %d, want 2", i, p.Lifetime)
		}
	}
	if e.PoolSize() != 3 {
		t.Errorf("retired particles must stay in the pool, size=%d", e.PoolSize())
	}

	r := &recordingRenderer{}
	e.Draw(r, true)
	if len(r.calls) != 0 {
		t.Errorf("finished emitter drew %d calls", len(r.calls))
	}
}

func TestNewEmitterPoolSize(t *testing.T) {
	props := testProps()

	e, err := NewEmitter(types.EmitterSnow, components.Vec2{}, props, 0, NewRand(1))
	if err != nil {
		t.Fatal(err)
	}
	if e.PoolSize() != props.Amount {
		t.Errorf("count 0 should use Amount: pool=%d want %d", e.PoolSize(), props.Amount)
	}

	_, err = NewEmitter(types.EmitterSnow, components.Vec2{}, props, MaxParticlesPerEmitter+1, NewRand(1))
	if !errors.Is(err, ErrPoolTooLarge) {
		t.Errorf("oversized pool error = %v, want ErrPoolTooLarge", err)
	}

	if _, err := NewEmitter(types.EmitterSnow, components.Vec2{}, props, 1, nil); err == nil {
		t.Error("nil rng should be rejected")
	}
}

func TestEmitterDraw(t *testing.T) {
	props := staticProps(60)
	center := components.Vec2{X: 100, Y: 50}
	e, _ := NewEmitter(types.EmitterSparkles, center, props, 2, NewRand(1))

	r := &recordingRenderer{}
	e.Draw(r, false)
	if r.count("rect") != 2 || len(r.calls) != 2 {
		t.Fatalf("draw calls = %+v, want 2 rects", r.calls)
	}
	c := r.calls[0]
	if c.x != 99 || c.y != 49 || c.w != 2 || c.h != 2 {
		t.Errorf("rect = (%v,%v %vx%v), want centered 2x2 at (99,49)", c.x, c.y, c.w, c.h)
	}
	if c.alpha != 255 || c.color.R != 255 {
		t.Errorf("fresh particle color = %+v, want opaque red", c.color)
	}

	// 30/60 → alpha = 255 * 0.5
	for i := 0; i < 30; i++ {
		e.Update(TickDuration)
	}
	r = &recordingRenderer{}
	e.Draw(r, false)
	if got := r.calls[0].alpha; got != 127 {
		t.Errorf("alpha at half life = %d, want 127", got)
	}
}

func TestEmitterDrawTexturedAndDebug(t *testing.T) {
	props := staticProps(60)
	props.Texture = "assets/particles/spark.png"
	e, _ := NewEmitter(types.EmitterSparkles, components.Vec2{X: 10, Y: 10}, props, 3, NewRand(1))

	r := &recordingRenderer{}
	e.Draw(r, true)

	if r.count("tex") != 3 || r.count("rect") != 0 {
		t.Errorf("textured draw: tex=%d rect=%d, want 3, 0", r.count("tex"), r.count("rect"))
	}
	// 每个粒子一条速度线 + 中心与锚点两个十字（各两条线）
	if got := r.count("line"); got != 3+4 {
		t.Errorf("debug lines = %d, want 7", got)
	}
	if r.calls[0].tex != props.Texture {
		t.Errorf("texture handle = %q", r.calls[0].tex)
	}
}

// TestEmitterDrawSkipsExpired 已到寿命的粒子不产生绘制调用
func TestEmitterDrawSkipsExpired(t *testing.T) {
	e, _ := NewEmitter(types.EmitterSparkles, components.Vec2{}, staticProps(60), 3, NewRand(1))
	e.Particles()[1].Lifetime = 60

	r := &recordingRenderer{}
	e.Draw(r, false)
	if got := r.count("rect"); got != 2 {
		t.Errorf("rects drawn = %d, want 2", got)
	}
	for _, c := range r.calls {
		if c.alpha == 0 {
			t.Errorf("invisible quad drawn: %+v", c)
		}
	}
}

// TestEmitterVelocityDebugLine 速度线放大 10 倍
func TestEmitterVelocityDebugLine(t *testing.T) {
	props := staticProps(60)
	props.VelocityX = components.Range{Min: 2, Max: 2}
	props.VelocityY = components.Range{Min: -1, Max: -1}
	e, _ := NewEmitter(types.EmitterSparkles, components.Vec2{}, props, 1, NewRand(1))

	r := &recordingRenderer{}
	e.Draw(r, true)
	for _, c := range r.calls {
		if c.kind == "line" && c.color == debugVelocityColor {
			if c.w != 20 || c.h != -10 {
				t.Errorf("velocity line delta = (%v, %v), want (20, -10)", c.w, c.h)
			}
			return
		}
	}
	t.Error("no velocity line drawn")
}
