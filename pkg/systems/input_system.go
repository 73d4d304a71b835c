package systems

import (
	"fmt"

	"github.com/gonewx/particles/pkg/components"
	"github.com/gonewx/particles/pkg/types"
	"github.com/gonewx/particles/pkg/utils"
)

// Command 一条已解析的用户意图，在 ParticleSystem.Update 开始时按顺序执行
type Command interface {
	fmt.Stringer
	Apply(ps *ParticleSystem) error
}

// SpawnCommand 在 Center 生成一个发射器；Count <= 0 使用配置的数量
type SpawnCommand struct {
	Type   types.EmitterType
	Center components.Vec2
	Count  int
}

// Apply 实现 Command
func (c SpawnCommand) Apply(ps *ParticleSystem) error {
	_, err := ps.AddEmitter(c.Type, c.Center, c.Count)
	return err
}

func (c SpawnCommand) String() string {
	return fmt.Sprintf("Spawn(%s at %.0f,%.0f)", c.Type, c.Center.X, c.Center.Y)
}

// ToggleDebugCommand 切换调试绘制
type ToggleDebugCommand struct{}

// Apply 实现 Command
func (ToggleDebugCommand) Apply(ps *ParticleSystem) error {
	ps.SetDebugDraw(!ps.DebugDraw())
	return nil
}

func (ToggleDebugCommand) String() string { return "ToggleDebug" }

// TogglePauseCommand 切换暂停
type TogglePauseCommand struct{}

// Apply 实现 Command
func (TogglePauseCommand) Apply(ps *ParticleSystem) error {
	ps.SetPaused(!ps.Paused())
	return nil
}

func (TogglePauseCommand) String() string { return "TogglePause" }

// ClearCommand 移除所有发射器
type ClearCommand struct{}

// Apply 实现 Command
func (ClearCommand) Apply(ps *ParticleSystem) error {
	ps.Clear()
	return nil
}

func (ClearCommand) String() string { return "Clear" }

// RemoveLastCommand 移除最后添加的发射器
type RemoveLastCommand struct{}

// Apply 实现 Command
func (RemoveLastCommand) Apply(ps *ParticleSystem) error {
	ps.RemoveLast()
	return nil
}

func (RemoveLastCommand) String() string { return "RemoveLast" }

// spawnKeys 数字键 1..6 对应的发射器类型
var spawnKeys = []struct {
	key utils.Key
	typ types.EmitterType
}{
	{utils.Key1, types.EmitterSparkles},
	{utils.Key2, types.EmitterRain},
	{utils.Key3, types.EmitterSnow},
	{utils.Key4, types.EmitterFire},
	{utils.Key5, types.EmitterSmoke},
	{utils.Key6, types.EmitterFireworks},
}

// ClickSpawnType 鼠标左键生成的发射器类型
const ClickSpawnType = types.EmitterSparkles

// MapInput translates one input snapshot into commands.
// Only Pressed edges trigger, so a held key fires once.
//
//	1..6        spawn Sparkles, Rain, Snow, Fire, Smoke, Fireworks at the pointer
//	left click  spawn Sparkles at the pointer
//	right click remove the last emitter
//	D           toggle debug draw
//	S / P       toggle pause
//	R           clear all emitters
func MapInput(in utils.InputState) []Command {
	var cmds []Command
	at := components.Vec2{X: float64(in.X), Y: float64(in.Y)}

	for _, sk := range spawnKeys {
		if in.JustPressed(sk.key) {
			cmds = append(cmds, SpawnCommand{Type: sk.typ, Center: at})
		}
	}
	if in.Left == utils.KeyPressed {
		cmds = append(cmds, SpawnCommand{Type: ClickSpawnType, Center: at})
	}
	if in.Right == utils.KeyPressed {
		cmds = append(cmds, RemoveLastCommand{})
	}
	if in.JustPressed(utils.KeyD) {
		cmds = append(cmds, ToggleDebugCommand{})
	}
	if in.JustPressed(utils.KeyS) || in.JustPressed(utils.KeyP) {
		cmds = append(cmds, TogglePauseCommand{})
	}
	if in.JustPressed(utils.KeyR) {
		cmds = append(cmds, ClearCommand{})
	}
	return cmds
}
