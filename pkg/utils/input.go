// Package utils 提供通用工具函数
package utils

// KeyState 按键边沿状态
// 与 0/1/2/3 编码一一对应：Idle=0, Pressed=1, Held=2, Released=3
type KeyState int

const (
	// KeyIdle 未按下
	KeyIdle KeyState = iota
	// KeyPressed 本帧刚按下（上升沿）
	KeyPressed
	// KeyHeld 持续按住
	KeyHeld
	// KeyReleased 本帧刚松开（下降沿）
	KeyReleased
)

// String 返回状态名称
func (s KeyState) String() string {
	switch s {
	case KeyIdle:
		return "Idle"
	case KeyPressed:
		return "Pressed"
	case KeyHeld:
		return "Held"
	case KeyReleased:
		return "Released"
	default:
		return "Invalid"
	}
}

// Down 状态是否处于按下（Pressed 或 Held）
func (s KeyState) Down() bool {
	return s == KeyPressed || s == KeyHeld
}

// keyTransitions[down][prev] -> next
var keyTransitions = [2][4]KeyState{
	// 物理按键松开
	{KeyIdle, KeyReleased, KeyReleased, KeyIdle},
	// 物理按键按下
	{KeyPressed, KeyHeld, KeyHeld, KeyPressed},
}

// NextKeyState 根据上一帧状态和本帧物理按键是否按下计算新状态
func NextKeyState(prev KeyState, down bool) KeyState {
	if prev < KeyIdle || prev > KeyReleased {
		prev = KeyIdle
	}
	d := 0
	if down {
		d = 1
	}
	return keyTransitions[d][prev]
}

// Key 逻辑按键 ID（与具体窗口/终端后端无关）
type Key int

const (
	Key1 Key = iota
	Key2
	Key3
	Key4
	Key5
	Key6
	KeyD
	KeyS
	KeyP
	KeyR
	KeyH
	KeyEscape

	keyCount
)

// AllKeys 返回所有被追踪的逻辑按键
func AllKeys() []Key {
	keys := make([]Key, 0, keyCount)
	for k := Key(0); k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// InputState 存储当前帧的输入快照
// 由 InputTracker.Advance 每 tick 生成一次
type InputState struct {
	// 指针位置
	X, Y int
	// 鼠标左右键边沿状态
	Left  KeyState
	Right KeyState
	// 逻辑按键边沿状态
	Keys [keyCount]KeyState
}

// Key 返回指定逻辑按键的边沿状态
func (s InputState) Key(k Key) KeyState {
	if k < 0 || k >= keyCount {
		return KeyIdle
	}
	return s.Keys[k]
}

// JustPressed 指定按键是否在本帧处于上升沿
func (s InputState) JustPressed(k Key) bool {
	return s.Key(k) == KeyPressed
}

// RawInput 某一 tick 的原始物理输入（由后端轮询得到）
type RawInput struct {
	X, Y        int
	Left, Right bool
	Down        func(Key) bool
}

// InputTracker 跨帧跟踪按键状态，将"是否按下"转换为边沿状态
type InputTracker struct {
	state InputState
}

// NewInputTracker 创建输入跟踪器，所有按键初始为 Idle
func NewInputTracker() *InputTracker {
	return &InputTracker{}
}

// Advance 推进一帧并返回新的输入快照
func (t *InputTracker) Advance(raw RawInput) InputState {
	t.state.X, t.state.Y = raw.X, raw.Y
	t.state.Left = NextKeyState(t.state.Left, raw.Left)
	t.state.Right = NextKeyState(t.state.Right, raw.Right)
	for k := Key(0); k < keyCount; k++ {
		down := raw.Down != nil && raw.Down(k)
		t.state.Keys[k] = NextKeyState(t.state.Keys[k], down)
	}
	return t.state
}

// State 返回最近一次 Advance 的快照
func (t *InputTracker) State() InputState {
	return t.state
}
