package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// ebitenKeys 逻辑按键到 ebiten 按键的映射
var ebitenKeys = map[Key][]ebiten.Key{
	Key1:      {ebiten.KeyDigit1, ebiten.KeyNumpad1},
	Key2:      {ebiten.KeyDigit2, ebiten.KeyNumpad2},
	Key3:      {ebiten.KeyDigit3, ebiten.KeyNumpad3},
	Key4:      {ebiten.KeyDigit4, ebiten.KeyNumpad4},
	Key5:      {ebiten.KeyDigit5, ebiten.KeyNumpad5},
	Key6:      {ebiten.KeyDigit6, ebiten.KeyNumpad6},
	KeyD:      {ebiten.KeyD},
	KeyS:      {ebiten.KeyS},
	KeyP:      {ebiten.KeyP},
	KeyR:      {ebiten.KeyR},
	KeyH:      {ebiten.KeyH},
	KeyEscape: {ebiten.KeyEscape},
}

// PollEbiten 读取 ebiten 的键盘/鼠标/触摸状态并推进跟踪器
// 必须在 ebiten.Game.Update 中调用（每 tick 一次）
func PollEbiten(tracker *InputTracker) InputState {
	x, y := GetPointerPosition()
	return tracker.Advance(RawInput{
		X:     x,
		Y:     y,
		Left:  IsPointerPressed(),
		Right: ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		Down:  isEbitenKeyDown,
	})
}

func isEbitenKeyDown(k Key) bool {
	for _, ek := range ebitenKeys[k] {
		if ebiten.IsKeyPressed(ek) {
			return true
		}
	}
	return false
}

// GetPointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func GetPointerPosition() (int, int) {
	// 检查触摸
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}

	// 返回鼠标位置
	return ebiten.CursorPosition()
}

// IsPointerPressed 检查是否有指针按下（鼠标左键或触摸）
func IsPointerPressed() bool {
	// 检查触摸
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return true
	}

	// 检查鼠标
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}
