package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/particles/pkg/utils"
)

// runeKeys 终端字符到逻辑按键的映射
var runeKeys = map[rune]utils.Key{
	'1': utils.Key1,
	'2': utils.Key2,
	'3': utils.Key3,
	'4': utils.Key4,
	'5': utils.Key5,
	'6': utils.Key6,
	'd': utils.KeyD, 'D': utils.KeyD,
	's': utils.KeyS, 'S': utils.KeyS,
	'p': utils.KeyP, 'P': utils.KeyP,
	'r': utils.KeyR, 'R': utils.KeyR,
	'h': utils.KeyH, 'H': utils.KeyH,
}

// terminalInput 把 tcell 事件转换为每 tick 的原始输入
//
// 终端只上报按下（和自动重复），没有松开事件：一个 tick 内收到的按键
// 视为该 tick 按下，下一个 tick 没有新事件即视为松开。
// 鼠标按钮状态随每个鼠标事件更新。
type terminalInput struct {
	tracker *utils.InputTracker

	cursorX, cursorY int // 光标所在单元
	cols, rows       int

	left, right bool
	// 本 tick 内出现过的按下，按下和松开落在同一 tick 时单击不会丢失
	leftClick, rightClick bool
	enter                 bool // Enter 等同左键单击
	down        map[utils.Key]bool
	quit        bool
}

func newTerminalInput(cols, rows int) *terminalInput {
	return &terminalInput{
		tracker: utils.NewInputTracker(),
		cursorX: cols / 2,
		cursorY: rows / 2,
		cols:    cols,
		rows:    rows,
		down:    make(map[utils.Key]bool),
	}
}

// Handle 处理一个 tcell 事件
func (in *terminalInput) Handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyRune {
			in.keyRune(ev.Rune())
			return
		}
		in.key(ev.Key())
	case *tcell.EventMouse:
		x, y := ev.Position()
		in.mouse(x, y, ev.Buttons())
	case *tcell.EventResize:
		w, h := ev.Size()
		in.resize(w, h)
	}
}

func (in *terminalInput) keyRune(ch rune) {
	if ch == 'q' || ch == 'Q' {
		in.quit = true
		return
	}
	if k, ok := runeKeys[ch]; ok {
		in.down[k] = true
	}
}

func (in *terminalInput) key(k tcell.Key) {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		in.quit = true
	case tcell.KeyUp:
		in.moveCursor(0, -1)
	case tcell.KeyDown:
		in.moveCursor(0, 1)
	case tcell.KeyLeft:
		in.moveCursor(-1, 0)
	case tcell.KeyRight:
		in.moveCursor(1, 0)
	case tcell.KeyEnter:
		in.enter = true
	}
}

func (in *terminalInput) mouse(cx, cy int, buttons tcell.ButtonMask) {
	in.cursorX, in.cursorY = cx, cy
	in.clampCursor()
	in.left = buttons&tcell.Button1 != 0
	in.right = buttons&tcell.Button2 != 0 || buttons&tcell.Button3 != 0
	in.leftClick = in.leftClick || in.left
	in.rightClick = in.rightClick || in.right
}

func (in *terminalInput) resize(cols, rows int) {
	in.cols, in.rows = cols, rows
	in.clampCursor()
}

func (in *terminalInput) moveCursor(dx, dy int) {
	in.cursorX += dx
	in.cursorY += dy
	in.clampCursor()
}

func (in *terminalInput) clampCursor() {
	in.cursorX = max(0, min(in.cursorX, in.cols-1))
	in.cursorY = max(0, min(in.cursorY, in.rows-1))
}

// Advance 生成本 tick 的输入快照并清空本 tick 的按键
func (in *terminalInput) Advance() utils.InputState {
	x, y := cellCenter(in.cursorX, in.cursorY)
	state := in.tracker.Advance(utils.RawInput{
		X:     x,
		Y:     y,
		Left:  in.left || in.leftClick || in.enter,
		Right: in.right || in.rightClick,
		Down:  func(k utils.Key) bool { return in.down[k] },
	})
	clear(in.down)
	in.enter = false
	in.leftClick, in.rightClick = false, false
	return state
}

// Quit 是否收到退出请求
func (in *terminalInput) Quit() bool {
	return in.quit
}

// Cursor 光标单元
func (in *terminalInput) Cursor() (int, int) {
	return in.cursorX, in.cursorY
}
