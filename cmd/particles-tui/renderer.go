package main

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/particles/pkg/components"
)

// 每个终端字符单元对应的世界像素（字符约为 1:2 的竖长方形）
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

type cell struct {
	ch    rune
	color color.RGBA
	alpha uint8
	set   bool
}

// cellRenderer 实现 systems.Renderer，把像素坐标的图元栅格化到字符单元
// 同一单元内 alpha 较高的图元保留，线段总是覆盖
type cellRenderer struct {
	cols, rows int
	cells      []cell
}

func newCellRenderer(cols, rows int) *cellRenderer {
	r := &cellRenderer{}
	r.Resize(cols, rows)
	return r
}

// Resize 调整网格尺寸并清空内容
func (r *cellRenderer) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	r.cols, r.rows = cols, rows
	r.cells = make([]cell, cols*rows)
}

// Clear 清空所有单元
func (r *cellRenderer) Clear() {
	clear(r.cells)
}

// WorldSize 网格覆盖的世界像素尺寸
func (r *cellRenderer) WorldSize() (float64, float64) {
	return float64(r.cols) * cellWidth, float64(r.rows) * cellHeight
}

// cellAt 返回单元，越界返回 nil
func (r *cellRenderer) cellAt(cx, cy int) *cell {
	if cx < 0 || cy < 0 || cx >= r.cols || cy >= r.rows {
		return nil
	}
	return &r.cells[cy*r.cols+cx]
}

func (r *cellRenderer) put(cx, cy int, ch rune, c color.RGBA, alpha uint8, force bool) {
	dst := r.cellAt(cx, cy)
	if dst == nil {
		return
	}
	if dst.set && !force && dst.alpha > alpha {
		return
	}
	*dst = cell{ch: ch, color: c, alpha: alpha, set: true}
}

// cellSpan 返回 [x, x+w) 覆盖的单元范围，至少一个单元
func cellSpan(x, w, size float64) (int, int) {
	first := int(math.Floor(x / size))
	last := int(math.Ceil((x+w)/size)) - 1
	if last < first {
		last = first
	}
	return first, last
}

// shadeGlyph 用方块字符的密度表示透明度
func shadeGlyph(alpha uint8) rune {
	switch {
	case alpha >= 192:
		return '█'
	case alpha >= 128:
		return '▓'
	case alpha >= 64:
		return '▒'
	default:
		return '░'
	}
}

func (r *cellRenderer) fill(x, y, w, h float64, c color.RGBA, alpha uint8) {
	if alpha == 0 {
		return
	}
	x0, x1 := cellSpan(x, w, cellWidth)
	y0, y1 := cellSpan(y, h, cellHeight)
	glyph := shadeGlyph(alpha)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			r.put(cx, cy, glyph, c, alpha, false)
		}
	}
}

// DrawFilledRect 实现 systems.Renderer
func (r *cellRenderer) DrawFilledRect(x, y, w, h float64, c color.RGBA) {
	r.fill(x, y, w, h, c, c.A)
}

// DrawTexturedRect 终端无法显示纹理，按白色方块绘制
func (r *cellRenderer) DrawTexturedRect(_ components.TextureHandle, x, y, w, h float64, alpha uint8) {
	r.fill(x, y, w, h, color.RGBA{R: 255, G: 255, B: 255, A: alpha}, alpha)
}

// DrawLine 实现 systems.Renderer（单元空间内的 Bresenham）
func (r *cellRenderer) DrawLine(x0, y0, x1, y1 float64, c color.RGBA) {
	cx0, cy0 := int(math.Floor(x0/cellWidth)), int(math.Floor(y0/cellHeight))
	cx1, cy1 := int(math.Floor(x1/cellWidth)), int(math.Floor(y1/cellHeight))

	dx := abs(cx1 - cx0)
	dy := -abs(cy1 - cy0)
	sx, sy := 1, 1
	if cx0 > cx1 {
		sx = -1
	}
	if cy0 > cy1 {
		sy = -1
	}
	e := dx + dy
	for {
		r.put(cx0, cy0, '·', c, c.A, true)
		if cx0 == cx1 && cy0 == cy1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			cx0 += sx
		}
		if e2 <= dx {
			e += dx
			cy0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Flush 把网格写入终端屏幕（不调用 Show）
func (r *cellRenderer) Flush(screen tcell.Screen) {
	for cy := 0; cy < r.rows; cy++ {
		for cx := 0; cx < r.cols; cx++ {
			c := r.cells[cy*r.cols+cx]
			if !c.set {
				continue
			}
			fg := tcell.NewRGBColor(int32(c.color.R), int32(c.color.G), int32(c.color.B))
			screen.SetContent(cx, cy, c.ch, nil, tcell.StyleDefault.Foreground(fg))
		}
	}
}

// cellCenter 单元中心的世界坐标
func cellCenter(cx, cy int) (int, int) {
	return int(float64(cx)*cellWidth + cellWidth/2), int(float64(cy)*cellHeight + cellHeight/2)
}
