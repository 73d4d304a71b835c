package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/particles/pkg/components"
)

// Renderer 渲染适配器
//
// 模拟层只通过这三个图元绘制，不依赖具体的图形库：
//   - EbitenRenderer: 桌面窗口（ebiten vector + 纹理）
//   - cmd/particles-tui: 终端字符单元
//   - 测试中的记录型假实现
//
// 颜色为非预乘 alpha（straight alpha），坐标为屏幕像素。
type Renderer interface {
	DrawFilledRect(x, y, w, h float64, c color.RGBA)
	DrawTexturedRect(tex components.TextureHandle, x, y, w, h float64, alpha uint8)
	DrawLine(x0, y0, x1, y1 float64, c color.RGBA)
}

// TextureSource resolves texture handles to images; game.ResourceManager implements it.
type TextureSource interface {
	Texture(handle components.TextureHandle) *ebiten.Image
}

// EbitenRenderer draws onto an ebiten screen image.
// Call Begin with the frame's screen before passing it to ParticleSystem.Draw.
type EbitenRenderer struct {
	screen   *ebiten.Image
	textures TextureSource
	// 复用的绘制参数，避免每个粒子分配
	op ebiten.DrawImageOptions
}

// NewEbitenRenderer 创建 ebiten 渲染适配器，textures 可以为 nil（纹理退化为纯色矩形）
func NewEbitenRenderer(textures TextureSource) *EbitenRenderer {
	return &EbitenRenderer{textures: textures}
}

// Begin sets the target image for the current frame.
func (r *EbitenRenderer) Begin(screen *ebiten.Image) {
	r.screen = screen
}

// DrawFilledRect 绘制纯色矩形
func (r *EbitenRenderer) DrawFilledRect(x, y, w, h float64, c color.RGBA) {
	if r.screen == nil {
		return
	}
	vector.DrawFilledRect(r.screen, float32(x), float32(y), float32(w), float32(h), straight(c), false)
}

// DrawTexturedRect 将纹理缩放到 w×h 绘制，alpha 作为整体透明度
// 纹理无法加载时退化为白色矩形
func (r *EbitenRenderer) DrawTexturedRect(tex components.TextureHandle, x, y, w, h float64, alpha uint8) {
	if r.screen == nil {
		return
	}

	var img *ebiten.Image
	if r.textures != nil {
		img = r.textures.Texture(tex)
	}
	if img == nil {
		r.DrawFilledRect(x, y, w, h, color.RGBA{R: 255, G: 255, B: 255, A: alpha})
		return
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}

	r.op.GeoM.Reset()
	r.op.ColorScale.Reset()
	r.op.GeoM.Scale(w/float64(bounds.Dx()), h/float64(bounds.Dy()))
	r.op.GeoM.Translate(x, y)
	r.op.ColorScale.ScaleAlpha(float32(alpha) / 255)
	r.screen.DrawImage(img, &r.op)
}

// DrawLine 绘制 1 像素宽的线段
func (r *EbitenRenderer) DrawLine(x0, y0, x1, y1 float64, c color.RGBA) {
	if r.screen == nil {
		return
	}
	vector.StrokeLine(r.screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, straight(c), false)
}

// straight 将非预乘颜色交给 ebiten（color.RGBA 在 Go 中按预乘解释）
func straight(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
