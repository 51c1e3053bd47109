// Package scenes 提供 Ebitengine 前端的各个画面
//
// 标题画面与竞技场画面都实现 Scene，由 SceneManager 切换。
// 竞技场画面只通过 session 的 SetInput / Update / Snapshot 与核心交互。
package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// Scene 一个可切换的画面（标题、竞技场）
// 每个场景有独立的更新与绘制逻辑
type Scene interface {
	// Update deltaTime 为距上一展示帧的秒数
	Update(deltaTime float64)

	// Draw 绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：窗口关闭时需要落盘的场景
//
// 实现此接口的场景会在窗口关闭时被调用 SaveOnExit()。
type Saveable interface {
	// SaveOnExit 返回 false 表示保存失败（程序仍会正常退出）
	SaveOnExit() bool
}

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 960
	ScreenHeight = 640
)

// 场景注册名
const (
	SceneTitle = "title"
	SceneArena = "arena"
)

// 调色板
var (
	colorBackground = color.RGBA{R: 24, G: 26, B: 33, A: 255}
	colorArenaFloor = color.RGBA{R: 40, G: 44, B: 54, A: 255}
	colorGrid       = color.RGBA{R: 56, G: 61, B: 74, A: 255}
	colorWall       = color.RGBA{R: 140, G: 146, B: 160, A: 255}
	colorPlayer     = color.RGBA{R: 90, G: 170, B: 255, A: 255}
	colorLunger     = color.RGBA{R: 230, G: 80, B: 70, A: 255}
	colorThrower    = color.RGBA{R: 240, G: 150, B: 50, A: 255}
	colorEnemyShot  = color.RGBA{R: 190, G: 90, B: 220, A: 255}
	colorSandwich   = color.RGBA{R: 250, G: 220, B: 110, A: 255}
	colorStation    = color.RGBA{R: 110, G: 120, B: 130, A: 255}
	colorStationDue = color.RGBA{R: 90, G: 210, B: 120, A: 255}
	colorText       = color.RGBA{R: 235, G: 235, B: 240, A: 255}
	colorDim        = color.RGBA{R: 150, G: 155, B: 165, A: 255}
	colorDanger     = color.RGBA{R: 255, G: 90, B: 80, A: 255}
)

// lineHeight basicfont 7x13 的行高
const lineHeight = 16

// newFace 界面字体（内置位图字体，不依赖外部资源）
func newFace() text.Face {
	return text.NewGoXFace(basicfont.Face7x13)
}

// drawText 在 (x, y) 左上角绘制多行文本
func drawText(screen *ebiten.Image, face text.Face, s string, x, y float64, clr color.Color, alpha float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.LineSpacing = lineHeight
	text.Draw(screen, s, face, op)
}

// drawCentered 水平居中绘制文本
func drawCentered(screen *ebiten.Image, face text.Face, s string, y float64, clr color.Color, alpha float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(ScreenWidth/2, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.LineSpacing = lineHeight
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, s, face, op)
}
