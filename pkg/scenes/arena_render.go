package scenes

import (
	"image/color"
	"math"

	"github.com/decker502/rentday/pkg/components"
	"github.com/decker502/rentday/pkg/session"
	"github.com/decker502/rentday/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// arenaMargin 俯视图四周留白（像素），顶部给 HUD 留出空间
const (
	arenaMargin    = 24
	arenaTopMargin = 56
	gridStep       = 5.0 // 地面网格间距（世界单位）
)

// viewport 世界坐标 (x, z) 到屏幕坐标的映射：x 向右，z 向上
type viewport struct {
	cx, cy float64
	scale  float64
}

func newViewport(halfSize, offsetX, offsetY float64) viewport {
	avail := math.Min(ScreenWidth-2*arenaMargin, ScreenHeight-arenaTopMargin-arenaMargin)
	return viewport{
		cx:    ScreenWidth/2 + offsetX,
		cy:    arenaTopMargin + (ScreenHeight-arenaTopMargin-arenaMargin)/2 + offsetY,
		scale: avail / (2 * halfSize),
	}
}

// toScreen 世界坐标转屏幕坐标
func (v viewport) toScreen(p utils.Vec3) (float32, float32) {
	return float32(v.cx + p.X*v.scale), float32(v.cy - p.Z*v.scale)
}

func (v viewport) length(d float64) float32 {
	return float32(d * v.scale)
}

// colorWithAlpha 返回预乘后的半透明颜色
func colorWithAlpha(c color.RGBA, a uint8) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(uint16(v) * uint16(a) / 255) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: a}
}

// drawArena 以俯视图绘制快照
func drawArena(screen *ebiten.Image, snap session.Snapshot, offsetX, offsetY float64) {
	half := snap.ArenaHalfSize
	v := newViewport(half, offsetX, offsetY)

	// 地面与网格
	x0, y0 := v.toScreen(utils.Vec3{X: -half, Z: half})
	size := v.length(2 * half)
	vector.DrawFilledRect(screen, x0, y0, size, size, colorArenaFloor, false)
	for g := -half + gridStep; g < half; g += gridStep {
		ax, ay := v.toScreen(utils.Vec3{X: g, Z: half})
		bx, by := v.toScreen(utils.Vec3{X: g, Z: -half})
		vector.StrokeLine(screen, ax, ay, bx, by, 1, colorGrid, false)
		ax, ay = v.toScreen(utils.Vec3{X: -half, Z: g})
		bx, by = v.toScreen(utils.Vec3{X: half, Z: g})
		vector.StrokeLine(screen, ax, ay, bx, by, 1, colorGrid, false)
	}
	vector.StrokeRect(screen, x0, y0, size, size, 3, colorWall, true)

	drawStation(screen, v, snap.Station)

	for _, e := range snap.Enemies {
		drawEnemy(screen, v, e)
	}
	for _, p := range snap.Projectiles {
		clr := colorEnemyShot
		if p.Owner == components.FactionPlayer {
			clr = colorSandwich
		}
		px, py := v.toScreen(p.Position)
		vector.DrawFilledCircle(screen, px, py, max(v.length(p.Radius), 2), clr, true)
	}

	drawPlayer(screen, v, snap.Player)
}

func drawStation(screen *ebiten.Image, v viewport, st session.StationView) {
	clr := colorStation
	if st.RentDue {
		clr = colorStationDue
	}
	sx, sy := v.toScreen(st.Position)
	r := v.length(st.Radius)
	vector.DrawFilledRect(screen, sx-r, sy-r, 2*r, 2*r, clr, false)
	vector.StrokeCircle(screen, sx, sy, v.length(st.InteractRange), 1, colorWithAlpha(clr, 160), true)
}

func drawEnemy(screen *ebiten.Image, v viewport, e session.EnemyView) {
	clr := colorLunger
	if e.Archetype == components.ArchetypeThrower {
		clr = colorThrower
	}
	ex, ey := v.toScreen(e.Position)
	r := v.length(e.Radius)
	// 离地越高画得越大，表示弹跳高度
	if !e.Grounded {
		r *= float32(1 + 0.08*math.Max(e.Position.Y-e.Radius, 0))
	}
	vector.DrawFilledCircle(screen, ex, ey, r, clr, true)
	if e.Archetype == components.ArchetypeThrower {
		vector.StrokeCircle(screen, ex, ey, r+2, 1.5, colorText, true)
	}
}

func drawPlayer(screen *ebiten.Image, v viewport, p session.PlayerView) {
	clr := colorPlayer
	if p.Dead {
		clr = colorDim
	}
	px, py := v.toScreen(p.Position)
	r := v.length(p.Radius)
	vector.DrawFilledCircle(screen, px, py, r, clr, true)

	// 朝向线
	dir := utils.Vec3{X: math.Sin(p.Yaw), Z: math.Cos(p.Yaw)}
	tx, ty := v.toScreen(p.Position.Add(dir.Scale(p.Radius * 2.5)))
	vector.StrokeLine(screen, px, py, tx, ty, 2, colorText, true)

	if p.HasSandwich {
		vector.DrawFilledCircle(screen, tx, ty, 3, colorSandwich, true)
	} else if p.MakingSandwich {
		vector.StrokeCircle(screen, tx, ty, 3, 1, colorSandwich, true)
	}
}
