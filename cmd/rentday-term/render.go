package main

import (
	"math"
	"strings"

	"github.com/decker502/rentday/pkg/components"
	"github.com/decker502/rentday/pkg/session"
	"github.com/decker502/rentday/pkg/utils"
	"github.com/gdamore/tcell/v2"
)

// 终端字符单元约为 1:2，横向每个世界单位占两列
const cellAspect = 2.0

var (
	styleDefault  = tcell.StyleDefault
	styleWall     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFloor    = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue).Bold(true)
	styleDead     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleLunger   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleThrower  = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	styleShot     = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleSandwich = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleStation  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleDue      = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleStatus   = tcell.StyleDefault.Reverse(true)
)

// grid 竞技场在终端上的映射区域
type grid struct {
	left, top     int
	width, height int
	half          float64
}

// fitGrid 在 w×h 的区域内放下边长 2*half 的竞技场（上方 1 行状态栏，下方 2 行消息）
func fitGrid(w, h int, half float64) grid {
	rows := h - 3
	cols := int(float64(rows) * cellAspect)
	if cols > w {
		cols = w
		rows = int(float64(cols) / cellAspect)
	}
	rows = max(rows, 3)
	cols = max(cols, 3)
	return grid{left: (w - cols) / 2, top: 1, width: cols, height: rows, half: half}
}

// cell 世界坐标到字符格，越界时 ok 为 false
func (g grid) cell(p utils.Vec3) (x, y int, ok bool) {
	fx := (p.X + g.half) / (2 * g.half)
	fz := (g.half - p.Z) / (2 * g.half)
	x = g.left + int(fx*float64(g.width-1)+0.5)
	y = g.top + int(fz*float64(g.height-1)+0.5)
	ok = x >= g.left && x < g.left+g.width && y >= g.top && y < g.top+g.height
	return x, y, ok
}

// facingRune 八方向朝向字符
func facingRune(yaw float64) rune {
	arrows := []rune{'^', '/', '>', '\\', 'v', '/', '<', '\\'}
	// yaw=0 朝 +z（屏幕上方），顺时针为正
	i := int(math.Round(yaw/(math.Pi/4))) % 8
	if i < 0 {
		i += 8
	}
	return arrows[i]
}

func putString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawSnapshot 绘制整个终端画面
func drawSnapshot(screen tcell.Screen, snap session.Snapshot, hud *textPresenter, paused bool) {
	screen.Clear()
	w, h := screen.Size()
	g := fitGrid(w, h, snap.ArenaHalfSize)

	status := hud.statusLine()
	putString(screen, 0, 0, status+strings.Repeat(" ", max(w-len(status), 0)), styleStatus)

	for y := g.top; y < g.top+g.height; y++ {
		for x := g.left; x < g.left+g.width; x++ {
			r, st := '.', styleFloor
			if y == g.top || y == g.top+g.height-1 || x == g.left || x == g.left+g.width-1 {
				r, st = '#', styleWall
			}
			screen.SetContent(x, y, r, nil, st)
		}
	}

	st := snap.Station
	if x, y, ok := g.cell(st.Position); ok {
		style := styleStation
		if st.RentDue {
			style = styleDue
		}
		screen.SetContent(x, y, '$', nil, style)
	}

	for _, e := range snap.Enemies {
		x, y, ok := g.cell(e.Position)
		if !ok {
			continue
		}
		r, style := 'l', styleLunger
		if e.Archetype == components.ArchetypeThrower {
			r, style = 't', styleThrower
		}
		if !e.Grounded {
			r -= 'a' - 'A'
		}
		screen.SetContent(x, y, r, nil, style)
	}

	for _, p := range snap.Projectiles {
		x, y, ok := g.cell(p.Position)
		if !ok {
			continue
		}
		if p.Owner == components.FactionPlayer {
			screen.SetContent(x, y, '*', nil, styleSandwich)
		} else {
			screen.SetContent(x, y, 'o', nil, styleShot)
		}
	}

	if x, y, ok := g.cell(snap.Player.Position); ok {
		style := stylePlayer
		if snap.Player.Dead {
			style = styleDead
		}
		screen.SetContent(x, y, '@', nil, style)
		dir := utils.Vec3{X: math.Sin(snap.Player.Yaw), Z: math.Cos(snap.Player.Yaw)}
		if fx, fy, ok := g.cell(snap.Player.Position.Add(dir.Scale(2 * g.half / float64(g.height)))); ok && (fx != x || fy != y) {
			facing := styleDefault
			if snap.Player.HasSandwich {
				facing = styleSandwich
			}
			screen.SetContent(fx, fy, facingRune(snap.Player.Yaw), nil, facing)
		}
	}

	msg := hud.message()
	if paused {
		msg = "Paused - press P to resume"
	}
	putString(screen, 0, h-2, msg, styleDefault)
	putString(screen, 0, h-1, "WASD move  J/L turn  Q make  Space throw  E pay  P pause  Esc quit", styleWall)
	screen.Show()
}
