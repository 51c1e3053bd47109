package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/rentday/pkg/components"
	"github.com/decker502/rentday/pkg/config"
	"github.com/decker502/rentday/pkg/game"
	"github.com/decker502/rentday/pkg/session"
	"github.com/decker502/rentday/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ArenaDeps 竞技场画面的依赖
type ArenaDeps struct {
	Config   *config.GameConfig
	Seed     int64
	Settings *game.SettingsManager // 可为 nil（默认灵敏度）
	Records  *game.RecordManager   // 可为 nil（不记录成绩）
	Feedback game.Feedback         // 音效等额外反馈，可为 nil
	Keys     KeyState              // nil 时读取 Ebitengine 实时输入
}

// ArenaScene 竞技场画面：驱动一局会话并以俯视图渲染
type ArenaScene struct {
	session  *session.Session
	hud      *HUD
	shake    *CameraShake
	settings *game.SettingsManager
	records  *game.RecordManager

	keys     KeyState
	bindings Bindings
	look     utils.LookTracker
	face     text.Face

	yaw, pitch float64
	captured   bool
	paused     bool
	recorded   bool
}

// NewArenaScene 创建竞技场画面并开始开场倒计时
func NewArenaScene(deps ArenaDeps) (*ArenaScene, error) {
	if deps.Config == nil {
		return nil, fmt.Errorf("game config cannot be nil")
	}
	keys := deps.Keys
	if keys == nil {
		keys = ebitenKeys{}
	}

	hud := NewHUD(deps.Records)
	shake := NewCameraShake(deps.Seed)
	s, err := session.New(deps.Config, session.Options{
		Seed:      deps.Seed,
		Presenter: hud,
		Feedback:  game.FeedbackGroup{deps.Feedback, shake},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	scene := &ArenaScene{
		session:  s,
		hud:      hud,
		shake:    shake,
		settings: deps.Settings,
		records:  deps.Records,
		keys:     keys,
		bindings: DefaultBindings(),
		face:     newFace(),
	}
	s.Begin()
	log.Printf("[ArenaScene] 竞技场已就绪")
	return scene, nil
}

// Update 处理输入并推进会话
func (a *ArenaScene) Update(deltaTime float64) {
	a.updatePointer()

	if anyJustPressed(a.keys, a.bindings.Pause) && !a.gameOver() {
		a.paused = !a.paused
		log.Printf("[ArenaScene] 暂停=%v", a.paused)
	}
	if a.gameOver() && anyJustPressed(a.keys, a.bindings.Restart) {
		a.restart()
		return
	}
	if a.paused {
		return
	}

	a.session.SetInput(a.bindings.Read(a.keys, a.yaw, a.pitch, a.captured))
	a.session.Update(deltaTime)
	a.hud.Update(deltaTime)
	a.shake.Update(deltaTime)

	if a.gameOver() {
		a.recorded = true
	}
}

// updatePointer 指针捕获与鼠标视角
func (a *ArenaScene) updatePointer() {
	if _, ok := a.keys.(ebitenKeys); !ok {
		return
	}
	if a.captured && a.keys.JustPressed(ebiten.KeyEscape) {
		a.captured = false
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	} else if !a.captured && isPointerJustPressed() && !a.gameOver() {
		a.captured = true
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}

	x, y := ebiten.CursorPosition()
	dx, dy := a.look.Sample(x, y, a.captured && !a.paused)
	sensitivity := game.DefaultMouseSensitivity
	invertY := false
	if a.settings != nil {
		s := a.settings.GetSettings()
		sensitivity, invertY = s.MouseSensitivity, s.InvertY
	}
	a.yaw, a.pitch = utils.ApplyLook(a.yaw, a.pitch, dx, dy, sensitivity, invertY)
}

func (a *ArenaScene) gameOver() bool {
	return a.session.Round().Phase() == components.PhaseGameOver
}

// restart 重开一局（游戏结束后按 R）
func (a *ArenaScene) restart() {
	a.hud.Reset()
	if err := a.session.Restart(); err != nil {
		log.Printf("[ArenaScene] 重开失败: %v", err)
		return
	}
	a.yaw, a.pitch = 0, 0
	a.paused = false
	a.recorded = false
	a.look.Reset()
}

// SaveOnExit 窗口关闭时：进行中的一局按 "quit" 记录，并保存设置
func (a *ArenaScene) SaveOnExit() bool {
	ok := true
	if !a.recorded && a.records != nil {
		st := a.session.Round().Stats()
		if _, err := a.records.RecordRun(st.Round, st.Score, "quit"); err != nil {
			log.Printf("[ArenaScene] 退出时保存成绩失败: %v", err)
			ok = false
		}
		a.recorded = true
	}
	if a.settings != nil {
		if err := a.settings.Save(); err != nil {
			log.Printf("[ArenaScene] 退出时保存设置失败: %v", err)
			ok = false
		}
	}
	return ok
}

// Draw 绘制竞技场与 HUD
func (a *ArenaScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	ox, oy := a.shake.Offset()
	drawArena(screen, a.session.Snapshot(), ox, oy)
	a.hud.Draw(screen, a.face)

	switch {
	case a.paused:
		drawCentered(screen, a.face, "Paused\nPress P to resume", ScreenHeight/2, colorText, 1)
	case !a.captured && !a.gameOver():
		drawText(screen, a.face, "Click to capture the mouse", 12, ScreenHeight-24, colorDim, 1)
	}
}

// HUD 抬头显示（测试用）
func (a *ArenaScene) HUD() *HUD {
	return a.hud
}

// Session 当前会话
func (a *ArenaScene) Session() *session.Session {
	return a.session
}
