package scenes

import (
	"fmt"
	"strings"

	"github.com/decker502/rentday/pkg/game"
	"github.com/decker502/rentday/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// titleFadeIn 标题淡入时长（秒）
const titleFadeIn = 0.8

// TitleScene 标题画面：显示最佳成绩与操作说明，按键进入竞技场
type TitleScene struct {
	manager *SceneManager
	records *game.RecordManager
	keys    KeyState
	face    text.Face
	elapsed float64
}

// NewTitleScene 创建标题画面
func NewTitleScene(manager *SceneManager, records *game.RecordManager, keys KeyState) *TitleScene {
	if keys == nil {
		keys = ebitenKeys{}
	}
	return &TitleScene{
		manager: manager,
		records: records,
		keys:    keys,
		face:    newFace(),
	}
}

// Update 回车、空格或点击进入竞技场
func (t *TitleScene) Update(deltaTime float64) {
	t.elapsed += deltaTime
	start := t.keys.JustPressed(ebiten.KeyEnter) || t.keys.JustPressed(ebiten.KeySpace)
	if _, real := t.keys.(ebitenKeys); real && isPointerJustPressed() {
		start = true
	}
	if start && t.manager != nil {
		t.manager.Load(SceneArena)
	}
}

// Lines 标题画面文本
func (t *TitleScene) Lines() []string {
	lines := []string{
		"R E N T   D A Y",
		"",
		"Survive the day. Pay the rent.",
		"",
	}
	if t.records != nil {
		r := t.records.Records()
		if r.RunsPlayed > 0 {
			lines = append(lines,
				fmt.Sprintf("Best: Day %d, %d points", r.BestRound, r.BestScore),
				fmt.Sprintf("Last: Day %d, %d points (%s)", r.LastRound, r.LastScore, r.LastReason),
				fmt.Sprintf("Runs played: %d", r.RunsPlayed),
				"",
			)
		}
	}
	return append(lines,
		"WASD move   Mouse look   Q / right click make sandwich",
		"Space / left click throw   E pay rent   P pause",
		"",
		"Press Enter to start",
	)
}

// Draw 绘制标题画面
func (t *TitleScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	alpha := utils.EaseOutCubic(t.elapsed / titleFadeIn)
	drawCentered(screen, t.face, strings.Join(t.Lines(), "\n"), ScreenHeight/4, colorText, alpha)
}
