package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/rentday/pkg/game"
	"github.com/decker502/rentday/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 横幅与受伤闪烁时长（秒）
const (
	bannerDuration = 2.5
	bannerFadeIn   = 0.25
	bannerFadeOut  = 0.6
	hurtFlashTime  = 0.3
)

// HUD 竞技场画面的抬头显示，实现 game.Presenter
//
// 游戏结束时把本局结果交给 RecordManager 记录最佳成绩。
type HUD struct {
	records *game.RecordManager

	health    int
	maxHealth int
	stats     game.RoundStats
	prompt    string

	banner        string
	bannerElapsed float64

	hurtFlash float64

	gameOver        bool
	gameOverMessage string
	finalStats      game.RoundStats
	newBest         bool
}

// NewHUD 创建 HUD，records 可为 nil（不记录成绩）
func NewHUD(records *game.RecordManager) *HUD {
	return &HUD{records: records}
}

// Reset 重开时清空全部显示状态
func (h *HUD) Reset() {
	*h = HUD{records: h.records}
}

func (h *HUD) OnHealthChanged(current, max int) {
	if current < h.health {
		h.hurtFlash = hurtFlashTime
	}
	h.health, h.maxHealth = current, max
}

func (h *HUD) OnStatsChanged(stats game.RoundStats) {
	h.stats = stats
}

func (h *HUD) OnRoundStarted(stats game.RoundStats) {
	h.stats = stats
	h.showBanner(fmt.Sprintf("Day %d", stats.Round))
}

func (h *HUD) OnRoundEnded(stats game.RoundStats) {
	h.stats = stats
	h.showBanner(fmt.Sprintf("Day %d Complete!\nRent Cost: %d\nYour Points: %d", stats.Round, stats.RentCost, stats.Score))
}

func (h *HUD) OnGameOver(stats game.RoundStats, reason, message string) {
	h.stats = stats
	h.finalStats = stats
	h.gameOver = true
	h.gameOverMessage = message
	h.banner = ""

	if h.records == nil {
		return
	}
	newBest, err := h.records.RecordRun(stats.Round, stats.Score, reason)
	if err != nil {
		log.Printf("[HUD] 保存成绩失败: %v", err)
	}
	h.newBest = newBest
}

func (h *HUD) OnPrompt(text string) {
	h.prompt = text
}

func (h *HUD) showBanner(s string) {
	h.banner = s
	h.bannerElapsed = 0
}

// Update 推进横幅与闪烁计时
func (h *HUD) Update(deltaTime float64) {
	if h.banner != "" {
		h.bannerElapsed += deltaTime
		if h.bannerElapsed >= bannerDuration {
			h.banner = ""
		}
	}
	if h.hurtFlash > 0 {
		h.hurtFlash -= deltaTime
	}
}

// StatusLine 顶部状态栏文本
func (h *HUD) StatusLine() string {
	return fmt.Sprintf("Points: %d   Day: %d   Enemies: %d/%d   Health: %d",
		h.stats.Score, h.stats.Round, h.stats.Kills, h.stats.KillTarget, h.health)
}

// Banner 当前横幅文本与透明度（没有横幅时为空串）
func (h *HUD) Banner() (string, float64) {
	if h.banner == "" {
		return "", 0
	}
	return h.banner, utils.FadeInOut(h.bannerElapsed, bannerDuration, bannerFadeIn, bannerFadeOut)
}

// GameOverText 结束面板文本，未结束时为空串
func (h *HUD) GameOverText() string {
	if !h.gameOver {
		return ""
	}
	s := fmt.Sprintf("Game Over!\n%s\n\nFinal Day: %d\nFinal Points: %d",
		h.gameOverMessage, h.finalStats.Round, h.finalStats.Score)
	if h.newBest {
		s += "\nNew best!"
	}
	return s + "\n\nPress R to restart"
}

// Prompt 交租台提示
func (h *HUD) Prompt() string {
	return h.prompt
}

// Draw 绘制 HUD
func (h *HUD) Draw(screen *ebiten.Image, face text.Face) {
	drawText(screen, face, h.StatusLine(), 12, 10, colorText, 1)
	h.drawHealthBar(screen)

	if h.prompt != "" {
		drawCentered(screen, face, h.prompt, ScreenHeight-48, colorText, 1)
	}
	if banner, alpha := h.Banner(); banner != "" {
		drawCentered(screen, face, banner, ScreenHeight/3, colorText, alpha)
	}
	if h.hurtFlash > 0 {
		a := uint8(120 * utils.Clamp01(h.hurtFlash/hurtFlashTime))
		vector.DrawFilledRect(screen, 0, 0, ScreenWidth, ScreenHeight, colorWithAlpha(colorDanger, a), false)
	}
	if s := h.GameOverText(); s != "" {
		vector.DrawFilledRect(screen, 0, 0, ScreenWidth, ScreenHeight, colorWithAlpha(colorBackground, 200), false)
		drawCentered(screen, face, s, ScreenHeight/3, colorText, 1)
	}
}

func (h *HUD) drawHealthBar(screen *ebiten.Image) {
	if h.maxHealth <= 0 {
		return
	}
	const x, y, w, hgt = 12, 32, 160, 10
	ratio := float32(h.health) / float32(h.maxHealth)
	vector.DrawFilledRect(screen, x, y, w, hgt, colorGrid, false)
	vector.DrawFilledRect(screen, x, y, w*ratio, hgt, colorDanger, false)
	vector.StrokeRect(screen, x, y, w, hgt, 1, colorWall, false)
}
