package main

import (
	"fmt"
	"time"

	"github.com/decker502/rentday/pkg/game"
)

// bannerTime 横幅停留时长
const bannerTime = 2500 * time.Millisecond

// textPresenter 终端界面的 HUD 状态
type textPresenter struct {
	records *game.RecordManager
	now     func() time.Time

	health, maxHealth int
	stats             game.RoundStats
	prompt            string

	banner      string
	bannerUntil time.Time

	gameOver string
	newBest  bool
}

func newTextPresenter(records *game.RecordManager, now func() time.Time) *textPresenter {
	if now == nil {
		now = time.Now
	}
	return &textPresenter{records: records, now: now}
}

func (p *textPresenter) reset() {
	*p = textPresenter{records: p.records, now: p.now}
}

func (p *textPresenter) OnHealthChanged(current, max int) {
	p.health, p.maxHealth = current, max
}

func (p *textPresenter) OnStatsChanged(stats game.RoundStats) { p.stats = stats }

func (p *textPresenter) OnRoundStarted(stats game.RoundStats) {
	p.stats = stats
	p.show(fmt.Sprintf("Day %d", stats.Round))
}

func (p *textPresenter) OnRoundEnded(stats game.RoundStats) {
	p.stats = stats
	p.show(fmt.Sprintf("Day %d Complete!  Rent Cost: %d  Your Points: %d", stats.Round, stats.RentCost, stats.Score))
}

func (p *textPresenter) OnGameOver(stats game.RoundStats, reason, message string) {
	p.stats = stats
	p.banner = ""
	p.gameOver = fmt.Sprintf("Game Over! %s  Final Day: %d  Final Points: %d", message, stats.Round, stats.Score)
	if p.records != nil {
		best, err := p.records.RecordRun(stats.Round, stats.Score, reason)
		if err != nil {
			debugf("[Term] 保存成绩失败: %v", err)
		}
		p.newBest = best
	}
}

func (p *textPresenter) OnPrompt(text string) { p.prompt = text }

func (p *textPresenter) show(s string) {
	p.banner = s
	p.bannerUntil = p.now().Add(bannerTime)
}

// statusLine 顶部状态栏
func (p *textPresenter) statusLine() string {
	return fmt.Sprintf("Points: %d  Day: %d  Enemies: %d/%d  Health: %d/%d",
		p.stats.Score, p.stats.Round, p.stats.Kills, p.stats.KillTarget, p.health, p.maxHealth)
}

// message 底部消息：结束信息优先，其次横幅，最后交租提示
func (p *textPresenter) message() string {
	if p.gameOver != "" {
		s := p.gameOver
		if p.newBest {
			s += "  New best!"
		}
		return s + "  [R] restart"
	}
	if p.banner != "" && p.now().Before(p.bannerUntil) {
		return p.banner
	}
	return p.prompt
}
