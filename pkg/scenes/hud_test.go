package scenes

import (
	"strings"
	"testing"

	"github.com/decker502/rentday/pkg/game"
)

func TestHUDStatusLine(t *testing.T) {
	h := NewHUD(nil)
	h.OnHealthChanged(5, 5)
	h.OnStatsChanged(game.RoundStats{Round: 2, Score: 7, Kills: 3, KillTarget: 12, RentCost: 12})

	want := "Points: 7   Day: 2   Enemies: 3/12   Health: 5"
	if got := h.StatusLine(); got != want {
		t.Errorf("StatusLine() = %q, want %q", got, want)
	}

	h.OnHealthChanged(4, 5)
	if h.hurtFlash <= 0 {
		t.Error("losing health should start the hurt flash")
	}
	h.Update(hurtFlashTime)
	if h.hurtFlash > 0 {
		t.Error("hurt flash should expire")
	}
}

func TestHUDBanner(t *testing.T) {
	tests := []struct {
		name      string
		show      func(h *HUD)
		elapsed   float64
		wantText  string
		wantAlpha float64
	}{
		{
			name:      "开场横幅淡入",
			show:      func(h *HUD) { h.OnRoundStarted(game.RoundStats{Round: 3}) },
			elapsed:   0,
			wantText:  "Day 3",
			wantAlpha: 0,
		},
		{
			name:      "横幅完全显示",
			show:      func(h *HUD) { h.OnRoundStarted(game.RoundStats{Round: 1}) },
			elapsed:   1,
			wantText:  "Day 1",
			wantAlpha: 1,
		},
		{
			name:      "结算横幅",
			show:      func(h *HUD) { h.OnRoundEnded(game.RoundStats{Round: 1, RentCost: 10, Score: 12}) },
			elapsed:   1,
			wantText:  "Day 1 Complete!\nRent Cost: 10\nYour Points: 12",
			wantAlpha: 1,
		},
		{
			name:     "横幅过期",
			show:     func(h *HUD) { h.OnRoundStarted(game.RoundStats{Round: 1}) },
			elapsed:  bannerDuration,
			wantText: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHUD(nil)
			tt.show(h)
			h.Update(tt.elapsed)
			text, alpha := h.Banner()
			if text != tt.wantText {
				t.Errorf("Banner() text = %q, want %q", text, tt.wantText)
			}
			if alpha != tt.wantAlpha {
				t.Errorf("Banner() alpha = %v, want %v", alpha, tt.wantAlpha)
			}
		})
	}
}

func TestHUDGameOverRecordsRun(t *testing.T) {
	records := game.NewRecordManager(nil)
	h := NewHUD(records)

	if h.GameOverText() != "" {
		t.Fatal("no game over text before the run ends")
	}
	h.OnRoundStarted(game.RoundStats{Round: 2})
	h.OnGameOver(game.RoundStats{Round: 2, Score: 14}, "health depleted", "Health reached 0!")

	got := h.GameOverText()
	for _, want := range []string{"Game Over!", "Health reached 0!", "Final Day: 2", "Final Points: 14", "New best!", "Press R to restart"} {
		if !strings.Contains(got, want) {
			t.Errorf("GameOverText() missing %q:\n%s", want, got)
		}
	}
	if text, _ := h.Banner(); text != "" {
		t.Errorf("game over should clear the banner, got %q", text)
	}
	if r := records.Records(); r.RunsPlayed != 1 || r.BestRound != 2 || r.LastReason != "health depleted" {
		t.Errorf("records = %+v", r)
	}

	h.Reset()
	if h.GameOverText() != "" || h.records != records {
		t.Error("Reset should clear state but keep the record manager")
	}

	// 更差的一局不显示新纪录
	h.OnGameOver(game.RoundStats{Round: 1, Score: 3}, "could not pay", "Could not pay rent!")
	if strings.Contains(h.GameOverText(), "New best!") {
		t.Error("worse run should not be a new best")
	}
}

func TestHUDPrompt(t *testing.T) {
	h := NewHUD(nil)
	h.OnPrompt("Press E to pay rent (10)")
	if h.Prompt() != "Press E to pay rent (10)" {
		t.Errorf("Prompt() = %q", h.Prompt())
	}
	h.OnPrompt("")
	if h.Prompt() != "" {
		t.Errorf("Prompt() = %q, want empty", h.Prompt())
	}
}
