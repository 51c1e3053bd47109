package scenes

import (
	"testing"

	"github.com/decker502/rentday/pkg/game"
)

func TestCameraShake(t *testing.T) {
	c := NewCameraShake(7)
	if x, y := c.Offset(); x != 0 || y != 0 || c.Active() {
		t.Fatalf("idle shake offset = (%v, %v)", x, y)
	}

	c.Play(game.FeedbackRentPaid)
	if c.Active() {
		t.Error("events without a profile should not shake")
	}

	c.Play(game.FeedbackPlayerHurt)
	if !c.Active() {
		t.Fatal("player hurt should shake")
	}
	x, y := c.Offset()
	if x < -6 || x > 6 || y < -6 || y > 6 {
		t.Errorf("offset (%v, %v) exceeds magnitude 6", x, y)
	}

	// 较弱的击杀震动不覆盖受伤震动
	c.Play(game.FeedbackEnemyKilled)
	if c.magnitude != 6 {
		t.Errorf("weaker shake replaced stronger one: magnitude = %v", c.magnitude)
	}

	// 更强的死亡震动可以覆盖
	c.Play(game.FeedbackPlayerDied)
	if c.magnitude != 10 || c.elapsed != 0 {
		t.Errorf("stronger shake should restart: magnitude=%v elapsed=%v", c.magnitude, c.elapsed)
	}

	c.Update(0.6)
	if c.Active() {
		t.Error("shake should end after its duration")
	}
	if x, y := c.Offset(); x != 0 || y != 0 {
		t.Errorf("offset after end = (%v, %v)", x, y)
	}
}

func TestCameraShakeDecays(t *testing.T) {
	c := NewCameraShake(1)
	c.Play(game.FeedbackPlayerDied)

	c.Update(0.25)
	if m := c.currentMagnitude(); m != 10 {
		t.Errorf("magnitude at half time = %v, want 10", m)
	}
	c.Update(0.2)
	if m := c.currentMagnitude(); m <= 0 || m >= 10 {
		t.Errorf("magnitude near end = %v, want in (0, 10)", m)
	}
}
