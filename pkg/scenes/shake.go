package scenes

import (
	"math/rand"

	"github.com/decker502/rentday/pkg/game"
	"github.com/decker502/rentday/pkg/utils"
)

type shakeProfile struct {
	duration  float64
	magnitude float64
}

// 各反馈事件对应的震动强度（像素）
var shakeProfiles = map[game.FeedbackEvent]shakeProfile{
	game.FeedbackPlayerHurt:  {duration: 0.25, magnitude: 6},
	game.FeedbackPlayerDied:  {duration: 0.5, magnitude: 10},
	game.FeedbackEnemyKilled: {duration: 0.1, magnitude: 2},
}

// CameraShake 镜头震动，实现 game.Feedback
//
// 较弱的震动不会打断正在进行的较强震动。
type CameraShake struct {
	rng *rand.Rand

	duration  float64
	magnitude float64
	elapsed   float64
}

// NewCameraShake 创建镜头震动
func NewCameraShake(seed int64) *CameraShake {
	return &CameraShake{rng: rand.New(rand.NewSource(seed))}
}

// Play 触发事件对应的震动
func (c *CameraShake) Play(event game.FeedbackEvent) {
	p, ok := shakeProfiles[event]
	if !ok {
		return
	}
	if c.Active() && c.currentMagnitude() >= p.magnitude {
		return
	}
	c.duration, c.magnitude, c.elapsed = p.duration, p.magnitude, 0
}

// Update 推进震动计时
func (c *CameraShake) Update(deltaTime float64) {
	if c.Active() {
		c.elapsed += deltaTime
	}
}

// Active 是否正在震动
func (c *CameraShake) Active() bool {
	return c.duration > 0 && c.elapsed < c.duration
}

func (c *CameraShake) currentMagnitude() float64 {
	if !c.Active() {
		return 0
	}
	return c.magnitude * utils.ShakeDamper(c.elapsed/c.duration)
}

// Offset 本帧画面偏移
func (c *CameraShake) Offset() (float64, float64) {
	m := c.currentMagnitude()
	if m == 0 {
		return 0, 0
	}
	return (c.rng.Float64()*2 - 1) * m, (c.rng.Float64()*2 - 1) * m
}
