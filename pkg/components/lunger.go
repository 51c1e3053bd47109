package components

import "github.com/decker502/rentday/pkg/utils"

// LungerState 弹跳型敌人的行为状态
type LungerState int

const (
	// LungerSeeking 刚生成，尚未着地
	LungerSeeking LungerState = iota
	// LungerAirborne 弹跳中（离地）
	LungerAirborne
	// LungerGrounded 着地，下一次探测命中时朝玩家弹起
	LungerGrounded
)

func (s LungerState) String() string {
	switch s {
	case LungerSeeking:
		return "Seeking"
	case LungerAirborne:
		return "Airborne"
	case LungerGrounded:
		return "Grounded"
	default:
		return "Unknown"
	}
}

// LungerComponent 弹跳型敌人的状态机数据
type LungerComponent struct {
	State LungerState

	// 卡住检测：每隔固定间隔采样一次位移
	StuckTimer float64
	LastSample utils.Vec3
	Sampled    bool // LastSample 是否有效（首次采样前为 false）
}
