package utils

import "math"

// MaxPitch 俯仰角上限（弧度），避免视角翻转
const MaxPitch = 1.4

// LookTracker 把逐帧的指针位置转换为视角增量
//
// 指针捕获开始（或中断后恢复）的第一帧只记录位置、不产生增量，
// 避免光标从窗口外跳入时视角猛转。
type LookTracker struct {
	lastX, lastY int
	valid        bool
}

// Sample 记录本帧指针位置
//
// 参数：
//   - x, y: 指针位置
//   - active: 指针是否处于捕获状态（未捕获时重置）
//
// 返回：
//   - dx, dy: 相对上一帧的位移
func (t *LookTracker) Sample(x, y int, active bool) (dx, dy float64) {
	if !active {
		t.valid = false
		return 0, 0
	}
	if t.valid {
		dx, dy = float64(x-t.lastX), float64(y-t.lastY)
	}
	t.lastX, t.lastY = x, y
	t.valid = true
	return dx, dy
}

// Reset 下一次 Sample 重新建立基准
func (t *LookTracker) Reset() {
	t.valid = false
}

// ApplyLook 把指针位移换算为新的偏航/俯仰角
//
// 向右移动增大偏航；向上移动抬头（invertY 时相反）。
// 偏航角规范到 (-π, π]，俯仰角夹在 ±MaxPitch。
func ApplyLook(yaw, pitch, dx, dy, sensitivity float64, invertY bool) (float64, float64) {
	yaw += dx * sensitivity
	if invertY {
		pitch += dy * sensitivity
	} else {
		pitch -= dy * sensitivity
	}
	yaw = math.Remainder(yaw, 2*math.Pi)
	return yaw, Clamp(pitch, -MaxPitch, MaxPitch)
}
