package components

import "github.com/decker502/rentday/pkg/utils"

// RigidBodyComponent 最小竞技场物理所需的刚体数据
// 所有实体都用球体近似
type RigidBodyComponent struct {
	Velocity   utils.Vec3
	Radius     float64
	UseGravity bool
	Solid      bool // 是否参与实体间的推开（弹体为 false，只产生接触事件）
	Static     bool // 静态物体（交租台）：不积分、不被推开
	Grounded   bool // 物理系统每帧更新
}
