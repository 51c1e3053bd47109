package components

import "github.com/decker502/rentday/pkg/utils"

// TransformComponent 实体在竞技场中的位置与朝向
type TransformComponent struct {
	Position utils.Vec3
	Yaw      float64 // 水平朝向（弧度），0 指向 +Z
}
