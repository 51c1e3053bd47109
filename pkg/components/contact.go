package components

import (
	"github.com/decker502/rentday/pkg/ecs"
	"github.com/decker502/rentday/pkg/utils"
)

// SurfaceKind 接触的静态表面类型
type SurfaceKind int

const (
	SurfaceNone SurfaceKind = iota // 与另一实体接触
	SurfaceFloor
	SurfaceWall
)

// Contact 一次接触开始事件
type Contact struct {
	Other   ecs.EntityID // 0 表示静态表面
	Surface SurfaceKind
	Normal  utils.Vec3 // 指向本实体一侧的接触法线
	Point   utils.Vec3
}

// ContactComponent 本帧的接触开始事件列表
// 物理系统写入，战斗相关系统读取，帧末清空
type ContactComponent struct {
	Events []Contact
	// Touching 记录上一帧仍在接触的对象，用于只在"开始接触"时产生事件
	Touching map[ecs.EntityID]bool
	OnFloor  bool
	OnWall   bool
}
