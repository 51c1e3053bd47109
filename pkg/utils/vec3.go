// Package utils 提供通用工具函数：向量运算、缓动曲线与视角换算，不依赖任何前端库
package utils

import "math"

// Vec3 三维向量（世界坐标，Y 轴向上）
type Vec3 struct {
	X, Y, Z float64
}

// Up 世界上方向
var Up = Vec3{Y: 1}

// Add 向量加法
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub 向量减法
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale 数乘
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot 点积
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Len 向量长度
func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize 单位化；零向量返回零向量
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-9 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Horizontal 去掉垂直分量（投影到 XZ 平面）
func (v Vec3) Horizontal() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

// Distance 两点距离
func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Len()
}

// HorizontalDistance 两点在 XZ 平面上的距离
func (v Vec3) HorizontalDistance(o Vec3) float64 {
	return v.Sub(o).Horizontal().Len()
}

// ReflectHorizontal 将水平速度关于水平法线反射，垂直分量保持不变
//
// 只用于竖直表面（墙）的弹性反弹：法线先投影到 XZ 平面再单位化，
// 因此 Y 分量永远不会被反射。
func (v Vec3) ReflectHorizontal(normal Vec3) Vec3 {
	n := normal.Horizontal().Normalize()
	h := v.Horizontal()
	d := h.Dot(n)
	if d >= 0 {
		// 已经在远离表面，不需要反射
		return v
	}
	r := h.Sub(n.Scale(2 * d))
	return Vec3{X: r.X, Y: v.Y, Z: r.Z}
}

// YawTo 从 v 指向 target 的水平朝向角（弧度，0 指向 +Z，顺时针增大）
func (v Vec3) YawTo(target Vec3) float64 {
	d := target.Sub(v)
	return math.Atan2(d.X, d.Z)
}

// Forward 根据朝向角与俯仰角计算前方单位向量
func Forward(yaw, pitch float64) Vec3 {
	cp := math.Cos(pitch)
	return Vec3{
		X: math.Sin(yaw) * cp,
		Y: math.Sin(pitch),
		Z: math.Cos(yaw) * cp,
	}
}

// Clamp 将值限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
