package utils

import "math"

// 缓动函数
//
// 输入进度 t 会先夹到 [0, 1]，返回值同样落在 [0, 1]。
// 参考：https://easings.net/

// Clamp01 把 t 夹到 [0, 1]
func Clamp01(t float64) float64 {
	return Clamp(t, 0, 1)
}

// EaseOutCubic 三次方缓出：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	t = Clamp01(t)
	return 1 - math.Pow(1-t, 3)
}

// EaseInQuad 二次方缓入
func EaseInQuad(t float64) float64 {
	t = Clamp01(t)
	return t * t
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ShakeDamper 镜头震动衰减系数
// 前 3/4 时长保持满幅，最后 1/4 线性衰减到 0
func ShakeDamper(progress float64) float64 {
	return 1 - Clamp01(4*progress-3)
}

// FadeInOut 横幅透明度：fadeIn 秒淡入，保持，最后 fadeOut 秒淡出
//
// 参数：
//   - elapsed: 已显示时长
//   - total: 总显示时长（<=0 表示常驻，只淡入）
func FadeInOut(elapsed, total, fadeIn, fadeOut float64) float64 {
	alpha := 1.0
	if fadeIn > 0 && elapsed < fadeIn {
		alpha = EaseOutCubic(elapsed / fadeIn)
	}
	if total > 0 {
		if elapsed >= total {
			return 0
		}
		if remaining := total - elapsed; fadeOut > 0 && remaining < fadeOut {
			alpha = math.Min(alpha, EaseInQuad(remaining/fadeOut))
		}
	}
	return alpha
}
