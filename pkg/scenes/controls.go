package scenes

import (
	"github.com/decker502/rentday/pkg/session"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyState 键盘鼠标状态来源（测试中可替换）
type KeyState interface {
	Pressed(key ebiten.Key) bool
	JustPressed(key ebiten.Key) bool
	MouseJustPressed(button ebiten.MouseButton) bool
}

// ebitenKeys 读取 Ebitengine 的实时输入
type ebitenKeys struct{}

func (ebitenKeys) Pressed(key ebiten.Key) bool     { return ebiten.IsKeyPressed(key) }
func (ebitenKeys) JustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }
func (ebitenKeys) MouseJustPressed(button ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(button)
}

// Bindings 按键绑定
type Bindings struct {
	Forward, Back, Left, Right []ebiten.Key
	MakeSandwich               []ebiten.Key
	Throw                      []ebiten.Key
	Interact                   []ebiten.Key
	Restart                    []ebiten.Key
	Pause                      []ebiten.Key

	MakeSandwichButton ebiten.MouseButton
	ThrowButton        ebiten.MouseButton
}

// DefaultBindings WASD/方向键移动，右键或 Q 做三明治，左键或空格投掷，E 交互
func DefaultBindings() Bindings {
	return Bindings{
		Forward:            []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp},
		Back:               []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
		Left:               []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		Right:              []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		MakeSandwich:       []ebiten.Key{ebiten.KeyQ},
		Throw:              []ebiten.Key{ebiten.KeySpace},
		Interact:           []ebiten.Key{ebiten.KeyE},
		Restart:            []ebiten.Key{ebiten.KeyR},
		Pause:              []ebiten.Key{ebiten.KeyP},
		MakeSandwichButton: ebiten.MouseButtonRight,
		ThrowButton:        ebiten.MouseButtonLeft,
	}
}

func anyPressed(keys KeyState, list []ebiten.Key) bool {
	for _, k := range list {
		if keys.Pressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys KeyState, list []ebiten.Key) bool {
	for _, k := range list {
		if keys.JustPressed(k) {
			return true
		}
	}
	return false
}

// Read 把按键状态映射为会话输入
//
// 鼠标按键只在指针已捕获时生效（未捕获时的点击用于捕获指针）。
func (b Bindings) Read(keys KeyState, yaw, pitch float64, pointerCaptured bool) session.Input {
	in := session.Input{Yaw: yaw, Pitch: pitch}
	if anyPressed(keys, b.Forward) {
		in.MoveZ++
	}
	if anyPressed(keys, b.Back) {
		in.MoveZ--
	}
	if anyPressed(keys, b.Right) {
		in.MoveX++
	}
	if anyPressed(keys, b.Left) {
		in.MoveX--
	}

	in.MakeSandwich = anyJustPressed(keys, b.MakeSandwich)
	in.Throw = anyJustPressed(keys, b.Throw)
	in.Interact = anyJustPressed(keys, b.Interact)
	if pointerCaptured {
		in.MakeSandwich = in.MakeSandwich || keys.MouseJustPressed(b.MakeSandwichButton)
		in.Throw = in.Throw || keys.MouseJustPressed(b.ThrowButton)
	}
	return in
}
