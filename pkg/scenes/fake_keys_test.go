package scenes

import "github.com/hajimehoshi/ebiten/v2"

// fakeKeys 可编程的按键状态；just 在每次 tick 后清空
type fakeKeys struct {
	held    map[ebiten.Key]bool
	just    map[ebiten.Key]bool
	buttons map[ebiten.MouseButton]bool
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{
		held:    map[ebiten.Key]bool{},
		just:    map[ebiten.Key]bool{},
		buttons: map[ebiten.MouseButton]bool{},
	}
}

func (f *fakeKeys) Pressed(key ebiten.Key) bool     { return f.held[key] }
func (f *fakeKeys) JustPressed(key ebiten.Key) bool { return f.just[key] }
func (f *fakeKeys) MouseJustPressed(button ebiten.MouseButton) bool {
	return f.buttons[button]
}

func (f *fakeKeys) tap(key ebiten.Key) { f.just[key] = true }

func (f *fakeKeys) tick() {
	clear(f.just)
	clear(f.buttons)
}
