package scenes

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

type mockScene struct {
	updates   int
	draws     int
	deltaTime float64
	saved     bool
}

func (m *mockScene) Update(deltaTime float64) {
	m.updates++
	m.deltaTime = deltaTime
}

func (m *mockScene) Draw(screen *ebiten.Image) { m.draws++ }

func (m *mockScene) SaveOnExit() bool {
	m.saved = true
	return true
}

type plainScene struct{}

func (plainScene) Update(float64)     {}
func (plainScene) Draw(*ebiten.Image) {}

func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Fatal("expected no scene initially")
	}
	// 没有场景时调用不会 panic
	sm.Update(0.016)
	sm.Draw(nil)
	if !sm.SaveOnExit() {
		t.Error("nothing to save should count as success")
	}
}

func TestSceneManagerSwitchTo(t *testing.T) {
	sm := NewSceneManager()
	first, second := &mockScene{}, &mockScene{}

	sm.SwitchTo(first)
	sm.Update(0.016)
	sm.Draw(nil)
	sm.SwitchTo(second)
	sm.Update(0.02)

	if first.updates != 1 || first.draws != 1 {
		t.Errorf("first scene = %+v", first)
	}
	if second.updates != 1 || second.deltaTime != 0.02 {
		t.Errorf("second scene = %+v", second)
	}
}

func TestSceneManagerLoad(t *testing.T) {
	sm := NewSceneManager()
	created := 0
	sm.Register("arena", func() Scene {
		created++
		return &mockScene{}
	})
	sm.Register("broken", func() Scene { return nil })

	tests := []struct {
		name     string
		scene    string
		wantOK   bool
		wantName string
	}{
		{"已注册", "arena", true, "arena"},
		{"未注册保持原场景", "missing", false, "arena"},
		{"工厂返回 nil 保持原场景", "broken", false, "arena"},
		{"再次加载会新建", "arena", true, "arena"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sm.Load(tt.scene); got != tt.wantOK {
				t.Errorf("Load(%q) = %v, want %v", tt.scene, got, tt.wantOK)
			}
			if sm.CurrentName() != tt.wantName {
				t.Errorf("current = %q, want %q", sm.CurrentName(), tt.wantName)
			}
		})
	}
	if created != 2 {
		t.Errorf("factory called %d times, want 2", created)
	}
}

func TestSceneManagerSaveOnExit(t *testing.T) {
	sm := NewSceneManager()
	scene := &mockScene{}
	sm.SwitchTo(scene)
	if !sm.SaveOnExit() || !scene.saved {
		t.Error("saveable scene should be saved")
	}

	sm.SwitchTo(plainScene{})
	if !sm.SaveOnExit() {
		t.Error("scene without SaveOnExit should be skipped")
	}
}
