package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 按名称创建场景，避免场景之间互相引用造成循环依赖
type SceneFactory func() Scene

// SceneManager 管理当前活动场景
// 任意时刻只有一个场景的 Update 和 Draw 会被调用。
type SceneManager struct {
	currentScene Scene
	currentName  string
	factories    map[string]SceneFactory
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{
		factories: make(map[string]SceneFactory),
	}
}

// Register 注册场景工厂
func (sm *SceneManager) Register(name string, factory SceneFactory) {
	sm.factories[name] = factory
}

// SwitchTo 直接切换到给定场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
	sm.currentName = ""
}

// Load 用已注册的工厂新建场景并切换过去
//
// 返回：
//   - bool: 名称未注册或工厂返回 nil 时为 false，当前场景保持不变
func (sm *SceneManager) Load(name string) bool {
	factory, ok := sm.factories[name]
	if !ok {
		log.Printf("[SceneManager] 错误: 场景 %q 未注册", name)
		return false
	}

	scene := factory()
	if scene == nil {
		log.Printf("[SceneManager] 错误: 无法创建场景 %q", name)
		return false
	}
	sm.currentScene = scene
	sm.currentName = name
	log.Printf("[SceneManager] 切换到场景: %s", name)
	return true
}

// GetCurrentScene 当前场景，没有活动场景时为 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentName 当前场景的注册名（SwitchTo 直接切换时为空）
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// SaveOnExit 让当前场景（若实现了 Saveable）落盘
func (sm *SceneManager) SaveOnExit() bool {
	if s, ok := sm.currentScene.(Saveable); ok {
		return s.SaveOnExit()
	}
	return true
}

// Update 更新当前场景
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
