package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 鼠标灵敏度范围（弧度/像素）
const (
	MinMouseSensitivity     = 0.0005
	MaxMouseSensitivity     = 0.02
	DefaultMouseSensitivity = 0.003
)

// GameSettings 全局游戏设置
type GameSettings struct {
	SoundVolume      float64 `yaml:"soundVolume"`      // 音效音量 0.0 ~ 1.0
	SoundEnabled     bool    `yaml:"soundEnabled"`     // 音效开关
	MouseSensitivity float64 `yaml:"mouseSensitivity"` // 视角灵敏度
	InvertY          bool    `yaml:"invertY"`          // 反转俯仰
	Fullscreen       bool    `yaml:"fullscreen"`       // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		SoundVolume:      0.8,
		SoundEnabled:     true,
		MouseSensitivity: DefaultMouseSensitivity,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *GameSettings
}

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建设置管理器
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（降级模式）
//
// 加载失败不是致命错误，会回退到默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm, nil
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或没有存档时使用默认设置
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 在默认值之上覆盖，旧存档缺少的新字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)
	loaded.MouseSensitivity = clampSensitivity(loaded.MouseSensitivity)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// 降级模式下直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置（返回内部实例）
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetSoundVolume 设置音效音量，限制在 0.0 ~ 1.0
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetSoundEnabled 设置音效开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetMouseSensitivity 设置视角灵敏度
func (sm *SettingsManager) SetMouseSensitivity(value float64) {
	sm.settings.MouseSensitivity = clampSensitivity(value)
}

// SetInvertY 设置俯仰反转
func (sm *SettingsManager) SetInvertY(enabled bool) {
	sm.settings.InvertY = enabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// EffectiveVolume 实际播放音量（关闭音效时为 0）
func (sm *SettingsManager) EffectiveVolume() float64 {
	if sm == nil {
		return DefaultSettings().SoundVolume
	}
	if !sm.settings.SoundEnabled {
		return 0
	}
	return sm.settings.SoundVolume
}

func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}

func clampSensitivity(value float64) float64 {
	if value <= 0 {
		return DefaultMouseSensitivity
	}
	if value < MinMouseSensitivity {
		return MinMouseSensitivity
	}
	if value > MaxMouseSensitivity {
		return MaxMouseSensitivity
	}
	return value
}
