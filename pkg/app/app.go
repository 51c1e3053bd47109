// Package app 提供游戏应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载配置、打开本地存档、
// 创建音频反馈和场景管理器，并实现 ebiten.Game。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/rentday/pkg/config"
	"github.com/decker502/rentday/pkg/game"
	"github.com/decker502/rentday/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 游戏配置路径，为空时使用内嵌配置
	ConfigPath string
	// Seed 刷怪随机种子（0 表示固定默认种子）
	Seed int64
	// SkipTitle 跳过标题画面，直接进入竞技场
	SkipTitle bool
	// ProfileName 本地存档名，为空时使用 game.DefaultAppName
	ProfileName string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *scenes.SceneManager
	profile      *game.Profile
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 使用内嵌配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	path := cfg.ConfigPath
	if path == "" {
		path = config.DefaultGameConfigPath
	}
	gameConfig, err := config.LoadGameConfig(path)
	if err != nil {
		return nil, fmt.Errorf("游戏配置加载失败: %w", err)
	}
	log.Printf("[App] 已加载游戏配置: %s", path)

	profileName := cfg.ProfileName
	if profileName == "" {
		profileName = game.DefaultAppName
	}
	profile := game.OpenProfile(profileName)

	audioContext := audio.NewContext(game.DefaultSampleRate)
	tones := scenes.NewToneFeedback(audioContext, profile.Settings)
	log.Printf("[App] 音效反馈已初始化 (%d Hz)", game.DefaultSampleRate)

	sceneManager := scenes.NewSceneManager()
	sceneManager.Register(scenes.SceneTitle, func() scenes.Scene {
		return scenes.NewTitleScene(sceneManager, profile.Records, nil)
	})
	sceneManager.Register(scenes.SceneArena, func() scenes.Scene {
		arena, err := scenes.NewArenaScene(scenes.ArenaDeps{
			Config:   gameConfig,
			Seed:     cfg.Seed,
			Settings: profile.Settings,
			Records:  profile.Records,
			Feedback: tones,
		})
		if err != nil {
			log.Printf("[App] 竞技场创建失败: %v", err)
			return nil
		}
		return arena
	})

	start := scenes.SceneTitle
	if cfg.SkipTitle {
		log.Printf("[App] SkipTitle enabled, starting in the arena")
		start = scenes.SceneArena
	}
	if !sceneManager.Load(start) {
		return nil, fmt.Errorf("无法加载初始场景 %q", start)
	}

	if profile.Settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		profile:      profile,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次；关闭窗口时保存存档并退出
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		if !a.sceneManager.SaveOnExit() {
			log.Printf("[App] 退出时保存失败")
		}
		if err := a.profile.Settings.Save(); err != nil {
			log.Printf("[App] 保存设置失败: %v", err)
		}
		return ebiten.Termination
	}

	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(scenes.ScreenWidth, scenes.ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(fullscreen)
	if !fullscreen {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	}
	a.profile.Settings.SetFullscreen(fullscreen)
	log.Printf("[App] 全屏=%v", fullscreen)
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时两侧留黑，并用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return scenes.ScreenWidth, scenes.ScreenHeight
}

// Run 设置窗口并进入主循环，正常关闭窗口时返回 nil
func (a *App) Run(title string) error {
	ebiten.SetWindowSize(scenes.ScreenWidth, scenes.ScreenHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
