// rentday-term 在终端里运行同一套生存循环
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/decker502/rentday/pkg/config"
	"github.com/decker502/rentday/pkg/game"
	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
)

func envInt64(key string, fallback int64) int64 {
	if n, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil {
		return n
	}
	return fallback
}

func loadConfig(path string) (*config.GameConfig, error) {
	if path == "" {
		return config.DefaultGameConfig(), nil
	}
	return config.LoadGameConfig(path)
}

// play 运行终端界面直到退出，返回前总会关闭音频和终端
func play(screen tcell.Screen, cfg *config.GameConfig, seed int64, records *game.RecordManager, sound *speakerFeedback) error {
	defer sound.close()
	defer screen.Fini()

	t, err := newTerminal(screen, cfg, seed, records, sound, nil)
	if err != nil {
		return fmt.Errorf("会话创建失败: %w", err)
	}
	t.run()
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "读取 .env 失败: %v\n", err)
	}

	configPath := flag.String("config", os.Getenv("RENTDAY_CONFIG"), "游戏配置文件路径（默认使用内置默认值）")
	seed := flag.Int64("seed", envInt64("RENTDAY_SEED", 0), "刷怪随机种子")
	logFile := flag.String("log", os.Getenv("RENTDAY_LOG"), "日志文件（终端被界面占用，日志只能写文件）")
	profile := flag.String("profile", game.DefaultAppName, "本地存档名")
	flag.Parse()

	// tcell 接管终端后不能再往 stderr 打日志
	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "无法打开日志文件: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法创建终端: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "无法初始化终端: %v\n", err)
		os.Exit(1)
	}

	p := game.OpenProfile(*profile)
	sound := newSpeakerFeedback(p.Settings, func() { _ = screen.Beep() })
	if err := play(screen, cfg, *seed, p.Records, sound); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	r := p.Records.Records()
	fmt.Printf("Best: Day %d, %d points (runs: %d)\n", r.BestRound, r.BestScore, r.RunsPlayed)
}
