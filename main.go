package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/decker502/rentday/pkg/app"
	"github.com/decker502/rentday/pkg/embedded"
	"github.com/joho/godotenv"
)

// envBool 读取布尔环境变量，无法解析时返回 fallback
func envBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func main() {
	// .env 可选，命令行参数优先于环境变量
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[Main] 读取 .env 失败: %v", err)
	}

	configPath := flag.String("config", os.Getenv("RENTDAY_CONFIG"), "游戏配置文件路径（默认使用内嵌配置）")
	seed := flag.Int64("seed", envInt64("RENTDAY_SEED", 0), "刷怪随机种子")
	verbose := flag.Bool("verbose", envBool("RENTDAY_VERBOSE", false), "显示详细日志")
	skipTitle := flag.Bool("skip-title", false, "跳过标题画面")
	profile := flag.String("profile", "", "本地存档名")
	flag.Parse()

	embedded.Init(dataFS)

	game, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		ConfigPath:  *configPath,
		Seed:        *seed,
		SkipTitle:   *skipTitle,
		ProfileName: *profile,
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}

	if err := game.Run("Rent Day"); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
