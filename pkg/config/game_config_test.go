package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/decker502/rentday/pkg/embedded"
)

func TestDefaultGameConfigIsValid(t *testing.T) {
	if err := DefaultGameConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

// TestDefaultMatchesDataFile 内嵌 yaml 与 Go 默认值保持一致
func TestDefaultMatchesDataFile(t *testing.T) {
	cfg, err := LoadGameConfig(filepath.Join("..", "..", "data", "game_config.yaml"))
	if err != nil {
		t.Fatalf("LoadGameConfig failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultGameConfig()) {
		t.Errorf("data/game_config.yaml differs from DefaultGameConfig()\n got: %+v\nwant: %+v", cfg, DefaultGameConfig())
	}
}

func TestEconomyFormulas(t *testing.T) {
	cfg := DefaultGameConfig()

	// 场景：round 1 → round 2 需要 rent=12, kills=12
	if got := cfg.RentCost(2); got != 12 {
		t.Errorf("RentCost(2) = %d, want 12", got)
	}
	if got := cfg.KillTarget(2); got != 12 {
		t.Errorf("KillTarget(2) = %d, want 12", got)
	}

	prevRent, prevKills := cfg.RentCost(1), cfg.KillTarget(1)
	for r := 1; r <= 50; r++ {
		rent := cfg.RentCost(r)
		kills := cfg.KillTarget(r)
		if rent != cfg.Economy.BaseRent+(r-1)*cfg.Economy.RentIncrement {
			t.Fatalf("RentCost(%d) = %d breaks formula", r, rent)
		}
		if kills != cfg.Economy.BaseKills+(r-1)*cfg.Economy.KillIncrement {
			t.Fatalf("KillTarget(%d) = %d breaks formula", r, kills)
		}
		if rent < prevRent || kills < prevKills {
			t.Fatalf("economy decreased at round %d", r)
		}
		prevRent, prevKills = rent, kills
	}

	// 非法回合号按第 1 回合处理
	if cfg.RentCost(0) != cfg.Economy.BaseRent {
		t.Errorf("RentCost(0) should clamp to round 1")
	}
}

func TestParseGameConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *GameConfig)
	}{
		{
			name: "部分覆盖沿用默认值",
			yamlContent: `
economy:
  baseRent: 20
spawner:
  mode: ring
`,
			validate: func(t *testing.T, cfg *GameConfig) {
				if cfg.Economy.BaseRent != 20 {
					t.Errorf("expected baseRent 20, got %d", cfg.Economy.BaseRent)
				}
				if cfg.Economy.BaseKills != 10 {
					t.Errorf("expected default baseKills 10, got %d", cfg.Economy.BaseKills)
				}
				if cfg.Spawner.Mode != SpawnModeRing {
					t.Errorf("expected ring mode, got %s", cfg.Spawner.Mode)
				}
				if cfg.Lunger.BounceSpeed != 6 {
					t.Errorf("expected default bounceSpeed, got %f", cfg.Lunger.BounceSpeed)
				}
			},
		},
		{
			name: "内联敌人属性",
			yamlContent: `
lunger:
  health: 3
  pointValue: 4
`,
			validate: func(t *testing.T, cfg *GameConfig) {
				if cfg.Lunger.Health != 3 || cfg.Lunger.PointValue != 4 {
					t.Errorf("inline stats not parsed: %+v", cfg.Lunger.EnemyStats)
				}
			},
		},
		{
			name:        "YAML 语法错误",
			yamlContent: "economy: [",
			wantErr:     true,
			errContains: "failed to parse",
		},
		{
			name: "负的租金增量",
			yamlContent: `
economy:
  rentIncrement: -1
`,
			wantErr:     true,
			errContains: "increments must be >= 0",
		},
		{
			name: "未知刷怪模式",
			yamlContent: `
spawner:
  mode: sky
`,
			wantErr:     true,
			errContains: "unknown mode",
		},
		{
			name: "未知敌人原型",
			yamlContent: `
spawner:
  archetypes:
    ghost:
      interval: 1
      startRound: 1
`,
			wantErr:     true,
			errContains: "unknown archetype",
		},
		{
			name: "刷怪间隔为零",
			yamlContent: `
spawner:
  archetypes:
    lunger:
      interval: 0
      startRound: 1
`,
			wantErr:     true,
			errContains: "interval must be > 0",
		},
		{
			name: "刷怪区域反转",
			yamlContent: `
spawner:
  area:
    minX: 5
    maxX: -5
`,
			wantErr:     true,
			errContains: "area invalid",
		},
		{
			name: "tickRate 为零",
			yamlContent: `
simulation:
  tickRate: 0
`,
			wantErr:     true,
			errContains: "tickRate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseGameConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadGameConfigFromDisk(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "custom.yaml")
	if err := os.WriteFile(path, []byte("economy:\n  healPerRound: 1\n"), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := LoadGameConfig(path)
	if err != nil {
		t.Fatalf("LoadGameConfig failed: %v", err)
	}
	if cfg.Economy.HealPerRound != 1 {
		t.Errorf("expected healPerRound 1, got %d", cfg.Economy.HealPerRound)
	}

	if _, err := LoadGameConfig(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadGameConfigFromEmbedded(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"data/game_config.yaml": {Data: []byte("economy:\n  baseKills: 3\n")},
	})
	defer embedded.Reset()

	cfg, err := LoadGameConfig(DefaultGameConfigPath)
	if err != nil {
		t.Fatalf("LoadGameConfig failed: %v", err)
	}
	if cfg.KillTarget(1) != 3 {
		t.Errorf("expected killTarget 3 from embedded file, got %d", cfg.KillTarget(1))
	}
}
