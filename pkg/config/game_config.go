package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/decker502/rentday/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultGameConfigPath 内嵌默认配置文件路径
const DefaultGameConfigPath = "data/game_config.yaml"

// 刷怪位置模式
const (
	SpawnModeArea = "area"
	SpawnModeRing = "ring"
)

// GameConfig 游戏数值配置
//
// 覆盖经济公式、玩家、竞技场、刷怪器、两种敌人原型以及敌方弹体的全部调参。
//
// 配置文件位置: data/game_config.yaml
type GameConfig struct {
	Simulation      SimulationConfig  `yaml:"simulation"`
	Economy         EconomyConfig     `yaml:"economy"`
	Player          PlayerConfig      `yaml:"player"`
	Arena           ArenaConfig       `yaml:"arena"`
	Spawner         SpawnerConfig     `yaml:"spawner"`
	Lunger          LungerConfig      `yaml:"lunger"`
	Thrower         ThrowerConfig     `yaml:"thrower"`
	EnemyProjectile ProjectileConfig  `yaml:"enemyProjectile"`
	RentStation     RentStationConfig `yaml:"rentStation"`
}

// SimulationConfig 固定步长模拟参数
type SimulationConfig struct {
	// TickRate 每秒模拟步数
	TickRate int `yaml:"tickRate"`
	// MaxStepsPerFrame 单个展示帧最多追赶的模拟步数
	MaxStepsPerFrame int `yaml:"maxStepsPerFrame"`
}

// EconomyConfig 回合经济参数
//
// rentCost(r)   = BaseRent  + (r-1)*RentIncrement
// killTarget(r) = BaseKills + (r-1)*KillIncrement
type EconomyConfig struct {
	BaseRent       int     `yaml:"baseRent"`
	RentIncrement  int     `yaml:"rentIncrement"`
	BaseKills      int     `yaml:"baseKills"`
	KillIncrement  int     `yaml:"killIncrement"`
	HealPerRound   int     `yaml:"healPerRound"`
	SpawnSurplus   int     `yaml:"spawnSurplus"`   // 每回合额外刷怪数量（在击杀目标之上）
	StartDelay     float64 `yaml:"startDelay"`     // 开场倒计时（秒）
	NextRoundDelay float64 `yaml:"nextRoundDelay"` // 交租后到下一回合的间隔（秒）
	DeathFadeDelay float64 `yaml:"deathFadeDelay"` // 玩家死亡到模拟冻结的间隔（秒）
}

// PlayerConfig 玩家参数
type PlayerConfig struct {
	MaxHealth int            `yaml:"maxHealth"`
	MoveSpeed float64        `yaml:"moveSpeed"`
	Radius    float64        `yaml:"radius"`
	EyeHeight float64        `yaml:"eyeHeight"`
	SpawnX    float64        `yaml:"spawnX"`
	SpawnZ    float64        `yaml:"spawnZ"`
	Sandwich  SandwichConfig `yaml:"sandwich"`
}

// SandwichConfig 玩家投掷的三明治
type SandwichConfig struct {
	Damage     int     `yaml:"damage"`
	MakeTime   float64 `yaml:"makeTime"`
	ThrowSpeed float64 `yaml:"throwSpeed"`
	Lifetime   float64 `yaml:"lifetime"`
	Radius     float64 `yaml:"radius"`
}

// ArenaConfig 竞技场：以原点为中心的方形场地，四周为墙
type ArenaConfig struct {
	HalfSize float64 `yaml:"halfSize"`
	Gravity  float64 `yaml:"gravity"`
}

// SpawnerConfig 刷怪器参数
type SpawnerConfig struct {
	// Mode 刷怪位置模式："area" 或 "ring"
	Mode         string                          `yaml:"mode"`
	Area         SpawnArea                       `yaml:"area"`
	RingRadius   float64                         `yaml:"ringRadius"`
	GroundOffset float64                         `yaml:"groundOffset"`
	Archetypes   map[string]ArchetypeSpawnConfig `yaml:"archetypes"`
}

// SpawnArea 水平矩形刷怪区域
type SpawnArea struct {
	MinX float64 `yaml:"minX"`
	MaxX float64 `yaml:"maxX"`
	MinZ float64 `yaml:"minZ"`
	MaxZ float64 `yaml:"maxZ"`
}

// ArchetypeSpawnConfig 单个敌人原型的刷怪计时
type ArchetypeSpawnConfig struct {
	Interval   float64 `yaml:"interval"`
	StartRound int     `yaml:"startRound"` // 从第几回合开始出现
}

// EnemyStats 敌人通用属性
type EnemyStats struct {
	Health         int     `yaml:"health"`
	DamageToPlayer int     `yaml:"damageToPlayer"`
	PointValue     int     `yaml:"pointValue"`
	Radius         float64 `yaml:"radius"`
}

// LungerConfig 弹跳型敌人
type LungerConfig struct {
	EnemyStats         `yaml:",inline"`
	BounceSpeed        float64 `yaml:"bounceSpeed"`
	BounceUp           float64 `yaml:"bounceUp"`
	GroundProbe        float64 `yaml:"groundProbe"` // 向下探测距离
	StuckCheckInterval float64 `yaml:"stuckCheckInterval"`
	StuckThreshold     float64 `yaml:"stuckThreshold"`
	UnstickSpeed       float64 `yaml:"unstickSpeed"`
}

// ThrowerConfig 投掷型敌人
type ThrowerConfig struct {
	EnemyStats    `yaml:",inline"`
	InitialDelay  float64 `yaml:"initialDelay"`
	ThrowInterval float64 `yaml:"throwInterval"`
	ThrowForce    float64 `yaml:"throwForce"`
	ThrowUpward   float64 `yaml:"throwUpward"`
	ThrowHeight   float64 `yaml:"throwHeight"`
	ThrowForward  float64 `yaml:"throwForward"`
}

// ProjectileConfig 敌方弹体
type ProjectileConfig struct {
	Damage   int     `yaml:"damage"`
	Lifetime float64 `yaml:"lifetime"`
	Radius   float64 `yaml:"radius"`
}

// RentStationConfig 交租台位置
type RentStationConfig struct {
	X             float64 `yaml:"x"`
	Z             float64 `yaml:"z"`
	InteractRange float64 `yaml:"interactRange"`
}

// KnownArchetypes 配置中允许出现的敌人原型键
var KnownArchetypes = []string{"lunger", "thrower"}

// DefaultGameConfig 返回默认配置（与 data/game_config.yaml 保持一致）
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Simulation: SimulationConfig{TickRate: 60, MaxStepsPerFrame: 5},
		Economy: EconomyConfig{
			BaseRent:       10,
			RentIncrement:  2,
			BaseKills:      10,
			KillIncrement:  2,
			HealPerRound:   3,
			SpawnSurplus:   5,
			StartDelay:     1,
			NextRoundDelay: 2,
			DeathFadeDelay: 1,
		},
		Player: PlayerConfig{
			MaxHealth: 5,
			MoveSpeed: 5,
			Radius:    0.5,
			EyeHeight: 1.6,
			Sandwich: SandwichConfig{
				Damage:     1,
				MakeTime:   0.5,
				ThrowSpeed: 15,
				Lifetime:   5,
				Radius:     0.2,
			},
		},
		Arena: ArenaConfig{HalfSize: 20, Gravity: 9.81},
		Spawner: SpawnerConfig{
			Mode:         SpawnModeArea,
			Area:         SpawnArea{MinX: -15, MaxX: 15, MinZ: -15, MaxZ: 15},
			RingRadius:   12,
			GroundOffset: 0.5,
			Archetypes: map[string]ArchetypeSpawnConfig{
				"lunger":  {Interval: 2, StartRound: 1},
				"thrower": {Interval: 5, StartRound: 2},
			},
		},
		Lunger: LungerConfig{
			EnemyStats:         EnemyStats{Health: 1, DamageToPlayer: 1, PointValue: 1, Radius: 0.5},
			BounceSpeed:        6,
			BounceUp:           5,
			GroundProbe:        0.1,
			StuckCheckInterval: 1,
			StuckThreshold:     0.2,
			UnstickSpeed:       4,
		},
		Thrower: ThrowerConfig{
			EnemyStats:    EnemyStats{Health: 1, DamageToPlayer: 2, PointValue: 2, Radius: 0.5},
			InitialDelay:  1,
			ThrowInterval: 3,
			ThrowForce:    10,
			ThrowUpward:   3,
			ThrowHeight:   1,
			ThrowForward:  0.8,
		},
		EnemyProjectile: ProjectileConfig{Damage: 2, Lifetime: 5, Radius: 0.25},
		RentStation:     RentStationConfig{X: 0, Z: -8, InteractRange: 2.5},
	}
}

// ParseGameConfig 解析 YAML 配置
//
// 未出现在 YAML 中的字段沿用默认值，因此配置文件只需要写出需要覆盖的部分。
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return cfg, nil
}

// LoadGameConfig 加载游戏配置
//
// 以 "data/" 开头且内嵌资源已初始化时从内嵌文件系统读取，否则从磁盘读取。
//
// 参数:
//   - path: 配置文件路径（如 "data/game_config.yaml" 或任意磁盘路径）
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config %s: %w", path, err)
	}
	return ParseGameConfig(data)
}

func readConfigFile(path string) ([]byte, error) {
	normalized := strings.TrimPrefix(filepath.ToSlash(path), "./")
	if strings.HasPrefix(normalized, "data/") && embedded.IsInitialized() {
		if data, err := embedded.ReadFile(normalized); err == nil {
			return data, nil
		}
	}
	return os.ReadFile(path)
}

// Validate 验证配置有效性
//
// 经济增量必须非负，保证租金和击杀目标随回合单调不减。
func (c *GameConfig) Validate() error {
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("simulation.tickRate must be > 0, got %d", c.Simulation.TickRate)
	}
	if c.Simulation.MaxStepsPerFrame <= 0 {
		return fmt.Errorf("simulation.maxStepsPerFrame must be > 0, got %d", c.Simulation.MaxStepsPerFrame)
	}

	e := c.Economy
	if e.BaseRent < 0 || e.BaseKills <= 0 {
		return fmt.Errorf("economy base values invalid: baseRent=%d baseKills=%d", e.BaseRent, e.BaseKills)
	}
	if e.RentIncrement < 0 || e.KillIncrement < 0 {
		return fmt.Errorf("economy increments must be >= 0: rentIncrement=%d killIncrement=%d",
			e.RentIncrement, e.KillIncrement)
	}
	if e.HealPerRound < 0 || e.SpawnSurplus < 0 {
		return fmt.Errorf("economy.healPerRound and economy.spawnSurplus must be >= 0")
	}
	if e.StartDelay < 0 || e.NextRoundDelay < 0 || e.DeathFadeDelay < 0 {
		return fmt.Errorf("economy delays must be >= 0")
	}

	if c.Player.MaxHealth <= 0 {
		return fmt.Errorf("player.maxHealth must be > 0, got %d", c.Player.MaxHealth)
	}
	if c.Player.Sandwich.Lifetime <= 0 {
		return fmt.Errorf("player.sandwich.lifetime must be > 0")
	}
	if c.Arena.HalfSize <= 0 {
		return fmt.Errorf("arena.halfSize must be > 0, got %.2f", c.Arena.HalfSize)
	}

	if err := c.Spawner.validate(); err != nil {
		return fmt.Errorf("spawner: %w", err)
	}

	for name, stats := range map[string]EnemyStats{"lunger": c.Lunger.EnemyStats, "thrower": c.Thrower.EnemyStats} {
		if stats.Health <= 0 {
			return fmt.Errorf("%s.health must be > 0, got %d", name, stats.Health)
		}
		if stats.DamageToPlayer < 0 || stats.PointValue < 0 {
			return fmt.Errorf("%s damage/points must be >= 0", name)
		}
	}
	if c.Lunger.StuckCheckInterval <= 0 {
		return fmt.Errorf("lunger.stuckCheckInterval must be > 0")
	}
	if c.Thrower.InitialDelay < 0 || c.Thrower.ThrowInterval <= 0 {
		return fmt.Errorf("thrower timing invalid: initialDelay=%.2f throwInterval=%.2f",
			c.Thrower.InitialDelay, c.Thrower.ThrowInterval)
	}
	if c.EnemyProjectile.Lifetime <= 0 {
		return fmt.Errorf("enemyProjectile.lifetime must be > 0")
	}
	return nil
}

func (s *SpawnerConfig) validate() error {
	switch s.Mode {
	case SpawnModeArea, SpawnModeRing:
	default:
		return fmt.Errorf("unknown mode %q (must be %q or %q)", s.Mode, SpawnModeArea, SpawnModeRing)
	}
	if s.Area.MinX > s.Area.MaxX || s.Area.MinZ > s.Area.MaxZ {
		return fmt.Errorf("area invalid: x[%.1f, %.1f] z[%.1f, %.1f]",
			s.Area.MinX, s.Area.MaxX, s.Area.MinZ, s.Area.MaxZ)
	}
	if s.Mode == SpawnModeRing && s.RingRadius <= 0 {
		return fmt.Errorf("ringRadius must be > 0 in ring mode")
	}
	if len(s.Archetypes) == 0 {
		return fmt.Errorf("no archetypes configured")
	}

	names := make([]string, 0, len(s.Archetypes))
	for name := range s.Archetypes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !isKnownArchetype(name) {
			return fmt.Errorf("unknown archetype %q", name)
		}
		a := s.Archetypes[name]
		if a.Interval <= 0 {
			return fmt.Errorf("archetype %s interval must be > 0, got %.2f", name, a.Interval)
		}
		if a.StartRound < 1 {
			return fmt.Errorf("archetype %s startRound must be >= 1, got %d", name, a.StartRound)
		}
	}
	return nil
}

func isKnownArchetype(name string) bool {
	for _, known := range KnownArchetypes {
		if known == name {
			return true
		}
	}
	return false
}

// RentCost 第 round 回合的租金
func (c *GameConfig) RentCost(round int) int {
	if round < 1 {
		round = 1
	}
	return c.Economy.BaseRent + (round-1)*c.Economy.RentIncrement
}

// KillTarget 第 round 回合的击杀目标
func (c *GameConfig) KillTarget(round int) int {
	if round < 1 {
		round = 1
	}
	return c.Economy.BaseKills + (round-1)*c.Economy.KillIncrement
}

// TickDuration 单个模拟步的时长（秒）
func (c *GameConfig) TickDuration() float64 {
	return 1.0 / float64(c.Simulation.TickRate)
}
