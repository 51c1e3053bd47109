package components

// WavePlanComponent 当前回合的刷怪计划（刷怪器单例实体）
// 每回合由回合控制器重新创建，回合结束即作废
type WavePlanComponent struct {
	RoundNumber        int
	ArchetypeIntervals map[Archetype]float64
	TotalToSpawn       int
	RemainingBudget    int // 两种原型的计时器共享同一个预算池
	Spawned            map[Archetype]int
	Running            bool
}
