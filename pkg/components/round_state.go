package components

// RoundPhase 回合阶段
type RoundPhase int

const (
	PhaseIntro RoundPhase = iota
	PhaseActive
	PhaseAwaitingPayment
	PhaseGameOver
)

func (p RoundPhase) String() string {
	switch p {
	case PhaseIntro:
		return "Intro"
	case PhaseActive:
		return "Active"
	case PhaseAwaitingPayment:
		return "AwaitingPayment"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// GameOverReason 游戏结束原因
type GameOverReason string

const (
	ReasonNone           GameOverReason = ""
	ReasonCouldNotPay    GameOverReason = "could not pay"
	ReasonHealthDepleted GameOverReason = "health depleted"
)

// RoundStateComponent 回合/经济状态（单例实体）
// 生命周期覆盖整个游戏会话，只在完整重开时重置
type RoundStateComponent struct {
	RoundNumber    int
	Score          int
	KillsThisRound int
	KillTarget     int
	RentCost       int
	Phase          RoundPhase
	RentPaid       bool // 本轮租金已付，下一回合待开始
	Reason         GameOverReason
}
