package game

// RoundStats 展示层需要的回合数值快照
type RoundStats struct {
	Round      int
	Score      int
	Kills      int
	KillTarget int
	RentCost   int
}

// Presenter 展示层接收器（HUD、终端界面等）
//
// 核心逻辑只推送数值，不依赖展示层存在，也不读取其返回值。
type Presenter interface {
	OnHealthChanged(current, max int)
	OnStatsChanged(stats RoundStats)
	OnRoundStarted(stats RoundStats)
	OnRoundEnded(stats RoundStats)
	// OnGameOver reason 为机器可读原因，message 为展示文本
	OnGameOver(stats RoundStats, reason, message string)
	OnPrompt(text string)
}

// FeedbackEvent 音效/镜头反馈事件
type FeedbackEvent int

const (
	FeedbackEnemyHit FeedbackEvent = iota
	FeedbackEnemyKilled
	FeedbackPlayerHurt
	FeedbackPlayerDied
	FeedbackSandwichMade
	FeedbackSandwichThrown
	FeedbackRoundStarted
	FeedbackRoundEnded
	FeedbackRentPaid
	FeedbackGameOver
)

var feedbackNames = map[FeedbackEvent]string{
	FeedbackEnemyHit:       "enemy_hit",
	FeedbackEnemyKilled:    "enemy_killed",
	FeedbackPlayerHurt:     "player_hurt",
	FeedbackPlayerDied:     "player_died",
	FeedbackSandwichMade:   "sandwich_made",
	FeedbackSandwichThrown: "sandwich_thrown",
	FeedbackRoundStarted:   "round_started",
	FeedbackRoundEnded:     "round_ended",
	FeedbackRentPaid:       "rent_paid",
	FeedbackGameOver:       "game_over",
}

func (e FeedbackEvent) String() string {
	if name, ok := feedbackNames[e]; ok {
		return name
	}
	return "unknown"
}

// Feedback 即发即忘的反馈接收器（音效、镜头震动）
// 不得影响游戏状态
type Feedback interface {
	Play(event FeedbackEvent)
}

// PresenterGroup 将事件广播给多个 Presenter
// 空组即为无操作接收器，nil 成员会被跳过
type PresenterGroup []Presenter

func (g PresenterGroup) OnHealthChanged(current, max int) {
	for _, p := range g {
		if p != nil {
			p.OnHealthChanged(current, max)
		}
	}
}

func (g PresenterGroup) OnStatsChanged(stats RoundStats) {
	for _, p := range g {
		if p != nil {
			p.OnStatsChanged(stats)
		}
	}
}

func (g PresenterGroup) OnRoundStarted(stats RoundStats) {
	for _, p := range g {
		if p != nil {
			p.OnRoundStarted(stats)
		}
	}
}

func (g PresenterGroup) OnRoundEnded(stats RoundStats) {
	for _, p := range g {
		if p != nil {
			p.OnRoundEnded(stats)
		}
	}
}

func (g PresenterGroup) OnGameOver(stats RoundStats, reason, message string) {
	for _, p := range g {
		if p != nil {
			p.OnGameOver(stats, reason, message)
		}
	}
}

func (g PresenterGroup) OnPrompt(text string) {
	for _, p := range g {
		if p != nil {
			p.OnPrompt(text)
		}
	}
}

// FeedbackGroup 将反馈事件广播给多个 Feedback
type FeedbackGroup []Feedback

func (g FeedbackGroup) Play(event FeedbackEvent) {
	for _, f := range g {
		if f != nil {
			f.Play(event)
		}
	}
}

// FeedbackFunc 函数适配器
type FeedbackFunc func(event FeedbackEvent)

func (f FeedbackFunc) Play(event FeedbackEvent) { f(event) }

// OrNopPresenter nil 时返回无操作 Presenter
func OrNopPresenter(p Presenter) Presenter {
	if p == nil {
		return PresenterGroup(nil)
	}
	return p
}

// OrNopFeedback nil 时返回无操作 Feedback
func OrNopFeedback(f Feedback) Feedback {
	if f == nil {
		return FeedbackGroup(nil)
	}
	return f
}
