package components

// ThrowerState 投掷型敌人的行为状态
type ThrowerState int

const (
	// ThrowerIdle 初始延迟中
	ThrowerIdle ThrowerState = iota
	// ThrowerThrowing 周期性投掷中
	ThrowerThrowing
)

func (s ThrowerState) String() string {
	if s == ThrowerThrowing {
		return "Throwing"
	}
	return "Idle"
}

// ThrowerComponent 投掷型敌人的状态机数据
// 投掷计时器保存在调度器中，所有者为该敌人实体ID，敌人销毁时统一取消
type ThrowerComponent struct {
	State     ThrowerState
	Scheduled bool // 初始延迟计时器是否已注册
	Throws    int  // 已投掷次数
}
