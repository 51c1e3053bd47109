package components

// PlayerComponent 玩家标记与三明治武器状态
type PlayerComponent struct {
	HasSandwich    bool
	MakingSandwich bool
	ThrowCount     int
}

// PlayerInputComponent 输入意图
// 由前端（ebiten / 终端）每个展示帧写入，模拟帧读取
type PlayerInputComponent struct {
	MoveX, MoveZ float64 // 相对朝向的移动意图，范围 [-1, 1]
	Yaw, Pitch   float64

	// 以下为边沿触发，模拟帧消费后清零
	MakeSandwich bool
	Throw        bool
	Interact     bool
}
