package main

import (
	"log"
	"time"
	"unicode"

	"github.com/decker502/rentday/pkg/components"
	"github.com/decker502/rentday/pkg/config"
	"github.com/decker502/rentday/pkg/game"
	"github.com/decker502/rentday/pkg/session"
	"github.com/decker502/rentday/pkg/utils"
	"github.com/gdamore/tcell/v2"
)

const (
	// keyHold 终端没有按键抬起事件，按下后在这段时间内视为按住（覆盖自动重复的间隔）
	keyHold = 200 * time.Millisecond
	// turnRate 转身角速度（弧度/秒）
	turnRate = 2.5
	// frameInterval 展示帧间隔
	frameInterval = 16 * time.Millisecond
)

func debugf(format string, args ...any) {
	log.Printf(format, args...)
}

// terminal 终端前端：tcell 输入映射到会话输入，快照绘制成字符画面
type terminal struct {
	screen  tcell.Screen
	session *session.Session
	hud     *textPresenter
	records *game.RecordManager
	now     func() time.Time

	held  map[rune]time.Time
	edges session.Input
	yaw   float64

	paused   bool
	recorded bool
}

func newTerminal(screen tcell.Screen, cfg *config.GameConfig, seed int64, records *game.RecordManager, feedback game.Feedback, now func() time.Time) (*terminal, error) {
	if now == nil {
		now = time.Now
	}
	hud := newTextPresenter(records, now)
	s, err := session.New(cfg, session.Options{Seed: seed, Presenter: hud, Feedback: feedback})
	if err != nil {
		return nil, err
	}
	t := &terminal{
		screen:  screen,
		session: s,
		hud:     hud,
		records: records,
		now:     now,
		held:    make(map[rune]time.Time),
	}
	s.Begin()
	return t, nil
}

func (t *terminal) gameOver() bool {
	return t.session.Round().Phase() == components.PhaseGameOver
}

// handleEvent 处理一个 tcell 事件，返回 false 表示退出
func (t *terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			t.hold('w')
		case tcell.KeyDown:
			t.hold('s')
		case tcell.KeyLeft:
			t.hold('j')
		case tcell.KeyRight:
			t.hold('l')
		case tcell.KeyRune:
			t.handleRune(unicode.ToLower(ev.Rune()))
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *terminal) handleRune(r rune) {
	switch r {
	case 'w', 'a', 's', 'd', 'j', 'l':
		t.hold(r)
	case 'q':
		t.edges.MakeSandwich = true
	case ' ':
		t.edges.Throw = true
	case 'e':
		t.edges.Interact = true
	case 'p':
		if !t.gameOver() {
			t.paused = !t.paused
		}
	case 'r':
		if t.gameOver() {
			t.restart()
		}
	}
}

func (t *terminal) hold(r rune) {
	t.held[r] = t.now().Add(keyHold)
}

func (t *terminal) holding(r rune) bool {
	until, ok := t.held[r]
	return ok && t.now().Before(until)
}

func axis(neg, pos bool) float64 {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	}
	return 0
}

// input 由按住的键合成本帧输入，并取走边沿动作
func (t *terminal) input(dt float64) session.Input {
	turn := axis(t.holding('j'), t.holding('l'))
	t.yaw, _ = utils.ApplyLook(t.yaw, 0, turn*turnRate*dt, 0, 1, false)

	in := t.edges
	t.edges = session.Input{}
	in.Yaw = t.yaw
	in.MoveZ = axis(t.holding('s'), t.holding('w'))
	in.MoveX = axis(t.holding('a'), t.holding('d'))
	return in
}

// tick 推进一个展示帧
func (t *terminal) tick(dt float64) {
	if t.paused {
		return
	}
	t.session.SetInput(t.input(dt))
	t.session.Update(dt)
	if t.gameOver() {
		t.recorded = true
	}
}

func (t *terminal) restart() {
	t.hud.reset()
	if err := t.session.Restart(); err != nil {
		debugf("[Term] 重开失败: %v", err)
		return
	}
	t.yaw = 0
	t.recorded = false
	clear(t.held)
	t.edges = session.Input{}
}

// quit 进行中的一局按 "quit" 记录
func (t *terminal) quit() {
	if t.recorded || t.records == nil {
		return
	}
	st := t.session.Round().Stats()
	if _, err := t.records.RecordRun(st.Round, st.Score, "quit"); err != nil {
		debugf("[Term] 保存成绩失败: %v", err)
	}
	t.recorded = true
}

func (t *terminal) draw() {
	drawSnapshot(t.screen, t.session.Snapshot(), t.hud, t.paused)
}

// run 主循环：事件协程 + 固定间隔的展示帧
func (t *terminal) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	last := t.now()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !t.handleEvent(ev) {
				t.quit()
				return
			}
		case <-ticker.C:
			now := t.now()
			t.tick(now.Sub(last).Seconds())
			last = now
			t.draw()
		}
	}
}
