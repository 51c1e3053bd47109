// Package scheduler 提供基于模拟时间的定时器队列
//
// 协程式的"等待 N 秒后继续"被建模为 (截止时间, 续体) 对，存放在优先队列中，
// 由固定步长的模拟帧调用 Advance 推进。没有任何阻塞等待，所有回调都在调用
// Advance 的同一线程内同步执行。
//
// 取消语义：
//   - Timer.Cancel 立即把条目移出队列
//   - CancelOwner 一次性取消某个所有者（通常是实体ID）名下的全部定时器
//   - 在 Advance 过程中由回调发起的取消，对尚未触发的条目立即生效
package scheduler

import (
	"container/heap"
	"math"
)

// Owner 定时器所有者标识，0 表示无所有者
type Owner uint64

// timeEpsilon 浮点累加误差容限（秒）
// 60 次 1/60 秒的累加可能得到 0.9999999，不应因此推迟一帧触发
const timeEpsilon = 1e-9

// minInterval 周期定时器的最小间隔（秒），防止 0 间隔导致 Advance 死循环
const minInterval = 1e-3

// Timer 已调度的定时器句柄
type Timer struct {
	deadline float64
	interval float64 // 0 表示一次性定时器
	seq      uint64  // 相同截止时间时按调度顺序触发
	owner    Owner
	fn       func()
	index    int // 在堆中的位置，-1 表示不在队列中
	sched    *Scheduler
}

// Cancel 取消定时器；对已触发的一次性定时器或重复取消是安全的
func (t *Timer) Cancel() {
	if t == nil || t.sched == nil {
		return
	}
	t.sched.remove(t)
}

// Active 定时器仍在等待触发
func (t *Timer) Active() bool {
	return t != nil && t.index >= 0
}

// Deadline 下一次触发的模拟时间（秒）
func (t *Timer) Deadline() float64 {
	return t.deadline
}

// Scheduler 模拟时间定时器队列
type Scheduler struct {
	now     float64
	seq     uint64
	queue   timerQueue
	byOwner map[Owner]map[*Timer]struct{}
}

// New 创建空的调度器，模拟时间从 0 开始
func New() *Scheduler {
	return &Scheduler{
		queue:   make(timerQueue, 0),
		byOwner: make(map[Owner]map[*Timer]struct{}),
	}
}

// Now 当前模拟时间（秒）
func (s *Scheduler) Now() float64 {
	return s.now
}

// Pending 队列中等待触发的定时器数量
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// PendingFor 某个所有者名下等待触发的定时器数量
func (s *Scheduler) PendingFor(owner Owner) int {
	return len(s.byOwner[owner])
}

// After 在 delay 秒后执行一次 fn
func (s *Scheduler) After(owner Owner, delay float64, fn func()) *Timer {
	if delay < 0 || math.IsNaN(delay) {
		delay = 0
	}
	return s.push(owner, s.now+delay, 0, fn)
}

// Every 每隔 interval 秒执行一次 fn，首次触发在 interval 秒后
func (s *Scheduler) Every(owner Owner, interval float64, fn func()) *Timer {
	if interval < minInterval || math.IsNaN(interval) {
		interval = minInterval
	}
	return s.push(owner, s.now+interval, interval, fn)
}

// CancelOwner 取消某个所有者名下的全部定时器，返回取消数量
func (s *Scheduler) CancelOwner(owner Owner) int {
	timers := s.byOwner[owner]
	if len(timers) == 0 {
		return 0
	}
	cancelled := 0
	for t := range timers {
		if t.index >= 0 {
			heap.Remove(&s.queue, t.index)
			cancelled++
		}
	}
	delete(s.byOwner, owner)
	return cancelled
}

// Reset 清空所有定时器并把模拟时间归零
func (s *Scheduler) Reset() {
	for _, t := range s.queue {
		t.index = -1
	}
	s.queue = s.queue[:0]
	clear(s.byOwner)
	s.now = 0
	s.seq = 0
}

// Advance 推进模拟时间 dt 秒，按截止时间顺序触发到期的定时器
//
// 回调执行时 Now() 等于该定时器的截止时间，因此回调中新调度的定时器
// 与逐帧推进的结果一致。回调可以安全地取消任意定时器（包括自身）。
// 返回本次触发的回调数量。
func (s *Scheduler) Advance(dt float64) int {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	target := s.now + dt
	fired := 0

	for len(s.queue) > 0 {
		next := s.queue[0]
		if next.deadline > target+timeEpsilon {
			break
		}

		heap.Pop(&s.queue)
		if next.deadline > s.now {
			s.now = next.deadline
		}

		if next.interval > 0 {
			// 周期定时器先重新入队，回调中调用 Cancel 可以把它移除
			next.deadline += next.interval
			next.seq = s.nextSeq()
			heap.Push(&s.queue, next)
		} else {
			s.forget(next)
		}

		next.fn()
		fired++
	}

	s.now = target
	return fired
}

func (s *Scheduler) push(owner Owner, deadline, interval float64, fn func()) *Timer {
	t := &Timer{
		deadline: deadline,
		interval: interval,
		seq:      s.nextSeq(),
		owner:    owner,
		fn:       fn,
		index:    -1,
		sched:    s,
	}
	heap.Push(&s.queue, t)
	if owner != 0 {
		set, ok := s.byOwner[owner]
		if !ok {
			set = make(map[*Timer]struct{})
			s.byOwner[owner] = set
		}
		set[t] = struct{}{}
	}
	return t
}

func (s *Scheduler) remove(t *Timer) {
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
	s.forget(t)
}

func (s *Scheduler) forget(t *Timer) {
	if t.owner == 0 {
		return
	}
	if set, ok := s.byOwner[t.owner]; ok {
		delete(set, t)
		if len(set) == 0 {
			delete(s.byOwner, t.owner)
		}
	}
}

func (s *Scheduler) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// timerQueue 按 (deadline, seq) 排序的最小堆
type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].deadline != q[j].deadline {
		return q[i].deadline < q[j].deadline
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
