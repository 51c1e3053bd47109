package game

import "testing"

func TestFeedbackGroupFansOut(t *testing.T) {
	var a, b []FeedbackEvent
	group := FeedbackGroup{
		FeedbackFunc(func(e FeedbackEvent) { a = append(a, e) }),
		nil,
		FeedbackFunc(func(e FeedbackEvent) { b = append(b, e) }),
	}

	group.Play(FeedbackRentPaid)
	group.Play(FeedbackGameOver)

	if len(a) != 2 || len(b) != 2 || a[1] != FeedbackGameOver {
		t.Errorf("a=%v b=%v", a, b)
	}
}

func TestOrNop(t *testing.T) {
	// 无操作接收器可以安全调用
	OrNopPresenter(nil).OnGameOver(RoundStats{}, "could not pay", "")
	OrNopFeedback(nil).Play(FeedbackEnemyHit)

	f := FeedbackFunc(func(FeedbackEvent) {})
	if OrNopFeedback(f) == nil {
		t.Error("non-nil feedback should be returned as is")
	}
}

func TestFeedbackEventNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, e := range allFeedbackEvents {
		name := e.String()
		if name == "unknown" || seen[name] {
			t.Errorf("event %d has bad name %q", e, name)
		}
		seen[name] = true
	}
	if FeedbackEvent(-1).String() != "unknown" {
		t.Error("out-of-range event should be unknown")
	}
}
