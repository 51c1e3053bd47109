package game

import (
	"testing"

	synth "github.com/decker502/rentday/internal/audio"
)

var allFeedbackEvents = []FeedbackEvent{
	FeedbackEnemyHit, FeedbackEnemyKilled, FeedbackPlayerHurt, FeedbackPlayerDied,
	FeedbackSandwichMade, FeedbackSandwichThrown, FeedbackRoundStarted,
	FeedbackRoundEnded, FeedbackRentPaid, FeedbackGameOver,
}

func TestEveryEventHasACue(t *testing.T) {
	for _, e := range allFeedbackEvents {
		t.Run(e.String(), func(t *testing.T) {
			stream, ok := CueStream(e, DefaultSampleRate)
			if !ok {
				t.Fatal("no cue for event")
			}
			pcm, err := synth.Render(stream, DefaultSampleRate)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if pcm.Length() == 0 || pcm.Length()%4 != 0 {
				t.Errorf("pcm length %d is not whole stereo frames", pcm.Length())
			}
			if d := pcm.Duration(); d <= 0 || d > 2 {
				t.Errorf("cue duration %.3fs out of range", d)
			}
		})
	}
}

func TestCueStreamIsFresh(t *testing.T) {
	a, ok := CueStream(FeedbackRentPaid, DefaultSampleRate)
	if !ok {
		t.Fatal("rent paid should have a cue")
	}
	buf := make([][2]float64, 512)
	for i := 0; i < 64; i++ {
		a.Stream(buf)
	}
	b, _ := CueStream(FeedbackRentPaid, DefaultSampleRate)
	if n, _ := b.Stream(buf); n == 0 {
		t.Error("a second stream should not share the drained one")
	}
	if _, ok := CueStream(FeedbackEvent(99), DefaultSampleRate); ok {
		t.Error("unknown event should have no cue")
	}
}
