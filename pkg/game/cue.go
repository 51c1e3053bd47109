package game

import (
	"time"

	"github.com/gopxl/beep"

	synth "github.com/decker502/rentday/internal/audio"
)

// DefaultSampleRate 音频输出采样率
const DefaultSampleRate = 44100

// CueStream 事件提示音的合成流，没有提示音的事件返回 false
//
// 每次调用返回新的流，可以直接交给 beep 的 speaker 播放。
func CueStream(event FeedbackEvent, rate beep.SampleRate) (beep.Streamer, bool) {
	notes := cueNotes(event)
	if len(notes) == 0 {
		return nil, false
	}
	if event == FeedbackRentPaid {
		return synth.Chord(rate, notes...), true
	}
	return synth.Cue(rate, notes...), true
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// cueNotes 事件到音符的映射
func cueNotes(event FeedbackEvent) []synth.Note {
	switch event {
	case FeedbackEnemyHit:
		return []synth.Note{{Freq: 660, Duration: ms(50), Wave: synth.Square, Release: ms(30), Gain: 0.4}}
	case FeedbackEnemyKilled:
		return []synth.Note{
			{Freq: 523.25, Duration: ms(60), Wave: synth.Square, Release: ms(20), Gain: 0.5},
			{Freq: 783.99, Duration: ms(90), Wave: synth.Square, Release: ms(60), Gain: 0.5},
		}
	case FeedbackPlayerHurt:
		return []synth.Note{{Freq: 110, Duration: ms(150), Wave: synth.Sawtooth, Attack: ms(5), Release: ms(100), Gain: 0.6}}
	case FeedbackPlayerDied:
		return []synth.Note{
			{Freq: 220, Duration: ms(200), Wave: synth.Sawtooth, Release: ms(50), Gain: 0.6},
			{Freq: 110, Duration: ms(400), Wave: synth.Sawtooth, Release: ms(300), Gain: 0.6},
		}
	case FeedbackSandwichMade:
		return []synth.Note{{Freq: 880, Duration: ms(80), Wave: synth.Sine, Attack: ms(5), Release: ms(60), Gain: 0.5}}
	case FeedbackSandwichThrown:
		return []synth.Note{{Duration: ms(120), Wave: synth.Noise, Attack: ms(20), Release: ms(90), Gain: 0.3}}
	case FeedbackRoundStarted:
		return []synth.Note{
			{Freq: 392, Duration: ms(100), Wave: synth.Square, Release: ms(40), Gain: 0.4},
			{Freq: 523.25, Duration: ms(150), Wave: synth.Square, Release: ms(100), Gain: 0.4},
		}
	case FeedbackRoundEnded:
		return []synth.Note{
			{Freq: 523.25, Duration: ms(100), Wave: synth.Sine, Release: ms(40), Gain: 0.5},
			{Freq: 659.25, Duration: ms(100), Wave: synth.Sine, Release: ms(40), Gain: 0.5},
			{Freq: 783.99, Duration: ms(200), Wave: synth.Sine, Release: ms(150), Gain: 0.5},
		}
	case FeedbackRentPaid:
		// 和弦：主音加高八度
		return []synth.Note{
			{Freq: 987.77, Duration: ms(250), Wave: synth.Sine, Release: ms(200), Gain: 0.5},
			{Freq: 1975.53, Duration: ms(250), Wave: synth.Sine, Release: ms(120), Gain: 0.2},
		}
	case FeedbackGameOver:
		return []synth.Note{
			{Freq: 392, Duration: ms(200), Wave: synth.Sawtooth, Release: ms(60), Gain: 0.5},
			{Freq: 311.13, Duration: ms(200), Wave: synth.Sawtooth, Release: ms(60), Gain: 0.5},
			{Freq: 261.63, Duration: ms(500), Wave: synth.Sawtooth, Release: ms(400), Gain: 0.5},
		}
	default:
		return nil
	}
}
