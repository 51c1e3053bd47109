package main

import (
	"time"

	synth "github.com/decker502/rentday/internal/audio"
	"github.com/decker502/rentday/pkg/game"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// speakerFeedback 通过 beep speaker 播放提示音，声卡不可用时退回终端响铃
type speakerFeedback struct {
	rate     beep.SampleRate
	enabled  bool
	bell     func()
	release  func()
	settings *game.SettingsManager
}

func newSpeakerFeedback(settings *game.SettingsManager, bell func()) *speakerFeedback {
	rate := beep.SampleRate(game.DefaultSampleRate)
	f := &speakerFeedback{rate: rate, bell: bell, settings: settings}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		debugf("[Term] 音频不可用，改用终端响铃: %v", err)
		return f
	}
	f.enabled = true
	f.release = speaker.Close
	return f
}

func (f *speakerFeedback) Play(event game.FeedbackEvent) {
	volume := f.settings.EffectiveVolume()
	if volume <= 0 {
		return
	}
	if !f.enabled {
		// 响铃只留给重要事件
		switch event {
		case game.FeedbackPlayerHurt, game.FeedbackRoundEnded, game.FeedbackGameOver:
			if f.bell != nil {
				f.bell()
			}
		}
		return
	}
	if stream, ok := game.CueStream(event, f.rate); ok {
		speaker.Play(synth.Gain(stream, volume))
	}
}

// close 释放声卡，可重复调用
func (f *speakerFeedback) close() {
	if f.release != nil {
		f.release()
		f.release = nil
	}
}
