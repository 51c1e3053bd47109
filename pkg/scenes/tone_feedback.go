package scenes

import (
	"log"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"

	synth "github.com/decker502/rentday/internal/audio"
	"github.com/decker502/rentday/pkg/game"
)

// ToneFeedback 用合成音实现 game.Feedback，经 Ebitengine 音频播放
//
// 每种事件对应一段短提示音，首次播放时渲染成 PCM 并缓存。
// audio.Context 为 nil 时只渲染不播放（无头运行与测试）。
type ToneFeedback struct {
	context  *audio.Context
	settings *game.SettingsManager
	rate     beep.SampleRate

	cache  map[game.FeedbackEvent]*synth.PCMStream
	active []*audio.Player
	counts map[game.FeedbackEvent]int
}

// NewToneFeedback 创建合成音反馈
//
// 参数：
//   - ctx: Ebitengine 音频上下文，可为 nil
//   - settings: 设置管理器（读取音量与开关），可为 nil
func NewToneFeedback(ctx *audio.Context, settings *game.SettingsManager) *ToneFeedback {
	rate := beep.SampleRate(game.DefaultSampleRate)
	if ctx != nil {
		rate = beep.SampleRate(ctx.SampleRate())
	}
	return &ToneFeedback{
		context:  ctx,
		settings: settings,
		rate:     rate,
		cache:    make(map[game.FeedbackEvent]*synth.PCMStream),
		counts:   make(map[game.FeedbackEvent]int),
	}
}

// Play 播放事件提示音，音效关闭时静默
func (f *ToneFeedback) Play(event game.FeedbackEvent) {
	volume := f.settings.EffectiveVolume()
	if volume <= 0 {
		return
	}

	pcm, ok := f.pcm(event)
	if !ok {
		return
	}
	f.counts[event]++
	if f.context == nil {
		return
	}

	f.prune()
	player := f.context.NewPlayerFromBytes(pcm.Bytes())
	player.SetVolume(volume)
	player.Play()
	f.active = append(f.active, player)
}

// Played 某个事件实际发声的次数
func (f *ToneFeedback) Played(event game.FeedbackEvent) int {
	return f.counts[event]
}

// prune 释放已经播放完的播放器
func (f *ToneFeedback) prune() {
	kept := f.active[:0]
	for _, p := range f.active {
		if p.IsPlaying() {
			kept = append(kept, p)
			continue
		}
		_ = p.Close()
	}
	f.active = kept
}

func (f *ToneFeedback) pcm(event game.FeedbackEvent) (*synth.PCMStream, bool) {
	if pcm, ok := f.cache[event]; ok {
		return pcm, true
	}
	stream, ok := game.CueStream(event, f.rate)
	if !ok {
		return nil, false
	}
	pcm, err := synth.Render(stream, f.rate)
	if err != nil {
		log.Printf("[ToneFeedback] 渲染 %s 失败: %v", event, err)
		return nil, false
	}
	f.cache[event] = pcm
	return pcm, true
}
