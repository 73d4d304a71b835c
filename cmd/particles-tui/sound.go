package main

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/gonewx/particles/pkg/types"
)

const (
	toneSampleRate = beep.SampleRate(44100)
	toneDuration   = 60 * time.Millisecond
)

// toneFrequencies 每种发射器的提示音音高（A 小调五声音阶）
var toneFrequencies = map[types.EmitterType]float64{
	types.EmitterSparkles:  880.00,
	types.EmitterRain:      440.00,
	types.EmitterSnow:      523.25,
	types.EmitterFire:      587.33,
	types.EmitterSmoke:     659.25,
	types.EmitterFireworks: 1046.50,
}

// toneFrequency 返回类型对应的音高，未知类型返回 A4
func toneFrequency(t types.EmitterType) float64 {
	if f, ok := toneFrequencies[t]; ok {
		return f
	}
	return 440
}

// spawnTone 发射器生成提示音（正弦波），音频设备不可用时静默
type spawnTone struct {
	ready  bool
	volume float64
}

func newSpawnTone(enabled bool, volume float64) *spawnTone {
	s := &spawnTone{volume: volume}
	if !enabled {
		return s
	}
	if err := speaker.Init(toneSampleRate, toneSampleRate.N(time.Second/10)); err != nil {
		// 没有声音也可以运行
		log.Printf("[Sound] Audio initialization failed: %v", err)
		return s
	}
	s.ready = true
	return s
}

// newToneStreamer 生成一段带音量的正弦波
func newToneStreamer(freq, volume float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(toneSampleRate, freq)
	if err != nil {
		return nil, fmt.Errorf("sine tone %.2f Hz: %w", freq, err)
	}
	tone := beep.Take(toneSampleRate.N(toneDuration), sine)
	if volume <= 0 {
		return &effects.Volume{Streamer: tone, Base: 2, Silent: true}, nil
	}
	return &effects.Volume{Streamer: tone, Base: 2, Volume: math.Log2(volume)}, nil
}

// Play 播放类型对应的提示音
func (s *spawnTone) Play(t types.EmitterType) {
	if !s.ready {
		return
	}
	tone, err := newToneStreamer(toneFrequency(t), s.volume)
	if err != nil {
		log.Printf("[Sound] %v", err)
		return
	}
	speaker.Play(tone)
}

// Close 关闭音频设备
func (s *spawnTone) Close() {
	if s.ready {
		speaker.Close()
		s.ready = false
	}
}
