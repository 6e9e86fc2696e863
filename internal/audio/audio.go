// Package audio turns simulation cues into short synthesized tones.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/kitchen-defense/internal/sim"
)

const sampleRate = beep.SampleRate(44100)

// Tone is a sine sweep with a linear fade-out.
type Tone struct {
	From     float64 // Hz
	To       float64 // Hz
	Duration time.Duration
	Volume   float64 // 0..1
}

var cueTones = map[sim.Cue]Tone{
	sim.CueThrow:     {From: 660, To: 880, Duration: 40 * time.Millisecond, Volume: 0.08},
	sim.CueFed:       {From: 520, To: 620, Duration: 60 * time.Millisecond, Volume: 0.10},
	sim.CueSated:     {From: 620, To: 1240, Duration: 180 * time.Millisecond, Volume: 0.14},
	sim.CueKilled:    {From: 300, To: 150, Duration: 150 * time.Millisecond, Volume: 0.14},
	sim.CueBreach:    {From: 180, To: 90, Duration: 400 * time.Millisecond, Volume: 0.20},
	sim.CueBuild:     {From: 440, To: 660, Duration: 120 * time.Millisecond, Volume: 0.12},
	sim.CueTowerLost: {From: 220, To: 110, Duration: 250 * time.Millisecond, Volume: 0.16},
	sim.CueReject:    {From: 120, To: 120, Duration: 120 * time.Millisecond, Volume: 0.12},
	sim.CueCooked:    {From: 880, To: 990, Duration: 90 * time.Millisecond, Volume: 0.10},
	sim.CueWave:      {From: 330, To: 495, Duration: 300 * time.Millisecond, Volume: 0.14},
	sim.CueWon:       {From: 523, To: 1046, Duration: 600 * time.Millisecond, Volume: 0.18},
	sim.CueLost:      {From: 260, To: 65, Duration: 800 * time.Millisecond, Volume: 0.18},
}

// ToneFor returns the tone of a cue.
func ToneFor(c sim.Cue) (Tone, bool) {
	t, ok := cueTones[c]
	return t, ok
}

// Streamer returns a finite streamer for the tone.
func (t Tone) Streamer(sr beep.SampleRate) beep.Streamer {
	n := sr.N(t.Duration)
	return beep.Take(n, &sweep{tone: t, sr: sr, total: n})
}

type sweep struct {
	tone  Tone
	sr    beep.SampleRate
	total int
	pos   int
	phase float64
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := 0.0
		if s.total > 0 {
			progress = float64(s.pos) / float64(s.total)
		}
		freq := s.tone.From + (s.tone.To-s.tone.From)*progress
		s.phase += 2 * math.Pi * freq / float64(s.sr)
		v := s.tone.Volume * (1 - progress) * math.Sin(s.phase)
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// Player plays cues on the default output device. It implements sim.SoundSink.
// An uninitialized player stays silent.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewPlayer creates a silent player; call Initialize to open the device.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// SetMuted silences or restores output.
func (p *Player) SetMuted(m bool) {
	p.mu.Lock()
	p.muted = m
	p.mu.Unlock()
}

// Play queues the tone for a cue. It never blocks on the device.
func (p *Player) Play(c sim.Cue) {
	tone, ok := ToneFor(c)
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized || p.muted {
		return
	}
	speaker.Lock()
	p.mixer.Add(tone.Streamer(sampleRate))
	speaker.Unlock()
}

// Close stops every sound.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
