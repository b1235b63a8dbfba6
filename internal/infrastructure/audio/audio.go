// Package audio plays short synthesized tones for gameplay cues.
package audio

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/younwookim/tilerun/internal/domain/entity"
	"github.com/younwookim/tilerun/internal/infrastructure/logger"
)

// SampleRate is the output rate of the audio context
const SampleRate = 44100

type tone struct {
	freq float64
	dur  time.Duration
}

var cueTones = map[entity.Cue]tone{
	entity.CueLevelTransition: {freq: 330, dur: 400 * time.Millisecond},
	entity.CueDamage:          {freq: 110, dur: 150 * time.Millisecond},
	entity.CuePickup:          {freq: 880, dur: 120 * time.Millisecond},
	entity.CueAttack:          {freq: 520, dur: 60 * time.Millisecond},
}

// Player maps cues to pre-rendered clips. A nil *Player is silent.
type Player struct {
	ctx    *audio.Context
	clips  map[entity.Cue][]byte
	volume float64
}

// NewPlayer renders every cue clip for ctx
func NewPlayer(ctx *audio.Context, volume float64) *Player {
	clips := make(map[entity.Cue][]byte, len(cueTones))
	for cue, t := range cueTones {
		clips[cue] = Tone(t.freq, t.dur, ctx.SampleRate())
	}
	return &Player{ctx: ctx, clips: clips, volume: volume}
}

// Play starts the clip for cue and returns immediately
func (p *Player) Play(cue entity.Cue) {
	if p == nil {
		return
	}
	clip, ok := p.clips[cue]
	if !ok {
		logger.Log.WithField("cue", cue).Debug("no clip for cue")
		return
	}
	pl := p.ctx.NewPlayerFromBytes(clip)
	pl.SetVolume(p.volume)
	pl.Play()
}

// Tone renders a sine wave as 16-bit little-endian stereo PCM with a linear fade-out
func Tone(freq float64, dur time.Duration, rate int) []byte {
	n := int(dur.Seconds() * float64(rate))
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		env := 1 - float64(i)/float64(n)
		v := math.Sin(2*math.Pi*freq*float64(i)/float64(rate)) * env * 0.3
		s := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], s)
		binary.LittleEndian.PutUint16(buf[i*4+2:], s)
	}
	return buf
}
