package sim

import (
	"io"
	"math"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// SoundKind identifies the UI feedback blips.
type SoundKind int

const (
	SoundEmitOn SoundKind = iota
	SoundEmitOff
	SoundPause
)

// AudioSystem plays procedurally generated feedback tones.
type AudioSystem struct {
	ctx   *oto.Context
	ready chan struct{}
}

var globalAudio *AudioSystem

var sfxVolume = 0.5

// InitAudio initializes the audio system. The sim runs fine without it;
// callers should log the error and continue.
func InitAudio() error {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return err
	}
	globalAudio = &AudioSystem{ctx: ctx, ready: ready}
	return nil
}

// PlaySound plays a generated tone. No-op when audio is unavailable or the
// context is not ready yet.
func PlaySound(kind SoundKind) {
	if globalAudio == nil {
		return
	}
	select {
	case <-globalAudio.ready:
	default:
		return
	}
	samples := generateSound(kind)
	if len(samples) == 0 {
		return
	}
	go func() {
		reader := &soundReader{data: samples}
		player := globalAudio.ctx.NewPlayer(reader)
		player.SetVolume(sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func makeBuf(n int) []byte { return make([]byte, n*8) }

func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

func generateSound(kind SoundKind) []byte {
	switch kind {
	case SoundEmitOn:
		return genBlip(880, 1320, 60)
	case SoundEmitOff:
		return genBlip(660, 440, 60)
	case SoundPause:
		return genBlip(520, 520, 45)
	}
	return nil
}

// genBlip sweeps a sine from f0 to f1 over ms milliseconds.
func genBlip(f0, f1, ms float64) []byte {
	n := int(SampleRate * ms / 1000)
	buf := makeBuf(n)
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		env := adsr(p, 0.02, 0.5, 0.0, 0.15)
		freq := f0 + (f1-f0)*p
		phase += 2 * math.Pi * freq / SampleRate
		putStereoF32(buf, i, math.Sin(phase)*env*0.4)
	}
	return buf
}
