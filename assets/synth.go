package assets

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
)

const SampleRate = 44100

type waveform int

const (
	waveSine waveform = iota
	waveSquare
	waveTriangle
	waveSaw
	waveNoise
)

// tone is one segment of a sound effect. Freq sweeps linearly to SweepTo
// when SweepTo is non-zero.
type tone struct {
	Wave    waveform
	Freq    float64
	SweepTo float64
	Dur     float64
	Gain    float64
	// Decay is the exponential fade rate in 1/seconds; zero uses a short
	// linear release instead.
	Decay float64
}

var soundBook = map[string][]tone{
	"coin": {
		{Wave: waveSquare, Freq: 988, Dur: 0.06, Gain: 0.35},
		{Wave: waveSquare, Freq: 1319, Dur: 0.12, Gain: 0.35, Decay: 18},
	},
	"star": {
		{Wave: waveTriangle, Freq: 1047, Dur: 0.07, Gain: 0.5},
		{Wave: waveTriangle, Freq: 1319, Dur: 0.07, Gain: 0.5},
		{Wave: waveTriangle, Freq: 1568, Dur: 0.07, Gain: 0.5},
		{Wave: waveTriangle, Freq: 2093, Dur: 0.18, Gain: 0.5, Decay: 10},
	},
	"spike": {
		{Wave: waveSaw, Freq: 420, SweepTo: 110, Dur: 0.3, Gain: 0.45, Decay: 6},
	},
	"key": {
		{Wave: waveTriangle, Freq: 784, Dur: 0.08, Gain: 0.5},
		{Wave: waveTriangle, Freq: 988, Dur: 0.08, Gain: 0.5},
		{Wave: waveTriangle, Freq: 1175, Dur: 0.08, Gain: 0.5},
		{Wave: waveTriangle, Freq: 1568, Dur: 0.2, Gain: 0.5, Decay: 8},
	},
	"bomb": {
		{Wave: waveNoise, Dur: 0.7, Gain: 0.8, Decay: 5},
	},
	"unlock": {
		{Wave: waveSquare, Freq: 660, Dur: 0.1, Gain: 0.3},
		{Wave: waveSquare, Freq: 880, Dur: 0.18, Gain: 0.3, Decay: 10},
	},
	"lava": {
		{Wave: waveSine, Freq: 90, SweepTo: 60, Dur: 0.4, Gain: 0.7, Decay: 4},
	},
	"congrats": {
		{Wave: waveSquare, Freq: 523, Dur: 0.14, Gain: 0.3},
		{Wave: waveSquare, Freq: 659, Dur: 0.14, Gain: 0.3},
		{Wave: waveSquare, Freq: 784, Dur: 0.14, Gain: 0.3},
		{Wave: waveSquare, Freq: 1047, Dur: 0.2, Gain: 0.3},
		{Wave: waveSquare, Freq: 784, Dur: 0.12, Gain: 0.3},
		{Wave: waveSquare, Freq: 1047, Dur: 0.45, Gain: 0.3, Decay: 3},
	},
	"shoot": {
		{Wave: waveNoise, Dur: 0.03, Gain: 0.3},
		{Wave: waveSquare, Freq: 900, SweepTo: 300, Dur: 0.09, Gain: 0.25, Decay: 20},
	},
}

// SoundNames lists every sound effect the synthesizer knows.
func SoundNames() []string {
	names := make([]string, 0, len(soundBook))
	for name := range soundBook {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Synthesize renders the named effect to mono samples in [-1, 1].
func Synthesize(name string) ([]float64, error) {
	tones, ok := soundBook[name]
	if !ok {
		return nil, fmt.Errorf("assets: unknown sound %q", name)
	}
	var out []float64
	noise := uint32(0x2545f491)
	for _, t := range tones {
		n := int(t.Dur * SampleRate)
		phase := 0.0
		for i := 0; i < n; i++ {
			p := float64(i) / float64(n)
			freq := t.Freq
			if t.SweepTo != 0 {
				freq = t.Freq + (t.SweepTo-t.Freq)*p
			}
			phase += freq / SampleRate
			phase -= math.Floor(phase)

			var v float64
			switch t.Wave {
			case waveSine:
				v = math.Sin(2 * math.Pi * phase)
			case waveSquare:
				v = 1
				if phase >= 0.5 {
					v = -1
				}
			case waveTriangle:
				v = 4*math.Abs(phase-0.5) - 1
			case waveSaw:
				v = 2*phase - 1
			case waveNoise:
				noise ^= noise << 13
				noise ^= noise >> 17
				noise ^= noise << 5
				v = float64(noise)/float64(math.MaxUint32)*2 - 1
			}

			env := 1.0
			if t.Decay > 0 {
				env = math.Exp(-t.Decay * float64(i) / SampleRate)
			} else if rel := 0.2; p > 1-rel {
				env = (1 - p) / rel
			}
			out = append(out, v*env*t.Gain)
		}
	}
	return out, nil
}

// EncodeWAV wraps mono samples as 16-bit little-endian stereo PCM in a RIFF
// container.
func EncodeWAV(samples []float64, sampleRate int) []byte {
	const (
		channels      = 2
		bitsPerSample = 16
	)
	dataLen := len(samples) * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	var buf bytes.Buffer
	buf.Grow(44 + dataLen)
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(dataLen))

	for _, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		v := int16(s * math.MaxInt16)
		_ = binary.Write(&buf, binary.LittleEndian, v)
		_ = binary.Write(&buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

// SoundWAV synthesizes and encodes the named effect.
func SoundWAV(name string) ([]byte, error) {
	samples, err := Synthesize(name)
	if err != nil {
		return nil, err
	}
	return EncodeWAV(samples, SampleRate), nil
}
