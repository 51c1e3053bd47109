package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/gopxl/beep"
)

// maxRenderSamples caps a single render so a streamer that never ends
// cannot grow the buffer without bound (10 seconds at 48kHz).
const maxRenderSamples = 48000 * 10

// PCMStream holds 16-bit little-endian stereo PCM in memory.
// It implements io.ReadSeeker so it can back an Ebitengine audio.Player.
type PCMStream struct {
	data       []byte
	sampleRate int
	offset     int64
}

// Render drains a beep streamer into interleaved 16-bit stereo PCM.
//
// Parameters:
//   - s: Streamer to drain (finite)
//   - rate: Sample rate the streamer was built for
//
// Returns:
//   - *PCMStream: Rendered audio
//   - error: Streamer error, if any
func Render(s beep.Streamer, rate beep.SampleRate) (*PCMStream, error) {
	if s == nil {
		return nil, fmt.Errorf("streamer cannot be nil")
	}

	buf := make([][2]float64, 512)
	data := make([]byte, 0, 4096)
	total := 0
	for total < maxRenderSamples {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			data = appendSample(data, buf[i][0])
			data = appendSample(data, buf[i][1])
		}
		total += n
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("failed to render tone: %w", err)
	}

	return &PCMStream{data: data, sampleRate: int(rate)}, nil
}

// appendSample clamps to [-1, 1] and writes one little-endian int16
func appendSample(data []byte, v float64) []byte {
	v = math.Max(-1, math.Min(1, v))
	pcm := int16(v * math.MaxInt16)
	return append(data, byte(pcm), byte(pcm>>8))
}

// Read reads PCM data into p.
func (p *PCMStream) Read(b []byte) (n int, err error) {
	if p.offset >= int64(len(p.data)) {
		return 0, io.EOF
	}
	n = copy(b, p.data[p.offset:])
	p.offset += int64(n)
	return n, nil
}

// Seek sets the offset for the next Read.
func (p *PCMStream) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64

	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = p.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(p.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if newOffset < 0 {
		return 0, fmt.Errorf("negative position: %d", newOffset)
	}

	p.offset = newOffset
	return newOffset, nil
}

// Bytes returns the raw PCM buffer.
func (p *PCMStream) Bytes() []byte {
	return p.data
}

// Length returns the total length of the PCM data in bytes.
func (p *PCMStream) Length() int64 {
	return int64(len(p.data))
}

// SampleRate returns the sample rate in Hz.
func (p *PCMStream) SampleRate() int {
	return p.sampleRate
}

// Duration returns the playback length in seconds.
func (p *PCMStream) Duration() float64 {
	if p.sampleRate == 0 {
		return 0
	}
	// 2 channels * 2 bytes
	return float64(len(p.data)) / float64(p.sampleRate*4)
}
