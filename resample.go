// SPDX-License-Identifier: EPL-2.0

package audspec

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audspec/audio"
	"github.com/ik5/audspec/fixed"
)

// ResampleToMono16 drains src, down-mixes it to mono, converts it to
// targetRate and returns the result as Q15 samples. bufferSize is the read
// chunk in samples; values below 1 fall back to src.BufSize().
func ResampleToMono16(src audio.Source, targetRate int, bufferSize int) ([]fixed.Q15, error) {
	if bufferSize < 1 {
		bufferSize = max(src.BufSize(), 1)
	}

	// mixing first keeps the resampler on a single channel
	pcm := audio.NewResampler(audio.NewMonoMixer(src), targetRate)

	out := make([]fixed.Q15, 0, max(pcm.SampleRate(), bufferSize))
	buf := make([]float32, bufferSize)

	for {
		n, err := pcm.ReadSamples(buf)
		if n > 0 {
			start := len(out)
			out = append(out, make([]fixed.Q15, n)...)
			fixed.FromFloats(out[start:], buf[:n])
		}

		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("resample to mono: %w", err)
		}
	}
}
