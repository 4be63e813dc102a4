// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// WriteWAV16 writes samples as a mono 16-bit PCM WAV at sampleRate.
// The encoder patches the chunk sizes on completion, hence the WriteSeeker.
func WriteWAV16(w io.WriteSeeker, sampleRate int, samples []int16) error {
	enc := gowav.NewEncoder(w, sampleRate, 16, 1, formatPCM)

	const chunk = 8192
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, 0, min(len(samples), chunk)),
		SourceBitDepth: 16,
	}

	for i := 0; i < len(samples); i += chunk {
		buf.Data = buf.Data[:0]
		for _, s := range samples[i:min(i+chunk, len(samples))] {
			buf.Data = append(buf.Data, int(s))
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("wav write: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav finalize: %w", err)
	}
	return nil
}
