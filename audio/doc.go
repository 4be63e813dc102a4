// SPDX-License-Identifier: EPL-2.0

// Package audio holds the float PCM plumbing that sits in front of the
// fixed-point front end: the Source interface, a decoder registry, channel
// down-mixing and sample rate conversion.
//
// Sources are chained:
//
//	src, _ := wav.Decoder{}.Decode(f)
//	mono := audio.NewMonoMixer(src)
//	pcm := audio.NewResampler(mono, 8000)
//
//	buf := make([]float32, 320)
//	for {
//	    n, err := audio.ReadFull(pcm, buf)
//	    // use buf[:n]
//	    if err != nil {
//	        break
//	    }
//	}
//
// Samples are float32 in [-1, 1]. ReadSamples may return io.EOF together
// with the final samples, so callers consume n before checking err.
package audio
