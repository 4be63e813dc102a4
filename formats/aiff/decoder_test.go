// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	goaiff "github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
)

func writeAiff(t *testing.T, rate, channels int, data []int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clip.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	enc := goaiff.NewEncoder(f, rate, 16, channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestDecode_Stereo(t *testing.T) {
	t.Parallel()

	raw := writeAiff(t, 22050, 2, []int{0, 16384, -16384, 8192, 4096, -32768})

	src, err := Decoder{}.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 22050 || src.Channels() != 2 {
		t.Fatalf("metadata = %d ch @ %d Hz", src.Channels(), src.SampleRate())
	}

	buf := make([]float32, 16)
	n, err := src.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	want := []float32{0, 0.5, -0.5, 0.25, 0.125, -1}
	if n != len(want) {
		t.Fatalf("ReadSamples() = %d samples, want %d", n, len(want))
	}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestDecode_NotAiff(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader(make([]byte, 64)))
	if !errors.Is(err, ErrNotAiffFile) {
		t.Fatalf("Decode() error = %v, want ErrNotAiffFile", err)
	}
}
