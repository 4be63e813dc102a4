// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/ik5/audspec/internal/audiotest"
)

type stubDecoder struct{ name string }

func (d *stubDecoder) Decode(io.Reader) (Source, error) {
	return audiotest.NewSilentSource(8000, 1, 10), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	wav := &stubDecoder{name: "wav"}
	reg.Register("WAV", wav)

	got, ok := reg.Get("wav")
	if !ok || got != wav {
		t.Fatalf("Get(wav) = %v, %v; want registered decoder", got, ok)
	}

	if _, ok := reg.Get("flac"); ok {
		t.Error("Get(flac) found a decoder that was never registered")
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	ogg := &stubDecoder{name: "ogg"}
	reg.Register("ogg", ogg)

	tests := []struct {
		path    string
		wantErr bool
	}{
		{path: "/tmp/clip.ogg"},
		{path: "clip.OGG"},
		{path: "clip.wav", wantErr: true},
		{path: "noext", wantErr: true},
	}

	for _, tt := range tests {
		d, err := reg.ForPath(tt.path)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("ForPath(%q) error = %v, want ErrUnknownFormat", tt.path, err)
			}
			continue
		}
		if err != nil || d != ogg {
			t.Errorf("ForPath(%q) = %v, %v", tt.path, d, err)
		}
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	for _, f := range []string{"wav", "aiff", "mp3"} {
		reg.Register(f, &stubDecoder{name: f})
	}

	got := reg.Formats()
	want := []string{"aiff", "mp3", "wav"}
	if len(got) != len(want) {
		t.Fatalf("Formats() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Formats() = %v, want %v", got, want)
		}
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg.Register("wav", &stubDecoder{})
			_, _ = reg.Get("wav")
			_ = reg.Formats()
		}()
	}
	wg.Wait()

	if _, ok := reg.Get("wav"); !ok {
		t.Error("decoder missing after concurrent registration")
	}
}

func TestReadFull(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 1, 1000, 0.25)
	src.MaxRead = 7

	buf := make([]float32, 320)
	n, err := ReadFull(src, buf)
	if err != nil || n != 320 {
		t.Fatalf("ReadFull() = %d, %v; want 320, nil", n, err)
	}
	for i, v := range buf {
		if v != 0.25 {
			t.Fatalf("buf[%d] = %v, want 0.25", i, v)
		}
	}

	// 1000 = 3*320 + 40
	for range 2 {
		if _, err := ReadFull(src, buf); err != nil {
			t.Fatalf("ReadFull() error = %v", err)
		}
	}
	n, err = ReadFull(src, buf)
	if n != 40 || err != io.EOF {
		t.Fatalf("last ReadFull() = %d, %v; want 40, io.EOF", n, err)
	}

	n, err = ReadFull(src, buf)
	if n != 0 || err != io.EOF {
		t.Fatalf("ReadFull() after end = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestReadFull_SourceError(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 1, 1000, 0.25)
	src.FailAfter = 100

	n, err := ReadFull(src, make([]float32, 320))
	if !errors.Is(err, audiotest.ErrInjected) {
		t.Fatalf("ReadFull() error = %v, want ErrInjected", err)
	}
	if n != 100 {
		t.Errorf("ReadFull() = %d samples before failing, want 100", n)
	}
}

type stallingSource struct{ audiotest.MockSource }

func (*stallingSource) ReadSamples([]float32) (int, error) { return 0, nil }

func TestReadFull_NoProgress(t *testing.T) {
	t.Parallel()

	_, err := ReadFull(&stallingSource{}, make([]float32, 8))
	if !errors.Is(err, io.ErrNoProgress) {
		t.Fatalf("ReadFull() error = %v, want io.ErrNoProgress", err)
	}
}
