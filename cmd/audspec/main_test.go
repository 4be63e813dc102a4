// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audspec"
	"github.com/ik5/audspec/audio"
	"github.com/ik5/audspec/fixed"
	"github.com/ik5/audspec/formats/wav"
	"github.com/ik5/audspec/internal/audiotest"
	"github.com/ik5/audspec/spectrumio"
)

// toneWav writes one second of a 500 Hz tone at 16 kHz.
func toneWav(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	pcm := audiotest.SineQ15(16000, 16000, 500, 0.8)
	require.NoError(t, wav.WriteWAV16(f, 16000, pcm))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(viper.New())
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestConfigCommand(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "config", "--hop-size", "64")
	require.NoError(t, err)

	assert.Contains(t, out, "fft_size: 256")
	assert.Contains(t, out, "hop_size: 64")
	assert.Contains(t, out, "sample_rate: 8000")
}

func TestConfigCommand_Invalid(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "config", "--hop-size", "1000")
	assert.Error(t, err)
}

func TestDetectCommand(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "detect", toneWav(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	// 16k samples at 16 kHz become 8000 at 8 kHz, 25 blocks of 320
	assert.InDelta(t, 25, len(lines), 1)
	assert.Contains(t, lines[len(lines)-1], "DETECTED")

	only, _, err := execute(t, "detect", "--only-detections", toneWav(t))
	require.NoError(t, err)
	assert.NotContains(t, only, "quiet")
}

func TestDetectCommand_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "detect", "clip.flac")
	assert.ErrorIs(t, err, audio.ErrUnknownFormat)
}

func TestDumpCommand(t *testing.T) {
	t.Parallel()

	dump := filepath.Join(t.TempDir(), "spec.bin")
	_, _, err := execute(t, "dump", toneWav(t), "--out", dump)
	require.NoError(t, err)

	f, err := os.Open(dump)
	require.NoError(t, err)
	defer f.Close()

	r := spectrumio.NewReader(f, 80*32)
	records := 0
	for {
		if _, err := r.Next(); err != nil {
			break
		}
		records++
	}
	assert.InDelta(t, 25, records, 1)
	assert.Zero(t, r.Skipped())
}

func TestResampleCommand(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "out.wav")
	_, _, err := execute(t, "resample", toneWav(t), out, "--rate", "8000")
	require.NoError(t, err)

	src, err := audspec.Open(out)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, 8000, src.SampleRate())
	assert.Equal(t, 1, src.Channels())

	pcm, err := audspec.ResampleToMono16(src, 8000, 1024)
	require.NoError(t, err)
	assert.InDelta(t, 8000, len(pcm), 4)

	var peak fixed.Q15
	for _, v := range pcm {
		peak = max(peak, v)
	}
	assert.Greater(t, peak, fixed.Q15(20000))
}
