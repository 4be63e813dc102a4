// SPDX-License-Identifier: EPL-2.0

package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// RegisterFlags adds the tunable keys to fs. Flag names are the keys with
// dashes, so "hop_size" becomes --hop-size.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()

	fs.String("log-level", d.LogLevel, "log level (trace, debug, info, warn, error)")
	fs.Int("sample-rate", d.SampleRate, "processing sample rate in Hz")
	fs.Int("read-size", d.ReadSize, "decoder read chunk in samples")
	fs.Int("fft-size", d.FFTSize, "transform length, a power of two")
	fs.Int("hop-size", d.HopSize, "new samples per spectrogram row")
	fs.Int("bins", d.Bins, "bins kept per row")
	fs.Int("time-frames", d.TimeFrames, "rows in the spectrogram")
	fs.Int("input-shift", d.InputShift, "scale input by 2^n before analysis")
	fs.Float32("divider-multiplier", d.DividerMultiplier, "quantizer divisor is multiplier * input scale")
	fs.Float32("threshold", d.Threshold, "detection threshold on the model score")
}

// BindFlags binds every flag in fs to the matching key on v. Flags left at
// their default do not override file or environment values.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var lastErr error

	fs.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}
	})

	return lastErr
}
