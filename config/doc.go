// SPDX-License-Identifier: EPL-2.0

// Package config resolves the runtime configuration from defaults, an
// optional YAML file, AUDSPEC_* environment variables and command line
// flags, in increasing order of precedence.
//
// Keys are flat snake_case names:
//
//	sample_rate: 8000
//	fft_size: 256
//	hop_size: 80
//	bins: 32
//	time_frames: 80
//	threshold: 0.5
//	model:
//	  window: 4
package config
