// SPDX-License-Identifier: EPL-2.0

package dsp

import "errors"

var (
	// ErrInvalidConfig indicates a non-positive size or more bins than the transform produces.
	ErrInvalidConfig = errors.New("invalid pipeline configuration")

	// ErrUnsupportedLength indicates the transform cannot be built for the requested length.
	ErrUnsupportedLength = errors.New("unsupported transform length")

	// ErrNotReady indicates processing was requested before a successful Init.
	ErrNotReady = errors.New("pipeline not initialized")

	// ErrShortFrame indicates fewer samples than the transform length were supplied.
	ErrShortFrame = errors.New("frame shorter than transform length")

	// ErrFrameIndex indicates a spectrogram row index outside [0, frames).
	ErrFrameIndex = errors.New("spectrogram frame index out of range")

	// ErrStorageSize indicates external tensor storage that is not frames*bins long.
	ErrStorageSize = errors.New("spectrogram storage size mismatch")
)
