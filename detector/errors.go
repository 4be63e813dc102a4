// SPDX-License-Identifier: EPL-2.0

package detector

import "errors"

var (
	ErrInputSize = errors.New("detector: model input does not match the spectrogram")
	ErrThreshold = errors.New("detector: threshold outside [0, 1]")
)
