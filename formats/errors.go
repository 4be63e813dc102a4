// SPDX-License-Identifier: EPL-2.0

package formats

import "errors"

var (
	// ErrUnsupportedBitDepth is returned for PCM that is not 16, 24 or 32 bit.
	ErrUnsupportedBitDepth = errors.New("unsupported PCM bit depth")
	ErrMissingFormat       = errors.New("decoder reported no PCM format")
)
