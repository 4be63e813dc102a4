// SPDX-License-Identifier: EPL-2.0

package capture

import "errors"

var (
	ErrBlockSize      = errors.New("capture: block size must be positive")
	ErrNotMono        = errors.New("capture: source must be mono")
	ErrAlreadyRunning = errors.New("capture: producer already started")
	ErrShortBuffer    = errors.New("capture: destination shorter than block")
)
