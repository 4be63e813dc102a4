// SPDX-License-Identifier: EPL-2.0

package spectrumio

import "errors"

var ErrRecordTooLarge = errors.New("spectrumio: payload exceeds 65535 bytes")
