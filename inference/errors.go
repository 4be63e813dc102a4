// SPDX-License-Identifier: EPL-2.0

package inference

import "errors"

var ErrInvalidModel = errors.New("inference: invalid model configuration")
