// SPDX-License-Identifier: EPL-2.0

// Command audspec runs the fixed-point spectrogram front end over audio
// files: detection, spectrogram dumps, resampling and config inspection.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
