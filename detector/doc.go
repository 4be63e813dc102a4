// SPDX-License-Identifier: EPL-2.0

// Package detector runs the capture, spectrogram and classifier cycle.
//
// Every cycle waits for one capture block, slides the spectrogram by the
// rows that block produces, asks the model for a score and reports a
// Result. A score at or above the threshold is a detection.
package detector
