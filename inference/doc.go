// SPDX-License-Identifier: EPL-2.0

// Package inference defines what the detector needs from a classifier and
// ships EnergyModel, a small scorer that needs no model file.
//
// A Model owns its int8 input tensor. The spectrogram is built directly on
// top of that storage, so Predict always sees the latest window without a
// copy.
package inference
