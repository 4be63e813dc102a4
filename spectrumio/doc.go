// SPDX-License-Identifier: EPL-2.0

// Package spectrumio writes and reads spectrogram snapshots as framed
// records, so a live stream can be inspected offline.
//
// A record is a little-endian uint16 magic (0xA55A), a little-endian uint16
// payload length and the int8 tensor bytes, row-major:
//
//	+--------+--------+----------------------+
//	| 5A A5  | len LE | payload (len bytes)  |
//	+--------+--------+----------------------+
//
// There is no checksum. The Reader re-synchronises on a damaged stream by
// dropping one byte at a time until a magic shows up again.
package spectrumio
