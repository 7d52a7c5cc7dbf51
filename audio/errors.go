// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidChannels   = errors.New("channel count must be positive")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrMisalignedData    = errors.New("PCM data is not a whole number of frames")
	ErrUnknownFormat     = errors.New("unknown audio format")
)
