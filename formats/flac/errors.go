// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrNotFlacFile           = errors.New("not a FLAC file")
	ErrOnlyPCM16bitSupported = errors.New("only 16-bit FLAC is supported")
	ErrChannelMismatch       = errors.New("frame channel count differs from stream info")
	ErrDecode                = errors.New("flac decode failed")
)
