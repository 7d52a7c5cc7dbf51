// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

// ErrDecode wraps every failure reported by the Ogg Vorbis decoder.
var ErrDecode = errors.New("vorbis decode failed")
