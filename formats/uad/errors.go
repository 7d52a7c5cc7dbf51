// SPDX-License-Identifier: EPL-2.0

package uad

import "errors"

var (
	ErrUnsupportedVersion = errors.New("unsupported UAD version")
	ErrInvalidHeader      = errors.New("invalid UAD header")
	ErrHeaderMismatch     = errors.New("UAD header does not match its data size")
	ErrTruncatedData      = errors.New("UAD data is truncated")
)
