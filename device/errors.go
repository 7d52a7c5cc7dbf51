// SPDX-License-Identifier: EPL-2.0

package device

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownBackend    = errors.New("unknown output backend")
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrClosed            = errors.New("device closed")
	ErrRegionBusy        = errors.New("a region is already acquired")
	ErrRegionTooLarge    = errors.New("region larger than available capacity")
	ErrInvalidRelease    = errors.New("release does not match the acquired region")
	ErrNoDevice          = errors.New("no output device")
)

// Code is a diagnostic code attached to device failures. The high byte
// groups codes by the stage that failed.
type Code uint32

const (
	CodeUnknownBackend Code = 0x0100
	CodeInit           Code = 0x0200
	CodeNoDevice       Code = 0x0201
	CodeFormat         Code = 0x0300
	CodeStream         Code = 0x0400
	CodeStart          Code = 0x0500
	CodeStop           Code = 0x0501
	CodeBuffer         Code = 0x0600
	CodeClosed         Code = 0x0700
	CodeClose          Code = 0x0701
)

func (c Code) String() string {
	return fmt.Sprintf("0x%04x", uint32(c))
}

// Error describes a failed device operation.
type Error struct {
	Op   string
	Code Code
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("device %s failed (%s): %v", e.Op, e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// CodeOf returns the diagnostic code carried by err, if any.
func CodeOf(err error) (Code, bool) {
	var derr *Error
	if errors.As(err, &derr) {
		return derr.Code, true
	}

	return 0, false
}

// noDeviceError reports a missing output device, keeping the backend's own
// error when there is one.
func noDeviceError(cause error) *Error {
	if cause == nil {
		return newError("open", CodeNoDevice, ErrNoDevice)
	}

	return newError("open", CodeNoDevice, fmt.Errorf("%w: %w", ErrNoDevice, cause))
}

func newError(op string, code Code, err error) *Error {
	return &Error{Op: op, Code: code, Err: err}
}
