// SPDX-License-Identifier: EPL-2.0

package mixer

import "fmt"

// Status of a mixing worker.
type Status int32

const (
	StatusError   Status = -1
	StatusWorking Status = 0
	StatusStopped Status = 1
)

func (s Status) String() string {
	switch s {
	case StatusError:
		return "error"
	case StatusWorking:
		return "working"
	case StatusStopped:
		return "stopped"
	default:
		return fmt.Sprintf("Status(%d)", int32(s))
	}
}
