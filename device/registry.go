// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Opener creates a backend from a fully defaulted Config.
type Opener func(cfg Config) (Device, error)

const (
	OtoBackend  = "oto"
	NullBackend = "null"
)

var (
	backends = make(map[string]Opener)
	mtx      sync.Mutex
)

// Register makes a backend available under name. Backends register
// themselves from init; a later registration replaces an earlier one.
func Register(name string, open Opener) {
	mtx.Lock()
	defer mtx.Unlock()

	backends[strings.ToLower(name)] = open
}

// Backends lists the registered backend names in sorted order.
func Backends() []string {
	mtx.Lock()
	defer mtx.Unlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// DefaultBackend is oto when it is compiled in and null otherwise.
func DefaultBackend() string {
	mtx.Lock()
	defer mtx.Unlock()

	if _, ok := backends[OtoBackend]; ok {
		return OtoBackend
	}

	return NullBackend
}

// Open creates the backend named by cfg.Backend, or the default one.
func Open(cfg Config) (Device, error) {
	cfg = cfg.withDefaults()

	mtx.Lock()
	open, ok := backends[strings.ToLower(cfg.Backend)]
	mtx.Unlock()

	if !ok {
		return nil, newError("open", CodeUnknownBackend,
			fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend))
	}
	if err := cfg.checkFormat(); err != nil {
		return nil, err
	}

	return open(cfg)
}
