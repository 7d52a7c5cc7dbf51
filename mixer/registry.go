// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"sync"

	"github.com/ik5/ual/audio"
)

// Registry is the set of buffers currently playing. Producers add to it from
// any goroutine; the engine mutates entries only inside With.
type Registry struct {
	mu      sync.Mutex
	entries []*audio.SampleBuffer
	set     Set
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Add queues buf for mixing. The registry keeps its own playback cursor for
// the buffer, starting wherever buf's cursor is now; the PCM bytes are shared
// and must not be modified afterwards.
func (r *Registry) Add(buf *audio.SampleBuffer) {
	if buf == nil {
		return
	}
	entry := buf.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
}

// Len returns the number of buffers still registered.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

// Clear drops every buffer.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.entries)
	r.entries = r.entries[:0]
}

// With runs fn while holding the registry lock. Entries retired by fn are
// removed once fn returns, so indices stay stable for the whole call.
func (r *Registry) With(fn func(set *Set)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.set.reset(r.entries)
	fn(&r.set)
	r.entries = r.set.compact()
}

// Set is the lock-scoped view handed to Registry.With. It must not be kept
// after the callback returns.
type Set struct {
	entries []*audio.SampleBuffer
	retired []bool
	dirty   bool
}

func (s *Set) reset(entries []*audio.SampleBuffer) {
	s.entries = entries
	s.dirty = false
	if cap(s.retired) < len(entries) {
		s.retired = make([]bool, len(entries))
	}
	s.retired = s.retired[:len(entries)]
	clear(s.retired)
}

// Len is the number of entries, retired ones included.
func (s *Set) Len() int { return len(s.entries) }

// At returns entry i.
func (s *Set) At(i int) *audio.SampleBuffer { return s.entries[i] }

// Retired reports whether entry i has been retired during this call.
func (s *Set) Retired(i int) bool { return s.retired[i] }

// Retire marks entry i for removal.
func (s *Set) Retire(i int) {
	s.retired[i] = true
	s.dirty = true
}

func (s *Set) compact() []*audio.SampleBuffer {
	entries := s.entries
	s.entries = nil
	if !s.dirty {
		return entries
	}

	kept := entries[:0]
	for i, e := range entries {
		if !s.retired[i] {
			kept = append(kept, e)
		}
	}
	clear(entries[len(kept):])

	return kept
}
