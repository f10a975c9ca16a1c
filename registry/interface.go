/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package registry maps a connection key (file descriptor) to its live
// Session, assigning each key a monotonic generation (seq) on insert so a
// stale reference — a Sid captured before the session was destroyed and
// the fd reused — can always be detected by comparing seqs.
package registry

import (
	"sync"

	"github.com/sabouaram/tcpreactor/session"
	"github.com/sabouaram/tcpreactor/sid"
)

// Registry is the session directory. By contract, Put/Remove are only
// ever called from the reactor thread; Get may be called from the reactor
// thread (onResponse resolving recipients) as well, since there is
// exactly one writer and the map is guarded regardless for defense in
// depth.
type Registry interface {
	// Put installs s under key, assigning it a fresh seq strictly greater
	// than any previously issued for key. It stamps s.Sid and returns the
	// assigned Sid.
	Put(key int32, s *session.Session) sid.Sid

	// Get returns the session currently registered for key and its seq.
	// ok is false if no session is registered for key.
	Get(key int32) (s *session.Session, seq uint32, ok bool)

	// Remove drops the mapping for key. The next Put for the same key is
	// guaranteed a strictly greater seq.
	Remove(key int32)

	// Count returns the number of currently registered sessions.
	Count() int
}

type entry struct {
	session *session.Session
	seq     uint32
}

type registry struct {
	mu   sync.RWMutex
	live map[int32]*entry
	gen  map[int32]uint32
}

// New returns an empty Registry.
func New() Registry {
	return &registry{
		live: make(map[int32]*entry),
		gen:  make(map[int32]uint32),
	}
}

func (r *registry) Put(key int32, s *session.Session) sid.Sid {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gen[key]++
	seq := r.gen[key]

	id := sid.New(key, seq)
	s.Sid = id
	s.FD = int(key)

	r.live[key] = &entry{session: s, seq: seq}

	return id
}

func (r *registry) Get(key int32) (*session.Session, uint32, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.live[key]
	if !ok {
		return nil, 0, false
	}
	return e.session, e.seq, true
}

func (r *registry) Remove(key int32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.live, key)
}

func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.live)
}
