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

// Package sid defines the session identifier used to address a session
// across the reactor/registry/worker-pool boundary without sharing a
// pointer to the Session itself.
package sid

import "fmt"

const (
	// SystemKey is the reserved key of the system Sid. No real session is
	// ever registered under this key.
	SystemKey int32 = -1
	// SystemSeq is the reserved seq of the system Sid.
	SystemSeq uint32 = 0
)

// Sid identifies a session by the pair (key, seq). key is the connection's
// file descriptor; seq is the generation assigned by the registry on
// insert. Comparing both fields is the sole mechanism that detects a stale
// reference to a session that has since been destroyed and whose key has
// been reused.
type Sid struct {
	Key int32
	Seq uint32
}

// System is the reserved Sid marking a Response that does not originate
// from any real session (e.g. a timer-driven message).
var System = Sid{Key: SystemKey, Seq: SystemSeq}

// New returns a Sid for the given key/seq pair.
func New(key int32, seq uint32) Sid {
	return Sid{Key: key, Seq: seq}
}

// IsSystem reports whether s is the reserved system Sid.
func IsSystem(s Sid) bool {
	return s.Key == SystemKey && s.Seq == SystemSeq
}

// Equal reports whether two Sids address the same session generation.
func (s Sid) Equal(o Sid) bool {
	return s.Key == o.Key && s.Seq == o.Seq
}

func (s Sid) String() string {
	return fmt.Sprintf("%d.%d", s.Key, s.Seq)
}
