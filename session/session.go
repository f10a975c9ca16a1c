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

// Package session holds the per-connection state the reactor owns and
// mutates. Every field here is written by exactly one thread at a time by
// contract (see Running): the reactor thread owns everything except the
// handler/request pair and the monotonic Status writes a worker makes
// while running.
package session

import (
	"container/list"
	"sync/atomic"

	"github.com/valyala/bytebufferpool"

	"github.com/sabouaram/tcpreactor/handler"
	"github.com/sabouaram/tcpreactor/message"
	"github.com/sabouaram/tcpreactor/sid"
)

// Session is one accepted connection's full state.
type Session struct {
	// Sid is stamped by registry.Put when the session is registered and
	// does not change afterwards.
	Sid sid.Sid

	// FD is the connection's raw file descriptor.
	FD int

	status  atomic.Int32
	running atomic.Bool

	// Writing is true while a write event is currently armed. It is
	// touched only by the reactor thread, so it needs no atomicity.
	Writing bool

	// ReadArmed is true while EPOLLIN is currently requested for FD. It is
	// touched only by the reactor thread.
	ReadArmed bool

	// InBuffer accumulates bytes read from the socket until the decoder
	// reports OK.
	InBuffer *bytebufferpool.ByteBuffer

	// OutList is the FIFO of outbound messages not yet fully written.
	OutList []*message.Message

	// OutOffset is the number of bytes of OutList's head message (and its
	// follow blocks) already written to the wire.
	OutOffset int

	// Handler is the user handler bound at accept.
	Handler handler.Handler

	// Request holds client IP and the bound decoder.
	Request handler.Request

	// ReadTimer/WriteTimer are this session's position in the reactor's
	// read/write timeout lists, nil when the corresponding event is not
	// armed.
	ReadTimer  *list.Element
	WriteTimer *list.Element
}

// New returns a Session in status Normal, not running, for the given sid/fd.
func New(id sid.Sid, fd int, h handler.Handler, req handler.Request) *Session {
	s := &Session{
		Sid:      id,
		FD:       fd,
		Handler:  h,
		Request:  req,
		InBuffer: bytebufferpool.Get(),
	}
	s.status.Store(int32(Normal))
	return s
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	return Status(s.status.Load())
}

// SetStatus advances the lifecycle state. Transitions backward (e.g.
// Exit -> Normal) are refused silently: the state machine is monotonic by
// contract, so a caller attempting one indicates a logic error elsewhere
// rather than something to propagate.
func (s *Session) SetStatus(v Status) {
	for {
		cur := Status(s.status.Load())
		if v <= cur {
			return
		}
		if s.status.CompareAndSwap(int32(cur), int32(v)) {
			return
		}
	}
}

// Running reports whether a worker task is currently in flight for this
// session.
func (s *Session) Running() bool {
	return s.running.Load()
}

// SetRunning sets the running flag. The worker clears it (false) strictly
// before pushing its Response; the reactor sets it (true) before handing
// off a task.
func (s *Session) SetRunning(v bool) {
	s.running.Store(v)
}

// Release returns pooled resources (the inbound buffer) once the session
// has been fully destroyed.
func (s *Session) Release() {
	if s.InBuffer != nil {
		bytebufferpool.Put(s.InBuffer)
		s.InBuffer = nil
	}
}
