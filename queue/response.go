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

package queue

import (
	"encoding/binary"
	"sync"

	"golang.org/x/sys/unix"

	liberr "github.com/sabouaram/tcpreactor/errors"
	"github.com/sabouaram/tcpreactor/message"
)

// Response is the thread-safe queue workers push their handler Responses
// onto. The consumer side is the reactor; it is woken by an eventfd
// registered in the epoll instance, mirroring the self-pipe trick used by
// libevent-style event bases to let a non-I/O source re-enter the loop.
type Response interface {
	// Push enqueues r and wakes the reactor. Called from worker threads.
	Push(r *message.Response)
	// Fd returns the eventfd to register for EPOLLIN in the reactor's
	// epoll instance.
	Fd() int
	// Drain acknowledges the wakeup and returns every Response queued
	// since the last Drain, in push order. Called only from the reactor
	// thread.
	Drain() []*message.Response
	// Close releases the eventfd.
	Close() error
}

type response struct {
	mu   sync.Mutex
	buf  []*message.Response
	evfd int
}

// NewResponse returns a Response queue with its wakeup eventfd created.
func NewResponse() (Response, error) {
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		return nil, liberr.AcceptFailure.Error(err)
	}

	return &response{evfd: fd}, nil
}

func (r *response) Push(resp *message.Response) {
	r.mu.Lock()
	r.buf = append(r.buf, resp)
	r.mu.Unlock()

	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], 1)
	_, _ = unix.Write(r.evfd, b[:])
}

func (r *response) Fd() int {
	return r.evfd
}

func (r *response) Drain() []*message.Response {
	var b [8]byte
	_, _ = unix.Read(r.evfd, b[:])

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.buf) == 0 {
		return nil
	}

	out := r.buf
	r.buf = nil
	return out
}

func (r *response) Close() error {
	return unix.Close(r.evfd)
}
