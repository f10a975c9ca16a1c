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

package reactor

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	liberr "github.com/sabouaram/tcpreactor/errors"
	"github.com/sabouaram/tcpreactor/session"
)

const maxEventsPerWait = 256

// Run drives the event loop on the calling goroutine: accept, read, write,
// response-queue drain, and timeout sweeps, until Close is called. The
// listener must already be bound via Listen.
func (c *core) Run() error {
	if c.listener == nil {
		return liberr.ListenFailure.Error(fmt.Errorf("reactor: Run called before Listen"))
	}

	events := make([]unix.EpollEvent, maxEventsPerWait)

	for !c.closing {
		timeout := c.nextTimeoutMillis()

		n, err := unix.EpollWait(c.epfd, events, timeout)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			if c.closing {
				return nil
			}
			return liberr.AcceptFailure.Error(err)
		}

		for i := 0; i < n; i++ {
			c.dispatch(events[i])
		}

		expireTimers(c.readTimers,
			func(s *session.Session) { s.ReadTimer = nil },
			func(s *session.Session) {
				if _, _, ok := c.reg.Get(s.Sid.Key); ok {
					c.onRead(s, false)
				}
			})

		expireTimers(c.writeTimers,
			func(s *session.Session) { s.WriteTimer = nil },
			func(s *session.Session) {
				if _, _, ok := c.reg.Get(s.Sid.Key); ok {
					c.onWrite(s, false)
				}
			})
	}

	return nil
}

func (c *core) dispatch(ev unix.EpollEvent) {
	fd := int(ev.Fd)

	switch fd {
	case c.listenFD:
		c.onAccept()
		return
	case c.resp.Fd():
		for _, r := range c.resp.Drain() {
			c.onResponse(r)
		}
		return
	}

	s, _, ok := c.reg.Get(int32(fd))
	if !ok {
		return
	}

	if ev.Events&(unix.EPOLLIN|unix.EPOLLHUP|unix.EPOLLERR) != 0 {
		c.onRead(s, true)

		// onRead may have destroyed s (doError/terminal onWrite path runs
		// only through doError, which removes s from the registry before
		// closing its fd) — re-check before touching it again.
		if _, _, ok = c.reg.Get(int32(fd)); !ok {
			return
		}
	}
	if ev.Events&unix.EPOLLOUT != 0 {
		c.onWrite(s, true)
	}
}
