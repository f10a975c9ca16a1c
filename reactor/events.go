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
	"golang.org/x/sys/unix"

	"github.com/sabouaram/tcpreactor/session"
)

// armRead is the single point that requests EPOLLIN for a session. It is
// idempotent with respect to the epoll registration — calling it while
// already armed only renews the read timeout, matching the reference
// implementation's "re-arming resets the timer" contract.
func (c *core) armRead(s *session.Session) {
	c.renewReadTimer(s)

	if s.ReadArmed {
		return
	}

	s.ReadArmed = true
	c.updateInterest(s)
}

// armWrite is armRead's write-side counterpart.
func (c *core) armWrite(s *session.Session) {
	c.renewWriteTimer(s)

	if s.Writing {
		return
	}

	s.Writing = true
	c.updateInterest(s)
}

// deleteReadEvent withdraws EPOLLIN interest and the read timeout.
func (c *core) deleteReadEvent(s *session.Session) {
	c.removeReadTimer(s)

	if !s.ReadArmed {
		return
	}

	s.ReadArmed = false
	c.updateInterest(s)
}

// deleteWriteEvent withdraws EPOLLOUT interest and the write timeout.
func (c *core) deleteWriteEvent(s *session.Session) {
	c.removeWriteTimer(s)

	if !s.Writing {
		return
	}

	s.Writing = false
	c.updateInterest(s)
}

// deleteEvents withdraws both arms, used when a session is being destroyed.
func (c *core) deleteEvents(s *session.Session) {
	c.deleteReadEvent(s)
	c.deleteWriteEvent(s)
}

// updateInterest pushes s's current ReadArmed/Writing flags down to the
// single epoll registration shared by both arms of the connection fd.
func (c *core) updateInterest(s *session.Session) {
	var ev uint32

	if s.ReadArmed {
		ev |= unix.EPOLLIN
	}
	if s.Writing {
		ev |= unix.EPOLLOUT
	}

	_ = unix.EpollCtl(c.epfd, unix.EPOLL_CTL_MOD, s.FD, &unix.EpollEvent{
		Events: ev,
		Fd:     int32(s.FD),
	})
}
