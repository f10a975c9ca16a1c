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

	"github.com/sabouaram/tcpreactor/logger"
	"github.com/sabouaram/tcpreactor/message"
	"github.com/sabouaram/tcpreactor/session"
)

// diagnosticDrainLen bounds the prefix of a dying session's inbound buffer
// logged for diagnostics before the buffer is discarded, mirroring the
// bounded debug dump the reference implementation performs on input it has
// decided to ignore rather than decode.
const diagnosticDrainLen = 16

// doStart hands the just-accepted session's start task to the worker pool.
func (c *core) doStart(s *session.Session) {
	s.SetRunning(true)

	if err := c.sub.Push(func() {
		resp := message.NewResponse(s.Sid)

		if err := s.Handler.Start(s.Request, resp); err != nil {
			s.SetStatus(session.WouldExit)
		}

		s.SetRunning(false)
		c.resp.Push(resp)
	}); err != nil {
		s.SetRunning(false)
		c.log.Warning("failed to submit start task", err, logger.Fields{"sid": s.Sid.String()})
	}
}

// doWork hands a decoded request to the worker pool. When the session is no
// longer Normal it instead logs (at debug level) up to diagnosticDrainLen
// leading bytes of the inbound buffer and discards the whole buffer.
func (c *core) doWork(s *session.Session) {
	if s.Status() != session.Normal {
		n := len(s.InBuffer.B)
		if n > diagnosticDrainLen {
			n = diagnosticDrainLen
		}

		c.log.Debug("ignoring input on dying session", string(s.InBuffer.B[:n]), logger.Fields{"sid": s.Sid.String()})
		s.InBuffer.Reset()
		return
	}

	s.SetRunning(true)

	if err := c.sub.Push(func() {
		resp := message.NewResponse(s.Sid)

		if err := s.Handler.Handle(s.Request, resp); err != nil {
			s.SetStatus(session.WouldExit)
		}

		s.SetRunning(false)
		c.resp.Push(resp)
	}); err != nil {
		s.SetRunning(false)
		c.log.Warning("failed to submit worker task", err, logger.Fields{"sid": s.Sid.String()})
	}
}

// doError tears down s on an unrecoverable I/O error. Called only when
// s.Running() is false: the reactor removes s from the registry and its
// epoll interest before handing the terminal notification to the worker
// pool, so no further reactor callback can observe s again.
func (c *core) doError(s *session.Session) {
	c.destroy(s, func(resp *message.Response) { s.Handler.Error(resp) })
}

// doTimeout tears down s after a read or write deadline expired with no
// worker task in flight. Symmetrical to doError.
func (c *core) doTimeout(s *session.Session) {
	c.destroy(s, func(resp *message.Response) { s.Handler.Timeout(resp) })
}

func (c *core) destroy(s *session.Session, notify func(*message.Response)) {
	c.deleteEvents(s)
	c.drainOutList(s)
	c.reg.Remove(s.Sid.Key)

	if err := c.sub.Push(func() {
		resp := message.NewResponse(s.Sid)
		notify(resp)
		c.resp.Push(resp)
		s.Handler.Close()
		_ = unix.Close(s.FD)
		s.Release()
	}); err != nil {
		c.log.Warning("failed to submit terminal task", err, logger.Fields{"sid": s.Sid.String()})
		s.Handler.Close()
		_ = unix.Close(s.FD)
		s.Release()
	}
}

// drainOutList fails every message still queued for s without delivering
// it, completing any that consequently reach zero remaining recipients.
func (c *core) drainOutList(s *session.Session) {
	for _, m := range s.OutList {
		if i := m.ToList.Find(s.Sid); i >= 0 {
			m.ToList.Take(i)
		}
		m.Failure.Add(s.Sid)

		if m.ToList.Count() == 0 {
			c.doCompletion(m)
		}
	}

	s.OutList = nil
	s.OutOffset = 0
}

// doCompletion hands a fully-resolved message to the host-facing completion
// queue. The host is responsible for calling Message.Release once it is
// done reading the header bytes.
func (c *core) doCompletion(m *message.Message) {
	c.comp.Push(m)
}
