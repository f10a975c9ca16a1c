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

	"github.com/sabouaram/tcpreactor/handler"
	"github.com/sabouaram/tcpreactor/logger"
	"github.com/sabouaram/tcpreactor/message"
	"github.com/sabouaram/tcpreactor/session"
	"github.com/sabouaram/tcpreactor/sid"
)

// onAccept accepts as many pending connections as are currently queued on
// the listening socket, binds each to a freshly registered Session, and
// either starts it or refuses it under admission control.
func (c *core) onAccept() {
	for {
		nfd, sa, err := unix.Accept4(c.listenFD, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
				return
			}

			c.log.Warning("accept failed", err, nil)
			return
		}

		_ = unix.SetsockoptInt(nfd, unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)

		h, req := c.factory()
		req.SetClientIP(sockaddrIP(sa))

		s := session.New(sid.Sid{}, nfd, h, req)
		c.reg.Put(int32(nfd), s)

		if err = unix.EpollCtl(c.epfd, unix.EPOLL_CTL_ADD, nfd, &unix.EpollEvent{
			Events: 0,
			Fd:     int32(nfd),
		}); err != nil {
			c.log.Warning("epoll add failed on accept", err, logger.Fields{"sid": s.Sid.String()})
			c.reg.Remove(s.Sid.Key)
			_ = unix.Close(nfd)
			continue
		}

		c.armRead(s)
		c.armWrite(s)

		if c.reg.Count() > c.cfg.MaxConnections || c.sub.Len() >= c.cfg.ReqQueueSize {
			s.OutList = append(s.OutList, message.New([]byte(c.cfg.RefusedMsg+"\r\n")))
			s.SetStatus(session.Exit)
			c.log.Warning("admission refused", nil, logger.Fields{"sid": s.Sid.String()})
			continue
		}

		c.doStart(s)
	}
}

// sockaddrIP renders an accepted connection's peer address as a string,
// matching the dotted-quad capture the reference implementation performs
// via inet_ntoa at accept time.
func sockaddrIP(sa unix.Sockaddr) string {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return fmt.Sprintf("%d.%d.%d.%d", a.Addr[0], a.Addr[1], a.Addr[2], a.Addr[3])
	case *unix.SockaddrInet6:
		return fmt.Sprintf("%x", a.Addr)
	default:
		return ""
	}
}

// onRead services a readable (or read-timed-out) session.
func (c *core) onRead(s *session.Session, readable bool) {
	if !readable {
		if !s.Running() {
			c.doTimeout(s)
		} else {
			c.armRead(s)
		}
		return
	}

	buf := make([]byte, 64*1024)
	n, err := unix.Read(s.FD, buf)

	if n > 0 {
		_, _ = s.InBuffer.Write(buf[:n])

		if !s.Running() {
			if s.Request.Decoder().Decode(s.InBuffer) == handler.OK {
				c.doWork(s)
			}
		}

		c.armRead(s)
		return
	}

	// n <= 0: treat as a read error unless the socket merely has nothing
	// more to offer right now.
	if n < 0 && (errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EINTR)) {
		c.armRead(s)
		return
	}

	if !s.Running() {
		c.doError(s)
	} else {
		c.armRead(s)
	}
}

// onWrite services a writable (or write-timed-out) session.
func (c *core) onWrite(s *session.Session, writable bool) {
	if !writable {
		if !s.Running() {
			c.doTimeout(s)
		} else {
			c.armWrite(s)
		}
		return
	}

	if len(s.OutList) > 0 {
		n, err := c.transmit(s)

		if n > 0 && len(s.OutList) > 0 {
			c.armWrite(s)
			return
		}

		if n <= 0 && !errors.Is(err, unix.EAGAIN) && !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EINTR) {
			if !s.Running() {
				c.doError(s)
			} else {
				c.armWrite(s)
			}
			return
		}
	}

	if len(s.OutList) == 0 && s.Status() == session.Exit {
		if !s.Running() {
			c.deleteEvents(s)
			c.reg.Remove(s.Sid.Key)
			s.Handler.Close()
			_ = unix.Close(s.FD)
			s.Release()
		} else {
			c.armWrite(s)
		}
		return
	}

	if !s.Running() {
		if s.Request.Decoder().Decode(s.InBuffer) == handler.OK {
			c.doWork(s)
		}
	}
}

// onResponse applies one worker-produced Response to the reactor's state:
// it reconciles the originating session, then routes every Message in the
// Response to its recipients.
func (c *core) onResponse(r *message.Response) {
	if !sid.IsSystem(r.FromSid) {
		if s, seq, ok := c.reg.Get(r.FromSid.Key); ok && seq == r.FromSid.Seq {
			if s.Status() == session.WouldExit {
				s.SetStatus(session.Exit)
			}
			if s.Status() != session.Normal {
				c.deleteReadEvent(s)
			}
			c.armWrite(s)
		} else {
			c.log.Warning("response from unknown or stale session", nil, logger.Fields{"sid": r.FromSid.String()})
		}
	}

	for {
		m := r.TakeMessage()
		if m == nil {
			return
		}

		c.routeMessage(m, r.FromSid)
	}
}

func (c *core) routeMessage(m *message.Message, fromSid sid.Sid) {
	if m.TotalSize() == 0 {
		for m.ToList.Count() > 0 {
			m.Failure.Add(m.ToList.Take(0))
		}
		c.doCompletion(m)
		return
	}

	for i := m.ToList.Count() - 1; i >= 0; i-- {
		dest := m.ToList[i]

		s, seq, ok := c.reg.Get(dest.Key)
		stale := !ok || seq != dest.Seq
		refused := stale || (s.Status() == session.Exit && !dest.Equal(fromSid))

		if refused {
			m.ToList.Take(i)
			m.Failure.Add(dest)
			continue
		}

		s.OutList = append(s.OutList, m)
		c.armWrite(s)
	}

	if m.ToList.Count() == 0 {
		c.doCompletion(m)
	}
}
