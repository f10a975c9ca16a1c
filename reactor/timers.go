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
	"container/list"

	"github.com/sabouaram/tcpreactor/session"
)

// timerEntry is the payload of a readTimers/writeTimers list element.
// Each event type's timeout is a fixed configured duration, so arming
// always appends to the tail and the list stays sorted by deadline
// without needing a heap.
type timerEntry struct {
	s        *session.Session
	deadline int64
}

func (c *core) renewReadTimer(s *session.Session) {
	if s.ReadTimer != nil {
		c.readTimers.Remove(s.ReadTimer)
	}

	s.ReadTimer = c.readTimers.PushBack(&timerEntry{
		s:        s,
		deadline: nowMillis() + c.cfg.ReadTimeout.Time().Milliseconds(),
	})
}

func (c *core) renewWriteTimer(s *session.Session) {
	if s.WriteTimer != nil {
		c.writeTimers.Remove(s.WriteTimer)
	}

	s.WriteTimer = c.writeTimers.PushBack(&timerEntry{
		s:        s,
		deadline: nowMillis() + c.cfg.WriteTimeout.Time().Milliseconds(),
	})
}

func (c *core) removeReadTimer(s *session.Session) {
	if s.ReadTimer != nil {
		c.readTimers.Remove(s.ReadTimer)
		s.ReadTimer = nil
	}
}

func (c *core) removeWriteTimer(s *session.Session) {
	if s.WriteTimer != nil {
		c.writeTimers.Remove(s.WriteTimer)
		s.WriteTimer = nil
	}
}

// nextTimeoutMillis returns the epoll_wait timeout to use so the loop
// wakes no later than the earliest armed deadline, or -1 (block
// indefinitely) when nothing is armed.
func (c *core) nextTimeoutMillis() int {
	var earliest int64 = -1

	if e := c.readTimers.Front(); e != nil {
		earliest = e.Value.(*timerEntry).deadline
	}

	if e := c.writeTimers.Front(); e != nil {
		d := e.Value.(*timerEntry).deadline
		if earliest == -1 || d < earliest {
			earliest = d
		}
	}

	if earliest == -1 {
		return -1
	}

	remaining := earliest - nowMillis()
	if remaining < 0 {
		return 0
	}

	return int(remaining)
}

// expireTimers pops every list entry whose deadline has passed and
// invokes fire for it. Expired sessions are removed from the timer list
// before fire runs, since fire (Run's closures calling onRead/onWrite with
// the ready flag false) may re-arm or destroy the session.
func expireTimers(l *list.List, clear func(*session.Session), fire func(*session.Session)) {
	now := nowMillis()

	for {
		e := l.Front()
		if e == nil {
			break
		}

		te := e.Value.(*timerEntry)
		if te.deadline > now {
			break
		}

		l.Remove(e)
		clear(te.s)
		fire(te.s)
	}
}
