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

// maxIovecs bounds one vectored write. The reference implementation asked
// the platform for IOV_MAX at startup and fell back to 8 when the query
// failed; since Go offers no portable equivalent of that query, we carry
// the same conservative fallback value unconditionally.
const maxIovecs = 8

// transmit performs one vectored write of session s's pending outbound
// bytes, honoring outOffset, and pops/accounts for every message the write
// fully consumed. It returns the number of bytes written and the syscall
// error, if any; onWrite decides retry vs error from the result.
func (c *core) transmit(s *session.Session) (int, error) {
	if len(s.OutList) == 0 {
		return 0, nil
	}

	iovs := make([][]byte, 0, maxIovecs)
	skip := s.OutOffset

	for _, m := range s.OutList {
		if len(iovs) >= maxIovecs {
			break
		}

		parts := append([][]byte{m.Header()}, m.Blocks()...)
		for _, p := range parts {
			if len(iovs) >= maxIovecs {
				break
			}

			if skip >= len(p) {
				skip -= len(p)
				continue
			}

			if skip > 0 {
				p = p[skip:]
				skip = 0
			}

			if len(p) > 0 {
				iovs = append(iovs, p)
			}
		}
	}

	if len(iovs) == 0 {
		return 0, nil
	}

	n, err := unix.Writev(s.FD, iovs)
	if n <= 0 {
		return n, err
	}

	s.OutOffset += n
	c.popCompleted(s)

	return n, err
}

// popCompleted removes every message at the head of s.OutList whose bytes
// are now fully covered by s.OutOffset, crediting s.Sid into each one's
// success set and completing the message once its recipient list empties.
func (c *core) popCompleted(s *session.Session) {
	for len(s.OutList) > 0 {
		m := s.OutList[0]
		size := m.TotalSize()

		if s.OutOffset < size {
			break
		}

		s.OutOffset -= size
		s.OutList = s.OutList[1:]

		if i := m.ToList.Find(s.Sid); i >= 0 {
			m.ToList.Take(i)
		}
		m.Success.Add(s.Sid)

		if m.ToList.Count() == 0 {
			c.doCompletion(m)
		}
	}
}
