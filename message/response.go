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

package message

import "github.com/sabouaram/tcpreactor/sid"

// Response is produced by one handler invocation (start/handle/error/
// timeout). FromSid names the session the handler ran for, or sid.System
// for a non-session origin. Messages are taken one at a time by the
// reactor in the order they were appended.
type Response struct {
	FromSid  sid.Sid
	messages []*Message
}

// NewResponse returns an empty Response attributed to from.
func NewResponse(from sid.Sid) *Response {
	return &Response{FromSid: from}
}

// Append adds a Message to the end of the Response's sequence.
func (r *Response) Append(m *Message) {
	r.messages = append(r.messages, m)
}

// TakeMessage pops and returns the next Message in sequence, or nil when
// exhausted.
func (r *Response) TakeMessage() *Message {
	if len(r.messages) == 0 {
		return nil
	}

	m := r.messages[0]
	r.messages = r.messages[1:]
	return m
}
