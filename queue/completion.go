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

import "github.com/sabouaram/tcpreactor/message"

// Completion is the host-facing queue of Messages that have reached zero
// remaining recipients (success+failure accounting is final). The host
// drains it via Out.
type Completion interface {
	// Push hands a fully-resolved Message to the host. Called only from
	// the reactor thread.
	Push(m *message.Message)
	// Out returns the channel the host ranges over to drain completions.
	Out() <-chan *message.Message
	// Close closes the underlying channel; callers must stop calling
	// Push beforehand.
	Close()
}

type completion struct {
	ch chan *message.Message
}

// NewCompletion returns a Completion with the given channel capacity.
func NewCompletion(capacity int) Completion {
	return &completion{ch: make(chan *message.Message, capacity)}
}

func (c *completion) Push(m *message.Message) {
	c.ch <- m
}

func (c *completion) Out() <-chan *message.Message {
	return c.ch
}

func (c *completion) Close() {
	close(c.ch)
}
