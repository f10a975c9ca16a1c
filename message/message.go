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

// Package message defines the outbound unit (Message) and the handler
// output envelope (Response) that flow from a worker back into the
// reactor's transmit path.
package message

import (
	"github.com/valyala/bytebufferpool"

	"github.com/sabouaram/tcpreactor/sid"
)

// Message is one outbound unit: a header buffer plus zero or more follow
// blocks, addressed to an ordered (duplicate-tolerant) set of recipients.
// A Message is complete once ToList is empty; Success and Failure then
// partition the original recipient set.
type Message struct {
	header      *bytebufferpool.ByteBuffer
	blocks      [][]byte
	blocksSize  int
	ToList      sid.List
	Success     sid.List
	Failure     sid.List
}

// New returns a Message carrying header as its first scatter-gather
// segment, addressed to recipients.
func New(header []byte, recipients ...sid.Sid) *Message {
	b := bytebufferpool.Get()
	_, _ = b.Write(header)

	m := &Message{
		header: b,
		ToList: append(sid.List{}, recipients...),
	}

	return m
}

// AddBlock appends an additional scatter-gather segment after the header
// and any previously added blocks.
func (m *Message) AddBlock(b []byte) {
	m.blocks = append(m.blocks, b)
	m.blocksSize += len(b)
}

// Header returns the message's header bytes.
func (m *Message) Header() []byte {
	return m.header.B
}

// Blocks returns the follow blocks, in write order.
func (m *Message) Blocks() [][]byte {
	return m.blocks
}

// TotalSize is |header| + sum(|blocks|).
func (m *Message) TotalSize() int {
	return len(m.header.B) + m.blocksSize
}

// Release returns the header buffer to the shared pool. Called once a
// Message has left every recipient's outList (completed or never sent).
func (m *Message) Release() {
	bytebufferpool.Put(m.header)
}
