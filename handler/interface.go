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

// Package handler declares the external collaborator contracts the core
// dispatches to: the user-supplied request Handler and the pluggable
// Decoder. Neither has an implementation here — the core only depends on
// these interfaces, per the host's own application protocol.
package handler

import (
	"github.com/valyala/bytebufferpool"

	"github.com/sabouaram/tcpreactor/message"
)

// DecodeStatus is the outcome of one Decoder.Decode call.
type DecodeStatus int

const (
	// More means the buffer does not yet hold a complete request; the
	// core keeps reading and does not submit work.
	More DecodeStatus = iota
	// OK means a request is fully decoded and ready for Handler.Handle.
	OK
	// Err means the buffer's leading bytes cannot be decoded. The core
	// treats Err like More (see taxonomy DecoderError): it is the host
	// decoder's responsibility to track the failure and answer a
	// protocol-specific close, since the core itself never calls the
	// error path on a decode failure alone.
	Err
)

// Decoder inspects a session's inbound buffer and reports whether a
// complete request is available. The decoder owns the parsed request
// state; the core only checks the returned status.
type Decoder interface {
	Decode(buf *bytebufferpool.ByteBuffer) DecodeStatus
}

// Request holds per-session request state: the client's address and the
// decoder bound to this connection. Concrete Request types are supplied
// by the host application.
type Request interface {
	ClientIP() string
	SetClientIP(ip string)
	Decoder() Decoder
}

// Handler is the user-supplied request handler bound to a session at
// accept time. A non-nil error from Start or Handle requests a graceful
// shutdown of the session (status advances to WouldExit). Close is called
// exactly once per session: on the reactor thread for a normal exit, on
// the worker thread for an error/timeout exit.
type Handler interface {
	Start(req Request, resp *message.Response) error
	Handle(req Request, resp *message.Response) error
	Error(resp *message.Response)
	Timeout(resp *message.Response)
	Close()
}
