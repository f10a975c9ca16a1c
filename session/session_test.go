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

package session_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/valyala/bytebufferpool"

	"github.com/sabouaram/tcpreactor/handler"
	"github.com/sabouaram/tcpreactor/message"
	"github.com/sabouaram/tcpreactor/session"
	"github.com/sabouaram/tcpreactor/sid"
)

type fakeDecoder struct{}

func (fakeDecoder) Decode(*bytebufferpool.ByteBuffer) handler.DecodeStatus { return handler.More }

type fakeRequest struct{ ip string }

func (r *fakeRequest) ClientIP() string        { return r.ip }
func (r *fakeRequest) SetClientIP(ip string)   { r.ip = ip }
func (r *fakeRequest) Decoder() handler.Decoder { return fakeDecoder{} }

type fakeHandler struct{ closed bool }

func (h *fakeHandler) Start(handler.Request, *message.Response) error  { return nil }
func (h *fakeHandler) Handle(handler.Request, *message.Response) error { return nil }
func (h *fakeHandler) Error(*message.Response)                         {}
func (h *fakeHandler) Timeout(*message.Response)                       {}
func (h *fakeHandler) Close()                                          { h.closed = true }

func newTestSession() *session.Session {
	return session.New(sid.New(1, 1), -1, &fakeHandler{}, &fakeRequest{})
}

var _ = Describe("Session", func() {
	It("starts in status Normal, not running", func() {
		s := newTestSession()
		Expect(s.Status()).To(Equal(session.Normal))
		Expect(s.Running()).To(BeFalse())
	})

	It("advances status monotonically and refuses to go backward", func() {
		s := newTestSession()

		s.SetStatus(session.WouldExit)
		Expect(s.Status()).To(Equal(session.WouldExit))

		s.SetStatus(session.Normal)
		Expect(s.Status()).To(Equal(session.WouldExit))

		s.SetStatus(session.Exit)
		Expect(s.Status()).To(Equal(session.Exit))

		s.SetStatus(session.WouldExit)
		Expect(s.Status()).To(Equal(session.Exit))
	})

	It("tracks the running interlock flag", func() {
		s := newTestSession()

		s.SetRunning(true)
		Expect(s.Running()).To(BeTrue())

		s.SetRunning(false)
		Expect(s.Running()).To(BeFalse())
	})

	It("returns the inbound buffer to the pool on Release and clears it", func() {
		s := newTestSession()
		Expect(s.InBuffer).NotTo(BeNil())

		s.Release()
		Expect(s.InBuffer).To(BeNil())
	})
})

var _ = Describe("Status", func() {
	It("renders human-readable names", func() {
		Expect(session.Normal.String()).To(Equal("normal"))
		Expect(session.WouldExit.String()).To(Equal("would-exit"))
		Expect(session.Exit.String()).To(Equal("exit"))
	})
})
