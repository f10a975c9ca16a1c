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

package reactor_test

import (
	"bytes"
	"errors"
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/valyala/bytebufferpool"

	"github.com/sabouaram/tcpreactor/config"
	"github.com/sabouaram/tcpreactor/duration"
	"github.com/sabouaram/tcpreactor/handler"
	"github.com/sabouaram/tcpreactor/message"
	"github.com/sabouaram/tcpreactor/reactor"
)

// lineDecoder decodes one "\n"-terminated line at a time, consuming the
// decoded bytes from the session's inbound buffer.
type lineDecoder struct {
	line []byte
}

func (d *lineDecoder) Decode(buf *bytebufferpool.ByteBuffer) handler.DecodeStatus {
	idx := bytes.IndexByte(buf.B, '\n')
	if idx < 0 {
		return handler.More
	}

	d.line = append([]byte(nil), buf.B[:idx+1]...)
	rest := append([]byte(nil), buf.B[idx+1:]...)
	buf.Reset()
	_, _ = buf.Write(rest)

	return handler.OK
}

type echoRequest struct {
	ip  string
	dec *lineDecoder
}

func (r *echoRequest) ClientIP() string         { return r.ip }
func (r *echoRequest) SetClientIP(ip string)    { r.ip = ip }
func (r *echoRequest) Decoder() handler.Decoder { return r.dec }

// echoHandler writes the decoded line back to the session that sent it. A
// line of "quit\n" echoes once more and then asks the session to close.
type echoHandler struct{}

func (h *echoHandler) Start(handler.Request, *message.Response) error { return nil }

func (h *echoHandler) Handle(req handler.Request, resp *message.Response) error {
	er := req.(*echoRequest)
	line := er.dec.line
	resp.Append(message.New(line, resp.FromSid))

	if bytes.Equal(line, []byte("quit\n")) {
		return errors.New("client requested close")
	}
	return nil
}

func (h *echoHandler) Error(*message.Response)   {}
func (h *echoHandler) Timeout(*message.Response) {}
func (h *echoHandler) Close()                    {}

func echoFactory() (handler.Handler, handler.Request) {
	return &echoHandler{}, &echoRequest{dec: &lineDecoder{}}
}

func startReactor(port int, opts ...config.Option) (*net.TCPAddr, func()) {
	allOpts := append([]config.Option{
		config.WithListen("127.0.0.1", port),
		config.WithTimeouts(duration.Seconds(5), duration.Seconds(5)),
		config.WithWorkerPoolSize(4),
	}, opts...)

	cfg, err := config.New(allOpts...)
	Expect(err).NotTo(HaveOccurred())

	r, err := reactor.New(cfg, echoFactory)
	Expect(err).NotTo(HaveOccurred())

	Expect(r.Listen()).To(Succeed())

	go func() { _ = r.Run() }()

	return &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: port}, func() { _ = r.Close() }
}

var _ = Describe("Reactor", func() {
	It("echoes a line back to the sender", func() {
		addr, stop := startReactor(18901)
		defer stop()

		conn, err := net.DialTCP("tcp", nil, addr)
		Expect(err).NotTo(HaveOccurred())
		defer conn.Close()

		Expect(conn.SetDeadline(time.Now().Add(2 * time.Second))).To(Succeed())
		_, err = conn.Write([]byte("hello\n"))
		Expect(err).NotTo(HaveOccurred())

		buf := make([]byte, 64)
		n, err := conn.Read(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("hello\n"))
	})

	It("refuses a connection past MaxConnections with the configured message", func() {
		addr, stop := startReactor(18902, config.WithAdmission(1, 1024, "BUSY"))
		defer stop()

		first, err := net.DialTCP("tcp", nil, addr)
		Expect(err).NotTo(HaveOccurred())
		defer first.Close()

		time.Sleep(50 * time.Millisecond)

		second, err := net.DialTCP("tcp", nil, addr)
		Expect(err).NotTo(HaveOccurred())
		defer second.Close()

		Expect(second.SetDeadline(time.Now().Add(2 * time.Second))).To(Succeed())
		buf := make([]byte, 64)
		n, err := second.Read(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("BUSY\r\n"))
	})

	It("closes the connection after a handler-requested exit drains its output", func() {
		addr, stop := startReactor(18903)
		defer stop()

		conn, err := net.DialTCP("tcp", nil, addr)
		Expect(err).NotTo(HaveOccurred())
		defer conn.Close()

		Expect(conn.SetDeadline(time.Now().Add(2 * time.Second))).To(Succeed())
		_, err = conn.Write([]byte("quit\n"))
		Expect(err).NotTo(HaveOccurred())

		buf := make([]byte, 64)
		n, err := conn.Read(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("quit\n"))

		n, err = conn.Read(buf)
		Expect(n).To(Equal(0))
		Expect(err).To(HaveOccurred())
	})
})
