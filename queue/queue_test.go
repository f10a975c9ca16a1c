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

package queue_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/tcpreactor/message"
	"github.com/sabouaram/tcpreactor/queue"
	"github.com/sabouaram/tcpreactor/sid"
)

type inlineExecutor struct{ fail bool }

func (e *inlineExecutor) Execute(fn func()) error {
	if e.fail {
		return errors.New("executor refused task")
	}
	fn()
	return nil
}

var _ = Describe("Submission", func() {
	It("reports zero length once a pushed task runs to completion", func() {
		exec := &inlineExecutor{}
		s := queue.NewSubmission(exec)

		done := make(chan struct{})
		Expect(s.Push(func() { close(done) })).To(Succeed())
		<-done

		Expect(s.Len()).To(Equal(0))
	})

	It("does not leak the pending counter when Execute itself fails", func() {
		exec := &inlineExecutor{fail: true}
		s := queue.NewSubmission(exec)

		err := s.Push(func() {})
		Expect(err).To(HaveOccurred())
		Expect(s.Len()).To(Equal(0))
	})
})

var _ = Describe("Completion", func() {
	It("delivers pushed messages on Out in order", func() {
		c := queue.NewCompletion(4)
		m1 := message.New([]byte("a"))
		m2 := message.New([]byte("b"))

		c.Push(m1)
		c.Push(m2)

		Expect(<-c.Out()).To(BeIdenticalTo(m1))
		Expect(<-c.Out()).To(BeIdenticalTo(m2))
	})
})

var _ = Describe("Response", func() {
	It("drains pushed responses in order and exposes a wakeup Fd", func() {
		r, err := queue.NewResponse()
		Expect(err).NotTo(HaveOccurred())
		defer r.Close()

		Expect(r.Fd()).To(BeNumerically(">=", 0))

		r1 := message.NewResponse(sid.New(1, 1))
		r2 := message.NewResponse(sid.New(2, 1))

		r.Push(r1)
		r.Push(r2)

		got := r.Drain()
		Expect(got).To(Equal([]*message.Response{r1, r2}))
	})

	It("returns nil from Drain when nothing is pending", func() {
		r, err := queue.NewResponse()
		Expect(err).NotTo(HaveOccurred())
		defer r.Close()

		Expect(r.Drain()).To(BeNil())
	})
})
