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

package message_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/tcpreactor/message"
	"github.com/sabouaram/tcpreactor/sid"
)

var _ = Describe("Message", func() {
	It("carries the header as its first segment", func() {
		m := message.New([]byte("hello"), sid.New(1, 1))
		Expect(m.Header()).To(Equal([]byte("hello")))
		Expect(m.TotalSize()).To(Equal(5))
	})

	It("accumulates follow blocks in write order", func() {
		m := message.New([]byte("hdr"))
		m.AddBlock([]byte("abc"))
		m.AddBlock([]byte("de"))

		Expect(m.Blocks()).To(Equal([][]byte{[]byte("abc"), []byte("de")}))
		Expect(m.TotalSize()).To(Equal(len("hdr") + 3 + 2))
	})

	It("seeds ToList from the recipients given to New", func() {
		a, b := sid.New(1, 1), sid.New(2, 1)
		m := message.New([]byte("x"), a, b)

		Expect(m.ToList.Count()).To(Equal(2))
		Expect(m.ToList.Find(a)).To(Equal(0))
		Expect(m.ToList.Find(b)).To(Equal(1))
		Expect(m.Success.Count()).To(Equal(0))
		Expect(m.Failure.Count()).To(Equal(0))
	})

	It("partitions ToList into Success/Failure without loss or overlap", func() {
		a, b, c := sid.New(1, 1), sid.New(2, 1), sid.New(3, 1)
		m := message.New([]byte("x"), a, b, c)

		taken := m.ToList.Take(1)
		m.Success.Add(taken)
		m.Failure.Add(m.ToList.Take(0))
		m.Success.Add(m.ToList.Take(0))

		Expect(m.ToList.Count()).To(Equal(0))
		Expect(m.Success.Count() + m.Failure.Count()).To(Equal(3))
	})
})

var _ = Describe("Response", func() {
	It("takes messages in append order and returns nil once exhausted", func() {
		r := message.NewResponse(sid.New(1, 1))
		m1 := message.New([]byte("1"))
		m2 := message.New([]byte("2"))

		r.Append(m1)
		r.Append(m2)

		Expect(r.TakeMessage()).To(BeIdenticalTo(m1))
		Expect(r.TakeMessage()).To(BeIdenticalTo(m2))
		Expect(r.TakeMessage()).To(BeNil())
	})

	It("records the origin sid", func() {
		from := sid.New(9, 2)
		r := message.NewResponse(from)
		Expect(r.FromSid.Equal(from)).To(BeTrue())
	})
})
