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

package sid_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/tcpreactor/sid"
)

var _ = Describe("Sid", func() {
	It("equates only on matching key and seq", func() {
		a := sid.New(4, 1)
		b := sid.New(4, 1)
		c := sid.New(4, 2)

		Expect(a.Equal(b)).To(BeTrue())
		Expect(a.Equal(c)).To(BeFalse())
	})

	It("recognizes the reserved system sid", func() {
		Expect(sid.IsSystem(sid.System)).To(BeTrue())
		Expect(sid.IsSystem(sid.New(4, 1))).To(BeFalse())
	})

	It("renders key.seq in String", func() {
		Expect(sid.New(7, 3).String()).To(Equal("7.3"))
	})
})

var _ = Describe("List", func() {
	It("finds the first matching entry", func() {
		l := sid.List{sid.New(1, 1), sid.New(2, 1), sid.New(1, 1)}
		Expect(l.Find(sid.New(2, 1))).To(Equal(1))
		Expect(l.Find(sid.New(9, 9))).To(Equal(-1))
	})

	It("removes the entry at the given index on Take", func() {
		l := sid.List{sid.New(1, 1), sid.New(2, 1), sid.New(3, 1)}
		taken := l.Take(1)

		Expect(taken).To(Equal(sid.New(2, 1)))
		Expect(l.Count()).To(Equal(2))
		Expect(l.Find(sid.New(2, 1))).To(Equal(-1))
	})

	It("appends on Add", func() {
		var l sid.List
		l.Add(sid.New(5, 1))
		Expect(l.Count()).To(Equal(1))
	})
})
