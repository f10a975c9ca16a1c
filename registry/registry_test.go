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

package registry_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/tcpreactor/registry"
	"github.com/sabouaram/tcpreactor/session"
)

var _ = Describe("Registry", func() {
	It("stamps the session's Sid and returns it from Put", func() {
		r := registry.New()
		s := &session.Session{}

		id := r.Put(42, s)

		Expect(s.Sid.Equal(id)).To(BeTrue())
		Expect(id.Key).To(Equal(int32(42)))
	})

	It("returns ok=false for a key never put", func() {
		r := registry.New()
		_, _, ok := r.Get(7)
		Expect(ok).To(BeFalse())
	})

	It("returns ok=false after Remove", func() {
		r := registry.New()
		s := &session.Session{}
		r.Put(1, s)
		r.Remove(1)

		_, _, ok := r.Get(1)
		Expect(ok).To(BeFalse())
	})

	It("assigns a strictly greater seq on re-Put of the same key", func() {
		r := registry.New()

		id1 := r.Put(5, &session.Session{})
		r.Remove(5)
		id2 := r.Put(5, &session.Session{})

		Expect(id2.Seq).To(BeNumerically(">", id1.Seq))
	})

	It("lets a stale seq be detected after replacement", func() {
		r := registry.New()

		id1 := r.Put(5, &session.Session{})
		r.Remove(5)
		r.Put(5, &session.Session{})

		_, curSeq, ok := r.Get(5)
		Expect(ok).To(BeTrue())
		Expect(curSeq).NotTo(Equal(id1.Seq))
	})

	It("counts only currently registered sessions", func() {
		r := registry.New()
		Expect(r.Count()).To(Equal(0))

		r.Put(1, &session.Session{})
		r.Put(2, &session.Session{})
		Expect(r.Count()).To(Equal(2))

		r.Remove(1)
		Expect(r.Count()).To(Equal(1))
	})
})
