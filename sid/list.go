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

package sid

// List is an ordered, duplicate-tolerant sequence of Sids. Message.toList
// and Message.failure/success are modeled on List: recipients are removed
// by index as they are resolved, in reverse order, so index validity is
// preserved across a single removal pass.
type List []Sid

// Find returns the index of the first Sid equal to s, or -1.
func (l List) Find(s Sid) int {
	for i, v := range l {
		if v.Equal(s) {
			return i
		}
	}
	return -1
}

// Take removes and returns the Sid at index i. It panics if i is out of
// range, matching the teacher's "the core never indexes past Count()"
// discipline rather than returning a second ok value.
func (l *List) Take(i int) Sid {
	s := (*l)[i]
	*l = append((*l)[:i], (*l)[i+1:]...)
	return s
}

// Add appends s to the end of the list.
func (l *List) Add(s Sid) {
	*l = append(*l, s)
}

// Count returns the number of entries in the list.
func (l List) Count() int {
	return len(l)
}
