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

// Package workerpool executes handler tasks (start/handle/error/timeout)
// off the reactor goroutine, backed by a goroutine pool rather than one
// goroutine per task.
package workerpool

import (
	"github.com/panjf2000/ants/v2"

	liberr "github.com/sabouaram/tcpreactor/errors"
)

// Pool runs submitted tasks on a bounded set of goroutines.
type Pool interface {
	// Execute submits fn for execution. It blocks only as long as ants
	// needs to find or spin up a free worker; it does not wait for fn to
	// finish.
	Execute(fn func()) error

	// Running returns the number of goroutines currently executing a
	// task.
	Running() int

	// Release stops accepting new tasks. It does not wait for in-flight
	// tasks to finish.
	Release()
}

type pool struct {
	p *ants.Pool
}

// New returns a Pool with at most size concurrently running goroutines.
func New(size int) (Pool, error) {
	p, err := ants.NewPool(size, ants.WithNonblocking(false))
	if err != nil {
		return nil, liberr.HandlerFailure.Error(err)
	}

	return &pool{p: p}, nil
}

func (w *pool) Execute(fn func()) error {
	if err := w.p.Submit(fn); err != nil {
		return liberr.HandlerFailure.Error(err)
	}
	return nil
}

func (w *pool) Running() int {
	return w.p.Running()
}

func (w *pool) Release() {
	w.p.Release()
}
