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

// Package queue provides the three cross-thread queues the reactor core
// coordinates around: the submission queue (reactor -> worker pool), the
// completion queue (reactor -> host), and the response queue (worker pool
// -> reactor).
package queue

import "sync/atomic"

// Executor runs a submitted task. workerpool.Pool satisfies this.
type Executor interface {
	Execute(fn func()) error
}

// Submission is the queue of lifecycle tasks (start/worker/error/timeout)
// waiting to run on the worker pool. Its length participates in admission
// control: onAccept refuses new connections once Len reaches the
// configured reqQueueSize.
type Submission interface {
	// Push enqueues fn, to be run on the worker pool.
	Push(fn func()) error
	// Len returns the number of tasks submitted but not yet finished.
	Len() int
}

type submission struct {
	exec    Executor
	pending atomic.Int64
}

// NewSubmission returns a Submission backed by exec.
func NewSubmission(exec Executor) Submission {
	return &submission{exec: exec}
}

func (s *submission) Push(fn func()) error {
	s.pending.Add(1)

	if err := s.exec.Execute(func() {
		defer s.pending.Add(-1)
		fn()
	}); err != nil {
		s.pending.Add(-1)
		return err
	}

	return nil
}

func (s *submission) Len() int {
	return int(s.pending.Load())
}
