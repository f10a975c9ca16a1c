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

// Package reactor is the event-driven session and dispatch core: a single
// epoll-driven goroutine owns the session registry and every session's
// mutable state, handing decoded requests to a worker pool and routing
// worker-produced responses back to one or more sessions.
package reactor

import (
	"container/list"
	"net"
	"time"

	"golang.org/x/sys/unix"

	"github.com/sabouaram/tcpreactor/config"
	liberr "github.com/sabouaram/tcpreactor/errors"
	"github.com/sabouaram/tcpreactor/handler"
	"github.com/sabouaram/tcpreactor/logger"
	"github.com/sabouaram/tcpreactor/message"
	"github.com/sabouaram/tcpreactor/queue"
	"github.com/sabouaram/tcpreactor/registry"
	"github.com/sabouaram/tcpreactor/workerpool"
)

// Factory builds the per-connection handler and request the reactor binds
// to a freshly accepted session.
type Factory func() (handler.Handler, handler.Request)

// Reactor runs the accept/read/write/dispatch event loop on the calling
// goroutine until Close is called or a fatal error occurs.
type Reactor interface {
	// Run blocks, driving the event loop. It returns when Close is
	// called from another goroutine, or on an unrecoverable epoll error.
	Run() error
	// Close stops the loop and releases the listener, epoll instance and
	// worker pool.
	Close() error
	// Completions returns the channel of fully-delivered/failed Messages
	// for the host to drain.
	Completions() <-chan *message.Message
}

type core struct {
	cfg *config.Config
	log logger.Logger

	reg  registry.Registry
	pool workerpool.Pool
	sub  queue.Submission
	comp queue.Completion
	resp queue.Response

	factory Factory

	listener net.Listener
	listenFD int

	epfd int

	readTimers  *list.List
	writeTimers *list.List

	closing bool
}

// New wires a Reactor from cfg, ready to Run once a listener is attached
// via Listen.
func New(cfg *config.Config, factory Factory) (*core, error) {
	reg := registry.New()

	pool, err := workerpool.New(cfg.WorkerPoolSize)
	if err != nil {
		return nil, err
	}

	rq, err := queue.NewResponse()
	if err != nil {
		pool.Release()
		return nil, err
	}

	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		pool.Release()
		_ = rq.Close()
		return nil, liberr.AcceptFailure.Error(err)
	}

	c := &core{
		cfg:         cfg,
		log:         cfg.Log,
		reg:         reg,
		pool:        pool,
		sub:         queue.NewSubmission(pool),
		comp:        queue.NewCompletion(cfg.CompletionBuffer),
		resp:        rq,
		factory:     factory,
		epfd:        epfd,
		readTimers:  list.New(),
		writeTimers: list.New(),
	}

	if err = unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, rq.Fd(), &unix.EpollEvent{
		Events: unix.EPOLLIN,
		Fd:     int32(rq.Fd()),
	}); err != nil {
		_ = c.Close()
		return nil, liberr.AcceptFailure.Error(err)
	}

	return c, nil
}

// Close stops accepting work and releases resources. Safe to call once.
func (c *core) Close() error {
	c.closing = true

	if c.listener != nil {
		_ = c.listener.Close()
	}

	c.pool.Release()
	_ = c.resp.Close()

	if c.epfd != 0 {
		return unix.Close(c.epfd)
	}

	return nil
}

func (c *core) Completions() <-chan *message.Message {
	return c.comp.Out()
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
