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

// Package config collects the reactor's startup parameters behind
// functional options, validated at New.
package config

import (
	"fmt"

	"github.com/sabouaram/tcpreactor/duration"
	liberr "github.com/sabouaram/tcpreactor/errors"
	"github.com/sabouaram/tcpreactor/logger"
)

// Config is the validated, immutable set of parameters a reactor is built
// from.
type Config struct {
	Host string
	Port int

	MaxConnections int
	ReqQueueSize   int
	RefusedMsg     string

	ReadTimeout  duration.Duration
	WriteTimeout duration.Duration

	WorkerPoolSize    int
	CompletionBuffer  int

	Log logger.Logger
}

// Option mutates a Config under construction.
type Option func(*Config)

// WithListen sets the IPv4 host (empty means INADDR_ANY) and port to
// listen on.
func WithListen(host string, port int) Option {
	return func(c *Config) {
		c.Host = host
		c.Port = port
	}
}

// WithAdmission sets the admission-control thresholds and the message
// (CRLF is appended by the reactor) sent to a refused connection.
func WithAdmission(maxConnections, reqQueueSize int, refusedMsg string) Option {
	return func(c *Config) {
		c.MaxConnections = maxConnections
		c.ReqQueueSize = reqQueueSize
		c.RefusedMsg = refusedMsg
	}
}

// WithTimeouts sets the per-event read and write timeouts. Each arm of
// read/write renews its own timer independently.
func WithTimeouts(read, write duration.Duration) Option {
	return func(c *Config) {
		c.ReadTimeout = read
		c.WriteTimeout = write
	}
}

// WithWorkerPoolSize sets the number of goroutines available to run
// handler tasks concurrently.
func WithWorkerPoolSize(n int) Option {
	return func(c *Config) { c.WorkerPoolSize = n }
}

// WithCompletionBuffer sets the completion queue's channel capacity.
func WithCompletionBuffer(n int) Option {
	return func(c *Config) { c.CompletionBuffer = n }
}

// WithLogger sets the structured logger the core emits operational lines
// to. Defaults to logger.New(nil, logger.InfoLevel) when omitted.
func WithLogger(l logger.Logger) Option {
	return func(c *Config) { c.Log = l }
}

// New builds a validated Config. An empty Host is not an error (INADDR_ANY);
// a Port outside 1..65535, a non-positive MaxConnections/ReqQueueSize/pool
// size or a non-positive timeout is.
func New(opts ...Option) (*Config, error) {
	c := &Config{
		MaxConnections:   1024,
		ReqQueueSize:     1024,
		RefusedMsg:       "BUSY",
		ReadTimeout:      duration.Seconds(30),
		WriteTimeout:     duration.Seconds(30),
		WorkerPoolSize:   64,
		CompletionBuffer: 256,
	}

	for _, o := range opts {
		o(c)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return nil, liberr.InvalidAddress.Error(fmt.Errorf("port out of range: %d", c.Port))
	}

	if c.MaxConnections <= 0 {
		return nil, liberr.InvalidAddress.Error(fmt.Errorf("maxConnections must be positive: %d", c.MaxConnections))
	}

	if c.ReqQueueSize <= 0 {
		return nil, liberr.InvalidAddress.Error(fmt.Errorf("reqQueueSize must be positive: %d", c.ReqQueueSize))
	}

	if c.WorkerPoolSize <= 0 {
		return nil, liberr.InvalidAddress.Error(fmt.Errorf("workerPoolSize must be positive: %d", c.WorkerPoolSize))
	}

	if c.ReadTimeout.Time() <= 0 || c.WriteTimeout.Time() <= 0 {
		return nil, liberr.InvalidAddress.Error(fmt.Errorf("read/write timeouts must be positive"))
	}

	if c.Log == nil {
		c.Log = logger.New(nil, logger.InfoLevel)
	}

	return c, nil
}
