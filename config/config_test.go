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

package config_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/tcpreactor/config"
	"github.com/sabouaram/tcpreactor/duration"
)

var _ = Describe("New", func() {
	It("fills in defaults when given only a listen address", func() {
		c, err := config.New(config.WithListen("", 9000))
		Expect(err).NotTo(HaveOccurred())

		Expect(c.Port).To(Equal(9000))
		Expect(c.MaxConnections).To(BeNumerically(">", 0))
		Expect(c.ReqQueueSize).To(BeNumerically(">", 0))
		Expect(c.WorkerPoolSize).To(BeNumerically(">", 0))
		Expect(c.Log).NotTo(BeNil())
	})

	It("rejects a port out of range", func() {
		_, err := config.New(config.WithListen("", 0))
		Expect(err).To(HaveOccurred())

		_, err = config.New(config.WithListen("", 70000))
		Expect(err).To(HaveOccurred())
	})

	It("rejects non-positive admission thresholds", func() {
		_, err := config.New(
			config.WithListen("", 9000),
			config.WithAdmission(0, 10, "BUSY"),
		)
		Expect(err).To(HaveOccurred())

		_, err = config.New(
			config.WithListen("", 9000),
			config.WithAdmission(10, -1, "BUSY"),
		)
		Expect(err).To(HaveOccurred())
	})

	It("rejects a non-positive worker pool size", func() {
		_, err := config.New(
			config.WithListen("", 9000),
			config.WithWorkerPoolSize(0),
		)
		Expect(err).To(HaveOccurred())
	})

	It("rejects non-positive read/write timeouts", func() {
		_, err := config.New(
			config.WithListen("", 9000),
			config.WithTimeouts(duration.Seconds(0), duration.Seconds(5)),
		)
		Expect(err).To(HaveOccurred())
	})

	It("accepts explicit overrides for every option", func() {
		c, err := config.New(
			config.WithListen("127.0.0.1", 9001),
			config.WithAdmission(5, 5, "GO AWAY"),
			config.WithTimeouts(duration.Seconds(1), duration.Seconds(2)),
			config.WithWorkerPoolSize(3),
			config.WithCompletionBuffer(7),
		)
		Expect(err).NotTo(HaveOccurred())

		Expect(c.Host).To(Equal("127.0.0.1"))
		Expect(c.MaxConnections).To(Equal(5))
		Expect(c.ReqQueueSize).To(Equal(5))
		Expect(c.RefusedMsg).To(Equal("GO AWAY"))
		Expect(c.WorkerPoolSize).To(Equal(3))
		Expect(c.CompletionBuffer).To(Equal(7))
	})
})
