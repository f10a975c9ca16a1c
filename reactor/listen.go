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

package reactor

import (
	"fmt"
	"net"

	"github.com/libp2p/go-reuseport"
	"golang.org/x/sys/unix"

	liberr "github.com/sabouaram/tcpreactor/errors"
	"github.com/sabouaram/tcpreactor/logger"
)

// Listen binds the configured host:port with SO_REUSEADDR/SO_REUSEPORT (via
// go-reuseport, so a follow-up process can rebind during a rolling restart),
// registers the listening socket with epoll, and logs the listen success.
// Run refuses to start until Listen has succeeded.
func (c *core) Listen() error {
	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)

	ln, err := reuseport.Listen("tcp", addr)
	if err != nil {
		return liberr.BindFailure.Error(err)
	}

	tl, ok := ln.(*net.TCPListener)
	if !ok {
		_ = ln.Close()
		return liberr.ListenFailure.Error(fmt.Errorf("listener is not a TCP listener"))
	}

	sc, err := tl.SyscallConn()
	if err != nil {
		_ = ln.Close()
		return liberr.ListenFailure.Error(err)
	}

	var fd int
	ctlErr := sc.Control(func(p uintptr) { fd = int(p) })
	if ctlErr != nil {
		_ = ln.Close()
		return liberr.ListenFailure.Error(ctlErr)
	}

	if err = unix.SetNonblock(fd, true); err != nil {
		_ = ln.Close()
		return liberr.SocketOptionFailure.Error(err)
	}

	if err = unix.EpollCtl(c.epfd, unix.EPOLL_CTL_ADD, fd, &unix.EpollEvent{
		Events: unix.EPOLLIN,
		Fd:     int32(fd),
	}); err != nil {
		_ = ln.Close()
		return liberr.AcceptFailure.Error(err)
	}

	c.listener = ln
	c.listenFD = fd

	c.log.Info("listen on port", nil, logger.Fields{"port": c.cfg.Port})

	return nil
}
