/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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
 *
 */

package procpool

import (
	"context"
	"net"
	"os"

	"github.com/nabbar/httpd10/httpmsg"
	"github.com/nabbar/httpd10/ipcsem"
	liblog "github.com/nabbar/httpd10/logger"
	loglvl "github.com/nabbar/httpd10/logger/level"
	"github.com/nabbar/httpd10/method"
)

// handoffFD and exitPipeFD are the fixed descriptor numbers a worker
// inherits from its parent's cmd.ExtraFiles (fd 0-2 are stdio).
const (
	handoffFD = 3
	exitPipeFD = 4
)

// WorkerLoop runs the worker side of the handoff protocol: contend on
// the read semaphore, receive one client fd, serve exactly one
// HTTP/1.0 request on it, then signal the parent over the exit pipe.
// It runs until ctx is done or the handoff socket is closed by the
// parent exiting.
func WorkerLoop(ctx context.Context, cfg Config, backends method.Backends) error {
	log := cfg.logger()
	pid := os.Getpid()

	semRead, err := ipcsem.New(cfg.SemDir, cfg.SemReadName)
	if err != nil {
		return ErrorSemaphore.Error(err)
	}
	defer semRead.Close()

	semPipe, err := ipcsem.New(cfg.SemDir, cfg.SemPipeName)
	if err != nil {
		return ErrorSemaphore.Error(err)
	}
	defer semPipe.Close()

	handoff := os.NewFile(uintptr(handoffFD), "handoff")
	exitPipe := os.NewFile(uintptr(exitPipeFD), "exit-pipe")
	defer exitPipe.Close()

	log.Info("worker ready", liblog.Fields{"pid": pid})

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err = semRead.Lock(ctx); err != nil {
			return nil
		}
		fd, rerr := recvFD(int(handoff.Fd()))
		_ = semRead.Unlock()

		if rerr != nil {
			return log.CheckError(loglvl.ErrorLevel, loglvl.NilLevel, "worker recv fd", ErrorHandoffRecv.Error(rerr))
		}

		serveOne(fd, backends, log)

		if err = semPipe.Lock(ctx); err == nil {
			_, _ = exitPipe.Write([]byte{1})
			_ = semPipe.Unlock()
		}
	}
}

// serveOne reads exactly one request off fd, dispatches it, writes
// the response, and closes the connection.
func serveOne(fd int, backends method.Backends, log liblog.Logger) {
	f := os.NewFile(uintptr(fd), "client")
	defer f.Close()

	conn, err := net.FileConn(f)
	if err != nil {
		log.Warning("worker: client fd to conn", err)
		return
	}
	defer conn.Close()

	req, err := httpmsg.ReadRequest(conn)
	if err != nil {
		log.Warning("worker: request framing", err)
		_ = httpmsg.WriteResponse(conn, &httpmsg.Response{Status: httpmsg.StatusBadRequest})
		return
	}

	resp := method.Dispatch(req, backends)
	log.Info("request served", liblog.Fields{
		"id": req.ID, "method": req.Method, "uri": req.RequestURI, "status": int(resp.Status),
	})

	if err = httpmsg.WriteResponse(conn, resp); err != nil {
		log.Warning("worker: response write", err)
	}
}
