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
	"fmt"

	liberr "github.com/nabbar/httpd10/errors"
)

const pkgName = "httpd10/procpool"

const (
	ErrorBadConfig liberr.CodeError = iota + liberr.MinPkgProcPool
	ErrorListen
	ErrorSocketPair
	ErrorExitPipe
	ErrorForkWorker
	ErrorHandoffSend
	ErrorHandoffRecv
	ErrorNoFreeSlot
	ErrorSemaphore
)

func init() {
	if liberr.ExistInMapMessage(ErrorBadConfig) {
		panic(fmt.Errorf("error code collision with package %s", pkgName))
	}
	liberr.RegisterIdFctMessage(ErrorBadConfig, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case liberr.UnknownError:
		return liberr.NullMessage
	case ErrorBadConfig:
		return "invalid configuration in " + pkgName
	case ErrorListen:
		return "could not bind listen socket in " + pkgName
	case ErrorSocketPair:
		return "could not create handoff socket pair in " + pkgName
	case ErrorExitPipe:
		return "could not create exit-signal pipe in " + pkgName
	case ErrorForkWorker:
		return "could not fork worker process in " + pkgName
	case ErrorHandoffSend:
		return "could not send client fd to a worker in " + pkgName
	case ErrorHandoffRecv:
		return "could not receive client fd from parent in " + pkgName
	case ErrorNoFreeSlot:
		return "no free client slot in " + pkgName
	case ErrorSemaphore:
		return "semaphore operation failed in " + pkgName
	}

	return liberr.NullMessage
}
