/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors

// Error code taxonomy for the reactor core, following the failure
// classification of the accept/read/write/lifecycle paths.
const (
	AcceptFailure CodeError = iota + 100
	SocketOptionFailure
	BindFailure
	ListenFailure
	InvalidAddress
	ReadError
	WriteError
	TimeoutError
	DecoderError
	AdmissionRefused
	UnknownRecipient
	HandlerFailure
)

func init() {
	RegisterIdFctMessage(AcceptFailure, taxonomyMessage)
}

func taxonomyMessage(code CodeError) string {
	switch code {
	case AcceptFailure:
		return "accept failed on listening socket"
	case SocketOptionFailure:
		return "failed to set socket option"
	case BindFailure:
		return "failed to bind listening socket"
	case ListenFailure:
		return "failed to listen on socket"
	case InvalidAddress:
		return "invalid listen address"
	case ReadError:
		return "read failed on session socket"
	case WriteError:
		return "write failed on session socket"
	case TimeoutError:
		return "session event timed out"
	case DecoderError:
		return "decoder could not make progress"
	case AdmissionRefused:
		return "connection refused by admission control"
	case UnknownRecipient:
		return "message recipient is stale or unknown"
	case HandlerFailure:
		return "handler requested session shutdown"
	default:
		return UnknownMessage
	}
}
