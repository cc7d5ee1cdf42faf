// Copyright 2025 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package rpc

import (
	"errors"
	"fmt"
)

var (
	// ErrNoResult is returned when the server answered without a result and
	// without an error.
	ErrNoResult = errors.New("JSON-RPC response has no result")

	// ErrClientQuit is returned when calling on a closed client.
	ErrClientQuit = errors.New("client is closed")
)

// HTTPError is returned by client operations when the HTTP status code of the
// response is not a 2xx status.
//
// HTTPError 由客户端操作在响应的 HTTP 状态码不是 2xx 状态时返回。
type HTTPError struct {
	StatusCode int    // 存储 HTTP 响应的状态码（例如 404, 500）。
	Status     string // 存储 HTTP 响应的状态文本描述（例如 "Not Found"）。
	Body       []byte // 存储 HTTP 响应的响应体内容。
}

func (err HTTPError) Error() string {
	if len(err.Body) == 0 {
		return err.Status
	}
	return fmt.Sprintf("%v: %s", err.Status, err.Body)
}

// Error wraps RPC errors, which contain an error code in addition to the message.
// Error 封装了 RPC 错误，这些错误除了消息之外还包含错误代码。
type Error interface {
	Error() string  // returns the message  返回错误消息
	ErrorCode() int // returns the code     返回错误代码
}

// A DataError contains some data in addition to the error message. Nodes use
// it to hand back the revert data of a failed eth_call.
// DataError 除了错误消息之外还包含一些数据，例如 eth_call 失败时的 revert 数据。
type DataError interface {
	Error() string          // returns the message     返回错误消息
	ErrorData() interface{} // returns the error data  返回错误数据
}

var (
	_ Error     = new(jsonError)
	_ DataError = new(jsonError)
)

// jsonError is the error object of a JSON-RPC response.
type jsonError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (err *jsonError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("json-rpc error %d", err.Code)
	}
	return err.Message
}

func (err *jsonError) ErrorCode() int {
	return err.Code
}

func (err *jsonError) ErrorData() interface{} {
	return err.Data
}

// wsHandshakeError is returned when the websocket upgrade was refused.
type wsHandshakeError struct {
	err    error
	status string
}

func (e wsHandshakeError) Error() string {
	s := e.err.Error()
	if e.status != "" {
		s += " (HTTP status " + e.status + ")"
	}
	return s
}

func (e wsHandshakeError) Unwrap() error {
	return e.err
}
