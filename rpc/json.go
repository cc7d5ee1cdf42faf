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
	"encoding/json"
	"time"
)

const (
	vsn = "2.0" // JSON-RPC 协议版本号

	defaultWriteTimeout = 10 * time.Second // used if context has no deadline 如果上下文没有截止时间，则使用此值
)

// A value of this type can a JSON-RPC request, notification, successful response or
// error response. Which one it is depends on the fields.
//
// The client only ever sends requests and only ever consumes responses.
type jsonrpcMessage struct {
	Version string          `json:"jsonrpc,omitempty"` // JSON-RPC 协议版本，通常为 "2.0"
	ID      json.RawMessage `json:"id,omitempty"`      // 请求的唯一标识符，用于匹配请求和响应
	Method  string          `json:"method,omitempty"`  // 请求的方法名，例如 "eth_call"
	Params  json.RawMessage `json:"params,omitempty"`  // 请求的参数
	Error   *jsonError      `json:"error,omitempty"`   // 错误响应中的错误对象
	Result  json.RawMessage `json:"result,omitempty"`  // 成功响应的结果
}

func (msg *jsonrpcMessage) isNotification() bool {
	return msg.hasValidVersion() && msg.ID == nil && msg.Method != ""
}

func (msg *jsonrpcMessage) isResponse() bool {
	return msg.hasValidVersion() && msg.hasValidID() && msg.Method == "" && msg.Params == nil && (msg.Result != nil || msg.Error != nil)
}

func (msg *jsonrpcMessage) hasValidID() bool {
	return len(msg.ID) > 0 && msg.ID[0] != '{' && msg.ID[0] != '['
}

func (msg *jsonrpcMessage) hasValidVersion() bool {
	return msg.Version == vsn
}

func (msg *jsonrpcMessage) String() string {
	b, _ := json.Marshal(msg)
	return string(b)
}

// result unmarshals the outcome of a response into v. v may be nil when the
// caller is not interested in the result.
func (msg *jsonrpcMessage) result(v interface{}) error {
	switch {
	case msg.Error != nil:
		return msg.Error
	case len(msg.Result) == 0:
		return ErrNoResult
	case v == nil:
		return nil
	default:
		return json.Unmarshal(msg.Result, v)
	}
}
